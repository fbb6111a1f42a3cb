package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingURL indicates the request carried no URL after trimming.
	ErrMissingURL = errors.New("missing URL")

	// ErrNotFound indicates a stored document does not exist.
	// Store reads return it to signal "create" rather than failure.
	ErrNotFound = errors.New("not found")

	// ErrRevisionConflict indicates a conditional write lost the race:
	// the document changed between read and write.
	ErrRevisionConflict = errors.New("revision conflict")
)

// FetchError reports a failure to retrieve the target page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StoreError reports a remote store failure, carrying the remote
// status code and message.
type StoreError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: API error %d: %s", e.Path, e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a missing stored document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
