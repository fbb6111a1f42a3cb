package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v80/github"

	"github.com/eflav/aio-index/internal/core/domain"
)

// wrapError converts go-github errors into the domain's store errors.
// 404 maps to ErrNotFound (a read signalling "create"); 409 and 422 on
// writes indicate a stale or missing sha and map to ErrRevisionConflict.
func wrapError(path string, err error) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		case http.StatusConflict, http.StatusUnprocessableEntity:
			return fmt.Errorf("%s: %s: %w", path, ghErr.Message, domain.ErrRevisionConflict)
		default:
			return &domain.StoreError{
				Path:       path,
				StatusCode: ghErr.Response.StatusCode,
				Message:    ghErr.Message,
			}
		}
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &domain.StoreError{
			Path:       path,
			StatusCode: http.StatusForbidden,
			Message:    "rate limit exceeded, resets at " + rateErr.Rate.Reset.Time.String(),
		}
	}

	return &domain.StoreError{Path: path, Message: err.Error()}
}
