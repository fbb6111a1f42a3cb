// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/eflav/aio-index/internal/core/domain"
)

// TextExtractor retrieves a webpage and returns a bounded plain-text
// rendering of its visible body content.
type TextExtractor interface {
	// Extract fetches the URL and returns its visible text with
	// script, style and noscript content removed.
	Extract(ctx context.Context, url string) (string, error)
}

// Summarizer turns page text into a structured analysis record.
//
// Implementations may include:
//   - OpenAI chat completions (the default)
//   - any compatible inference endpoint via a custom base URL
type Summarizer interface {
	// Summarize analyzes the extracted text. The URL is passed for
	// context. A malformed model response degrades to the fallback
	// record rather than returning an error; transport and API
	// failures do return one.
	Summarize(ctx context.Context, text, url string) (domain.AnalysisRecord, error)
}

// ContentStore reads and writes named JSON documents in a
// path-addressed, version-controlled remote store.
type ContentStore interface {
	// Read fetches current content and the opaque revision marker for
	// a path. A missing document returns domain.ErrNotFound; that is
	// not a failure, it signals "create".
	Read(ctx context.Context, path string) (content []byte, revision string, err error)

	// Write stores content at the path. An empty revision performs a
	// create; a non-empty one performs a compare-and-swap update and
	// yields domain.ErrRevisionConflict when the marker is stale. Any
	// other non-success response surfaces as a *domain.StoreError.
	Write(ctx context.Context, path string, content []byte, revision string) error
}
