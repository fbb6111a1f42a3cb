// Package extract fetches webpages and renders their visible text.
// Script, style and noscript subtrees are dropped before the remaining
// text is flattened to a single bounded string for the summarizer.
package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/eflav/aio-index/internal/core/domain"
	"github.com/eflav/aio-index/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

const (
	// DefaultTimeout bounds the page fetch.
	DefaultTimeout = 20 * time.Second

	// MaxTextLength caps the extracted text handed to the summarizer.
	MaxTextLength = 8000

	defaultUserAgent = "aio-index/1.0 (+https://github.com/eflav/aio-index)"
)

// invisibleSelectors are HTML subtrees that carry no visible text.
var invisibleSelectors = []string{"script", "style", "noscript"}

// Extractor retrieves pages over HTTP and strips them to plain text.
type Extractor struct {
	client  *http.Client
	maxText int
}

// New creates an extractor with the default timeout and text bound.
func New() *Extractor {
	return &Extractor{
		client:  &http.Client{Timeout: DefaultTimeout},
		maxText: MaxTextLength,
	}
}

// Extract fetches the URL and returns its visible text.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: fmt.Errorf("parse HTML: %w", err)}
	}

	for _, sel := range invisibleSelectors {
		doc.Find(sel).Remove()
	}

	// Collapse all whitespace runs so the text reads as one stream of
	// visible strings, then apply the length bound.
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if len(text) > e.maxText {
		text = text[:e.maxText]
	}
	return text, nil
}
