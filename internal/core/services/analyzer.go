// Package services holds the analysis orchestration and the index merge
// logic. A request flows strictly in sequence: normalize, extract,
// summarize, persist the document, upsert the index.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eflav/aio-index/internal/core/domain"
	"github.com/eflav/aio-index/internal/core/ports/driven"
	"github.com/eflav/aio-index/internal/logger"
)

// indexWriteAttempts bounds how often a lost index write race is
// retried before the conflict is surfaced to the caller.
const indexWriteAttempts = 3

// Analyzer runs the full analysis pipeline for one URL at a time.
type Analyzer struct {
	extractor  driven.TextExtractor
	summarizer driven.Summarizer
	store      driven.ContentStore

	// now is swapped out in tests for deterministic timestamps.
	now func() time.Time
}

// NewAnalyzer creates an analyzer service.
func NewAnalyzer(
	extractor driven.TextExtractor,
	summarizer driven.Summarizer,
	store driven.ContentStore,
) *Analyzer {
	return &Analyzer{
		extractor:  extractor,
		summarizer: summarizer,
		store:      store,
		now:        time.Now,
	}
}

// Analyze normalizes the URL, extracts the page text, asks the
// summarizer for a structured record, persists the document under
// data/, and upserts the rolling index. Any step's failure aborts the
// request; nothing is written before the document write.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (domain.AnalysisResult, error) {
	url, err := domain.NormalizeURL(rawURL)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	logger.Section("analyze " + url)

	text, err := a.extractor.Extract(ctx, url)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	logger.Debug("extracted %d characters from %s", len(text), url)

	record, err := a.summarizer.Summarize(ctx, text, url)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	timestamp := a.now().UTC().Format(time.RFC3339)
	doc := domain.StoredDocument{
		Source:      url,
		GeneratedAt: timestamp,
		Data:        record,
	}

	path := domain.DocumentPathForURL(url)
	if err := a.writeDocument(ctx, path, doc); err != nil {
		return domain.AnalysisResult{}, err
	}
	logger.Info("stored %s", path)

	entry := domain.IndexEntry{
		Source:      url,
		JSON:        path,
		AIOScore:    record.AIOScore,
		LastUpdated: timestamp,
	}
	if err := a.upsertIndex(ctx, entry); err != nil {
		return domain.AnalysisResult{}, err
	}
	logger.Info("updated %s", domain.IndexPath)

	return domain.AnalysisResult{
		URL:          url,
		AIOScore:     record.AIOScore,
		Summary:      record.Summary,
		DocumentPath: path,
	}, nil
}

// writeDocument serialises the document and writes it at the current
// revision, creating it when absent.
func (a *Analyzer) writeDocument(ctx context.Context, path string, doc domain.StoredDocument) error {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	revision, err := a.currentRevision(ctx, path)
	if err != nil {
		return err
	}
	return a.store.Write(ctx, path, content, revision)
}

// upsertIndex performs the read-modify-write cycle on the index with a
// conditional write. A stale revision means another request updated the
// index concurrently; the cycle restarts from a fresh read so that
// neither writer's entry is silently dropped.
func (a *Analyzer) upsertIndex(ctx context.Context, entry domain.IndexEntry) error {
	for attempt := 1; attempt <= indexWriteAttempts; attempt++ {
		raw, revision, err := a.store.Read(ctx, domain.IndexPath)
		if err != nil {
			if !domain.IsNotFound(err) {
				return err
			}
			raw, revision = nil, ""
		}

		merged := MergeEntry(DecodeIndex(raw), entry)
		content, err := json.MarshalIndent(merged, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal index: %w", err)
		}

		err = a.store.Write(ctx, domain.IndexPath, content, revision)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrRevisionConflict) {
			return err
		}
		logger.Warn("index write conflict, attempt %d/%d", attempt, indexWriteAttempts)
	}
	return fmt.Errorf("update %s: %w", domain.IndexPath, domain.ErrRevisionConflict)
}

// currentRevision looks up the revision marker for a path, mapping a
// missing document to the empty marker used for creates.
func (a *Analyzer) currentRevision(ctx context.Context, path string) (string, error) {
	_, revision, err := a.store.Read(ctx, path)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return revision, nil
}
