package services

import (
	"encoding/json"

	"github.com/eflav/aio-index/internal/core/domain"
	"github.com/eflav/aio-index/internal/logger"
)

// MergeEntry returns a new index with every entry for entry.Source
// removed and entry appended at the end. Entries for other sources keep
// their relative order. Applying the same entry twice yields the same
// final state.
func MergeEntry(index []domain.IndexEntry, entry domain.IndexEntry) []domain.IndexEntry {
	merged := make([]domain.IndexEntry, 0, len(index)+1)
	for _, e := range index {
		if e.Source != entry.Source {
			merged = append(merged, e)
		}
	}
	return append(merged, entry)
}

// DecodeIndex parses a persisted index document. A prior index that is
// missing, empty or unparsable is treated as empty so analysis requests
// keep succeeding even if the index is corrupted.
func DecodeIndex(raw []byte) []domain.IndexEntry {
	if len(raw) == 0 {
		return nil
	}
	var index []domain.IndexEntry
	if err := json.Unmarshal(raw, &index); err != nil {
		logger.Warn("could not parse existing %s, starting fresh: %v", domain.IndexPath, err)
		return nil
	}
	return index
}
