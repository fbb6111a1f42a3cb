package domain

// AnalysisRecord is the structured summary the LLM produces for one URL.
// It is always present with zero-value defaults; when the summarizer
// cannot parse the model output it degrades to a fallback record rather
// than dropping the field.
type AnalysisRecord struct {
	// Summary is the prose summary of the page.
	Summary string `json:"summary"`

	// Brand is the brand or organisation the page represents.
	Brand string `json:"brand"`

	// Services lists the offerings mentioned on the page.
	Services []string `json:"services"`

	// Location is the geographic location, when one is identifiable.
	Location string `json:"location"`

	// Topics lists the main subjects covered by the page.
	Topics []string `json:"topics"`

	// AIOScore estimates AI readability and clarity, 0-100.
	AIOScore int `json:"aio_score"`
}

// Clamp forces AIOScore into [0,100] and replaces nil slices with empty
// ones so the persisted JSON always carries arrays.
func (r *AnalysisRecord) Clamp() {
	if r.AIOScore < 0 {
		r.AIOScore = 0
	}
	if r.AIOScore > 100 {
		r.AIOScore = 100
	}
	if r.Services == nil {
		r.Services = []string{}
	}
	if r.Topics == nil {
		r.Topics = []string{}
	}
}

// FallbackSummaryLength is how much of the raw page text the fallback
// record keeps as its summary.
const FallbackSummaryLength = 120

// FallbackRecord builds the degraded record used when the model output
// cannot be parsed: a truncated slice of the raw text, empty structured
// fields, score 0.
func FallbackRecord(text string) AnalysisRecord {
	if len(text) > FallbackSummaryLength {
		text = text[:FallbackSummaryLength]
	}
	return AnalysisRecord{
		Summary:  text + "...",
		Services: []string{},
		Topics:   []string{},
	}
}

// StoredDocument is the persisted wrapper around an AnalysisRecord.
// A fresh document is written on every analysis request; it overwrites
// any prior document at the same derived path.
type StoredDocument struct {
	// Source is the normalized URL the analysis was produced for.
	Source string `json:"source"`

	// GeneratedAt is the RFC 3339 UTC timestamp of the analysis.
	GeneratedAt string `json:"generated_at"`

	// Data is the structured summary.
	Data AnalysisRecord `json:"data"`
}

// IndexEntry is one row in the global source index, keyed by Source.
type IndexEntry struct {
	// Source is the normalized URL, unique within the index.
	Source string `json:"source"`

	// JSON is the storage path of the StoredDocument.
	JSON string `json:"json"`

	// AIOScore mirrors the score of the stored analysis.
	AIOScore int `json:"aio_score"`

	// LastUpdated is the RFC 3339 UTC timestamp of the last analysis.
	LastUpdated string `json:"last_updated"`
}

// AnalysisResult is what a completed analysis reports back to the caller.
type AnalysisResult struct {
	URL          string
	AIOScore     int
	Summary      string
	DocumentPath string
}
