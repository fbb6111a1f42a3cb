// Package httpapi exposes the analysis pipeline over HTTP: a liveness
// route and the analyze endpoint that accepts a URL by query parameter
// or JSON body.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/eflav/aio-index/internal/core/domain"
	"github.com/eflav/aio-index/internal/logger"
)

// Analyzer is the driving port the handlers call into.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (domain.AnalysisResult, error)
}

// Handlers routes HTTP requests to the analyzer.
type Handlers struct {
	analyzer Analyzer
}

// NewHandlers creates the HTTP handler set.
func NewHandlers(analyzer Analyzer) *Handlers {
	return &Handlers{analyzer: analyzer}
}

// analyzeRequest is the POST /analyze body.
type analyzeRequest struct {
	URL string `json:"url"`
}

// analyzeResponse is the success shape of /analyze.
type analyzeResponse struct {
	Status   string `json:"status"`
	URL      string `json:"url"`
	AIOScore int    `json:"aio_score"`
	Summary  string `json:"summary"`
}

// errorResponse is the uniform error shape.
type errorResponse struct {
	Error string `json:"error"`
}

// HandleRoot serves the liveness message.
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "aio-index is running"})
}

// HandleAnalyze runs the pipeline for the URL in the request. The URL
// comes from the JSON body on POST, with the query parameter as
// fallback; GET uses the query parameter alone.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	rawURL, ok := h.requestURL(w, r)
	if !ok {
		return
	}

	requestID := uuid.New().String()
	logger.Debug("[%s] analyze request for %q", requestID, rawURL)

	result, err := h.analyzer.Analyze(r.Context(), rawURL)
	if err != nil {
		if errors.Is(err, domain.ErrMissingURL) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing URL"})
			return
		}
		logger.Error("[%s] analyze failed: %v", requestID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	logger.Info("[%s] analyzed %s (score %d)", requestID, result.URL, result.AIOScore)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Status:   "ok",
		URL:      result.URL,
		AIOScore: result.AIOScore,
		Summary:  result.Summary,
	})
}

// requestURL pulls the raw URL out of the request. It reports false
// after writing an error response for a malformed body.
func (h *Handlers) requestURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	rawURL := ""
	if r.Method == http.MethodPost {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
			return "", false
		}
		if len(strings.TrimSpace(string(body))) > 0 {
			var req analyzeRequest
			if err := json.Unmarshal(body, &req); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
				return "", false
			}
			rawURL = req.URL
		}
	}
	if rawURL == "" {
		rawURL = r.URL.Query().Get("url")
	}
	return rawURL, true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("encode response: %v", err)
	}
}
