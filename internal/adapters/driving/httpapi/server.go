package httpapi

import (
	"net/http"
	"time"
)

// New builds the HTTP server with all routes registered.
func New(port string, analyzer Analyzer) *http.Server {
	handlers := NewHandlers(analyzer)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handlers.HandleRoot)
	mux.HandleFunc("/analyze", handlers.HandleAnalyze)

	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
