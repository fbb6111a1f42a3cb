package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflav/aio-index/internal/core/domain"
)

// mockAnalyzer implements the Analyzer port for handler tests.
type mockAnalyzer struct {
	result domain.AnalysisResult
	err    error
	gotURL string
	calls  int
}

func (m *mockAnalyzer) Analyze(_ context.Context, rawURL string) (domain.AnalysisResult, error) {
	m.calls++
	m.gotURL = rawURL
	if m.err != nil {
		return domain.AnalysisResult{}, m.err
	}
	if _, err := domain.NormalizeURL(rawURL); err != nil {
		return domain.AnalysisResult{}, err
	}
	return m.result, nil
}

func newTestServer(t *testing.T, analyzer *mockAnalyzer) *httptest.Server {
	t.Helper()
	handlers := NewHandlers(analyzer)
	mux := http.NewServeMux()
	mux.HandleFunc("/", handlers.HandleRoot)
	mux.HandleFunc("/analyze", handlers.HandleAnalyze)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleRoot(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["message"])
}

func TestHandleRoot_UnknownPath(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleAnalyze_PostSuccess(t *testing.T) {
	analyzer := &mockAnalyzer{result: domain.AnalysisResult{
		URL:      "https://test.com",
		AIOScore: 77,
		Summary:  "x",
	}}
	srv := newTestServer(t, analyzer)

	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{"url":"test.com"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "https://test.com", body["url"])
	assert.Equal(t, float64(77), body["aio_score"])
	assert.Equal(t, "x", body["summary"])

	assert.Equal(t, "test.com", analyzer.gotURL)
}

func TestHandleAnalyze_GetWithQueryParam(t *testing.T) {
	analyzer := &mockAnalyzer{result: domain.AnalysisResult{URL: "https://a.com", AIOScore: 5}}
	srv := newTestServer(t, analyzer)

	resp, err := http.Get(srv.URL + "/analyze?url=a.com")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a.com", analyzer.gotURL)
}

func TestHandleAnalyze_PostQueryFallback(t *testing.T) {
	analyzer := &mockAnalyzer{result: domain.AnalysisResult{URL: "https://a.com"}}
	srv := newTestServer(t, analyzer)

	resp, err := http.Post(srv.URL+"/analyze?url=a.com", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a.com", analyzer.gotURL)
}

func TestHandleAnalyze_MissingURL(t *testing.T) {
	analyzer := &mockAnalyzer{}
	srv := newTestServer(t, analyzer)

	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Missing URL", body["error"])
}

func TestHandleAnalyze_InvalidJSONBody(t *testing.T) {
	analyzer := &mockAnalyzer{}
	srv := newTestServer(t, analyzer)

	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{not json`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid JSON body", body["error"])
	assert.Zero(t, analyzer.calls, "pipeline never invoked for a malformed body")
}

func TestHandleAnalyze_DownstreamFailure(t *testing.T) {
	storeErr := &domain.StoreError{Path: "index.json", StatusCode: 502, Message: "bad gateway"}
	srv := newTestServer(t, &mockAnalyzer{err: storeErr})

	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{"url":"test.com"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "bad gateway")
}

func TestHandleAnalyze_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/analyze", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
