package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflav/aio-index/internal/core/domain"
)

func serveHTML(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtract_StripsInvisibleContent(t *testing.T) {
	srv := serveHTML(t, http.StatusOK, `<html>
		<head><style>body { color: red }</style></head>
		<body>
			<script>var hidden = "nope";</script>
			<noscript>Enable JavaScript</noscript>
			<h1>Acme Plumbing</h1>
			<p>Emergency   repairs in
			Dublin.</p>
		</body></html>`)

	text, err := New().Extract(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Acme Plumbing Emergency repairs in Dublin.", text)
	assert.NotContains(t, text, "hidden")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Enable JavaScript")
}

func TestExtract_TruncatesLongPages(t *testing.T) {
	srv := serveHTML(t, http.StatusOK, "<body>"+strings.Repeat("word ", 100)+"</body>")

	e := New()
	e.maxText = 40

	text, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, text, 40)
}

func TestExtract_NonSuccessStatus(t *testing.T) {
	srv := serveHTML(t, http.StatusServiceUnavailable, "down")

	_, err := New().Extract(context.Background(), srv.URL)

	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
	assert.Equal(t, srv.URL, fe.URL)
}

func TestExtract_ConnectionFailure(t *testing.T) {
	srv := serveHTML(t, http.StatusOK, "ok")
	url := srv.URL
	srv.Close()

	_, err := New().Extract(context.Background(), url)

	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.NotNil(t, fe.Err)
}

func TestExtract_InvalidURL(t *testing.T) {
	_, err := New().Extract(context.Background(), "https://\x00bad")

	var fe *domain.FetchError
	assert.ErrorAs(t, err, &fe)
}
