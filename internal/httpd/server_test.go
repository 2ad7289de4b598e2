package httpd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logmirror/logmirror/internal/httpd/models"
	"github.com/logmirror/logmirror/internal/mirror"
)

// stubStore serves a fixed remote object.
type stubStore struct {
	data []byte
}

func (s *stubStore) Size(ctx context.Context, key string) (int64, error) {
	return int64(len(s.data)), nil
}

func (s *stubStore) ReadRange(ctx context.Context, key string, start, end int64) ([]byte, error) {
	return s.data[start : end+1], nil
}

func (s *stubStore) ResolveLatest(ctx context.Context, prefix string) (string, error) {
	return "app.log", nil
}

func newTestServer(t *testing.T, cfg Config, remote []byte) *Server {
	t.Helper()
	dir := t.TempDir()
	syncer := mirror.NewSyncer(
		&stubStore{data: remote},
		"app.log",
		filepath.Join(dir, "current.log"),
		filepath.Join(dir, "reversed.log"),
		nil,
	)

	srv, err := New(cfg, syncer, nil)
	require.NoError(t, err)
	return srv
}

func doRequest(srv *Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	srv.engine.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{Addr: "localhost:0"}, nil)

	w := doRequest(srv, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
}

func TestLogsEndpointPagination(t *testing.T) {
	srv := newTestServer(t, Config{Addr: "localhost:0"}, []byte("a\nb\nc\n"))

	// populate the mirror
	w := doRequest(srv, http.MethodPost, "/v1/sync")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(srv, http.MethodGet, "/v1/logs?page=1&limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var page models.LogsPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, []string{"c", "b"}, page.Lines)
	assert.Equal(t, 3, page.TotalLines)
	assert.True(t, page.HasMore)

	w = doRequest(srv, http.MethodGet, "/v1/logs?page=2&limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, []string{"a"}, page.Lines)
	assert.False(t, page.HasMore)
}

func TestSecureHeaders(t *testing.T) {
	srv := newTestServer(t, Config{Addr: "localhost:0"}, nil)

	w := doRequest(srv, http.MethodGet, "/health")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestLogsEndpointRejectsBadParams(t *testing.T) {
	srv := newTestServer(t, Config{Addr: "localhost:0"}, nil)

	for _, target := range []string{
		"/v1/logs?page=0",
		"/v1/logs?page=x",
		"/v1/logs?limit=0",
		"/v1/logs?limit=99999",
	} {
		w := doRequest(srv, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, "target %s", target)
	}
}

func TestSyncEndpointReportsResult(t *testing.T) {
	srv := newTestServer(t, Config{Addr: "localhost:0"}, []byte("a\nb\n"))

	w := doRequest(srv, http.MethodPost, "/v1/sync")
	require.Equal(t, http.StatusOK, w.Code)

	var trigger models.SyncTrigger
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trigger))
	assert.True(t, trigger.Changed)
	assert.EqualValues(t, 4, trigger.BytesMoved)

	// second trigger is a no-op
	w = doRequest(srv, http.MethodPost, "/v1/sync")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trigger))
	assert.False(t, trigger.Changed)
}

func TestSyncStatusEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{Addr: "localhost:0"}, []byte("x\n"))

	w := doRequest(srv, http.MethodPost, "/v1/sync")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(srv, http.MethodGet, "/v1/sync/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status models.SyncStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "app.log", status.Key)
	assert.EqualValues(t, 2, status.Watermark)
}

func TestTokenAuthGuardsV1(t *testing.T) {
	srv := newTestServer(t, Config{Addr: "localhost:0", Token: "secret"}, nil)

	w := doRequest(srv, http.MethodGet, "/v1/logs")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(srv, http.MethodGet, "/v1/logs?token=secret")
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/logs", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// health stays open
	w = doRequest(srv, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
