package spa

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vugu/vgnav"
)

const shell = "<!doctype html><div id=app></div>"

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	dist := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte(shell), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "assets", "app.js"), []byte("console.log(1)"), 0644))

	rt, err := vgnav.NewRouteTable(
		vgnav.RouteDefinition{Pattern: "/", ViewID: "Home"},
		vgnav.RouteDefinition{Pattern: "/poc/jobs", ViewID: "PocJobs"},
		vgnav.RouteDefinition{Pattern: "/poc/jobs/:id", ViewID: "PocJobDetail"},
		vgnav.RouteDefinition{Pattern: "/love-story", ViewID: "LoveStory"},
	)
	require.NoError(t, err)

	cfg.DistDir = dist
	cfg.Routes = rt
	s, err := New(cfg)
	require.NoError(t, err)

	s.Router().HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return s
}

func TestServer(t *testing.T) {

	s := newTestServer(t, Config{})

	var tlist = []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/", http.StatusOK, shell},
		{http.MethodGet, "/poc/jobs", http.StatusOK, shell},
		{http.MethodGet, "/poc/jobs/42", http.StatusOK, shell},
		{http.MethodGet, "/love-story", http.StatusOK, shell},
		{http.MethodGet, "/unknown/path", http.StatusNotFound, shell},
		{http.MethodHead, "/poc/jobs", http.StatusOK, ""},
		{http.MethodPost, "/poc/jobs", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/assets/app.js", http.StatusOK, "console.log(1)"},
		{http.MethodGet, "/api/health", http.StatusOK, `{"status":"ok"}` + "\n"},
		{http.MethodGet, "/api/v1/nothing", http.StatusNotFound, `{"error":"API endpoint not found"}` + "\n"},
		{http.MethodGet, "/api", http.StatusNotFound, `{"error":"API endpoint not found"}` + "\n"},
	}

	for _, ti := range tlist {
		t.Run(ti.method+" "+ti.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(ti.method, ti.path, nil))
			assert.Equal(t, ti.status, rec.Code)
			if ti.body != "" {
				assert.Equal(t, ti.body, rec.Body.String())
			}
		})
	}
}

func TestServerAPIJSON(t *testing.T) {

	s := newTestServer(t, Config{APIPrefix: "backend"})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/backend/x", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "API endpoint not found", body["error"])

	// the default API prefix is now an ordinary client path
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestServerHandler(t *testing.T) {

	var access bytes.Buffer
	s := newTestServer(t, Config{
		AllowedOrigins: []string{"https://app.example.com"},
		AccessLog:      &access,
	})
	h := s.Handler()

	req := httptest.NewRequest(http.MethodGet, "/poc/jobs/1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, access.String(), `"GET /poc/jobs/1 HTTP/1.1" 200`)
}

func TestNewErrors(t *testing.T) {

	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{DistDir: t.TempDir()})
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "index.html"), 0755))
	_, err = New(Config{DistDir: dir})
	assert.Error(t, err)
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "/api/", prefix("", DefaultAPIPrefix))
	assert.Equal(t, "/x/", prefix("x", DefaultAPIPrefix))
	assert.Equal(t, "/x/y/", prefix("/x/y", DefaultAPIPrefix))
}
