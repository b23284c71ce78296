package spa

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vugu/vgnav"
)

// Defaults used for empty Config fields.
const (
	DefaultIndexFile    = "index.html" // application shell inside DistDir
	DefaultAssetsPrefix = "/assets/"   // served from the matching directory of DistDir
	DefaultAPIPrefix    = "/api/"      // unmatched paths below it get a JSON 404
)

// Config configures a Server.
type Config struct {
	Routes         *vgnav.RouteTable // client routes, nil means every path is not found
	DistDir        string            // built application, must contain IndexFile
	IndexFile      string            // application shell, DefaultIndexFile if empty
	AssetsPrefix   string            // URL prefix of static assets, DefaultAssetsPrefix if empty
	APIPrefix      string            // URL prefix of the API, DefaultAPIPrefix if empty
	AllowedOrigins []string          // CORS origins, all origins if empty
	AccessLog      io.Writer         // Apache combined log output, none if nil
	Logger         *slog.Logger
}

// Server routes requests between assets, API handlers and the application shell.
type Server struct {
	cfg    Config
	router *mux.Router
	logger *slog.Logger
}

// New returns a Server for cfg.  It fails if the application shell cannot be found.
func New(cfg Config) (*Server, error) {

	if cfg.DistDir == "" {
		return nil, errors.New("spa: no distribution directory")
	}
	if cfg.IndexFile == "" {
		cfg.IndexFile = DefaultIndexFile
	}
	cfg.AssetsPrefix = prefix(cfg.AssetsPrefix, DefaultAssetsPrefix)
	cfg.APIPrefix = prefix(cfg.APIPrefix, DefaultAPIPrefix)

	index := filepath.Join(cfg.DistDir, cfg.IndexFile)
	if fi, err := os.Stat(index); err != nil {
		return nil, fmt.Errorf("spa: application shell: %w", err)
	} else if fi.IsDir() {
		return nil, fmt.Errorf("spa: application shell %s is a directory", index)
	}

	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
		logger: cfg.Logger,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	assetsDir := filepath.Join(cfg.DistDir, filepath.FromSlash(strings.Trim(cfg.AssetsPrefix, "/")))
	s.router.PathPrefix(cfg.AssetsPrefix).Handler(
		http.StripPrefix(cfg.AssetsPrefix, http.FileServer(http.Dir(assetsDir))),
	)
	s.router.NotFoundHandler = http.HandlerFunc(s.fallback)

	return s, nil
}

// Router returns the underlying router so API routes can be registered.
// Anything it does not match falls through to the application shell.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Handler returns the Server wrapped with CORS and access logging.
func (s *Server) Handler() http.Handler {

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var h http.Handler = handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Content-Type",
			"Authorization",
		}),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPost,
			http.MethodPut,
		}),
	)(s.router)

	if s.cfg.AccessLog != nil {
		h = handlers.CombinedLoggingHandler(s.cfg.AccessLog, h)
	}

	return h
}

// ServeHTTP implements http.Handler without the CORS and logging wrappers.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) fallback(w http.ResponseWriter, r *http.Request) {

	p := r.URL.EscapedPath()

	if strings.HasPrefix(p, s.cfg.APIPrefix) || p == strings.TrimSuffix(s.cfg.APIPrefix, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "API endpoint not found"})
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	status := http.StatusOK
	m, found := vgnav.Match(p, s.cfg.Routes)
	if !found {
		status = http.StatusNotFound
	}
	s.logger.Debug("client route", "path", p, "view", m.ViewID, "found", found)

	b, err := os.ReadFile(filepath.Join(s.cfg.DistDir, s.cfg.IndexFile))
	if err != nil {
		s.logger.Error("reading application shell", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(b)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// prefix returns p (or def if empty) with a leading and trailing slash.
func prefix(p, def string) string {
	if p == "" {
		p = def
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
