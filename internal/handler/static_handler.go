package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"infinium/internal/model"

	"github.com/rs/zerolog"
)

// StaticHandler serves the web UI. Paths that match no file fall back to
// index.html so client-side routes resolve.
type StaticHandler struct {
	dir    string
	files  http.Handler
	logger zerolog.Logger
}

// NewStaticHandler creates a static handler rooted at dir.
func NewStaticHandler(dir string, logger zerolog.Logger) *StaticHandler {
	return &StaticHandler{
		dir:    dir,
		files:  http.FileServer(http.Dir(dir)),
		logger: logger.With().Str("handler", "static").Logger(),
	}
}

// ServeHTTP implements http.Handler.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		NotFound(h.logger)(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	info, err := os.Stat(filepath.Join(h.dir, filepath.FromSlash(clean)))
	if clean != "/" && (err != nil || info.IsDir()) {
		http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
		return
	}

	h.files.ServeHTTP(w, r)
}

// NotFound answers unknown API routes with an envelope.
func NotFound(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Warn().Str("method", r.Method).Str("path", r.URL.Path).Msg("route not found")
		writeJSON(w, http.StatusNotFound, model.Envelope{Success: false, Error: "Route not found"})
	}
}
