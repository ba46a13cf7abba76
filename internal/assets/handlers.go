package assets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/manifest"
)

// ThumbPrefix is the URL prefix for thumbnails. The remainder of the path
// is the asset path below manifest.AssetPrefix.
const ThumbPrefix = "/thumbs/"

// RegisterRoutes mounts the asset and thumbnail endpoints.
func (s *Store) RegisterRoutes(r chi.Router) {
	r.Get(manifest.AssetPrefix+"*", s.handleAsset)
	r.Get(ThumbPrefix+"*", s.handleThumb)
}

func (s *Store) handleAsset(w http.ResponseWriter, r *http.Request) {
	a, err := s.Get(r.Context(), manifest.AssetPrefix+chi.URLParam(r, "*"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAsset(w, a)
}

func (s *Store) handleThumb(w http.ResponseWriter, r *http.Request) {
	a, err := s.Thumbnail(r.Context(), manifest.AssetPrefix+chi.URLParam(r, "*"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAsset(w, a)
}

func writeAsset(w http.ResponseWriter, a *Asset) {
	h := w.Header()
	h.Set("Content-Type", a.MIME)
	h.Set("Content-Length", strconv.Itoa(len(a.Data)))
	// URLs carry a content hash.
	h.Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	w.Write(a.Data)
}

func (s *Store) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, ErrNotImage):
		s.log.Warn("Rejected asset", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	default:
		s.log.Error("Serving asset", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
