// Package viewer serves the gallery page, its JSON API and the websocket
// that drives one navigation session per open page.
package viewer

import (
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/gallery"
	"github.com/ziadkadry99/casegallery/internal/gesture"
	"github.com/ziadkadry99/casegallery/internal/notes"
	"github.com/ziadkadry99/casegallery/internal/preload"
)

// Viewer provides the gallery page and viewer sessions.
type Viewer struct {
	corpus  *gallery.Corpus
	fetcher preload.Fetcher
	notes   *notes.Renderer
	gesture gesture.Options
	log     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a Viewer over an immutable corpus. fetcher warms assets for
// preloading; it is usually the *assets.Store serving them.
func New(corpus *gallery.Corpus, fetcher preload.Fetcher, opts gesture.Options, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{
		corpus:   corpus,
		fetcher:  fetcher,
		notes:    notes.NewRenderer(),
		gesture:  opts,
		log:      log.Named("viewer"),
		sessions: make(map[string]*Session),
	}
}

// Sessions reports how many viewer sessions are open.
func (v *Viewer) Sessions() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.sessions)
}

// Close drops every open session connection.
func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	var err error
	for _, s := range v.sessions {
		err = multierr.Append(err, s.conn.Close())
	}
	return err
}

func (v *Viewer) track(s *Session) {
	v.mu.Lock()
	v.sessions[s.ID] = s
	v.mu.Unlock()
}

func (v *Viewer) untrack(s *Session) {
	v.mu.Lock()
	delete(v.sessions, s.ID)
	v.mu.Unlock()
}

// RegisterRoutes mounts all viewer routes onto the given router.
func (v *Viewer) RegisterRoutes(r chi.Router) {
	r.Get("/", v.ServeIndex)
	r.Get("/api/collections", v.handleCollections)
	r.Get("/api/collections/*", v.handleCollection)
	r.Get("/api/notes/*", v.handleNote)
	r.Get("/ws/view", v.handleWebSocket)
}
