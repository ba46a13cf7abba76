package viewer

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/casegallery/internal/assets"
	"github.com/ziadkadry99/casegallery/internal/manifest"
	"github.com/ziadkadry99/casegallery/internal/notes"
)

// collectionSummary is one row of the collection list.
type collectionSummary struct {
	Key       string `json:"key"`
	Images    int    `json:"images"`
	Overlays  int    `json:"overlays"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// collectionDetail is the JSON response for a single collection.
type collectionDetail struct {
	Key      string            `json:"key"`
	Images   []string          `json:"images"`
	Overlays map[string]string `json:"overlays"`
	Mapping  map[string]string `json:"mapping"`
	Note     string            `json:"note"`
}

// noteResponse is the JSON response for the note endpoint.
type noteResponse struct {
	Collection string `json:"collection"`
	Format     string `json:"format"`
	Content    string `json:"content"`
	Empty      bool   `json:"empty"`
}

func (v *Viewer) handleCollections(w http.ResponseWriter, r *http.Request) {
	keys := v.corpus.CollectionKeys()
	out := make([]collectionSummary, 0, len(keys))
	for _, k := range keys {
		col, _ := v.corpus.Collection(k)
		out = append(out, collectionSummary{
			Key:       k,
			Images:    len(col.Images),
			Overlays:  len(col.Overlays),
			Thumbnail: thumbnailURL(col.Images[0]),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (v *Viewer) handleCollection(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	col, ok := v.corpus.Collection(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown collection: " + key})
		return
	}
	writeJSON(w, http.StatusOK, collectionDetail{
		Key:      col.Key,
		Images:   col.Images,
		Overlays: col.Overlays,
		Mapping:  v.corpus.OverlayMapping(key),
		Note:     v.corpus.CollectionNote(key),
	})
}

func (v *Viewer) handleNote(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if _, ok := v.corpus.Collection(key); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown collection: " + key})
		return
	}
	text := v.corpus.CollectionNote(key)
	resp := noteResponse{Collection: key, Format: "text", Empty: text == ""}

	switch r.URL.Query().Get("format") {
	case "", "text":
		resp.Content = notes.Text(text)
	case "html":
		html, err := v.notes.HTML(text)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		resp.Format = "html"
		resp.Content = html
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be text or html"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// thumbnailURL maps an asset URL onto the thumbnail endpoint.
func thumbnailURL(assetURL string) string {
	return assets.ThumbPrefix + strings.TrimPrefix(assetURL, manifest.AssetPrefix)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
