// Package gallery turns a flat file manifest into the immutable corpus of
// case collections, their ordered images and the image→overlay index.
package gallery

import (
	"path"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/config"
	"github.com/ziadkadry99/casegallery/internal/manifest"
)

// Options configures Build.
type Options struct {
	Layout   Layout
	Excluded []string
}

// DefaultOptions returns the conventional layout and excluded names.
func DefaultOptions() Options {
	return Options{Layout: DefaultLayout(), Excluded: slices.Clone(config.DefaultExcludedCollections)}
}

// Collection is one case folder.
type Collection struct {
	Key string
	// Images holds image URLs in manifest order.
	Images []string
	// Overlays maps the plain image file name an overlay replaces to the
	// overlay URL.
	Overlays map[string]string

	filenames    []string // parallel to Images
	overlayOrder []string // Overlays keys in manifest order
}

// Stats summarizes a build.
type Stats struct {
	Collections int `json:"collections"`
	Selectable  int `json:"selectable"`
	Images      int `json:"images"`
	Overlays    int `json:"overlays"`
	Mapped      int `json:"mapped"`
	Notes       int `json:"notes"`
	Skipped     int `json:"skipped"`
}

// Corpus is the read-only index built once at startup. All methods are safe
// for concurrent use because nothing mutates a Corpus after Build returns.
type Corpus struct {
	layout            Layout
	excluded          []string
	order             []string
	collections       map[string]*Collection
	overlayByImageURL map[string]string
	notes             map[string]string
	assets            map[string]manifest.Entry
	stats             Stats
}

// Build indexes the manifest. It never fails: entries it cannot place are
// logged at debug level and skipped.
func Build(entries []manifest.Entry, opts Options, log *zap.Logger) *Corpus {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Corpus{
		layout:            opts.Layout,
		excluded:          opts.Excluded,
		collections:       make(map[string]*Collection),
		overlayByImageURL: make(map[string]string),
		notes:             make(map[string]string),
		assets:            make(map[string]manifest.Entry),
	}

	for _, e := range entries {
		cl, ok := opts.Layout.Classify(e.Path)
		if !ok {
			c.stats.Skipped++
			log.Debug("Skipping manifest entry", zap.String("path", e.Path))
			continue
		}

		switch cl.Kind {
		case KindImage:
			col := c.collection(cl.Collection)
			col.Images = append(col.Images, e.URL)
			col.filenames = append(col.filenames, cl.Filename)
			c.assets[e.URL] = e
			c.stats.Images++
		case KindOverlay:
			col := c.collection(cl.Collection)
			base := cl.BaseFilename(opts.Layout)
			if _, dup := col.Overlays[base]; !dup {
				col.overlayOrder = append(col.overlayOrder, base)
			} else {
				log.Debug("Overlay replaces earlier overlay", zap.String("collection", cl.Collection), zap.String("file", base))
			}
			col.Overlays[base] = e.URL
			c.assets[e.URL] = e
			c.stats.Overlays++
		case KindNote:
			c.notes[cl.Collection+"/"+cl.Filename] = e.Text
			c.assets[e.URL] = e
			c.stats.Notes++
		}
	}

	for _, key := range c.order {
		c.associate(c.collections[key], log)
	}

	c.stats.Collections = len(c.order)
	c.stats.Selectable = len(c.CollectionKeys())
	c.stats.Mapped = len(c.overlayByImageURL)

	log.Info("Corpus built",
		zap.Int("collections", c.stats.Collections),
		zap.Int("selectable", c.stats.Selectable),
		zap.Int("images", c.stats.Images),
		zap.Int("overlays", c.stats.Overlays),
		zap.Int("mapped", c.stats.Mapped),
		zap.Int("notes", c.stats.Notes),
		zap.Int("skipped", c.stats.Skipped),
	)
	return c
}

func (c *Corpus) collection(key string) *Collection {
	col, ok := c.collections[key]
	if !ok {
		col = &Collection{Key: key, Overlays: make(map[string]string)}
		c.collections[key] = col
		c.order = append(c.order, key)
	}
	return col
}

// associate maps every image of col whose base identity equals an overlay's
// base identity to that overlay. Several images may share one overlay; when
// two overlays share a base identity the later one in manifest order wins.
func (c *Corpus) associate(col *Collection, log *zap.Logger) {
	for _, base := range col.overlayOrder {
		overlayURL := col.Overlays[base]
		id := BaseIdentity(base)
		matched := 0
		for i, imgURL := range col.Images {
			if BaseIdentity(col.filenames[i]) == id {
				c.overlayByImageURL[imgURL] = overlayURL
				matched++
			}
		}
		if matched == 0 {
			log.Debug("Overlay has no matching image", zap.String("collection", col.Key), zap.String("file", base))
		}
	}
}

// CollectionKeys returns the selectable collection keys in manifest order:
// collections with at least one image whose key does not contain any
// excluded name. Matching is by substring, so legacy folders such as
// "old_comments" or "case/comments_v2" are hidden too.
func (c *Corpus) CollectionKeys() []string {
	keys := make([]string, 0, len(c.order))
	for _, k := range c.order {
		if len(c.collections[k].Images) == 0 || c.isExcluded(k) {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

func (c *Corpus) isExcluded(key string) bool {
	for _, ex := range c.excluded {
		if ex != "" && strings.Contains(key, ex) {
			return true
		}
	}
	return false
}

// Collection returns the collection stored under key, selectable or not.
func (c *Corpus) Collection(key string) (*Collection, bool) {
	col, ok := c.collections[key]
	return col, ok
}

// Images returns the image URLs of a collection, or nil when it is unknown.
// The returned slice must not be modified.
func (c *Corpus) Images(key string) []string {
	if col, ok := c.collections[key]; ok {
		return col.Images
	}
	return nil
}

// OverlayFor returns the overlay URL associated with an image URL.
func (c *Corpus) OverlayFor(imageURL string) (string, bool) {
	u, ok := c.overlayByImageURL[imageURL]
	return u, ok
}

// OverlayMapping returns a copy of the image→overlay index restricted to
// one collection.
func (c *Corpus) OverlayMapping(key string) map[string]string {
	out := make(map[string]string)
	for _, img := range c.Images(key) {
		if u, ok := c.overlayByImageURL[img]; ok {
			out[img] = u
		}
	}
	return out
}

// Note returns the text note stored under "<collection>/<filename>".
func (c *Corpus) Note(key string) (string, bool) {
	t, ok := c.notes[key]
	return t, ok
}

// CollectionNote returns the description of a collection, read from
// "<collection>/<collection>.txt". Multi-segment collections also accept
// a note named after their last segment. Missing notes yield "".
func (c *Corpus) CollectionNote(key string) string {
	if key == "" {
		return ""
	}
	if t, ok := c.notes[key+"/"+key+".txt"]; ok {
		return t
	}
	if t, ok := c.notes[key+"/"+path.Base(key)+".txt"]; ok {
		return t
	}
	return ""
}

// Asset returns the manifest entry an image, overlay or note URL was built
// from.
func (c *Corpus) Asset(url string) (manifest.Entry, bool) {
	e, ok := c.assets[url]
	return e, ok
}

// Layout returns the naming convention the corpus was built with.
func (c *Corpus) Layout() Layout { return c.layout }

// Stats returns counters collected during Build.
func (c *Corpus) Stats() Stats { return c.stats }
