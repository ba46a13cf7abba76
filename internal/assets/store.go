// Package assets serves manifest content by URL and keeps recently used
// bytes in memory so preloaded images are served without touching disk.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ziadkadry99/casegallery/internal/config"
	"github.com/ziadkadry99/casegallery/internal/manifest"
)

var (
	// ErrNotFound is returned for URLs the corpus does not know.
	ErrNotFound = errors.New("asset not found")
	// ErrNotImage is returned when image content fails sniffing or header
	// decoding.
	ErrNotImage = errors.New("not a decodable image")
)

const textMIME = "text/plain; charset=utf-8"

// Resolver maps asset URLs to manifest entries. *gallery.Corpus implements it.
type Resolver interface {
	Asset(url string) (manifest.Entry, bool)
}

// Options configures a Store.
type Options struct {
	CacheBytes     int64 // 0 disables caching.
	ThumbnailWidth int
}

// OptionsFromConfig converts server settings.
func OptionsFromConfig(cfg config.ServerConfig) Options {
	return Options{
		CacheBytes:     int64(cfg.AssetCacheMB) << 20,
		ThumbnailWidth: cfg.ThumbnailWidth,
	}
}

// Asset is loaded, validated content.
type Asset struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Store loads assets through a Resolver and caches them up to a byte budget,
// evicting the oldest insertions first. It is safe for concurrent use.
type Store struct {
	res  Resolver
	opts Options
	log  *zap.Logger

	mu    sync.RWMutex
	items map[string]*Asset
	order []string
	size  int64
}

// NewStore returns a Store backed by res.
func NewStore(res Resolver, opts Options, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		res:   res,
		opts:  opts,
		log:   log.Named("assets"),
		items: make(map[string]*Asset),
	}
}

// Fetch returns the bytes behind url. It satisfies preload.Fetcher.
func (s *Store) Fetch(ctx context.Context, url string) ([]byte, error) {
	a, err := s.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return a.Data, nil
}

// Get returns the validated asset behind url, from cache when possible.
func (s *Store) Get(ctx context.Context, url string) (*Asset, error) {
	if a, ok := s.cached(url); ok {
		return a, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, ok := s.res.Asset(url)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	data, err := entry.Open()
	if err != nil {
		return nil, err
	}
	a, err := inspect(entry.Path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry.Path, err)
	}
	s.put(url, a)
	s.log.Debug("Loaded asset", zap.String("url", url), zap.String("mime", a.MIME), zap.Int("bytes", len(a.Data)))
	return a, nil
}

// Thumbnail returns a JPEG of the image behind url scaled to the configured
// width. Thumbnails share the byte budget with full assets.
func (s *Store) Thumbnail(ctx context.Context, url string) (*Asset, error) {
	key := "thumb:" + url
	if a, ok := s.cached(key); ok {
		return a, nil
	}
	src, err := s.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if src.MIME == textMIME {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, url)
	}

	img, err := imaging.Decode(bytes.NewReader(src.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	width := s.opts.ThumbnailWidth
	if width <= 0 || width > img.Bounds().Dx() {
		width = img.Bounds().Dx()
	}
	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	a := &Asset{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  thumb.Bounds().Dx(),
		Height: thumb.Bounds().Dy(),
	}
	s.put(key, a)
	return a, nil
}

// Len reports how many items are cached.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Size reports the cached byte total.
func (s *Store) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *Store) cached(key string) (*Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.items[key]
	return a, ok
}

func (s *Store) put(key string, a *Asset) {
	n := int64(len(a.Data))
	if n > s.opts.CacheBytes {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return
	}
	for s.size+n > s.opts.CacheBytes && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		s.size -= int64(len(s.items[oldest].Data))
		delete(s.items, oldest)
	}
	s.items[key] = a
	s.order = append(s.order, key)
	s.size += n
}

// inspect sniffs content and, for images, reads the header to make sure the
// data decodes. Notes are passed through as plain text.
func inspect(name string, data []byte) (*Asset, error) {
	if strings.EqualFold(path.Ext(name), ".txt") {
		return &Asset{Data: data, MIME: textMIME}, nil
	}
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return &Asset{
		Data:   data,
		MIME:   kind.MIME.Value,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
