package gallery

import (
	"path"
	"slices"
	"strings"

	"github.com/ziadkadry99/casegallery/internal/config"
)

// Kind tells what role a manifest path plays in the gallery.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindOverlay
	KindNote
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindOverlay:
		return "overlay"
	case KindNote:
		return "note"
	default:
		return "unknown"
	}
}

// Minimum number of path segments for each kind: images and notes need a
// collection and a file name, overlays additionally need the overlay folder.
const (
	minImageSegments   = 2
	minOverlaySegments = 3
)

// Layout describes the on-disk naming convention of a gallery.
type Layout struct {
	OverlayDir    string   // Reserved subfolder holding overlays, e.g. "comments".
	OverlayMarker string   // Filename prefix of overlays, e.g. "c-".
	Extensions    []string // Image extensions with leading dot, compared exactly.
}

// DefaultLayout is the "<case>/comments/c-<image>" convention.
func DefaultLayout() Layout {
	return Layout{
		OverlayDir:    config.DefaultOverlayDir,
		OverlayMarker: config.DefaultOverlayMarker,
		Extensions:    slices.Clone(config.DefaultExtensions),
	}
}

// Classified is the parse result for a single manifest path.
type Classified struct {
	Collection string
	Filename   string
	Kind       Kind
}

// IsOverlay reports whether the path is an overlay image.
func (c Classified) IsOverlay() bool { return c.Kind == KindOverlay }

// BaseFilename returns the file name of the plain image an overlay stands
// in for (the marker prefix removed). For other kinds it is the file name.
func (c Classified) BaseFilename(l Layout) string {
	if c.Kind == KindOverlay {
		return strings.TrimPrefix(c.Filename, l.OverlayMarker)
	}
	return c.Filename
}

// Classify parses a slash-separated, root-relative manifest path. The
// second return value is false for paths that are not part of the gallery
// or have too few segments.
func (l Layout) Classify(p string) (Classified, bool) {
	p = strings.TrimPrefix(p, "./")
	p = strings.Trim(p, "/")
	if p == "" {
		return Classified{}, false
	}
	parts := strings.Split(p, "/")
	n := len(parts)
	filename := parts[n-1]
	marked := strings.HasPrefix(filename, l.OverlayMarker)

	switch {
	case l.isImage(filename) && marked:
		if n < minOverlaySegments || parts[n-2] != l.OverlayDir {
			return Classified{}, false
		}
		return Classified{
			Collection: strings.Join(parts[:n-2], "/"),
			Filename:   filename,
			Kind:       KindOverlay,
		}, true

	case l.isImage(filename):
		if n < minImageSegments {
			return Classified{}, false
		}
		return Classified{
			Collection: strings.Join(parts[:n-1], "/"),
			Filename:   filename,
			Kind:       KindImage,
		}, true

	case path.Ext(filename) == ".txt":
		if n < minImageSegments {
			return Classified{}, false
		}
		return Classified{
			Collection: strings.Join(parts[:n-1], "/"),
			Filename:   filename,
			Kind:       KindNote,
		}, true
	}

	return Classified{}, false
}

func (l Layout) isImage(filename string) bool {
	ext := path.Ext(filename)
	return ext != "" && slices.Contains(l.Extensions, ext)
}
