package config

// Default overlay layout: overlays live in "<case>/comments/c-<image>".
const (
	DefaultOverlayDir    = "comments"
	DefaultOverlayMarker = "c-"
)

// DefaultExcludedCollections are folder names that only ever hold overlays
// (current or legacy layouts) and never appear in the collection list.
var DefaultExcludedCollections = []string{
	"comments",
	"comments_new",
	"new_comments",
}

// DefaultExtensions is the closed set of image extensions that are indexed.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ImageRoot:           "image_folder",
		OverlayDir:          DefaultOverlayDir,
		OverlayMarker:       DefaultOverlayMarker,
		Extensions:          DefaultExtensions,
		ExcludedCollections: DefaultExcludedCollections,
		Server: ServerConfig{
			Port:            8080,
			AllowAllOrigins: false,
			AssetCacheMB:    256,
			ThumbnailWidth:  160,
		},
		Gesture: GestureConfig{
			WheelDebounceMS: 50,
			WheelThreshold:  5,
			SwipeThreshold:  20,
			HoldDelayMS:     300,
		},
		Log: LogConfig{
			Level: LogLevelNormal,
		},
	}
}
