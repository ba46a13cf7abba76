package config

// LogLevel controls how much the console logger prints.
type LogLevel string

const (
	LogLevelNone   LogLevel = "none"
	LogLevelNormal LogLevel = "normal"
	LogLevelDebug  LogLevel = "debug"
)

// Config is the top-level casegallery configuration, corresponding to .casegallery.yml.
type Config struct {
	ImageRoot           string        `yaml:"image_root" koanf:"image_root"`
	OverlayDir          string        `yaml:"overlay_dir" koanf:"overlay_dir"`
	OverlayMarker       string        `yaml:"overlay_marker" koanf:"overlay_marker"`
	Extensions          []string      `yaml:"extensions" koanf:"extensions"`
	ExcludedCollections []string      `yaml:"excluded_collections" koanf:"excluded_collections"`
	Server              ServerConfig  `yaml:"server" koanf:"server"`
	Gesture             GestureConfig `yaml:"gesture" koanf:"gesture"`
	Log                 LogConfig     `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AssetCacheMB    int  `yaml:"asset_cache_mb" koanf:"asset_cache_mb"`
	ThumbnailWidth  int  `yaml:"thumbnail_width" koanf:"thumbnail_width"`
}

// GestureConfig holds the input thresholds used by the gesture interpreter.
type GestureConfig struct {
	WheelDebounceMS int     `yaml:"wheel_debounce_ms" koanf:"wheel_debounce_ms"`
	WheelThreshold  float64 `yaml:"wheel_threshold" koanf:"wheel_threshold"`
	SwipeThreshold  float64 `yaml:"swipe_threshold" koanf:"swipe_threshold"`
	HoldDelayMS     int     `yaml:"hold_delay_ms" koanf:"hold_delay_ms"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level LogLevel `yaml:"level" koanf:"level"`
	File  string   `yaml:"file" koanf:"file"`
}
