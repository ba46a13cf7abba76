package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/multierr"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides. Nested keys use
// a double underscore: CASEGALLERY_SERVER__PORT -> server.port.
const EnvPrefix = "CASEGALLERY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CASEGALLERY_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps CASEGALLERY_GESTURE__HOLD_DELAY_MS to gesture.hold_delay_ms.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log level values.
var validLogLevels = map[LogLevel]bool{
	LogLevelNone:   true,
	LogLevelNormal: true,
	LogLevelDebug:  true,
}

// Validate checks that the configuration contains valid values. All
// problems are reported together.
func (c *Config) Validate() error {
	var err error

	if c.ImageRoot == "" {
		err = multierr.Append(err, errors.New("image_root is required"))
	}
	if c.OverlayDir == "" || strings.ContainsAny(c.OverlayDir, `/\`) {
		err = multierr.Append(err, fmt.Errorf("invalid overlay_dir %q: must be a single folder name", c.OverlayDir))
	}
	if c.OverlayMarker == "" {
		err = multierr.Append(err, errors.New("overlay_marker is required"))
	}
	if len(c.Extensions) == 0 {
		err = multierr.Append(err, errors.New("at least one image extension is required"))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			err = multierr.Append(err, fmt.Errorf("invalid extension %q: must start with a dot", ext))
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("invalid server.port %d", c.Server.Port))
	}
	if c.Server.AssetCacheMB < 0 {
		err = multierr.Append(err, errors.New("server.asset_cache_mb must be non-negative"))
	}
	if c.Server.ThumbnailWidth <= 0 {
		err = multierr.Append(err, errors.New("server.thumbnail_width must be positive"))
	}

	if c.Gesture.WheelDebounceMS < 0 {
		err = multierr.Append(err, errors.New("gesture.wheel_debounce_ms must be non-negative"))
	}
	if c.Gesture.WheelThreshold < 0 || c.Gesture.SwipeThreshold < 0 {
		err = multierr.Append(err, errors.New("gesture thresholds must be non-negative"))
	}
	if c.Gesture.HoldDelayMS <= 0 {
		err = multierr.Append(err, errors.New("gesture.hold_delay_ms must be positive"))
	}

	if c.Log.Level != "" && !validLogLevels[c.Log.Level] {
		err = multierr.Append(err, fmt.Errorf("invalid log.level %q: must be one of none, normal, debug", c.Log.Level))
	}

	return err
}
