package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/config"
	"github.com/ziadkadry99/casegallery/internal/gallery"
	"github.com/ziadkadry99/casegallery/internal/logging"
	"github.com/ziadkadry99/casegallery/internal/manifest"
	"github.com/ziadkadry99/casegallery/internal/progress"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `casegallery init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// setup loads the config and builds the logger every command shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	return cfg, log, nil
}

// galleryOptions maps the configured naming convention onto the indexer.
func galleryOptions(cfg *config.Config) gallery.Options {
	return gallery.Options{
		Layout: gallery.Layout{
			OverlayDir:    cfg.OverlayDir,
			OverlayMarker: cfg.OverlayMarker,
			Extensions:    cfg.Extensions,
		},
		Excluded: cfg.ExcludedCollections,
	}
}

// buildCorpus walks the image root and indexes it.
func buildCorpus(cfg *config.Config, log *zap.Logger, rep progress.Reporter) (*gallery.Corpus, error) {
	log.Debug("Scanning image root", zap.String("root", cfg.ImageRoot))
	entries, err := manifest.Walk(manifest.Config{
		Root:       cfg.ImageRoot,
		Extensions: cfg.Extensions,
	}, rep)
	if err != nil {
		return nil, fmt.Errorf("scanning image root: %w", err)
	}
	return gallery.Build(entries, galleryOptions(cfg), log.Named("gallery")), nil
}
