package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// rootCandidates are folder names commonly used for case image trees.
var rootCandidates = []string{"image_folder", "images", "cases", "src/image_folder"}

// detectImageRoot checks the current directory for a likely image root.
func detectImageRoot() string {
	for _, c := range rootCandidates {
		if fi, err := os.Stat(filepath.FromSlash(c)); err == nil && fi.IsDir() {
			return c
		}
	}
	return "image_folder"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to casegallery! Let's configure your image library.")
	fmt.Println()

	def := DefaultConfig()

	// 1. Image root.
	rootPrompt := promptui.Prompt{
		Label:   "Image root folder",
		Default: detectImageRoot(),
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("image root: %w", err)
	}

	// 2. Overlay layout.
	overlayPrompt := promptui.Prompt{
		Label:   "Overlay (comment) subfolder name",
		Default: def.OverlayDir,
	}
	overlayDir, err := overlayPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("overlay dir: %w", err)
	}

	markerPrompt := promptui.Prompt{
		Label:   "Overlay filename prefix",
		Default: def.OverlayMarker,
	}
	marker, err := markerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("overlay marker: %w", err)
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(def.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 4. Extra excluded collection names.
	excludePrompt := promptui.Prompt{
		Label:   "Extra excluded folder names (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("excluded folders: %w", err)
	}
	excluded := append([]string{}, DefaultExcludedCollections...)
	excluded = append(excluded, splitAndTrim(excludeStr)...)

	// 5. Log level.
	levelPrompt := promptui.Select{
		Label: "Console log level",
		Items: []string{string(LogLevelNormal), string(LogLevelDebug), string(LogLevelNone)},
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := def
	cfg.ImageRoot = root
	cfg.OverlayDir = overlayDir
	cfg.OverlayMarker = marker
	cfg.ExcludedCollections = excluded
	cfg.Server.Port = port
	cfg.Log.Level = LogLevel(level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := os.Stat(cfg.ImageRoot); err != nil {
		fmt.Printf("\nNote: %s does not exist yet; create it before running casegallery serve.\n", cfg.ImageRoot)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
