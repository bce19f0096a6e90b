package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDir  = ".config/stickies"
	configFile = "config.json"

	// HomeEnv overrides the base directory for config and data.
	HomeEnv = "STICKIES_HOME"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointer fields tell an
// explicit false apart from an absent key.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage"`
	Plugins rawPluginsConfig `json:"plugins"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      rawUIConfig      `json:"ui"`
}

type rawStorageConfig struct {
	Backend string `json:"backend"`
	Dir     string `json:"dir"`
}

type rawPluginsConfig struct {
	StickyNotes rawStickyNotesConfig `json:"sticky-notes"`
}

type rawStickyNotesConfig struct {
	Enabled        *bool  `json:"enabled"`
	Heading        string `json:"heading"`
	RenderMarkdown *bool  `json:"renderMarkdown"`
	WatchChanges   *bool  `json:"watchChanges"`
}

type rawUIConfig struct {
	ShowFooter *bool       `json:"showFooter"`
	Theme      ThemeConfig `json:"theme"`
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ConfigPath().
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	mergeConfig(cfg, &raw)
	cfg.Storage.Dir = ExpandPath(cfg.Storage.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.Dir != "" {
		cfg.Storage.Dir = raw.Storage.Dir
	}

	// Sticky notes
	sn := raw.Plugins.StickyNotes
	if sn.Enabled != nil {
		cfg.Plugins.StickyNotes.Enabled = *sn.Enabled
	}
	if sn.Heading != "" {
		cfg.Plugins.StickyNotes.Heading = sn.Heading
	}
	if sn.RenderMarkdown != nil {
		cfg.Plugins.StickyNotes.RenderMarkdown = *sn.RenderMarkdown
	}
	if sn.WatchChanges != nil {
		cfg.Plugins.StickyNotes.WatchChanges = *sn.WatchChanges
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// BaseDir returns the directory holding config, state and data:
// $STICKIES_HOME if set, otherwise ~/.config/stickies.
func BaseDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return ExpandPath(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configDir
	}
	return filepath.Join(home, configDir)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(BaseDir(), configFile)
}

// DefaultDataDir returns the default plugin data directory.
func DefaultDataDir() string {
	return filepath.Join(BaseDir(), "data")
}
