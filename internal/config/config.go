package config

import (
	"fmt"
	"slices"

	"github.com/marcus/stickies/internal/pluginstore"
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Plugins PluginsConfig `json:"plugins"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
}

// StorageConfig selects where plugin data is kept.
type StorageConfig struct {
	Backend string `json:"backend"` // "file", "bolt" or "sqlite"
	Dir     string `json:"dir"`     // base directory (supports ~ expansion)
}

// PluginsConfig holds per-plugin configuration.
type PluginsConfig struct {
	StickyNotes StickyNotesPluginConfig `json:"sticky-notes"`
}

// StickyNotesPluginConfig configures the sticky notes plugin.
type StickyNotesPluginConfig struct {
	Enabled bool `json:"enabled"`
	// Heading is shown above the notes. Default: "Don't forget:".
	Heading string `json:"heading"`
	// RenderMarkdown renders note bodies with glamour instead of plain text.
	RenderMarkdown bool `json:"renderMarkdown"`
	// WatchChanges reloads the list when another process edits the data
	// file. Only the file backend supports it.
	WatchChanges bool `json:"watchChanges"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool        `json:"showFooter"`
	Theme      ThemeConfig `json:"theme"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name string `json:"name"`
}

// DefaultHeading is the sticky notes header text.
const DefaultHeading = "Don't forget:"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: pluginstore.BackendFile,
			Dir:     DefaultDataDir(),
		},
		Plugins: PluginsConfig{
			StickyNotes: StickyNotesPluginConfig{
				Enabled:      true,
				Heading:      DefaultHeading,
				WatchChanges: true,
			},
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			Theme: ThemeConfig{
				Name: "default",
			},
		},
	}
}

// Validate checks the configuration for errors and fills blank values.
func (c *Config) Validate() error {
	if c.Storage.Backend == "" {
		c.Storage.Backend = pluginstore.BackendFile
	}
	if !slices.Contains(pluginstore.Backends(), c.Storage.Backend) {
		return fmt.Errorf("storage.backend: unknown backend %q (want one of %v)",
			c.Storage.Backend, pluginstore.Backends())
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = DefaultDataDir()
	}
	if c.Plugins.StickyNotes.Heading == "" {
		c.Plugins.StickyNotes.Heading = DefaultHeading
	}
	if c.UI.Theme.Name == "" {
		c.UI.Theme.Name = "default"
	}
	if c.Keymap.Overrides == nil {
		c.Keymap.Overrides = make(map[string]string)
	}
	return nil
}
