package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != "file" {
		t.Errorf("got backend %q, want 'file'", cfg.Storage.Backend)
	}
	if !cfg.Plugins.StickyNotes.Enabled {
		t.Error("sticky-notes should be enabled by default")
	}
	if cfg.Plugins.StickyNotes.Heading != "Don't forget:" {
		t.Errorf("got heading %q", cfg.Plugins.StickyNotes.Heading)
	}
	if !cfg.UI.ShowFooter {
		t.Error("footer should be shown by default")
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("should return default config")
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("got backend %q, want default", cfg.Storage.Backend)
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"storage": {"backend": "bolt", "dir": "/tmp/stickies-data"},
		"plugins": {
			"sticky-notes": {
				"renderMarkdown": true,
				"watchChanges": false,
				"heading": "Remember:"
			}
		},
		"keymap": {"overrides": {"ctrl+q": "quit"}},
		"ui": {
			"showFooter": false
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Storage.Backend != "bolt" {
		t.Errorf("got backend %q, want bolt", cfg.Storage.Backend)
	}
	if cfg.Storage.Dir != "/tmp/stickies-data" {
		t.Errorf("got dir %q", cfg.Storage.Dir)
	}
	if !cfg.Plugins.StickyNotes.RenderMarkdown {
		t.Error("renderMarkdown should be true")
	}
	if cfg.Plugins.StickyNotes.WatchChanges {
		t.Error("watchChanges should be false")
	}
	if cfg.Plugins.StickyNotes.Heading != "Remember:" {
		t.Errorf("got heading %q", cfg.Plugins.StickyNotes.Heading)
	}
	if cfg.Keymap.Overrides["ctrl+q"] != "quit" {
		t.Error("keymap override missing")
	}
	if cfg.UI.ShowFooter {
		t.Error("showFooter should be false")
	}
	// Default values should still be present
	if !cfg.Plugins.StickyNotes.Enabled {
		t.Error("sticky-notes should still be enabled (default)")
	}
	if cfg.UI.Theme.Name != "default" {
		t.Errorf("theme should stay default, got %q", cfg.UI.Theme.Name)
	}
}

func TestLoadFrom_AbsentBoolsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"ui": {"theme": {"name": "light"}}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if !cfg.UI.ShowFooter {
		t.Error("showFooter should keep its default when absent")
	}
	if !cfg.Plugins.StickyNotes.WatchChanges {
		t.Error("watchChanges should keep its default when absent")
	}
	if cfg.UI.Theme.Name != "light" {
		t.Errorf("got theme %q, want light", cfg.UI.Theme.Name)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadFrom_UnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{"storage": {"backend": "mongo"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "mongo") {
		t.Errorf("expected unknown backend error, got %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/notes", filepath.Join(home, "notes")},
		{"~", home},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBaseDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	if got := BaseDir(); got != dir {
		t.Errorf("BaseDir() = %q, want %q", got, dir)
	}
	if got := ConfigPath(); got != filepath.Join(dir, "config.json") {
		t.Errorf("ConfigPath() = %q", got)
	}
	if got := DefaultDataDir(); got != filepath.Join(dir, "data") {
		t.Errorf("DefaultDataDir() = %q", got)
	}
}

func TestLoadFrom_ReadError(t *testing.T) {
	// A directory where the file should be.
	dir := t.TempDir()
	_, err := LoadFrom(dir)
	if err == nil {
		t.Fatal("expected error reading a directory")
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Error("error should not be a not-exist error")
	}
}
