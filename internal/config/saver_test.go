package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveTo_PreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	initial := []byte(`{
  "customKey": "should survive",
  "ui": {"showFooter": false}
}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	if err := SaveTo(path, Default()); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}
	if _, ok := raw["customKey"]; !ok {
		t.Error("SaveTo deleted 'customKey'")
	}

	// Managed keys are overwritten.
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if !cfg.UI.ShowFooter {
		t.Error("showFooter should be rewritten to the saved value")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Dir = filepath.Join(dir, "data")
	cfg.Plugins.StickyNotes.RenderMarkdown = true
	cfg.Plugins.StickyNotes.Enabled = false
	cfg.Keymap.Overrides["D"] = "delete-note"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if got.Storage.Backend != "sqlite" || got.Storage.Dir != cfg.Storage.Dir {
		t.Errorf("storage = %+v", got.Storage)
	}
	if !got.Plugins.StickyNotes.RenderMarkdown || got.Plugins.StickyNotes.Enabled {
		t.Errorf("sticky-notes = %+v", got.Plugins.StickyNotes)
	}
	if got.Keymap.Overrides["D"] != "delete-note" {
		t.Error("override lost")
	}
}
