package state

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// swapGlobals isolates a test from the package-level state.
func swapGlobals(t *testing.T) {
	t.Helper()
	originalPath := path
	originalCurrent := current
	t.Cleanup(func() {
		path = originalPath
		current = originalCurrent
	})
}

func TestInitWithDir(t *testing.T) {
	swapGlobals(t)
	tmpDir := t.TempDir()

	if err := InitWithDir(filepath.Join(tmpDir, "stickies")); err != nil {
		t.Fatalf("InitWithDir() failed: %v", err)
	}
	if current == nil {
		t.Fatal("current state should be initialized")
	}
	if !GetShowFooter(true) {
		t.Error("GetShowFooter should return the fallback when unset")
	}
	if GetShowFooter(false) {
		t.Error("GetShowFooter should return the fallback when unset")
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	swapGlobals(t)
	tmpDir := t.TempDir()
	path = filepath.Join(tmpDir, "state.json")

	content := `{"showFooter": false, "activePlugin": "sticky-notes", "stickyNotes": {"selectedId": "abcDEF0123456789"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if GetShowFooter(true) {
		t.Error("showFooter should be false")
	}
	if got := GetActivePlugin(); got != "sticky-notes" {
		t.Errorf("active plugin = %q", got)
	}
	if got := GetStickyNotesState().SelectedID; got != "abcDEF0123456789" {
		t.Errorf("selected id = %q", got)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	swapGlobals(t)
	path = filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestSetters_PersistToDisk(t *testing.T) {
	swapGlobals(t)
	tmpDir := t.TempDir()
	if err := InitWithDir(tmpDir); err != nil {
		t.Fatal(err)
	}

	if err := SetShowFooter(false); err != nil {
		t.Fatalf("SetShowFooter: %v", err)
	}
	if err := SetStickyNotesState(StickyNotesState{SelectedID: "x"}); err != nil {
		t.Fatalf("SetStickyNotesState: %v", err)
	}
	if err := SetActivePlugin("sticky-notes"); err != nil {
		t.Fatalf("SetActivePlugin: %v", err)
	}

	// Reload from disk.
	current = nil
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if GetShowFooter(true) {
		t.Error("showFooter not persisted")
	}
	if GetStickyNotesState().SelectedID != "x" {
		t.Error("selected id not persisted")
	}
	if GetActivePlugin() != "sticky-notes" {
		t.Error("active plugin not persisted")
	}
}

func TestGetters_NilCurrent(t *testing.T) {
	swapGlobals(t)
	current = nil

	if GetShowFooter(true) != true {
		t.Error("nil state should return fallback")
	}
	if GetActivePlugin() != "" {
		t.Error("nil state should return empty plugin")
	}
	if GetStickyNotesState() != (StickyNotesState{}) {
		t.Error("nil state should return zero sticky notes state")
	}
}

func TestConcurrentAccess(t *testing.T) {
	swapGlobals(t)
	if err := InitWithDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = SetStickyNotesState(StickyNotesState{SelectedID: string(rune('a' + i))})
		}()
		go func() {
			defer wg.Done()
			_ = GetStickyNotesState()
		}()
	}
	wg.Wait()
}
