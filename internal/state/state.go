package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/marcus/stickies/internal/config"
)

// State holds persistent user preferences that change while the app runs.
type State struct {
	// ShowFooter overrides ui.showFooter from config once the user toggles it.
	ShowFooter *bool `json:"showFooter,omitempty"`

	// ActivePlugin is the id of the last focused plugin tab.
	ActivePlugin string `json:"activePlugin,omitempty"`

	StickyNotes StickyNotesState `json:"stickyNotes,omitempty"`
}

// StickyNotesState holds persistent sticky notes panel state.
type StickyNotesState struct {
	SelectedID string `json:"selectedId,omitempty"` // Note under the cursor
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	return InitWithDir(config.BaseDir())
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetShowFooter returns the saved footer preference, or fallback if the
// user never toggled it.
func GetShowFooter(fallback bool) bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.ShowFooter == nil {
		return fallback
	}
	return *current.ShowFooter
}

// SetShowFooter saves the footer preference.
func SetShowFooter(show bool) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.ShowFooter = &show
	mu.Unlock()
	return Save()
}

// GetActivePlugin returns the last focused plugin id.
func GetActivePlugin() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.ActivePlugin
}

// SetActivePlugin saves the focused plugin id.
func SetActivePlugin(id string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.ActivePlugin = id
	mu.Unlock()
	return Save()
}

// GetStickyNotesState returns the saved sticky notes state.
func GetStickyNotesState() StickyNotesState {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return StickyNotesState{}
	}
	return current.StickyNotes
}

// SetStickyNotesState saves the sticky notes state.
func SetStickyNotesState(s StickyNotesState) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.StickyNotes = s
	mu.Unlock()
	return Save()
}
