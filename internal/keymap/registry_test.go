package keymap

import "testing"

func TestLookup(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		key, context, want string
		found              bool
	}{
		{"d", "sticky-notes", "delete-note", true},
		{"enter", "sticky-notes", "edit-note", true},
		{"enter", "sticky-notes-form", "add-note", true},
		{"ctrl+j", "sticky-notes-form", "newline", true},
		{"q", "sticky-notes", "quit", true}, // falls through to global
		{"?", "global", "toggle-help", true},
		{"z", "sticky-notes", "", false},
	}
	for _, tt := range tests {
		got, ok := r.Lookup(tt.key, tt.context)
		if ok != tt.found || got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, %v; want %q, %v", tt.key, tt.context, got, ok, tt.want, tt.found)
		}
	}
}

func TestUserOverride(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride("ctrl+q", "quit")
	r.SetUserOverride("D", "delete-note")

	if got, _ := r.Lookup("ctrl+q", "sticky-notes"); got != "quit" {
		t.Errorf("override lookup = %q, want quit", got)
	}

	keys := r.KeysForCommand("delete-note", "sticky-notes")
	if len(keys) != 3 || keys[0] != "D" {
		t.Errorf("KeysForCommand = %v, want [D d x]", keys)
	}

	// Overrides for commands outside a context are not listed there.
	for _, b := range r.BindingsForContext("sticky-notes-form") {
		if b.Key == "D" {
			t.Error("delete-note override leaked into form context")
		}
	}
}

func TestDefaultKey(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride("D", "delete-note")

	if k, ok := r.DefaultKey("delete-note", "sticky-notes"); !ok || k != "d" {
		t.Errorf("DefaultKey = %q, %v; want d", k, ok)
	}
	if _, ok := r.DefaultKey("delete-note", "sticky-notes-form"); ok {
		t.Error("delete-note has no form binding")
	}
}

func TestNewlineKeysAreReportable(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	// Terminals deliver shift+enter as plain enter.
	keys := r.KeysForCommand("newline", "sticky-notes-form")
	if len(keys) != 2 || keys[0] != "ctrl+j" || keys[1] != "alt+enter" {
		t.Errorf("newline keys = %v, want [ctrl+j alt+enter]", keys)
	}
	for _, b := range DefaultBindings() {
		if b.Key == "shift+enter" {
			t.Errorf("binding %+v can never fire", b)
		}
	}
}
