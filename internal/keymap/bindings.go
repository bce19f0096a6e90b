package keymap

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "`", Command: "next-plugin", Context: "global"},
		{Key: "~", Command: "prev-plugin", Context: "global"},
		{Key: "?", Command: "toggle-help", Context: "global"},
		{Key: "ctrl+h", Command: "toggle-footer", Context: "global"},

		// Sticky notes list
		{Key: "j", Command: "cursor-down", Context: "sticky-notes"},
		{Key: "down", Command: "cursor-down", Context: "sticky-notes"},
		{Key: "k", Command: "cursor-up", Context: "sticky-notes"},
		{Key: "up", Command: "cursor-up", Context: "sticky-notes"},
		{Key: "g", Command: "cursor-top", Context: "sticky-notes"},
		{Key: "G", Command: "cursor-bottom", Context: "sticky-notes"},
		{Key: "n", Command: "new-note", Context: "sticky-notes"},
		{Key: "a", Command: "new-note", Context: "sticky-notes"},
		{Key: "tab", Command: "new-note", Context: "sticky-notes"},
		{Key: "e", Command: "edit-note", Context: "sticky-notes"},
		{Key: "enter", Command: "edit-note", Context: "sticky-notes"},
		{Key: "d", Command: "delete-note", Context: "sticky-notes"},
		{Key: "x", Command: "delete-note", Context: "sticky-notes"},
		{Key: "y", Command: "yank-note", Context: "sticky-notes"},
		{Key: "r", Command: "refresh", Context: "sticky-notes"},

		// Sticky notes add form
		{Key: "enter", Command: "add-note", Context: "sticky-notes-form"},
		{Key: "ctrl+j", Command: "newline", Context: "sticky-notes-form"},
		{Key: "alt+enter", Command: "newline", Context: "sticky-notes-form"},
		{Key: "tab", Command: "next-field", Context: "sticky-notes-form"},
		{Key: "shift+tab", Command: "prev-field", Context: "sticky-notes-form"},
		{Key: "esc", Command: "back", Context: "sticky-notes-form"},

		// Sticky notes edit dialog
		{Key: "ctrl+s", Command: "save-note", Context: "sticky-notes-edit"},
		{Key: "tab", Command: "next-field", Context: "sticky-notes-edit"},
		{Key: "esc", Command: "cancel", Context: "sticky-notes-edit"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
