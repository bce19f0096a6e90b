// Package keymap maps keys to command ids per focus context.
package keymap

import "sync"

// GlobalContext is consulted after the active context.
const GlobalContext = "global"

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry holds default bindings plus user overrides.
type Registry struct {
	mu            sync.RWMutex
	bindings      map[string][]Binding // context -> bindings
	userOverrides map[string]string    // key -> command, any context
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[string][]Binding),
		userOverrides: make(map[string]string),
	}
}

// RegisterBinding adds a binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// SetUserOverride binds key to cmdID, taking precedence over every default.
func (r *Registry) SetUserOverride(key, cmdID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[key] = cmdID
}

// Lookup resolves key in context: user overrides first, then the context's
// bindings, then global bindings.
func (r *Registry) Lookup(key, context string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.userOverrides[key]; ok {
		return cmd, true
	}
	for _, b := range r.bindings[context] {
		if b.Key == key {
			return b.Command, true
		}
	}
	if context != GlobalContext {
		for _, b := range r.bindings[GlobalContext] {
			if b.Key == key {
				return b.Command, true
			}
		}
	}
	return "", false
}

// BindingsForContext returns the bindings of context, with user overrides
// for commands of that context listed first.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defaults := r.bindings[context]
	known := make(map[string]bool, len(defaults))
	for _, b := range defaults {
		known[b.Command] = true
	}

	var out []Binding
	for key, cmd := range r.userOverrides {
		if known[cmd] {
			out = append(out, Binding{Key: key, Command: cmd, Context: context})
		}
	}
	return append(out, defaults...)
}

// KeysForCommand returns the keys bound to cmdID in context, overrides first.
func (r *Registry) KeysForCommand(cmdID, context string) []string {
	var keys []string
	for _, b := range r.BindingsForContext(context) {
		if b.Command == cmdID {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// DefaultKey returns the first built-in key for cmdID in context, ignoring
// user overrides.
func (r *Registry) DefaultKey(cmdID, context string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bindings[context] {
		if b.Command == cmdID {
			return b.Key, true
		}
	}
	return "", false
}
