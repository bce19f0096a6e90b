package plugin

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry holds the plugins in tab order.
type Registry struct {
	ctx         *Context
	plugins     []Plugin
	unavailable map[string]error
	mu          sync.RWMutex
}

// NewRegistry creates a registry whose plugins receive ctx on Init.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{
		ctx:         ctx,
		unavailable: make(map[string]error),
	}
}

// Register initializes p and adds it to the registry. A plugin that fails
// to initialize is recorded as unavailable instead of aborting startup.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.ID() == p.ID() {
			return fmt.Errorf("plugin %q already registered", p.ID())
		}
	}

	if err := safeInit(p, r.ctx); err != nil {
		r.unavailable[p.ID()] = err
		if r.ctx != nil && r.ctx.Logger != nil {
			r.ctx.Logger.Warn("plugin unavailable", "plugin", p.ID(), "error", err)
		}
		return nil
	}

	r.plugins = append(r.plugins, p)
	return nil
}

func safeInit(p Plugin, ctx *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("init panicked: %v", rec)
		}
	}()
	return p.Init(ctx)
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Get returns the plugin with id, or nil.
func (r *Registry) Get(id string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plugins {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// Unavailable returns the plugins that failed to initialize.
func (r *Registry) Unavailable() map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]error, len(r.unavailable))
	for k, v := range r.unavailable {
		out[k] = v
	}
	return out
}

// Start starts every plugin and returns their startup commands.
func (r *Registry) Start() []tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range r.Plugins() {
		if cmd := p.Start(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Stop stops every plugin in reverse order.
func (r *Registry) Stop() {
	plugins := r.Plugins()
	for i := len(plugins) - 1; i >= 0; i-- {
		plugins[i].Stop()
	}
}

// Context returns the shared plugin context.
func (r *Registry) Context() *Context {
	return r.ctx
}
