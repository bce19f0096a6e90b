package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/stickies/internal/config"
	"github.com/marcus/stickies/internal/keymap"
	"github.com/marcus/stickies/internal/modal"
	"github.com/marcus/stickies/internal/plugin"
	"github.com/marcus/stickies/internal/state"
	"github.com/marcus/stickies/internal/ui"
)

// Model is the root Bubble Tea model for the stickies application.
type Model struct {
	cfg *config.Config

	registry     *plugin.Registry
	activePlugin int

	keymap        *keymap.Registry
	activeContext string

	width, height int
	ready         bool
	showHelp      bool
	showFooter    bool
	quitConfirm   *modal.Modal

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool
}

// New creates a new application model. The previously active plugin is
// restored from saved state when it is still registered.
func New(reg *plugin.Registry, km *keymap.Registry, cfg *config.Config) Model {
	activeIdx := 0
	if id := state.GetActivePlugin(); id != "" {
		for i, p := range reg.Plugins() {
			if p.ID() == id {
				activeIdx = i
				break
			}
		}
	}

	m := Model{
		cfg:           cfg,
		registry:      reg,
		keymap:        km,
		activePlugin:  activeIdx,
		activeContext: keymap.GlobalContext,
		showFooter:    state.GetShowFooter(cfg.UI.ShowFooter),
	}
	if p := m.ActivePlugin(); p != nil {
		p.SetFocused(true)
		m.activeContext = p.FocusContext()
	}
	return m
}

// Init initializes the model and returns initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	for _, cmd := range m.registry.Start() {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ActivePlugin returns the currently active plugin.
func (m Model) ActivePlugin() plugin.Plugin {
	plugins := m.registry.Plugins()
	if len(plugins) == 0 {
		return nil
	}
	if m.activePlugin >= len(plugins) {
		return plugins[0]
	}
	return plugins[m.activePlugin]
}

// SetActivePlugin sets the active plugin by index and returns a command
// to notify the plugin it has been focused.
func (m *Model) SetActivePlugin(idx int) tea.Cmd {
	plugins := m.registry.Plugins()
	if idx < 0 || idx >= len(plugins) {
		return nil
	}
	if current := m.ActivePlugin(); current != nil {
		current.SetFocused(false)
	}
	m.activePlugin = idx
	next := m.ActivePlugin()
	next.SetFocused(true)
	m.activeContext = next.FocusContext()
	_ = state.SetActivePlugin(next.ID())
	return PluginFocused()
}

// NextPlugin switches to the next plugin.
func (m *Model) NextPlugin() tea.Cmd {
	n := len(m.registry.Plugins())
	if n < 2 {
		return nil
	}
	return m.SetActivePlugin((m.activePlugin + 1) % n)
}

// PrevPlugin switches to the previous plugin.
func (m *Model) PrevPlugin() tea.Cmd {
	n := len(m.registry.Plugins())
	if n < 2 {
		return nil
	}
	return m.SetActivePlugin((m.activePlugin - 1 + n) % n)
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(text string, duration time.Duration, isError bool) {
	m.statusMsg = text
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = isError
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast(now time.Time) {
	if m.statusMsg != "" && now.After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// openQuitConfirm shows the quit dialog.
func (m *Model) openQuitConfirm() {
	d := ui.NewConfirmDialog("Quit stickies?", "Notes are saved as you go.")
	d.ConfirmLabel = " Quit "
	d.Danger = true
	d.Width = ui.ModalWidthSmall
	m.quitConfirm = d.ToModal()
}

// updateContext syncs the keymap context with the active plugin.
func (m *Model) updateContext() {
	if p := m.ActivePlugin(); p != nil {
		m.activeContext = p.FocusContext()
		return
	}
	m.activeContext = keymap.GlobalContext
}
