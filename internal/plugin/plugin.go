package plugin

import tea "github.com/charmbracelet/bubbletea"

// Plugin defines the interface for all stickies plugins.
type Plugin interface {
	ID() string
	Name() string
	Icon() string
	Init(ctx *Context) error
	Start() tea.Cmd
	Stop()
	Update(msg tea.Msg) (Plugin, tea.Cmd)
	View(width, height int) string
	IsFocused() bool
	SetFocused(bool)
	Commands() []Command
	FocusContext() string
}

// TextInputConsumer is an optional capability for plugins that need
// printable keys forwarded as typed text instead of being intercepted by
// app-level shortcuts.
type TextInputConsumer interface {
	ConsumesTextInput() bool
}

// Category represents a logical grouping of commands for the help overlay.
type Category string

const (
	CategoryNavigation Category = "Navigation"
	CategoryActions    Category = "Actions"
	CategoryEdit       Category = "Edit"
	CategorySystem     Category = "System"
)

// Command represents a keybinding command exposed by a plugin.
type Command struct {
	ID          string   // Unique identifier (e.g., "delete-note")
	Name        string   // Short name for footer (e.g., "Delete")
	Description string   // Full description for the help overlay
	Category    Category // Logical grouping for help display
	Context     string   // Activation context
	Priority    int      // Footer display priority: 1=highest, 0=default (treated as 99)
}

// PluginFocusedMsg is sent to a plugin when it becomes the active plugin.
type PluginFocusedMsg struct{}

// EpochMessage is implemented by async results that a later state change
// can overtake.
type EpochMessage interface {
	GetEpoch() uint64
}

// IsStale reports whether msg was issued under an epoch other than current.
// Use this in Update() handlers to discard results that predate a change:
//
//	if plugin.IsStale(p.epoch, msg) { return p, p.reload() }
func IsStale(current uint64, msg EpochMessage) bool {
	return msg.GetEpoch() != current
}
