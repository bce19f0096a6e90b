package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/stickies/internal/plugin"
)

// TickMsg is sent on each clock tick.
type TickMsg time.Time

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// PluginFocused returns a command that sends plugin.PluginFocusedMsg.
func PluginFocused() tea.Cmd {
	return func() tea.Msg {
		return plugin.PluginFocusedMsg{}
	}
}
