package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	appmsg "github.com/marcus/stickies/internal/msg"
	"github.com/marcus/stickies/internal/plugin"
	"github.com/marcus/stickies/internal/state"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case TickMsg:
		m.ClearToast(time.Time(msg))
		return m, tickCmd()

	case appmsg.ToastMsg:
		m.ShowToast(msg.Message, msg.Duration, msg.IsError)
		return m, nil
	}

	// Forward other messages to all plugins so async results reach their
	// owner even when another plugin is focused.
	var cmds []tea.Cmd
	for _, p := range m.registry.Plugins() {
		// Plugins are pointers and update in place.
		_, cmd := p.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.updateContext()
	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := k.String()

	if m.quitConfirm != nil {
		if key == "y" {
			return m.quit()
		}
		action, cmd := m.quitConfirm.HandleKey(k)
		switch action {
		case "confirm":
			return m.quit()
		case "cancel":
			m.quitConfirm = nil
		}
		return m, cmd
	}

	if m.showHelp {
		if key == "esc" || key == "?" || key == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	p := m.ActivePlugin()

	// Text fields get every key except ctrl+c.
	if tc, ok := p.(plugin.TextInputConsumer); ok && tc.ConsumesTextInput() {
		if key == "ctrl+c" {
			m.openQuitConfirm()
			return m, nil
		}
		return m.forwardKey(k)
	}

	cmdID, _ := m.keymap.Lookup(key, m.activeContext)
	switch cmdID {
	case "quit":
		m.openQuitConfirm()
		return m, nil
	case "next-plugin":
		return m, m.NextPlugin()
	case "prev-plugin":
		return m, m.PrevPlugin()
	case "toggle-help":
		m.showHelp = true
		return m, nil
	case "toggle-footer":
		m.showFooter = !m.showFooter
		_ = state.SetShowFooter(m.showFooter)
		return m, nil
	}

	// A user override bound to a plugin command is delivered as that
	// command's default key, which is what plugins match on.
	if cmdID != "" {
		if def, ok := m.keymap.DefaultKey(cmdID, m.activeContext); ok && def != key {
			if remapped, ok := keyMsgFor(def); ok {
				k = remapped
			}
		}
	}
	return m.forwardKey(k)
}

// forwardKey sends a key to the active plugin.
func (m Model) forwardKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.ActivePlugin()
	if p == nil {
		return m, nil
	}
	_, cmd := p.Update(k)
	m.updateContext()
	return m, cmd
}

// quit stops every plugin and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitConfirm = nil
	m.registry.Stop()
	return m, tea.Quit
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"delete":    tea.KeyDelete,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+j":    tea.KeyCtrlJ,
}

// keyMsgFor builds the key message a terminal would send for key.
func keyMsgFor(key string) (tea.KeyMsg, bool) {
	if t, ok := namedKeys[key]; ok {
		return tea.KeyMsg{Type: t}, true
	}
	if r := []rune(key); len(r) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: r}, true
	}
	return tea.KeyMsg{}, false
}
