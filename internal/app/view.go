package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/stickies/internal/keymap"
	"github.com/marcus/stickies/internal/plugin"
	"github.com/marcus/stickies/internal/styles"
	"github.com/marcus/stickies/internal/ui"
)

const (
	headerHeight = 2 // header line + spacing
	footerHeight = 1
	minWidth     = 24
	minHeight    = 10
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.ErrorMsg.Render(msg))
	}

	contentHeight := m.height - headerHeight
	if m.showFooter {
		contentHeight -= footerHeight
	}
	contentHeight = max(contentHeight, 0)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent(m.width, contentHeight))
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	bg := b.String()
	switch {
	case m.quitConfirm != nil:
		return ui.OverlayModal(bg, m.quitConfirm.Render(m.width, m.height), m.width, m.height)
	case m.showHelp:
		return ui.OverlayModal(bg, styles.ModalBox.Render(m.buildHelpContent()), m.width, m.height)
	}
	return bg
}

// renderHeader draws the app title and one tab per plugin.
func (m Model) renderHeader() string {
	title := styles.Logo.Render(" stickies ")

	var tabs []string
	for i, p := range m.registry.Plugins() {
		label := p.Icon() + " " + p.Name()
		if i == m.activePlugin {
			tabs = append(tabs, styles.TabTextActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabTextInactive.Render(label))
		}
	}
	header := title + strings.Join(tabs, " ")
	if lipgloss.Width(header) > m.width {
		header = title
	}
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(header)
}

// renderContent renders the main content area.
func (m Model) renderContent(width, height int) string {
	if height == 0 {
		return ""
	}
	p := m.ActivePlugin()
	if p == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render("No plugins loaded"))
	}
	content := p.View(width, height)
	// Height only pads; MaxHeight also cuts content that runs over.
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

// renderFooter renders the bottom bar with key hints and the toast.
func (m Model) renderFooter() string {
	var status string
	if m.statusMsg != "" {
		toastStyle := styles.ToastSuccess
		if m.statusIsError {
			toastStyle = styles.ToastError
		}
		status = toastStyle.Render(ui.TruncateWidth(m.statusMsg, max(m.width-2, 1)))
	}

	statusWidth := lipgloss.Width(status)
	hints := renderHintLineTruncated(m.footerHints(), m.width-statusWidth-2)
	spacing := max(m.width-lipgloss.Width(hints)-statusWidth, 0)

	footer := hints + strings.Repeat(" ", spacing) + status
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(footer)
}

type footerHint struct {
	keys  string
	label string
}

func (m Model) footerHints() []footerHint {
	var hints []footerHint
	if p := m.ActivePlugin(); p != nil {
		hints = m.pluginFooterHints(p, m.activeContext)
	}
	for _, h := range []struct{ id, label string }{
		{"toggle-help", "help"},
		{"quit", "quit"},
	} {
		if keys := m.keymap.KeysForCommand(h.id, keymap.GlobalContext); len(keys) > 0 {
			hints = append(hints, footerHint{keys: keys[0], label: h.label})
		}
	}
	return hints
}

func (m Model) pluginFooterHints(p plugin.Plugin, context string) []footerHint {
	if context == "" || context == keymap.GlobalContext {
		return nil
	}

	type cmdWithKeys struct {
		cmd      plugin.Command
		keys     []string
		priority int
	}
	var cmds []cmdWithKeys
	for _, cmd := range p.Commands() {
		if cmd.Context != context {
			continue
		}
		keys := m.keymap.KeysForCommand(cmd.ID, context)
		if len(keys) == 0 {
			continue
		}
		priority := cmd.Priority
		if priority == 0 {
			priority = 99
		}
		cmds = append(cmds, cmdWithKeys{cmd, keys, priority})
	}
	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].priority < cmds[j].priority
	})

	hints := make([]footerHint, 0, len(cmds))
	for _, c := range cmds {
		hints = append(hints, footerHint{keys: formatBindingKeys(c.keys), label: c.cmd.Name})
	}
	return hints
}

// renderHintLineTruncated renders hints but stops adding when maxWidth is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	for _, hint := range hints {
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		candidate := part
		if result != "" {
			candidate = result + "  " + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

// buildHelpContent creates the help modal content.
func (m Model) buildHelpContent() string {
	var b strings.Builder

	b.WriteString(styles.ModalTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	b.WriteString(styles.Title.Render("Global"))
	b.WriteString("\n")
	m.renderBindingSection(&b, keymap.GlobalContext)

	if p := m.ActivePlugin(); p != nil {
		ctx := p.FocusContext()
		if ctx != keymap.GlobalContext && ctx != "" {
			b.WriteString("\n")
			b.WriteString(styles.Title.Render(p.Name()))
			b.WriteString("\n")
			m.renderBindingSection(&b, ctx)
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("Press ? or esc to close"))
	return b.String()
}

// renderBindingSection writes one line per command bound in context.
func (m Model) renderBindingSection(b *strings.Builder, context string) {
	bindings := m.keymap.BindingsForContext(context)
	seen := make(map[string]bool)
	for _, binding := range bindings {
		if seen[binding.Command] {
			continue
		}
		seen[binding.Command] = true

		keys := m.keymap.KeysForCommand(binding.Command, context)
		padded := ui.PadRight(formatBindingKeys(keys), 14)
		fmt.Fprintf(b, "  %s %s\n", styles.Muted.Render(padded), formatCommandName(binding.Command))
	}
}

// formatBindingKeys formats up to two keys into a display string.
func formatBindingKeys(keys []string) string {
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return strings.Join(keys, ", ")
}

// formatCommandName converts a command ID to a display name.
func formatCommandName(cmd string) string {
	return strings.ReplaceAll(cmd, "-", " ")
}
