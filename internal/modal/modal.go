// Package modal renders keyboard-driven dialogs built from stacked sections.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Variant selects the border color of a modal.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
)

// DefaultWidth is the modal width used when WithWidth is not given.
const DefaultWidth = 60

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the outer width of the modal.
func WithWidth(w int) Option { return func(m *Modal) { m.width = w } }

// WithVariant sets the modal variant.
func WithVariant(v Variant) Option { return func(m *Modal) { m.variant = v } }

// WithHints toggles the key hint line under the sections.
func WithHints(show bool) Option { return func(m *Modal) { m.showHints = show } }

// WithPrimaryAction sets the action returned for Enter on inputs and for ctrl+s.
func WithPrimaryAction(id string) Option { return func(m *Modal) { m.primaryAction = id } }

// Modal is a dialog made of sections with a single keyboard focus.
type Modal struct {
	title         string
	variant       Variant
	width         int
	sections      []Section
	showHints     bool
	primaryAction string

	focusIdx int
}

// New creates a new Modal with the given title and options.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		variant:   VariantDefault,
		width:     DefaultWidth,
		showHints: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection adds a section to the modal. Returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// HandleKey processes keyboard input.
// Returns:
//   - action: "cancel" for Esc, a button id or the primary action for Enter
//   - cmd: any tea.Cmd from bubbles models (cursor blink, etc.)
func (m *Modal) HandleKey(msg tea.KeyMsg) (action string, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return "cancel", nil

	case "tab":
		return "", m.cycleFocus(1)

	case "shift+tab":
		return "", m.cycleFocus(-1)

	case "ctrl+s":
		return m.primaryAction, nil

	case "enter":
		focusID := m.currentFocusID()
		if focusID == "" {
			return m.primaryAction, nil
		}
		section := m.focusedSection()
		action, cmd = section.Update(msg, focusID)
		if action != "" {
			return action, cmd
		}
		if c, ok := section.(enterConsumer); ok && c.consumesEnter() {
			return "", cmd
		}
		if m.primaryAction != "" {
			return m.primaryAction, cmd
		}
		return focusID, cmd

	default:
		section := m.focusedSection()
		if section == nil {
			return "", nil
		}
		return section.Update(msg, m.currentFocusID())
	}
}

// SetFocus moves focus to the element with id and returns the focus command
// of the receiving bubbles model, if any.
func (m *Modal) SetFocus(id string) tea.Cmd {
	for i, fid := range m.focusIDs() {
		if fid == id {
			m.focusIdx = i
			return m.applyFocus()
		}
	}
	return nil
}

// FocusFirst focuses the first focusable element.
func (m *Modal) FocusFirst() tea.Cmd {
	m.focusIdx = 0
	return m.applyFocus()
}

// FocusedID returns the currently focused element ID.
func (m *Modal) FocusedID() string {
	return m.currentFocusID()
}

func (m *Modal) focusIDs() []string {
	var ids []string
	for _, s := range m.sections {
		ids = append(ids, s.FocusIDs()...)
	}
	return ids
}

// currentFocusID returns the ID of the currently focused element.
func (m *Modal) currentFocusID() string {
	ids := m.focusIDs()
	if len(ids) == 0 {
		return ""
	}
	if m.focusIdx < 0 || m.focusIdx >= len(ids) {
		return ids[0]
	}
	return ids[m.focusIdx]
}

func (m *Modal) focusedSection() Section {
	id := m.currentFocusID()
	if id == "" {
		return nil
	}
	for _, s := range m.sections {
		for _, fid := range s.FocusIDs() {
			if fid == id {
				return s
			}
		}
	}
	return nil
}

// cycleFocus moves focus by delta (1 for next, -1 for previous).
func (m *Modal) cycleFocus(delta int) tea.Cmd {
	n := len(m.focusIDs())
	if n == 0 {
		return nil
	}
	m.focusIdx = (m.focusIdx + delta + n) % n
	return m.applyFocus()
}

// applyFocus tells every section which element now holds focus.
func (m *Modal) applyFocus() tea.Cmd {
	id := m.currentFocusID()
	var cmds []tea.Cmd
	for _, s := range m.sections {
		if f, ok := s.(focusReceiver); ok {
			cmds = append(cmds, f.setFocus(id))
		}
	}
	return tea.Batch(cmds...)
}
