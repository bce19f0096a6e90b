package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/stickies/internal/styles"
)

// Section is one block of modal content.
type Section interface {
	// Render draws the section at contentWidth. focusID is the element that
	// currently holds keyboard focus.
	Render(contentWidth int, focusID string) string
	// FocusIDs lists the focusable elements in the section, in tab order.
	FocusIDs() []string
	// Update handles a key while one of the section's elements is focused.
	Update(msg tea.KeyMsg, focusID string) (action string, cmd tea.Cmd)
}

// focusReceiver is implemented by sections wrapping bubbles models that
// must be focused or blurred as focus moves.
type focusReceiver interface {
	setFocus(focusID string) tea.Cmd
}

// enterConsumer is implemented by sections that use Enter themselves.
type enterConsumer interface {
	consumesEnter() bool
}

type textSection struct{ text string }

// Text creates a section showing wrapped text.
func Text(s string) Section { return textSection{text: s} }

func (t textSection) Render(contentWidth int, _ string) string {
	return lipgloss.NewStyle().Width(contentWidth).Render(t.text)
}
func (textSection) FocusIDs() []string                           { return nil }
func (textSection) Update(tea.KeyMsg, string) (string, tea.Cmd) { return "", nil }

type spacerSection struct{}

// Spacer creates an empty line.
func Spacer() Section { return spacerSection{} }

func (spacerSection) Render(int, string) string                    { return "" }
func (spacerSection) FocusIDs() []string                           { return nil }
func (spacerSection) Update(tea.KeyMsg, string) (string, tea.Cmd) { return "", nil }

type inputSection struct {
	id    string
	label string
	model *textinput.Model
}

// Input creates a labeled single-line input backed by model.
func Input(id string, model *textinput.Model, label string) Section {
	return &inputSection{id: id, label: label, model: model}
}

func (s *inputSection) Render(contentWidth int, focusID string) string {
	box := styles.InputBox
	if focusID == s.id {
		box = styles.InputBoxFocused
	}
	s.model.Width = max(contentWidth-4, 1)
	return styles.InputLabel.Render(s.label) + "\n" +
		box.Width(contentWidth-2).Render(s.model.View())
}

func (s *inputSection) FocusIDs() []string { return []string{s.id} }

func (s *inputSection) Update(msg tea.KeyMsg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || msg.String() == "enter" {
		return "", nil
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

func (s *inputSection) setFocus(focusID string) tea.Cmd {
	if focusID == s.id {
		return s.model.Focus()
	}
	s.model.Blur()
	return nil
}

type textareaSection struct {
	id    string
	label string
	model *textarea.Model
}

// Textarea creates a labeled multi-line input backed by model. Enter inserts
// a newline; ctrl+s triggers the primary action.
func Textarea(id string, model *textarea.Model, label string) Section {
	return &textareaSection{id: id, label: label, model: model}
}

func (s *textareaSection) Render(contentWidth int, focusID string) string {
	box := styles.InputBox
	if focusID == s.id {
		box = styles.InputBoxFocused
	}
	s.model.SetWidth(max(contentWidth-2, 1))
	return styles.InputLabel.Render(s.label) + "\n" +
		box.Width(contentWidth-2).Render(s.model.View())
}

func (s *textareaSection) FocusIDs() []string { return []string{s.id} }

func (s *textareaSection) Update(msg tea.KeyMsg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

func (s *textareaSection) setFocus(focusID string) tea.Cmd {
	if focusID == s.id {
		return s.model.Focus()
	}
	s.model.Blur()
	return nil
}

func (s *textareaSection) consumesEnter() bool { return true }

// ButtonDef describes one button in a Buttons section.
type ButtonDef struct {
	Label  string
	ID     string
	Danger bool
}

// Btn creates a button definition.
func Btn(label, id string) ButtonDef { return ButtonDef{Label: label, ID: id} }

// DangerBtn creates a button drawn in the danger style.
func DangerBtn(label, id string) ButtonDef { return ButtonDef{Label: label, ID: id, Danger: true} }

type buttonsSection struct{ buttons []ButtonDef }

// Buttons creates a row of buttons. Enter on a focused button returns its id.
func Buttons(btns ...ButtonDef) Section { return buttonsSection{buttons: btns} }

func (b buttonsSection) Render(_ int, focusID string) string {
	parts := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		style := styles.Button
		switch {
		case btn.Danger && btn.ID == focusID:
			style = styles.ButtonDangerFocused
		case btn.Danger:
			style = styles.ButtonDanger
		case btn.ID == focusID:
			style = styles.ButtonFocused
		}
		parts = append(parts, style.Render(btn.Label))
	}
	return strings.Join(parts, "  ")
}

func (b buttonsSection) FocusIDs() []string {
	ids := make([]string, len(b.buttons))
	for i, btn := range b.buttons {
		ids[i] = btn.ID
	}
	return ids
}

func (b buttonsSection) Update(msg tea.KeyMsg, focusID string) (string, tea.Cmd) {
	if msg.String() != "enter" {
		return "", nil
	}
	for _, btn := range b.buttons {
		if btn.ID == focusID {
			return btn.ID, nil
		}
	}
	return "", nil
}
