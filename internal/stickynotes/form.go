package stickynotes

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// formBodyHeight is the visible line count of the add form's body field.
const formBodyHeight = 3

// focusForm moves keyboard focus into the add form.
func (p *Plugin) focusForm(field formField) tea.Cmd {
	p.pane = paneForm
	p.field = field
	if field == fieldBody {
		p.titleInput.Blur()
		return p.bodyInput.Focus()
	}
	p.bodyInput.Blur()
	return p.titleInput.Focus()
}

// blurForm returns focus to the note list. Field contents are kept.
func (p *Plugin) blurForm() {
	p.pane = paneList
	p.titleInput.Blur()
	p.bodyInput.Blur()
}

func (p *Plugin) handleFormKey(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc":
		p.blurForm()
		return nil
	case "tab", "shift+tab":
		if p.field == fieldTitle {
			return p.focusForm(fieldBody)
		}
		return p.focusForm(fieldTitle)
	case "enter":
		return p.submitForm()
	}

	var cmd tea.Cmd
	if p.field == fieldTitle {
		p.titleInput, cmd = p.titleInput.Update(m)
	} else {
		p.bodyInput, cmd = p.bodyInput.Update(m)
	}
	return cmd
}

// submitForm adds the note typed into the form. A blank body is ignored, as
// is a second submit while the first is still being written.
func (p *Plugin) submitForm() tea.Cmd {
	if p.submitting {
		return nil
	}
	title := strings.TrimSpace(p.titleInput.Value())
	body := strings.TrimSpace(p.bodyInput.Value())
	if body == "" {
		return nil
	}
	p.submitting = true
	return p.addNote(title, body)
}

func (p *Plugin) logger() *slog.Logger {
	if p.ctx != nil && p.ctx.Logger != nil {
		return p.ctx.Logger
	}
	return slog.Default()
}
