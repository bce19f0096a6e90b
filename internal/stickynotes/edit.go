package stickynotes

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/stickies/internal/modal"
)

const (
	editTitleID  = "edit-title"
	editBodyID   = "edit-body"
	editSaveID   = "save"
	editCancelID = "cancel"
)

// editDialog holds the modal used to change an existing note.
type editDialog struct {
	id    string
	title textinput.Model
	body  textarea.Model
	modal *modal.Modal
}

// openEdit shows the edit dialog for the selected note.
func (p *Plugin) openEdit() tea.Cmd {
	note := p.selectedNote()
	if note == nil {
		return nil
	}

	d := &editDialog{id: note.ID}

	d.title = textinput.New()
	d.title.Prompt = ""
	d.title.Placeholder = "Title"
	d.title.SetValue(note.Title)

	d.body = textarea.New()
	d.body.ShowLineNumbers = false
	d.body.Prompt = ""
	d.body.CharLimit = 0
	d.body.SetHeight(6)
	d.body.SetValue(note.Body)

	d.modal = modal.New("Edit note",
		modal.WithWidth(64),
		modal.WithPrimaryAction(editSaveID),
	).
		AddSection(modal.Input(editTitleID, &d.title, "Title")).
		AddSection(modal.Spacer()).
		AddSection(modal.Textarea(editBodyID, &d.body, "Note")).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Save ", editSaveID),
			modal.Btn(" Cancel ", editCancelID),
		))

	p.edit = d
	return d.modal.FocusFirst()
}

func (p *Plugin) handleEditKey(m tea.KeyMsg) tea.Cmd {
	d := p.edit
	action, cmd := d.modal.HandleKey(m)
	switch action {
	case editSaveID:
		p.edit = nil
		// Edits are stored as typed, without trimming.
		return p.updateNote(d.id, d.title.Value(), d.body.Value())
	case editCancelID:
		p.edit = nil
		return nil
	}
	return cmd
}
