package stickynotes

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/stickies/internal/config"
	"github.com/marcus/stickies/internal/msg"
	"github.com/marcus/stickies/internal/plugin"
	"github.com/marcus/stickies/internal/pluginstore"
	"github.com/marcus/stickies/internal/state"
	"github.com/marcus/stickies/internal/styles"
)

const (
	// PluginID is also the key under which notes are stored.
	PluginID   = "sticky-notes"
	pluginName = "sticky notes"
	pluginIcon = "S"

	opTimeout    = 10 * time.Second
	toastTimeout = 2 * time.Second
)

// pane is the part of the panel holding keyboard focus.
type pane int

const (
	paneList pane = iota
	paneForm
)

// formField is the focused input of the add form.
type formField int

const (
	fieldTitle formField = iota
	fieldBody
)

// Plugin is the sticky notes sidebar panel.
type Plugin struct {
	ctx     *plugin.Context
	store   *NoteStore
	watcher pluginstore.Watcher
	focused bool

	width  int
	height int

	// Notes in display order, and each note's row in that slice.
	notes []Note
	rows  map[string]int

	cursor     int
	scrollOff  int
	selectedID string
	loading    bool
	loadErr    error

	pane       pane
	field      formField
	titleInput textinput.Model
	bodyInput  textarea.Model
	submitting bool

	edit *editDialog

	// Bumped whenever a mutation result is applied; loads issued earlier
	// may predate it and are dropped.
	epoch uint64

	heading        string
	renderMarkdown bool
	renderer       *glamour.TermRenderer
	rendererWidth  int

	stopWatch context.CancelFunc
	changes   <-chan struct{}
}

// PluginOption configures a Plugin.
type PluginOption func(*Plugin)

// WithChangeWatcher makes the panel reload when w reports that another
// process changed the stored notes.
func WithChangeWatcher(w pluginstore.Watcher) PluginOption {
	return func(p *Plugin) { p.watcher = w }
}

// New creates the sticky notes plugin on top of store.
func New(store *NoteStore, opts ...PluginOption) *Plugin {
	p := &Plugin{
		store:   store,
		rows:    make(map[string]int),
		heading: config.DefaultHeading,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return PluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Icon returns the plugin icon character.
func (p *Plugin) Icon() string { return pluginIcon }

// Init initializes the plugin with context.
func (p *Plugin) Init(ctx *plugin.Context) error {
	if p.store == nil {
		return errors.New("sticky-notes: no note store")
	}
	p.ctx = ctx
	p.notes = nil
	p.rows = make(map[string]int)
	p.cursor = 0
	p.scrollOff = 0
	p.loadErr = nil
	p.pane = paneList
	p.field = fieldTitle
	p.edit = nil

	if ctx.Config != nil {
		sn := ctx.Config.Plugins.StickyNotes
		if sn.Heading != "" {
			p.heading = sn.Heading
		}
		p.renderMarkdown = sn.RenderMarkdown
		if !sn.WatchChanges {
			p.watcher = nil
		}
	}

	p.selectedID = state.GetStickyNotesState().SelectedID

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.PlaceholderStyle = styles.Muted
	p.titleInput = ti

	ta := textarea.New()
	ta.Placeholder = "Note text. Enter to save, Ctrl+J or Alt+Enter for a new line."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(formBodyHeight)
	ta.FocusedStyle = textarea.Style{
		Base:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle(),
		EndOfBuffer: styles.Muted,
		Placeholder: styles.Muted,
		Prompt:      lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle(),
	}
	ta.BlurredStyle = ta.FocusedStyle
	// Enter submits the form; these keys insert a newline instead. Terminals
	// report shift+enter as plain enter.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j", "alt+enter"))
	ta.Blur()
	p.bodyInput = ta

	return nil
}

// Start begins plugin operation.
func (p *Plugin) Start() tea.Cmd {
	return tea.Batch(p.loadNotes(), p.startWatching())
}

// Stop cleans up plugin resources.
func (p *Plugin) Stop() {
	if p.stopWatch != nil {
		p.stopWatch()
		p.stopWatch = nil
	}
	if err := state.SetStickyNotesState(state.StickyNotesState{SelectedID: p.selectedID}); err != nil {
		p.logger().Debug("sticky-notes: save state failed", "error", err)
	}
}

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case NotesLoadedMsg:
		if plugin.IsStale(p.epoch, m) {
			return p, p.loadNotes()
		}
		p.loading = false
		if m.Err != nil {
			p.loadErr = m.Err
			p.logger().Error("sticky-notes: load failed", "error", m.Err)
			return p, nil
		}
		p.loadErr = nil
		p.setNotes(m.Notes)
		return p, nil

	case NoteAddedMsg:
		p.epoch++
		p.submitting = false
		if m.Err != nil {
			return p, p.reportError("Add failed", m.Err)
		}
		p.titleInput.Reset()
		p.bodyInput.Reset()
		// A reload that ran after the write may already show the note.
		if _, ok := p.rows[m.Note.ID]; !ok {
			p.notes = append(p.notes, m.Note)
			p.rows[m.Note.ID] = len(p.notes) - 1
		}
		p.selectRow(p.rows[m.Note.ID])
		return p, msg.ShowToast("Note added", toastTimeout)

	case NoteUpdatedMsg:
		p.epoch++
		if m.Err != nil {
			return p, p.reportError("Save failed", m.Err)
		}
		if !m.OK {
			return p, tea.Batch(
				msg.ShowErrorToast("Note no longer exists", toastTimeout),
				p.loadNotes(),
			)
		}
		if row, ok := p.rows[m.ID]; ok {
			p.notes[row].Title = m.Title
			p.notes[row].Body = m.Body
		}
		return p, msg.ShowToast("Saved", toastTimeout)

	case NoteDeletedMsg:
		p.epoch++
		if m.Err != nil {
			return p, p.reportError("Delete failed", m.Err)
		}
		p.removeRow(m.ID)
		if m.Remaining == 0 {
			p.setNotes(nil)
		} else if m.Remaining != len(p.notes) {
			// Another process changed the list meanwhile.
			return p, p.loadNotes()
		}
		return p, nil

	case NotesChangedMsg:
		return p, tea.Batch(p.loadNotes(), p.waitForChange())

	case tea.KeyMsg:
		return p.handleKey(m)
	}

	return p, nil
}

// IsFocused returns whether the plugin is focused.
func (p *Plugin) IsFocused() bool { return p.focused }

// SetFocused sets the focus state.
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// FocusContext returns the keymap context for the current mode.
func (p *Plugin) FocusContext() string {
	switch {
	case p.edit != nil:
		return "sticky-notes-edit"
	case p.pane == paneForm:
		return "sticky-notes-form"
	default:
		return "sticky-notes"
	}
}

// ConsumesTextInput reports whether a text field has focus.
func (p *Plugin) ConsumesTextInput() bool {
	return p.edit != nil || p.pane == paneForm
}

// Commands returns the available commands.
func (p *Plugin) Commands() []plugin.Command {
	switch p.FocusContext() {
	case "sticky-notes-edit":
		return []plugin.Command{
			{ID: "save-note", Name: "Save", Description: "Save the note", Category: plugin.CategoryEdit, Context: "sticky-notes-edit", Priority: 1},
			{ID: "next-field", Name: "Next", Description: "Move to the next field", Category: plugin.CategoryNavigation, Context: "sticky-notes-edit", Priority: 2},
			{ID: "cancel", Name: "Cancel", Description: "Discard changes", Category: plugin.CategoryEdit, Context: "sticky-notes-edit", Priority: 3},
		}
	case "sticky-notes-form":
		return []plugin.Command{
			{ID: "add-note", Name: "Add", Description: "Add the note", Category: plugin.CategoryEdit, Context: "sticky-notes-form", Priority: 1},
			{ID: "newline", Name: "Newline", Description: "Insert a line break", Category: plugin.CategoryEdit, Context: "sticky-notes-form", Priority: 2},
			{ID: "next-field", Name: "Field", Description: "Switch between title and body", Category: plugin.CategoryNavigation, Context: "sticky-notes-form", Priority: 3},
			{ID: "back", Name: "List", Description: "Return to the note list", Category: plugin.CategoryNavigation, Context: "sticky-notes-form", Priority: 4},
		}
	default:
		return []plugin.Command{
			{ID: "new-note", Name: "New", Description: "Write a new note", Category: plugin.CategoryActions, Context: "sticky-notes", Priority: 1},
			{ID: "edit-note", Name: "Edit", Description: "Edit the selected note", Category: plugin.CategoryActions, Context: "sticky-notes", Priority: 2},
			{ID: "delete-note", Name: "Delete", Description: "Delete the selected note", Category: plugin.CategoryActions, Context: "sticky-notes", Priority: 3},
			{ID: "yank-note", Name: "Copy", Description: "Copy the note text", Category: plugin.CategoryActions, Context: "sticky-notes", Priority: 4},
			{ID: "refresh", Name: "Reload", Description: "Reload notes from storage", Category: plugin.CategorySystem, Context: "sticky-notes", Priority: 5},
			{ID: "cursor-down", Name: "Down", Description: "Select the next note", Category: plugin.CategoryNavigation, Context: "sticky-notes", Priority: 6},
			{ID: "cursor-up", Name: "Up", Description: "Select the previous note", Category: plugin.CategoryNavigation, Context: "sticky-notes", Priority: 6},
		}
	}
}

// handleKey routes keys by mode.
func (p *Plugin) handleKey(m tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	if p.edit != nil {
		return p, p.handleEditKey(m)
	}
	if p.pane == paneForm {
		return p, p.handleFormKey(m)
	}

	switch m.String() {
	case "j", "down":
		p.selectRow(p.cursor + 1)
	case "k", "up":
		p.selectRow(p.cursor - 1)
	case "g", "home":
		p.selectRow(0)
	case "G", "end":
		p.selectRow(len(p.notes) - 1)
	case "n", "a", "tab":
		return p, p.focusForm(fieldTitle)
	case "e", "enter":
		return p, p.openEdit()
	case "d", "x", "delete":
		return p, p.deleteSelected()
	case "y":
		return p, p.yankSelected()
	case "r":
		return p, p.loadNotes()
	}
	return p, nil
}

// setNotes replaces the list and restores the selection by id.
func (p *Plugin) setNotes(notes []Note) {
	p.notes = append(p.notes[:0:0], notes...)
	p.reindex()
	if row, ok := p.rows[p.selectedID]; ok {
		p.cursor = row
	}
	p.selectRow(p.cursor)
}

// reindex rebuilds the id to row map.
func (p *Plugin) reindex() {
	p.rows = make(map[string]int, len(p.notes))
	for i, n := range p.notes {
		p.rows[n.ID] = i
	}
}

// removeRow drops the note with id from the view, if shown.
func (p *Plugin) removeRow(id string) {
	row, ok := p.rows[id]
	if !ok {
		return
	}
	p.notes = append(p.notes[:row], p.notes[row+1:]...)
	p.reindex()
	p.selectRow(p.cursor)
}

// selectRow moves the cursor, clamped to the list.
func (p *Plugin) selectRow(row int) {
	if row >= len(p.notes) {
		row = len(p.notes) - 1
	}
	if row < 0 {
		row = 0
	}
	p.cursor = row
	if n := p.selectedNote(); n != nil {
		p.selectedID = n.ID
	}
}

// selectedNote returns the note under the cursor, or nil.
func (p *Plugin) selectedNote() *Note {
	if p.cursor < 0 || p.cursor >= len(p.notes) {
		return nil
	}
	return &p.notes[p.cursor]
}

// loadNotes returns a command that reads all notes.
func (p *Plugin) loadNotes() tea.Cmd {
	if p.notes == nil {
		p.loading = true
	}
	store, epoch := p.store, p.epoch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		notes, err := store.List(ctx)
		return NotesLoadedMsg{Epoch: epoch, Notes: notes, Err: err}
	}
}

// addNote returns a command that appends a note.
func (p *Plugin) addNote(title, body string) tea.Cmd {
	store := p.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		note, err := store.Add(ctx, title, body)
		return NoteAddedMsg{Note: note, Err: err}
	}
}

// updateNote returns a command that rewrites one note.
func (p *Plugin) updateNote(id, title, body string) tea.Cmd {
	store := p.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		ok, err := store.Update(ctx, id, title, body)
		return NoteUpdatedMsg{ID: id, Title: title, Body: body, OK: ok, Err: err}
	}
}

// deleteSelected returns a command that deletes the selected note.
func (p *Plugin) deleteSelected() tea.Cmd {
	note := p.selectedNote()
	if note == nil {
		return nil
	}
	id := note.ID
	store := p.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		remaining, err := store.Delete(ctx, id)
		return NoteDeletedMsg{ID: id, Remaining: remaining, Err: err}
	}
}

// yankSelected copies the selected note body to the system clipboard.
func (p *Plugin) yankSelected() tea.Cmd {
	note := p.selectedNote()
	if note == nil {
		return nil
	}
	if err := clipboard.WriteAll(note.Body); err != nil {
		return msg.ShowErrorToast("Copy failed: "+err.Error(), toastTimeout)
	}
	return msg.ShowToast("Copied note", toastTimeout)
}

// startWatching subscribes to external changes when a watcher is set.
func (p *Plugin) startWatching() tea.Cmd {
	if p.watcher == nil || p.stopWatch != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	changes, err := p.watcher.Watch(ctx)
	if err != nil {
		cancel()
		if !errors.Is(err, pluginstore.ErrWatchUnsupported) {
			p.logger().Warn("sticky-notes: watch failed", "error", err)
		}
		return nil
	}
	p.stopWatch = cancel
	p.changes = changes
	return p.waitForChange()
}

// waitForChange blocks until the watcher reports a change.
func (p *Plugin) waitForChange() tea.Cmd {
	ch := p.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return NotesChangedMsg{}
	}
}

func (p *Plugin) reportError(action string, err error) tea.Cmd {
	p.logger().Error("sticky-notes: "+action, "error", err)
	return msg.ShowErrorToast(action+": "+err.Error(), 3*time.Second)
}
