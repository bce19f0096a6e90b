package stickynotes

// NotesLoadedMsg carries the full note list read from the store. Epoch is
// the plugin epoch when the load was issued.
type NotesLoadedMsg struct {
	Epoch uint64
	Notes []Note
	Err   error
}

// GetEpoch implements plugin.EpochMessage.
func (m NotesLoadedMsg) GetEpoch() uint64 { return m.Epoch }

// NoteAddedMsg reports the result of an add.
type NoteAddedMsg struct {
	Note Note
	Err  error
}

// NoteUpdatedMsg reports the result of an update. OK is false when the note
// no longer existed.
type NoteUpdatedMsg struct {
	ID    string
	Title string
	Body  string
	OK    bool
	Err   error
}

// NoteDeletedMsg reports the result of a delete and the remaining count.
type NoteDeletedMsg struct {
	ID        string
	Remaining int
	Err       error
}

// NotesChangedMsg is sent when another process changed the stored notes.
type NotesChangedMsg struct{}
