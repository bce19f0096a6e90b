package stickynotes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedData is returned when the persisted document cannot be turned
// into a valid note list.
var ErrMalformedData = errors.New("malformed sticky notes data")

// Note is a single sticky note.
type Note struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// document is the persisted layout: {"notes": [...]}.
type document struct {
	Notes []Note `json:"notes"`
}

// storedNote accepts both the current field names and the noteID/noteHead/
// noteBody names written by earlier versions of the plugin.
type storedNote struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`

	LegacyID    string `json:"noteID"`
	LegacyTitle string `json:"noteHead"`
	LegacyBody  string `json:"noteBody"`
}

func (s storedNote) note() Note {
	if s.ID == "" && s.LegacyID != "" {
		return Note{ID: s.LegacyID, Title: s.LegacyTitle, Body: s.LegacyBody}
	}
	return Note{ID: s.ID, Title: s.Title, Body: s.Body}
}

// decodeNotes parses a persisted document. Absent data or a document without
// a notes key is an empty list. Notes without an id and repeated ids are
// rejected with ErrMalformedData.
func decodeNotes(data []byte) ([]Note, error) {
	notes := []Note{}
	if len(bytes.TrimSpace(data)) == 0 {
		return notes, nil
	}

	var raw struct {
		Notes []storedNote `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	seen := make(map[string]struct{}, len(raw.Notes))
	for i, s := range raw.Notes {
		n := s.note()
		if n.ID == "" {
			return nil, fmt.Errorf("%w: note %d has no id", ErrMalformedData, i)
		}
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformedData, n.ID)
		}
		seen[n.ID] = struct{}{}
		notes = append(notes, n)
	}
	return notes, nil
}

// encodeNotes renders the full collection in the current layout.
func encodeNotes(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.MarshalIndent(document{Notes: notes}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode notes: %w", err)
	}
	return data, nil
}
