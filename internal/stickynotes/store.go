// Package stickynotes implements the sticky notes sidebar plugin and the
// NoteStore that persists its notes through the host's plugin storage.
package stickynotes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/marcus/stickies/internal/pluginstore"
)

// maxIDAttempts bounds regeneration when a fresh id collides with an
// existing note.
const maxIDAttempts = 8

// NoteStore owns the note collection. Every mutation reads the whole
// collection, changes it, and writes it back; mutations are serialized.
type NoteStore struct {
	storage pluginstore.Storage
	newID   func() (string, error)
	logger  *slog.Logger

	mu sync.Mutex
}

// Option configures a NoteStore.
type Option func(*NoteStore)

// WithIDGenerator replaces NewID.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *NoteStore) { s.newID = fn }
}

// WithLogger sets the logger used for mutation events.
func WithLogger(l *slog.Logger) Option {
	return func(s *NoteStore) { s.logger = l }
}

// NewNoteStore creates a store on top of a plugin storage.
func NewNoteStore(storage pluginstore.Storage, opts ...Option) *NoteStore {
	s := &NoteStore{
		storage: storage,
		newID:   NewID,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all notes in insertion order. An empty store yields an empty
// slice.
func (s *NoteStore) List(ctx context.Context) ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add appends a note with a fresh id and returns it.
func (s *NoteStore) Add(ctx context.Context, title, body string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}

	id, err := s.uniqueID(notes)
	if err != nil {
		return Note{}, err
	}

	note := Note{ID: id, Title: title, Body: body}
	notes = append(notes, note)
	if err := s.save(ctx, notes); err != nil {
		return Note{}, err
	}
	s.logger.Debug("sticky-notes: added", "id", id, "count", len(notes))
	return note, nil
}

// Update replaces the title and body of the note with id. It reports false,
// and writes nothing, when no such note exists.
func (s *NoteStore) Update(ctx context.Context, id, title, body string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	idx := indexOf(notes, id)
	if idx < 0 {
		return false, nil
	}
	notes[idx].Title = title
	notes[idx].Body = body

	if err := s.save(ctx, notes); err != nil {
		return false, err
	}
	s.logger.Debug("sticky-notes: updated", "id", id)
	return true, nil
}

// Delete removes the note with id, if present, and returns how many notes
// remain. The collection is written even when nothing matched.
func (s *NoteStore) Delete(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	if idx := indexOf(notes, id); idx >= 0 {
		notes = append(notes[:idx], notes[idx+1:]...)
	}

	if err := s.save(ctx, notes); err != nil {
		return 0, err
	}
	s.logger.Debug("sticky-notes: deleted", "id", id, "count", len(notes))
	return len(notes), nil
}

func (s *NoteStore) load(ctx context.Context) ([]Note, error) {
	data, err := s.storage.LoadData(ctx)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	notes, err := decodeNotes(data)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	return notes, nil
}

func (s *NoteStore) save(ctx context.Context, notes []Note) error {
	data, err := encodeNotes(notes)
	if err != nil {
		return err
	}
	if err := s.storage.SaveData(ctx, data); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

func (s *NoteStore) uniqueID(notes []Note) (string, error) {
	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		if indexOf(notes, id) < 0 {
			return id, nil
		}
		s.logger.Warn("sticky-notes: id collision, regenerating", "id", id)
	}
	return "", fmt.Errorf("generate id: no unique id after %d attempts", maxIDAttempts)
}

func indexOf(notes []Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}
