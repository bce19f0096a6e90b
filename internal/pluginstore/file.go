package pluginstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

const (
	dataFileName  = "data.json"
	watchDebounce = 100 * time.Millisecond
)

// FileStorage keeps a plugin's document in <dir>/<pluginID>/data.json.
type FileStorage struct {
	fs   afero.Fs
	path string

	// Digest of the content this process last read or wrote, used to
	// ignore watch events caused by our own saves.
	mu    sync.Mutex
	sum   uint64
	known bool
}

// NewFileStorage creates a file-backed storage on fs.
func NewFileStorage(fs afero.Fs, dir, pluginID string) *FileStorage {
	return &FileStorage{
		fs:   fs,
		path: filepath.Join(dir, pluginID, dataFileName),
	}
}

// Path returns the location of the data file.
func (s *FileStorage) Path() string { return s.path }

// LoadData reads the data file. A missing file yields nil data.
func (s *FileStorage) LoadData(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.remember(nil)
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	s.remember(data)
	return data, nil
}

// SaveData replaces the data file atomically.
func (s *FileStorage) SaveData(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFileAtomic(s.fs, s.path, data); err != nil {
		return err
	}
	s.remember(data)
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *FileStorage) Close() error { return nil }

func (s *FileStorage) remember(data []byte) {
	sum := xxhash.Sum64(data)
	s.mu.Lock()
	s.sum, s.known = sum, true
	s.mu.Unlock()
}

// changedOnDisk reports whether the file differs from what this process
// last saw, and records the new digest if so.
func (s *FileStorage) changedOnDisk() bool {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil && !os.IsNotExist(err) {
		return false
	}
	sum := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.known && s.sum == sum {
		return false
	}
	s.sum, s.known = sum, true
	return true
}

// Watch reports changes to the data file made outside this storage. Events
// are debounced and the returned channel is closed once ctx is done. Only
// the OS filesystem can be watched.
func (s *FileStorage) Watch(ctx context.Context) (<-chan struct{}, error) {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return nil, ErrWatchUnsupported
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan struct{}, 1)
	go s.watchLoop(ctx, w, out)
	return out, nil
}

func (s *FileStorage) watchLoop(ctx context.Context, w *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer w.Close()

	name := filepath.Base(s.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			// Saves arrive as several events; wait for them to settle.
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if !s.changedOnDisk() {
				continue
			}
			select {
			case out <- struct{}{}:
			default:
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Debug("pluginstore: watch error", "path", s.path, "error", err)
		}
	}
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it over path, so readers never observe a partial document.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer fs.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}
