// Package pluginstore implements the host's per-plugin data store. Each
// plugin owns one opaque document that it loads and saves as a whole.
package pluginstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

var (
	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("pluginstore: unknown backend")

	// ErrWatchUnsupported is returned when a backend cannot report external changes.
	ErrWatchUnsupported = errors.New("pluginstore: watch not supported")
)

// Storage is the data API handed to a plugin.
type Storage interface {
	// LoadData returns the last saved document, or nil if nothing was saved yet.
	LoadData(ctx context.Context) ([]byte, error)
	// SaveData replaces the stored document.
	SaveData(ctx context.Context, data []byte) error
	Close() error
}

// Watcher is implemented by storages that can report changes made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Config selects and locates a backend.
type Config struct {
	Backend  string
	Dir      string
	PluginID string
}

// Backends lists the names Open accepts.
func Backends() []string {
	return []string{BackendFile, BackendBolt, BackendSQLite}
}

// Open returns the storage for one plugin.
func Open(cfg Config) (Storage, error) {
	if cfg.PluginID == "" {
		return nil, errors.New("pluginstore: empty plugin id")
	}
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStorage(afero.NewOsFs(), cfg.Dir, cfg.PluginID), nil
	case BackendBolt:
		return OpenBolt(filepath.Join(cfg.Dir, "plugins.db"), cfg.PluginID)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(cfg.Dir, "plugins.sqlite"), cfg.PluginID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
