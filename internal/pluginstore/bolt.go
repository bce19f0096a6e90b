package pluginstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var pluginDataBucket = []byte("plugin-data")

// BoltStorage keeps each plugin's document under its id in a shared bbolt
// database.
type BoltStorage struct {
	db  *bolt.DB
	key []byte
}

// OpenBolt opens (creating if needed) the database at path. bbolt takes an
// exclusive lock, so a second process waits up to a second and then fails.
func OpenBolt(path, pluginID string) (*BoltStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(pluginDataBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &BoltStorage{db: db, key: []byte(pluginID)}, nil
}

// LoadData returns the stored document, or nil if the key is absent.
func (s *BoltStorage) LoadData(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(pluginDataBucket).Get(s.key)
		if v != nil {
			// v is only valid for the life of the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	return data, nil
}

// SaveData stores data under the plugin id.
func (s *BoltStorage) SaveData(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(pluginDataBucket).Put(s.key, data)
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Close releases the database lock.
func (s *BoltStorage) Close() error {
	return s.db.Close()
}
