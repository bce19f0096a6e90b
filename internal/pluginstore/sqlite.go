package pluginstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStorage keeps each plugin's document in one row of a shared
// SQLite database.
type SQLiteStorage struct {
	db       *sql.DB
	pluginID string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path, pluginID string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStorage{db: db, pluginID: pluginID}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS plugin_data (
    plugin_id TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    updated_at TEXT NOT NULL
);
`
	_, err := s.db.Exec(schema)
	return err
}

// LoadData returns the plugin's row, or nil if there is none.
func (s *SQLiteStorage) LoadData(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM plugin_data WHERE plugin_id = ?`, s.pluginID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query plugin data: %w", err)
	}
	return data, nil
}

// SaveData upserts the plugin's row.
func (s *SQLiteStorage) SaveData(ctx context.Context, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO plugin_data (plugin_id, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT(plugin_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.pluginID, data, now)
	if err != nil {
		return fmt.Errorf("upsert plugin data: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
