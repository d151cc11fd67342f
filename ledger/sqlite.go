package ledger

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// storageKey is the single key the ledger lives under, same as the
// browser build's localStorage key.
const storageKey = "luxe_bookings"

// SQLiteStore keeps the ledger blob in a key-value table of a local SQLite
// database file.
type SQLiteStore struct {
	blobStore
	conn *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time keeps the read-modify-write cycles ordered
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS kv (
  key       TEXT PRIMARY KEY,
  value     TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, err
	}

	s := &SQLiteStore{conn: conn}
	s.blobStore = blobStore{name: "sqlite", backend: sqliteBlob{conn: conn}}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

type sqliteBlob struct {
	conn *sql.DB
}

func (b sqliteBlob) read(ctx context.Context) ([]byte, error) {
	var value string
	err := b.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, storageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (b sqliteBlob) write(ctx context.Context, data []byte) error {
	_, err := b.conn.ExecContext(ctx, `
INSERT INTO kv (key, value, updatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP`,
		storageKey, string(data))
	return err
}
