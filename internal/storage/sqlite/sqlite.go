// Package sqlite stores the state blob in a single-row SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"hisab/internal/storage"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const (
	selectBlob = `SELECT blob FROM app_state WHERE key = ?`
	upsertBlob = `INSERT INTO app_state (key, blob, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`
)

// Blobs implements storage.Blobs on SQLite.
type Blobs struct {
	db  *sqlx.DB
	key string
}

// Open creates the database directory, opens dbPath and migrates it.
func Open(dbPath string) (*Blobs, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Blobs{db: db, key: storage.Key}, nil
}

func (b *Blobs) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Ping checks the connection. Used by the readiness probe.
func (b *Blobs) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *Blobs) Read(ctx context.Context) ([]byte, error) {
	var blob string
	if err := b.db.GetContext(ctx, &blob, selectBlob, b.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("select state: %w", err)
	}
	return []byte(blob), nil
}

func (b *Blobs) Write(ctx context.Context, blob []byte) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := b.db.ExecContext(ctx, upsertBlob, b.key, string(blob), now); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	slog.DebugContext(ctx, "State saved to SQLite", "key", b.key, "bytes", len(blob))
	return nil
}
