package backend

import (
	"context"

	"hisab/internal/app"
	"hisab/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the store and the optional pieces that come with it.
type BackendResult struct {
	Store *storage.Store

	// Ready checks that the store is reachable. Always set.
	Ready func(ctx context.Context) error

	// Notifier publishes state-saved messages. Nil when AMQP is disabled.
	Notifier app.Notifier

	Cleanup CleanupFunc
}

// Close runs Cleanup if there is one.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// File specific
	DataFilePath string

	// Notifications. Notify is false for processes that only read the
	// state, such as the mirror worker.
	Notify       bool
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	FileBackend   BackendType = "file"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Shared reports whether another process can read what this backend writes.
func (bt BackendType) Shared() bool {
	return bt == SQLiteBackend || bt == FileBackend
}
