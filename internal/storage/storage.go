// Package storage persists the whole AppData as one JSON blob.
//
// Backends only move bytes (see Blobs). Encoding, decoding and the mapping of
// failures onto LoadError live here so every backend behaves the same way.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"hisab/internal/core"
)

// Key is the name under which the blob is stored.
const Key = "hisab-data"

// ErrNotFound is returned by Blobs.Read when nothing was ever saved.
var ErrNotFound = errors.New("no saved state")

// Blobs is the byte-level contract implemented by each backend.
type Blobs interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, blob []byte) error
}

// LoadErrorKind classifies why a load produced no data.
type LoadErrorKind int

const (
	LoadNotFound LoadErrorKind = iota
	LoadCorrupt
	LoadRead
)

func (k LoadErrorKind) String() string {
	switch k {
	case LoadNotFound:
		return "not_found"
	case LoadCorrupt:
		return "corrupt"
	case LoadRead:
		return "read"
	}
	return "unknown"
}

// LoadError is returned by Store.Load.
type LoadError struct {
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load state (%s): %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store encodes AppData onto a backend.
type Store struct {
	blobs Blobs
}

func New(b Blobs) *Store {
	return &Store{blobs: b}
}

// Load reads and decodes the saved state. Any failure is a *LoadError.
func (s *Store) Load(ctx context.Context) (core.AppData, error) {
	raw, err := s.blobs.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return core.AppData{}, &LoadError{Kind: LoadNotFound, Err: err}
		}
		return core.AppData{}, &LoadError{Kind: LoadRead, Err: err}
	}
	data, err := Decode(raw)
	if err != nil {
		return core.AppData{}, &LoadError{Kind: LoadCorrupt, Err: err}
	}
	return data, nil
}

// Save replaces the stored blob with data.
func (s *Store) Save(ctx context.Context, data core.AppData) error {
	raw, err := Encode(data)
	if err != nil {
		return err
	}
	if err := s.blobs.Write(ctx, raw); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Encode serializes data. Nil collections are written as empty arrays.
func Encode(data core.AppData) ([]byte, error) {
	raw, err := json.Marshal(data.Normalize())
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return raw, nil
}

// Decode parses a blob. Missing or null collections become empty.
func Decode(raw []byte) (core.AppData, error) {
	var data core.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return core.AppData{}, fmt.Errorf("decode state: %w", err)
	}
	return data.Normalize(), nil
}

// Loader is anything that can produce the saved state.
type Loader interface {
	Load(ctx context.Context) (core.AppData, error)
}

// LoadOrDefault loads the state, falling back to empty collections on any
// failure. The failure is logged and never surfaced.
func LoadOrDefault(ctx context.Context, l Loader, logger *slog.Logger) core.AppData {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := l.Load(ctx)
	if err == nil {
		logger.InfoContext(ctx, "Loaded saved state",
			"incomes", len(data.Incomes),
			"expenses", len(data.Expenses),
			"bills", len(data.Bills),
			"loans", len(data.Loans),
			"market_items", len(data.MarketItems))
		return data
	}

	var le *LoadError
	if !errors.As(err, &le) {
		le = &LoadError{Kind: LoadRead, Err: err}
	}
	switch le.Kind {
	case LoadNotFound:
		logger.InfoContext(ctx, "No saved state, starting empty")
	case LoadCorrupt:
		logger.WarnContext(ctx, "Saved state is corrupt, starting empty", "error", le.Err)
	default:
		logger.ErrorContext(ctx, "Failed to read saved state, starting empty", "error", le.Err)
	}
	return core.NewAppData()
}
