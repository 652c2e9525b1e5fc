package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hisab/internal/core"
)

// Row is one appended stats row.
type Row struct {
	Revision int64
	At       time.Time
	Stats    core.Stats
}

// Store keeps stats rows in memory. It stands in for the Google sheet when
// no spreadsheet is configured.
type Store struct {
	mu   sync.Mutex
	rows []Row
}

func New() *Store {
	return &Store{}
}

// AppendStats stores the row and returns a synthetic row reference.
func (s *Store) AppendStats(_ context.Context, revision int64, at time.Time, st core.Stats) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, Row{Revision: revision, At: at, Stats: st})
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of the appended rows.
func (s *Store) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Row(nil), s.rows...)
}
