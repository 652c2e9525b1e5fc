package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hisab/internal/core"
)

func TestAppendStats(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.AppendStats(ctx, 1, time.Now(), core.Stats{Balance: decimal.NewFromInt(10)})
	if err != nil {
		t.Fatalf("AppendStats() error = %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}
	if _, err := s.AppendStats(ctx, 2, time.Now(), core.Stats{}); err != nil {
		t.Fatalf("AppendStats() error = %v", err)
	}

	rows := s.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Revision != 1 || !rows[0].Stats.Balance.Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected first row %+v", rows[0])
	}

	rows[0].Revision = 99
	if s.Rows()[0].Revision != 1 {
		t.Error("Rows() must return a copy")
	}
}
