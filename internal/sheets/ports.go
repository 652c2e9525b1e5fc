package sheets

import (
	"context"
	"time"

	"hisab/internal/core"
)

// Ports for outbound adapters.
type (
	// StatsWriter appends one summary row per saved revision.
	StatsWriter interface {
		AppendStats(ctx context.Context, revision int64, at time.Time, s core.Stats) (rowRef string, err error)
	}
)
