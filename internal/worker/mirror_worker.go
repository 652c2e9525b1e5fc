package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hisab/internal/amqp"
	"hisab/internal/core"
	"hisab/internal/sheets"
	"hisab/internal/storage"
)

// MirrorWorker appends a stats row to the sheet every time the ledger state
// is saved.
type MirrorWorker struct {
	store  storage.Loader
	sheets sheets.StatsWriter

	mu   sync.Mutex
	last time.Time
}

func NewMirrorWorker(store storage.Loader, sheets sheets.StatsWriter) *MirrorWorker {
	return &MirrorWorker{
		store:  store,
		sheets: sheets,
	}
}

// HandleStateSaved processes a single state saved message from AMQP.
// Messages not newer than the last mirrored one are acknowledged and
// dropped, since the row would repeat the current state.
func (w *MirrorWorker) HandleStateSaved(ctx context.Context, msg *amqp.StateSavedMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.last.IsZero() && !msg.Timestamp.After(w.last) {
		slog.DebugContext(ctx, "Skipping stale state saved message",
			"revision", msg.Revision,
			"timestamp", msg.Timestamp)
		return nil
	}

	ref, err := w.mirror(ctx, msg.Revision, msg.Timestamp)
	if err != nil {
		return err
	}
	w.last = msg.Timestamp

	slog.InfoContext(ctx, "Mirrored stats to sheet",
		"revision", msg.Revision,
		"sheets_ref", ref)
	return nil
}

// StartupSync writes one row for the state found at startup, so the sheet
// reflects saves made while the worker was down.
func (w *MirrorWorker) StartupSync(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	ref, err := w.mirror(ctx, 0, now)
	if err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	w.last = now
	slog.InfoContext(ctx, "Startup stats row written", "sheets_ref", ref)
	return nil
}

func (w *MirrorWorker) mirror(ctx context.Context, revision int64, at time.Time) (string, error) {
	data, err := w.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load state: %w", err)
	}

	ref, err := w.sheets.AppendStats(ctx, revision, at, core.ComputeStats(data))
	if err != nil {
		return "", fmt.Errorf("append stats: %w", err)
	}
	return ref, nil
}
