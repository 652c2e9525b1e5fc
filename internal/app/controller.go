// Package app holds the controller that owns the ledger state. Every
// mutation replaces the snapshot and saves it before returning.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hisab/internal/core"
	"hisab/internal/ledger"
	"hisab/internal/log"
	"hisab/internal/metrics"
	"hisab/internal/storage"
)

// ErrSaveFailed is returned when a mutation was applied in memory but could
// not be persisted. The in-memory state is kept.
var ErrSaveFailed = errors.New("state could not be saved")

// Store loads and saves the whole state.
type Store interface {
	storage.Loader
	Save(ctx context.Context, data core.AppData) error
}

// Notifier is told about every successful save.
type Notifier interface {
	PublishStateSaved(ctx context.Context, revision int64, at time.Time) error
}

// Kinds of records, used in logs, metrics and routes.
const (
	KindIncome  = "income"
	KindExpense = "expense"
	KindBill    = "bill"
	KindLoan    = "loan"
	KindMarket  = "market"
)

// Operations recorded per mutation.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
	OpToggle = "toggle"
)

type Controller struct {
	mu       sync.RWMutex
	data     core.AppData
	tab      Tab
	revision int64

	store    Store
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Controller)

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New loads the saved state (or the empty default) and starts on the
// dashboard.
func New(ctx context.Context, store Store, opts ...Option) *Controller {
	c := &Controller{
		tab:    TabDashboard,
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.data = storage.LoadOrDefault(ctx, store, c.logger)
	return c
}

// apply swaps in fn(current) and saves it. Notification happens after the
// lock is released.
func (c *Controller) apply(ctx context.Context, kind, op, id string, fn func(core.AppData) core.AppData) error {
	c.mu.Lock()
	c.data = fn(c.data)
	c.metrics.ObserveMutation(kind, op)

	err := c.store.Save(ctx, c.data)
	if err != nil {
		c.metrics.ObserveSave(c.revision, err)
		c.mu.Unlock()
		c.logger.ErrorContext(ctx, "Failed to save state",
			log.NewFields().
				WithRecord(kind, id).
				WithOperation(op).
				WithComponent(log.ComponentLedger).
				WithError(err).
				ToSlice()...)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	c.revision++
	rev := c.revision
	c.metrics.ObserveSave(rev, nil)
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "Ledger updated",
		append(log.NewFields().
			WithRecord(kind, id).
			WithOperation(op).
			WithComponent(log.ComponentLedger).
			ToSlice(), log.FieldRevision, rev)...)

	if c.notifier != nil {
		if err := c.notifier.PublishStateSaved(ctx, rev, c.now()); err != nil {
			c.logger.WarnContext(ctx, "Failed to publish state saved message", log.FieldRevision, rev, log.FieldError, err)
		}
	}
	return nil
}

func (c *Controller) AddIncome(ctx context.Context, in core.Income) (core.Income, error) {
	if in.ID == "" {
		in.ID = core.NewID()
	}
	return in, c.apply(ctx, KindIncome, OpAdd, in.ID, func(d core.AppData) core.AppData {
		return ledger.Incomes.Add(d, in)
	})
}

func (c *Controller) UpdateIncome(ctx context.Context, in core.Income) error {
	return c.apply(ctx, KindIncome, OpUpdate, in.ID, func(d core.AppData) core.AppData {
		return ledger.Incomes.Update(d, in)
	})
}

func (c *Controller) DeleteIncome(ctx context.Context, id string) error {
	return c.apply(ctx, KindIncome, OpDelete, id, func(d core.AppData) core.AppData {
		return ledger.Incomes.Delete(d, id)
	})
}

func (c *Controller) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.ID == "" {
		e.ID = core.NewID()
	}
	return e, c.apply(ctx, KindExpense, OpAdd, e.ID, func(d core.AppData) core.AppData {
		return ledger.Expenses.Add(d, e)
	})
}

func (c *Controller) UpdateExpense(ctx context.Context, e core.Expense) error {
	return c.apply(ctx, KindExpense, OpUpdate, e.ID, func(d core.AppData) core.AppData {
		return ledger.Expenses.Update(d, e)
	})
}

func (c *Controller) DeleteExpense(ctx context.Context, id string) error {
	return c.apply(ctx, KindExpense, OpDelete, id, func(d core.AppData) core.AppData {
		return ledger.Expenses.Delete(d, id)
	})
}

func (c *Controller) AddBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if b.ID == "" {
		b.ID = core.NewID()
	}
	return b, c.apply(ctx, KindBill, OpAdd, b.ID, func(d core.AppData) core.AppData {
		return ledger.Bills.Add(d, b)
	})
}

func (c *Controller) UpdateBill(ctx context.Context, b core.Bill) error {
	return c.apply(ctx, KindBill, OpUpdate, b.ID, func(d core.AppData) core.AppData {
		return ledger.Bills.Update(d, b)
	})
}

func (c *Controller) DeleteBill(ctx context.Context, id string) error {
	return c.apply(ctx, KindBill, OpDelete, id, func(d core.AppData) core.AppData {
		return ledger.Bills.Delete(d, id)
	})
}

func (c *Controller) AddLoan(ctx context.Context, l core.Loan) (core.Loan, error) {
	if l.ID == "" {
		l.ID = core.NewID()
	}
	return l, c.apply(ctx, KindLoan, OpAdd, l.ID, func(d core.AppData) core.AppData {
		return ledger.Loans.Add(d, l)
	})
}

// UpdateLoan replaces the loan. Status is whatever the caller sets; paying
// the loan off does not mark it paid.
func (c *Controller) UpdateLoan(ctx context.Context, l core.Loan) error {
	return c.apply(ctx, KindLoan, OpUpdate, l.ID, func(d core.AppData) core.AppData {
		return ledger.Loans.Update(d, l)
	})
}

func (c *Controller) AddMarketItem(ctx context.Context, it core.MarketItem) (core.MarketItem, error) {
	if it.ID == "" {
		it.ID = core.NewID()
	}
	return it, c.apply(ctx, KindMarket, OpAdd, it.ID, func(d core.AppData) core.AppData {
		return ledger.Market.Add(d, it)
	})
}

func (c *Controller) ToggleMarketItem(ctx context.Context, id string) error {
	return c.apply(ctx, KindMarket, OpToggle, id, func(d core.AppData) core.AppData {
		return ledger.Market.Toggle(d, id)
	})
}

func (c *Controller) DeleteMarketItem(ctx context.Context, id string) error {
	return c.apply(ctx, KindMarket, OpDelete, id, func(d core.AppData) core.AppData {
		return ledger.Market.Delete(d, id)
	})
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() core.AppData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Clone()
}

func (c *Controller) Stats() core.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return core.ComputeStats(c.data)
}

// Revision counts successful saves since startup.
func (c *Controller) Revision() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

func (c *Controller) SelectTab(t Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = t
}

func (c *Controller) ActiveTab() Tab {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tab
}

// Find looks a record up by kind and id. Used to prefill edit forms and
// confirmation prompts.
func (c *Controller) Find(kind, id string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch kind {
	case KindIncome:
		return ledger.Collection[core.Income](c.data.Incomes).Find(id)
	case KindExpense:
		return ledger.Collection[core.Expense](c.data.Expenses).Find(id)
	case KindBill:
		return ledger.Collection[core.Bill](c.data.Bills).Find(id)
	case KindLoan:
		return ledger.Collection[core.Loan](c.data.Loans).Find(id)
	case KindMarket:
		return ledger.Collection[core.MarketItem](c.data.MarketItems).Find(id)
	}
	return nil, false
}
