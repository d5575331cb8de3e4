package payment

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/observability"
	"github.com/yevhenkap/tixjar/internal/storage"
)

const snapshotKey = "baselines"

// BalanceFetcher is satisfied by *mono.BalanceClient.
type BalanceFetcher interface {
	FetchBalance(ctx context.Context, jar domain.Jar) (decimal.Decimal, error)
}

// Engine decides whether an order's jar payment has landed. The jar is a
// shared pot, so the engine cannot attribute deposits to a payer; it infers
// payment from the balance increase since the chat's last recorded baseline.
// Baselines are persisted so a restart mid-flow does not over-count earlier
// deposits.
type Engine struct {
	mu        sync.Mutex
	baselines map[int64]decimal.Decimal
	fetcher   BalanceFetcher
	store     *storage.Store
	logger    observability.Logger
}

func NewEngine(fetcher BalanceFetcher, store *storage.Store, logger observability.Logger) *Engine {
	e := &Engine{
		baselines: make(map[int64]decimal.Decimal),
		fetcher:   fetcher,
		store:     store,
		logger:    logger,
	}
	if err := store.Load(snapshotKey, &e.baselines); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load baseline snapshot: ", err)
	}
	return e
}

// Baseline returns the chat's last recorded jar balance, zero if none.
func (e *Engine) Baseline(chatID int64) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.baselines[chatID]
}

// SnapshotBaseline fetches the jar's current balance and records it as the
// chat's baseline. Called at reservation time so that only deposits made
// after the reservation count towards the order.
func (e *Engine) SnapshotBaseline(ctx context.Context, chatID int64, jar domain.Jar) (decimal.Decimal, error) {
	current, err := e.fetcher.FetchBalance(ctx, jar)
	if err != nil {
		return decimal.Zero, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.baselines[chatID] = current
	e.persistLocked()
	return current, nil
}

// Confirm reports whether the order's payment has landed on the jar: true
// iff the balance has grown by at least the order total since the chat's
// baseline. On success the baseline advances to the current balance, so a
// later purchase needs a fresh deposit; on failure it is left untouched so
// the user can top up and retry. A fetch error never confirms.
func (e *Engine) Confirm(ctx context.Context, order domain.Order, jar domain.Jar) (bool, error) {
	current, err := e.fetcher.FetchBalance(ctx, jar)
	if err != nil {
		observability.ConfirmAttempts.WithLabelValues("error").Inc()
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	baseline := e.baselines[order.ChatID]
	delta := current.Sub(baseline)
	if delta.LessThan(decimal.NewFromInt(order.TotalPrice)) {
		e.logger.WithField("reference", order.Reference).
			WithField("delta", delta.String()).
			Info("payment not found yet")
		observability.ConfirmAttempts.WithLabelValues("pending").Inc()
		return false, nil
	}

	e.baselines[order.ChatID] = current
	e.persistLocked()
	observability.ConfirmAttempts.WithLabelValues("confirmed").Inc()
	return true, nil
}

func (e *Engine) persistLocked() {
	if err := e.store.Save(snapshotKey, e.baselines); err != nil {
		e.logger.Warn("failed to persist baseline snapshot: ", err)
	}
}
