package ledger

import (
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/jarpool"
	"github.com/yevhenkap/tixjar/internal/observability"
	"github.com/yevhenkap/tixjar/internal/storage"
)

const snapshotKey = "orders"

// Ledger is the durable record of in-flight orders, keyed by reference.
// Every mutation writes the whole order map through to disk, mirroring the
// jar pool's persistence discipline.
type Ledger struct {
	mu     sync.Mutex
	orders map[string]domain.Order
	ttl    time.Duration
	pool   *jarpool.Pool
	store  *storage.Store
	logger observability.Logger
}

func New(store *storage.Store, pool *jarpool.Pool, logger observability.Logger, ttl time.Duration) *Ledger {
	l := &Ledger{
		orders: make(map[string]domain.Order),
		ttl:    ttl,
		pool:   pool,
		store:  store,
		logger: logger,
	}
	if err := store.Load(snapshotKey, &l.orders); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load order snapshot: ", err)
	}
	return l
}

// Create inserts the order under its reference. An existing reference is
// rejected with ErrDuplicateReference and never overwritten.
func (l *Ledger) Create(order domain.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.orders[order.Reference]; ok {
		return domain.ErrDuplicateReference
	}
	l.orders[order.Reference] = order
	l.persistLocked()
	return nil
}

func (l *Ledger) Get(reference string) (domain.Order, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	order, ok := l.orders[reference]
	return order, ok
}

// Remove deletes the order; removing an absent reference is a no-op.
func (l *Ledger) Remove(reference string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.orders[reference]; !ok {
		return
	}
	delete(l.orders, reference)
	l.persistLocked()
}

// SweepExpired removes every order strictly older than the TTL, releasing
// the associated jar first, and returns how many were removed.
func (l *Ledger) SweepExpired(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for ref, order := range l.orders {
		if now.Sub(order.CreatedAt) <= l.ttl {
			continue
		}
		if order.Jar != nil {
			l.pool.Release(order.Jar.ID)
		}
		delete(l.orders, ref)
		l.logger.WithField("reference", ref).
			WithField("chat_id", order.ChatID).
			Info("removing expired order")
		observability.OrdersExpired.Inc()
		n++
	}
	if n > 0 {
		l.persistLocked()
	}
	return n
}

func (l *Ledger) persistLocked() {
	if err := l.store.Save(snapshotKey, l.orders); err != nil {
		l.logger.Warn("failed to persist order snapshot: ", err)
	}
}
