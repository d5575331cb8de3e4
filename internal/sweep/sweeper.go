package sweep

import (
	"context"
	"time"

	"github.com/yevhenkap/tixjar/internal/jarpool"
	"github.com/yevhenkap/tixjar/internal/ledger"
	"github.com/yevhenkap/tixjar/internal/observability"
)

// Sweeper periodically expires stale orders and jar reservations. Orders go
// first so their jars are released before the pool pass looks at them.
type Sweeper struct {
	pool     *jarpool.Pool
	ledger   *ledger.Ledger
	interval time.Duration
	logger   observability.Logger
}

func New(pool *jarpool.Pool, led *ledger.Ledger, logger observability.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		pool:     pool,
		ledger:   led,
		interval: interval,
		logger:   logger,
	}
}

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			orders := s.ledger.SweepExpired(now)
			jars := s.pool.SweepExpired(now)
			if orders > 0 || jars > 0 {
				s.logger.WithField("orders", orders).
					WithField("reservations", jars).
					Info("sweep released stale state")
			}
		}
	}
}
