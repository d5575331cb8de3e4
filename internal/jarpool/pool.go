package jarpool

import (
	"errors"
	"io/fs"
	"sort"
	"sync"
	"time"

	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/observability"
	"github.com/yevhenkap/tixjar/internal/storage"
)

const snapshotKey = "jars"

// Pool owns the fixed set of payment jars and their reservation state. Jar
// credentials come from configuration; reservation state is restored from
// the persisted snapshot on startup and written through on every mutation.
type Pool struct {
	mu     sync.Mutex
	jars   []*domain.Jar
	ttl    time.Duration
	store  *storage.Store
	logger observability.Logger
}

func New(jars []domain.Jar, store *storage.Store, logger observability.Logger, ttl time.Duration) *Pool {
	p := &Pool{
		ttl:    ttl,
		store:  store,
		logger: logger,
	}
	for i := range jars {
		j := jars[i]
		p.jars = append(p.jars, &j)
	}
	sort.Slice(p.jars, func(i, k int) bool { return p.jars[i].ID < p.jars[k].ID })
	p.restore()
	return p
}

// restore merges persisted reservation state onto the configured jars.
func (p *Pool) restore() {
	var saved []domain.Jar
	if err := p.store.Load(snapshotKey, &saved); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("failed to load jar pool snapshot: ", err)
		}
		return
	}
	byID := make(map[int]domain.Jar, len(saved))
	for _, j := range saved {
		byID[j.ID] = j
	}
	for _, j := range p.jars {
		if prev, ok := byID[j.ID]; ok {
			j.IsReserved = prev.IsReserved
			j.ReservedBy = prev.ReservedBy
			j.ReservedAt = prev.ReservedAt
		}
	}
}

// Assign leases a jar to chatID and returns a copy of it. Free jars are
// picked lowest-id first. When every jar is reserved, the jar with the
// oldest reservation is force-reassigned so the pool never becomes fully
// unavailable; the original holder is not notified and their confirmation
// will fail. Returns ErrNoJarAvailable only when the pool is empty.
//
// Expired reservations are swept opportunistically before the assignment.
func (p *Pool) Assign(now time.Time, chatID int64) (*domain.Jar, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sweepLocked(now)

	for _, j := range p.jars {
		if !j.IsReserved {
			p.reserveLocked(j, chatID, now)
			observability.JarAssignments.WithLabelValues("free").Inc()
			p.persistLocked()
			out := *j
			return &out, nil
		}
	}

	var oldest *domain.Jar
	for _, j := range p.jars {
		if j.ReservedAt == nil {
			continue
		}
		if oldest == nil || j.ReservedAt.Before(*oldest.ReservedAt) {
			oldest = j
		}
	}
	if oldest == nil {
		observability.JarAssignments.WithLabelValues("none").Inc()
		return nil, domain.ErrNoJarAvailable
	}

	p.logger.WithField("jar_id", oldest.ID).
		WithField("previous_chat", oldest.ReservedBy).
		WithField("new_chat", chatID).
		Warn("reclaiming oldest jar reservation before timeout")
	p.reserveLocked(oldest, chatID, now)
	observability.JarAssignments.WithLabelValues("reclaimed").Inc()
	p.persistLocked()
	out := *oldest
	return &out, nil
}

func (p *Pool) reserveLocked(j *domain.Jar, chatID int64, now time.Time) {
	at := now
	j.IsReserved = true
	j.ReservedBy = chatID
	j.ReservedAt = &at
}

// Release clears a jar's reservation. Releasing a free jar is a no-op.
func (p *Pool) Release(jarID int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, j := range p.jars {
		if j.ID != jarID {
			continue
		}
		if !j.IsReserved {
			return
		}
		p.releaseLocked(j)
		observability.JarReleases.Inc()
		p.persistLocked()
		return
	}
}

func (p *Pool) releaseLocked(j *domain.Jar) {
	j.IsReserved = false
	j.ReservedBy = 0
	j.ReservedAt = nil
}

// SweepExpired releases every reservation older than the pool TTL and
// returns how many were released. A reservation aged exactly TTL is kept;
// only strictly older ones expire.
func (p *Pool) SweepExpired(now time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.sweepLocked(now)
	if n > 0 {
		p.persistLocked()
	}
	return n
}

func (p *Pool) sweepLocked(now time.Time) int {
	n := 0
	for _, j := range p.jars {
		if !j.IsReserved || j.ReservedAt == nil {
			continue
		}
		if now.Sub(*j.ReservedAt) > p.ttl {
			p.logger.WithField("jar_id", j.ID).
				WithField("chat_id", j.ReservedBy).
				Info("releasing expired jar reservation")
			p.releaseLocked(j)
			observability.ReservationsExpired.Inc()
			n++
		}
	}
	return n
}

// Snapshot returns a copy of every jar in the pool.
func (p *Pool) Snapshot() []domain.Jar {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.Jar, 0, len(p.jars))
	for _, j := range p.jars {
		out = append(out, *j)
	}
	return out
}

// persistLocked writes the pool through to disk. A write failure is logged
// and the in-memory state stands.
func (p *Pool) persistLocked() {
	reserved := 0
	for _, j := range p.jars {
		if j.IsReserved {
			reserved++
		}
	}
	observability.JarsReserved.Set(float64(reserved))

	if err := p.store.Save(snapshotKey, p.jars); err != nil {
		p.logger.Warn("failed to persist jar pool snapshot: ", err)
	}
}
