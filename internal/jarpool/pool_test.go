package jarpool_test

import (
	"errors"
	"testing"
	"time"

	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/jarpool"
	"github.com/yevhenkap/tixjar/internal/observability"
	"github.com/yevhenkap/tixjar/internal/storage"
)

func testJars(n int) []domain.Jar {
	jars := make([]domain.Jar, 0, n)
	for i := 1; i <= n; i++ {
		jars = append(jars, domain.Jar{ID: i, URL: "https://send.example/jar"})
	}
	return jars
}

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestAssignLowestIDFirst(t *testing.T) {
	pool := jarpool.New(testJars(2), newStore(t), observability.NewLogger(), 12*time.Hour)
	now := time.Now()

	first, err := pool.Assign(now, 100)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.ID != 1 || !first.IsReserved || first.ReservedBy != 100 {
		t.Errorf("unexpected first jar %+v", first)
	}

	second, err := pool.Assign(now, 200)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.ID != 2 || second.ReservedBy != 200 {
		t.Errorf("unexpected second jar %+v", second)
	}
}

func TestAssignReclaimsOldestWhenExhausted(t *testing.T) {
	pool := jarpool.New(testJars(2), newStore(t), observability.NewLogger(), 12*time.Hour)
	t0 := time.Now()

	if _, err := pool.Assign(t0, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := pool.Assign(t0.Add(time.Minute), 200); err != nil {
		t.Fatal(err)
	}

	reclaimed, err := pool.Assign(t0.Add(2*time.Minute), 300)
	if err != nil {
		t.Fatalf("expected reclaim, got %v", err)
	}
	if reclaimed.ID != 1 {
		t.Errorf("expected oldest jar 1 reclaimed, got %d", reclaimed.ID)
	}
	if reclaimed.ReservedBy != 300 {
		t.Errorf("expected new holder 300, got %d", reclaimed.ReservedBy)
	}
}

func TestAssignEmptyPool(t *testing.T) {
	pool := jarpool.New(nil, newStore(t), observability.NewLogger(), 12*time.Hour)

	_, err := pool.Assign(time.Now(), 100)
	if !errors.Is(err, domain.ErrNoJarAvailable) {
		t.Errorf("expected ErrNoJarAvailable, got %v", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	pool := jarpool.New(testJars(1), newStore(t), observability.NewLogger(), 12*time.Hour)

	jar, err := pool.Assign(time.Now(), 100)
	if err != nil {
		t.Fatal(err)
	}

	pool.Release(jar.ID)
	pool.Release(jar.ID)

	snapshot := pool.Snapshot()
	if snapshot[0].IsReserved || snapshot[0].ReservedBy != 0 || snapshot[0].ReservedAt != nil {
		t.Errorf("expected fully cleared jar, got %+v", snapshot[0])
	}
}

func TestSweepExpiredBoundary(t *testing.T) {
	ttl := 12 * time.Hour
	pool := jarpool.New(testJars(1), newStore(t), observability.NewLogger(), ttl)
	t0 := time.Now()

	if _, err := pool.Assign(t0, 100); err != nil {
		t.Fatal(err)
	}

	// Age exactly TTL is kept; only strictly older reservations expire.
	if n := pool.SweepExpired(t0.Add(ttl)); n != 0 {
		t.Errorf("expected no expiry at the boundary, released %d", n)
	}
	if n := pool.SweepExpired(t0.Add(ttl + time.Second)); n != 1 {
		t.Errorf("expected one expiry past the boundary, released %d", n)
	}
	if pool.Snapshot()[0].IsReserved {
		t.Error("expected jar released after sweep")
	}
}

func TestAssignSweepsBeforeAssigning(t *testing.T) {
	ttl := 12 * time.Hour
	pool := jarpool.New(testJars(1), newStore(t), observability.NewLogger(), ttl)
	t0 := time.Now()

	if _, err := pool.Assign(t0, 100); err != nil {
		t.Fatal(err)
	}

	jar, err := pool.Assign(t0.Add(13*time.Hour), 200)
	if err != nil {
		t.Fatal(err)
	}
	if jar.ReservedBy != 200 {
		t.Errorf("expected expired reservation handed to chat 200, got %+v", jar)
	}
}

func TestReservationStateSurvivesRestart(t *testing.T) {
	store := newStore(t)
	pool := jarpool.New(testJars(2), store, observability.NewLogger(), 12*time.Hour)

	if _, err := pool.Assign(time.Now(), 100); err != nil {
		t.Fatal(err)
	}

	reloaded := jarpool.New(testJars(2), store, observability.NewLogger(), 12*time.Hour)
	snapshot := reloaded.Snapshot()
	if !snapshot[0].IsReserved || snapshot[0].ReservedBy != 100 {
		t.Errorf("expected reservation restored from snapshot, got %+v", snapshot[0])
	}
	if snapshot[1].IsReserved {
		t.Errorf("expected jar 2 free after restart, got %+v", snapshot[1])
	}
}
