package reorder

import (
	"errors"
	"testing"
)

func newTestCoordinator(t *testing.T, ids ...string) (*Coordinator, *Store) {
	t.Helper()
	table, err := Build(entries(ids...))
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(table)
	scroll := NewScrollSync(1000, len(ids), 50, nil)
	return NewCoordinator(store, scroll, 50, nil), store
}

func TestCoordinatorSessionLifecycle(t *testing.T) {
	c, _ := newTestCoordinator(t, "A", "B", "C")

	if _, err := c.Update(10); !errors.Is(err, ErrNoSession) {
		t.Errorf("Update without session err = %v", err)
	}
	if _, _, err := c.End(); !errors.Is(err, ErrNoSession) {
		t.Errorf("End without session err = %v", err)
	}
	if _, err := c.Begin("Z", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Begin unknown row err = %v", err)
	}

	s, err := c.Begin("A", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Begin("B", 50); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second Begin err = %v", err)
	}

	c.Update(120)
	if s.Swaps != 1 {
		t.Errorf("swaps = %d, want 1", s.Swaps)
	}
	got, table, err := c.End()
	if err != nil || got != s {
		t.Fatalf("End() = %v, %v", got, err)
	}
	if idx, _ := table.IndexOf("A"); idx != 2 {
		t.Errorf("A ended at %d, want 2", idx)
	}
	if _, ok := c.Session(); ok {
		t.Error("session still open after End")
	}
}

func TestCoordinatorUpdateIsIdempotent(t *testing.T) {
	c, store := newTestCoordinator(t, "A", "B", "C", "D")
	c.Begin("B", 50)

	c.Update(60)
	first := store.Load()
	c.Update(60)
	if !store.Load().Equal(first) {
		t.Errorf("repeating an update changed the table: %v -> %v", first, store.Load())
	}
}

func TestCoordinatorDetectsStaleSession(t *testing.T) {
	c, store := newTestCoordinator(t, "A", "B")
	c.Begin("A", 0)

	store.Replace(store.Load())
	if _, err := c.Update(60); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("Update after rebuild err = %v", err)
	}
	if _, ok := c.Session(); ok {
		t.Error("stale session not dropped")
	}
}
