package reorder

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

type harness struct {
	list    *List
	clock   *fakeClock
	reports []map[string]int
}

func newHarness(t *testing.T, ids []string, viewport float64) *harness {
	t.Helper()
	h := &harness{clock: newFakeClock()}
	l, err := New(testConfig(), entries(ids...),
		WithClock(h.clock.Now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithViewportHeight(viewport),
		WithReorderHandler(func(m map[string]int) { h.reports = append(h.reports, m) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.list = l
	return h
}

// pickUp presses id, holds past the long-press threshold and starts the pan.
func (h *harness) pickUp(t *testing.T, id string) {
	t.Helper()
	if !h.list.Press(id) {
		t.Fatalf("Press(%s) refused", id)
	}
	h.clock.Advance(DefaultLongPress)
	if !h.list.LongPress(id) {
		t.Fatalf("LongPress(%s) did not arm", id)
	}
	if !h.list.PanStart(id) {
		t.Fatalf("PanStart(%s) declined", id)
	}
}

func assertTable(t *testing.T, table Table, want map[string]int) {
	t.Helper()
	got := table.Mapping()
	if len(got) != len(want) {
		t.Fatalf("table = %v, want %v", got, want)
	}
	for id, idx := range want {
		if got[id] != idx {
			t.Fatalf("table = %v, want %v", got, want)
		}
	}
}

func TestBasicDragSwap(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, 1000)
	h.pickUp(t, "A")

	live, err := h.list.PanUpdate("A", 75)
	if err != nil {
		t.Fatal(err)
	}
	if live != 75 {
		t.Errorf("live = %v, want 75", live)
	}
	assertTable(t, h.list.Table(), map[string]int{"A": 1, "B": 0, "C": 2})

	// B bubbles up into the vacated slot
	b, _ := h.list.Row("B")
	if b.State() != RowAnimating || b.Target() != 0 {
		t.Errorf("B state=%v target=%v, want animating to 0", b.State(), b.Target())
	}
	a, _ := h.list.Row("A")
	if a.Offset() != 75 || !a.Dragging() {
		t.Errorf("A offset=%v dragging=%v", a.Offset(), a.Dragging())
	}

	if err := h.list.PanEnd("A"); err != nil {
		t.Fatal(err)
	}
	if len(h.reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(h.reports))
	}
	assertTable(t, h.list.Table(), h.reports[0])

	h.clock.Advance(DefaultSettleDuration)
	if h.list.Step() {
		t.Error("rows still animating after the settle duration")
	}
	if a.Offset() != 50 || b.Offset() != 0 {
		t.Errorf("settled offsets A=%v B=%v, want 50 and 0", a.Offset(), b.Offset())
	}
}

func TestDragDownAcrossSeveralRows(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C", "D"}, 1000)
	h.pickUp(t, "A")

	for _, tr := range []float64{30, 60, 110, 160} {
		if _, err := h.list.PanUpdate("A", tr); err != nil {
			t.Fatal(err)
		}
	}
	assertTable(t, h.list.Table(), map[string]int{"B": 0, "C": 1, "D": 2, "A": 3})
}

func TestLookupMissSkipsSwap(t *testing.T) {
	h := newHarness(t, []string{"A", "B"}, 1000)
	h.pickUp(t, "B")

	before := h.list.Table()
	if _, err := h.list.PanUpdate("B", 200); err != nil {
		t.Fatal(err)
	}
	if !h.list.Table().Equal(before) {
		t.Errorf("swap happened for an unoccupied index: %v", h.list.Table())
	}
	if _, err := h.list.PanUpdate("B", -30); err != nil {
		t.Fatal(err)
	}
	assertTable(t, h.list.Table(), map[string]int{"A": 1, "B": 0})
}

func TestIdempotentReporting(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, 1000)
	before := h.list.Table().Mapping()

	h.pickUp(t, "B")
	h.list.PanUpdate("B", 10)
	h.list.PanUpdate("B", 5)
	if err := h.list.PanEnd("B"); err != nil {
		t.Fatal(err)
	}

	if len(h.reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(h.reports))
	}
	for id, idx := range before {
		if h.reports[0][id] != idx {
			t.Fatalf("report %v differs from pre-drag %v", h.reports[0], before)
		}
	}
}

func TestEdgeAutoScrollShiftsAnchor(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	h := newHarness(t, ids, 300)
	if h.list.Scroll().ContentHeight() != 500 {
		t.Fatalf("content height = %v", h.list.Scroll().ContentHeight())
	}
	h.pickUp(t, "A")

	live, err := h.list.PanUpdate("A", 320)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := h.list.Session()
	if got := h.list.Scroll().Offset(); got != 20 {
		t.Errorf("scroll offset = %v, want 20", got)
	}
	if s.Anchor != 20 {
		t.Errorf("anchor = %v, want 20", s.Anchor)
	}
	if live != 340 {
		t.Errorf("live = %v, want 340", live)
	}

	// Same pointer position again: the row stays put relative to the viewport.
	live2, _ := h.list.PanUpdate("A", 320)
	if live2-h.list.Scroll().Offset() != live-20 {
		t.Errorf("row jumped on screen: %v vs %v", live2-h.list.Scroll().Offset(), live-20)
	}
}

func TestSingleActiveDrag(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, 1000)
	h.pickUp(t, "A")

	if h.list.Press("B") {
		t.Error("second row accepted a press during a drag")
	}
	if h.list.PanStart("B") {
		t.Error("second row started a pan during a drag")
	}

	dragging := 0
	for _, r := range h.list.Rows() {
		if r.Dragging() {
			dragging++
		}
	}
	if dragging != 1 {
		t.Errorf("%d rows dragging, want 1", dragging)
	}
	if id, ok := h.list.Dragging(); !ok || id != "A" {
		t.Errorf("Dragging() = %q, %v", id, ok)
	}
}

func TestPanDeclinedBeforeArming(t *testing.T) {
	h := newHarness(t, []string{"A", "B"}, 1000)
	h.list.Press("A")
	h.clock.Advance(DefaultLongPress / 2)

	if h.list.LongPress("A") {
		t.Fatal("armed before the threshold")
	}
	if h.list.PanStart("A") {
		t.Fatal("pan activated on an unarmed row")
	}
	h.list.Release("A")
	if h.list.Busy() {
		t.Error("list still busy after release")
	}
}

func TestMembershipChangeAbortsDrag(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C", "D"}, 1000)
	h.pickUp(t, "C")
	h.list.PanUpdate("C", -60)

	if err := h.list.SetRows([]Entry{{ID: "A", Index: 0}, {ID: "C", Index: 1}, {ID: "D", Index: 2}}); err != nil {
		t.Fatal(err)
	}
	if _, ok := h.list.Session(); ok {
		t.Fatal("session survived a membership change")
	}
	if _, err := h.list.PanUpdate("C", -100); !IsStale(err) {
		t.Errorf("PanUpdate after abort err = %v, want stale", err)
	}
	if err := h.list.PanEnd("C"); !errors.Is(err, ErrStaleSession) {
		t.Errorf("PanEnd after abort err = %v, want stale", err)
	}
	if len(h.reports) != 0 {
		t.Errorf("aborted session reported %v", h.reports)
	}
	if _, ok := h.list.Row("B"); ok {
		t.Error("removed row still registered")
	}
	assertTable(t, h.list.Table(), map[string]int{"A": 0, "C": 1, "D": 2})

	c, _ := h.list.Row("C")
	if c.Raised() {
		t.Error("aborted row still raised")
	}
	h.clock.Advance(DefaultSettleDuration)
	h.list.Step()
	if c.Offset() != 50 {
		t.Errorf("C offset = %v, want 50", c.Offset())
	}
}

func TestStaleSessionReleasesRow(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, 1000)
	h.pickUp(t, "A")

	// A rebuild that bypasses SetRows leaves the session stale
	h.list.store.Replace(h.list.Table())

	if _, err := h.list.PanUpdate("A", 60); !IsStale(err) {
		t.Fatalf("PanUpdate err = %v, want stale", err)
	}
	a, _ := h.list.Row("A")
	if a.Raised() || a.Pressed() {
		t.Fatalf("A state = %v after stale update, want released", a.State())
	}
	if h.list.Busy() {
		t.Fatal("list still busy after stale update")
	}
	if !h.list.Press("B") {
		t.Fatal("Press(B) refused after stale update")
	}
	if err := h.list.PanEnd("A"); !IsStale(err) {
		t.Errorf("PanEnd err = %v, want stale", err)
	}
	if len(h.reports) != 0 {
		t.Errorf("stale session reported %v", h.reports)
	}
}

func TestSubscribeObservesSwaps(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, 1000)
	var seen []int
	cancel := h.list.Subscribe("B", func(i int) { seen = append(seen, i) })
	defer cancel()

	h.pickUp(t, "A")
	if _, err := h.list.PanUpdate("A", 75); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != 0 {
		t.Errorf("B notifications = %v, want [0]", seen)
	}
}

func TestSetRowsRejectsNonDense(t *testing.T) {
	h := newHarness(t, []string{"A", "B"}, 1000)
	err := h.list.SetRows([]Entry{{ID: "A", Index: 0}, {ID: "B", Index: 2}})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("err = %v, want ErrInvariantViolation", err)
	}
	assertTable(t, h.list.Table(), map[string]int{"A": 0, "B": 1})
}

func TestRowAtPrefersRaisedRow(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, 1000)
	h.pickUp(t, "A")
	h.list.PanUpdate("A", 60) // A overlaps B's old slot

	r, ok := h.list.RowAt(70)
	if !ok || r.ID() != "A" {
		t.Errorf("RowAt(70) = %v, want A", r)
	}
	rows := h.list.Rows()
	if rows[len(rows)-1].ID() != "A" {
		t.Errorf("raised row not painted last")
	}
}
