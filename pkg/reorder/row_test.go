package reorder

import (
	"math"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RowHeight = 50
	return cfg
}

func TestRowSettleConvergence(t *testing.T) {
	clock := newFakeClock()
	r := newRow("A", 0, testConfig())

	r.indexChanged(2, clock.Now())
	if r.State() != RowAnimating {
		t.Fatalf("state = %v, want animating", r.State())
	}

	clock.Advance(DefaultSettleDuration / 2)
	r.step(clock.Now())
	mid := r.Offset()
	if mid <= 0 || mid >= 100 {
		t.Errorf("mid-animation offset = %v, want strictly between 0 and 100", mid)
	}

	clock.Advance(DefaultSettleDuration / 2)
	if r.step(clock.Now()) {
		t.Error("still animating after the settle duration")
	}
	if r.Offset() != 100 || r.State() != RowSettled {
		t.Errorf("offset = %v state = %v, want 100 settled", r.Offset(), r.State())
	}
}

func TestRowRetargetsFromInFlightValue(t *testing.T) {
	clock := newFakeClock()
	r := newRow("A", 0, testConfig())

	r.indexChanged(4, clock.Now())
	clock.Advance(DefaultSettleDuration / 2)
	r.step(clock.Now())
	inFlight := r.Offset()

	r.indexChanged(1, clock.Now())
	if r.anim.from != inFlight {
		t.Errorf("retarget started from %v, want in-flight %v", r.anim.from, inFlight)
	}
	if r.Target() != 50 {
		t.Errorf("target = %v, want 50", r.Target())
	}

	clock.Advance(DefaultSettleDuration)
	r.step(clock.Now())
	if r.Offset() != 50 {
		t.Errorf("offset = %v, want 50", r.Offset())
	}
}

func TestRowLongPressGating(t *testing.T) {
	tests := []struct {
		name    string
		hold    time.Duration
		move    float64
		wantArm bool
	}{
		{name: "held long enough", hold: DefaultLongPress, wantArm: true},
		{name: "released early", hold: DefaultLongPress - time.Millisecond},
		{name: "small jitter", hold: DefaultLongPress, move: DefaultMoveTolerance / 2, wantArm: true},
		{name: "moved like a scroll", hold: DefaultLongPress, move: DefaultMoveTolerance + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			r := newRow("A", 0, testConfig())
			r.press(clock.Now())
			r.pointerMoved(tt.move)
			clock.Advance(tt.hold)

			if got := r.arm(clock.Now()); got != tt.wantArm {
				t.Fatalf("arm() = %v, want %v", got, tt.wantArm)
			}
			if got := r.activate(); got != tt.wantArm {
				t.Errorf("activate() = %v, want %v", got, tt.wantArm)
			}
		})
	}
}

func TestRowIgnoresOwnIndexWhileDragging(t *testing.T) {
	clock := newFakeClock()
	r := newRow("A", 0, testConfig())
	r.press(clock.Now())
	clock.Advance(DefaultLongPress)
	r.arm(clock.Now())
	r.activate()
	r.drag(80)

	r.indexChanged(1, clock.Now())
	if r.Offset() != 80 || r.State() != RowDragging {
		t.Errorf("dragging row reacted to index change: offset=%v state=%v", r.Offset(), r.State())
	}
	if !r.Raised() {
		t.Error("dragging row is not raised")
	}

	r.settle(1, clock.Now())
	if r.State() != RowAnimating || r.Raised() {
		t.Errorf("after settle state=%v raised=%v", r.State(), r.Raised())
	}
}

func TestEasing(t *testing.T) {
	for _, e := range []struct {
		name string
		fn   Easing
	}{{"linear", Linear}, {"ease", Ease}, {"ease-in-out", EaseInOut}} {
		if got := e.fn(0); math.Abs(got) > 1e-6 {
			t.Errorf("%s(0) = %v", e.name, got)
		}
		if got := e.fn(1); math.Abs(got-1) > 1e-6 {
			t.Errorf("%s(1) = %v", e.name, got)
		}
		prev := 0.0
		for i := 1; i <= 20; i++ {
			v := e.fn(float64(i) / 20)
			if v+1e-9 < prev {
				t.Errorf("%s not monotonic at %d/20: %v < %v", e.name, i, v, prev)
			}
			prev = v
		}
	}
	if got := EaseInOut(0.5); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("EaseInOut(0.5) = %v, want 0.5", got)
	}
}
