package reorder

import (
	"math"
	"time"
)

// RowState is the gesture/animation state of a single row
type RowState int

const (
	RowSettled RowState = iota
	RowAnimating
	RowArmed
	RowDragging
)

// String returns a display name for the state
func (s RowState) String() string {
	switch s {
	case RowAnimating:
		return "animating"
	case RowArmed:
		return "armed"
	case RowDragging:
		return "dragging"
	default:
		return "settled"
	}
}

// Row is the controller for one visible row. It owns the row's live vertical
// offset and reacts to index changes published by the list's store.
type Row struct {
	id     string
	cfg    Config
	state  RowState
	offset float64
	target float64
	anim   tween
	index  int

	// pending long-press
	pressed bool
	pressAt time.Time
	moved   float64

	unsubscribe func()
}

func newRow(id string, index int, cfg Config) *Row {
	off := float64(index) * cfg.RowHeight
	return &Row{id: id, cfg: cfg, index: index, offset: off, target: off}
}

// ID returns the row identifier
func (r *Row) ID() string { return r.id }

// State returns the current state
func (r *Row) State() RowState { return r.state }

// Offset returns the live vertical offset
func (r *Row) Offset() float64 { return r.offset }

// Target returns the offset the row is settling towards
func (r *Row) Target() float64 { return r.target }

// Index returns the last order index the row observed
func (r *Row) Index() int { return r.index }

// Raised reports whether the row paints above all others
func (r *Row) Raised() bool {
	return r.state == RowArmed || r.state == RowDragging
}

// Dragging reports whether the pointer drives this row
func (r *Row) Dragging() bool { return r.state == RowDragging }

// Pressed reports whether a long-press is pending on this row
func (r *Row) Pressed() bool { return r.pressed }

// indexChanged retargets the settle animation. Armed and dragging rows ignore
// their own notifications; the pointer owns their offset.
func (r *Row) indexChanged(index int, now time.Time) {
	r.index = index
	if r.Raised() {
		return
	}
	r.animateTo(float64(index)*r.cfg.RowHeight, now)
}

// animateTo starts a settle animation from wherever the row is now
func (r *Row) animateTo(target float64, now time.Time) {
	if r.state == RowAnimating && r.target == target {
		return
	}
	r.step(now)
	r.target = target
	if r.offset == target {
		r.state = RowSettled
		return
	}
	r.anim = newTween(r.offset, target, now, r.cfg.SettleDuration, r.cfg.easing())
	r.state = RowAnimating
}

// step advances the animation; it returns true while still animating
func (r *Row) step(now time.Time) bool {
	if r.state != RowAnimating {
		return false
	}
	v, done := r.anim.at(now)
	r.offset = v
	if done {
		r.offset = r.target
		r.state = RowSettled
		return false
	}
	return true
}

// press starts the long-press timer
func (r *Row) press(now time.Time) {
	if r.Raised() {
		return
	}
	r.pressed = true
	r.pressAt = now
	r.moved = 0
}

// pointerMoved accumulates movement during a pending press. Moving past the
// tolerance cancels the press so the gesture stays a scroll.
func (r *Row) pointerMoved(dist float64) {
	if !r.pressed || r.Raised() {
		return
	}
	r.moved += math.Abs(dist)
	if r.moved > r.cfg.MoveTolerance {
		r.pressed = false
	}
}

// arm transitions to Armed if the press has been held long enough
func (r *Row) arm(now time.Time) bool {
	if r.state == RowArmed {
		return true
	}
	if !r.pressed || now.Sub(r.pressAt) < r.cfg.LongPress {
		return false
	}
	r.step(now)
	r.pressed = false
	r.state = RowArmed
	return true
}

// activate is the guarded pan transition: only an armed row starts dragging
func (r *Row) activate() bool {
	if r.state != RowArmed {
		return false
	}
	r.state = RowDragging
	return true
}

// drag sets the pointer-driven offset
func (r *Row) drag(offset float64) {
	if r.state == RowDragging {
		r.offset = offset
	}
}

// settle ends pointer control and animates to the row's index
func (r *Row) settle(index int, now time.Time) {
	r.index = index
	r.pressed = false
	r.state = RowSettled
	r.animateTo(float64(index)*r.cfg.RowHeight, now)
}

// release clears a pending press or an arm that never became a drag
func (r *Row) release(now time.Time) {
	r.pressed = false
	if r.state == RowArmed {
		r.settle(r.index, now)
	}
}
