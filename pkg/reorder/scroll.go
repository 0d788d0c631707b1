package reorder

import "math"

// ScrollSurface moves the underlying scrollable view to offset
type ScrollSurface func(offset float64)

// ScrollSync tracks the scroll offset of the list viewport. ScrollTo updates
// the surface and the tracked offset in the same call so the drag coordinator
// never computes against a stale offset.
type ScrollSync struct {
	offset    float64
	viewport  float64
	rows      int
	rowHeight float64
	inset     float64
	surface   ScrollSurface
}

// NewScrollSync creates a synchronizer for rows of rowHeight in a viewport
func NewScrollSync(viewport float64, rows int, rowHeight float64, surface ScrollSurface) *ScrollSync {
	return &ScrollSync{viewport: viewport, rows: rows, rowHeight: rowHeight, surface: surface}
}

// Offset returns the tracked scroll offset
func (s *ScrollSync) Offset() float64 { return s.offset }

// ViewportHeight returns the visible height
func (s *ScrollSync) ViewportHeight() float64 { return s.viewport }

// ContentHeight returns rows × row height
func (s *ScrollSync) ContentHeight() float64 {
	return float64(s.rows) * s.rowHeight
}

// MaxScroll returns the largest valid offset
func (s *ScrollSync) MaxScroll() float64 {
	return math.Max(0, s.ContentHeight()-s.viewport)
}

// SetViewportHeight updates the visible height and re-clamps the offset
func (s *ScrollSync) SetViewportHeight(h float64) {
	s.viewport = math.Max(0, h)
	s.clampTracked()
}

// SetRowCount updates the number of rows and re-clamps the offset
func (s *ScrollSync) SetRowCount(n int) {
	s.rows = n
	s.clampTracked()
}

// SetEdgeInset shrinks the auto-scroll window by inset on both edges
func (s *ScrollSync) SetEdgeInset(inset float64) {
	s.inset = math.Max(0, inset)
}

// SetSurface replaces the scroll-control primitive
func (s *ScrollSync) SetSurface(fn ScrollSurface) {
	s.surface = fn
}

// ScrollTo moves to offset clamped to [0, MaxScroll] and returns the applied offset
func (s *ScrollSync) ScrollTo(offset float64) float64 {
	s.offset = clamp(offset, 0, s.MaxScroll())
	if s.surface != nil {
		s.surface(s.offset)
	}
	return s.offset
}

// ScrollBy scrolls relative to the current offset and returns the applied delta
func (s *ScrollSync) ScrollBy(delta float64) float64 {
	before := s.offset
	return s.ScrollTo(before+delta) - before
}

// OnScroll records an offset reported by the surface itself
func (s *ScrollSync) OnScroll(offset float64) {
	s.offset = clamp(offset, 0, s.MaxScroll())
}

// AutoScroll applies the edge rule for a dragged row at live and returns the
// signed scroll delta (negative = up). Zero means no adjustment.
func (s *ScrollSync) AutoScroll(live float64) float64 {
	// An inset wider than half the viewport would put the edges past each other
	inset := math.Min(s.inset, s.viewport/2)
	lower := s.offset + inset
	upper := s.offset + s.viewport - inset

	var delta float64
	switch {
	case live < lower:
		delta = -math.Min(lower-live, s.offset)
	case live > upper:
		delta = math.Max(0, math.Min(live-upper, s.MaxScroll()-s.offset))
	}
	if delta == 0 {
		return 0
	}
	return s.ScrollBy(delta)
}

func (s *ScrollSync) clampTracked() {
	s.offset = clamp(s.offset, 0, s.MaxScroll())
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
