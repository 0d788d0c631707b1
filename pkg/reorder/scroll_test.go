package reorder

import (
	"testing"

	"pgregory.net/rapid"
)

func TestAutoScroll(t *testing.T) {
	tests := []struct {
		name       string
		viewport   float64
		rows       int
		offset     float64
		inset      float64
		live       float64
		wantDelta  float64
		wantOffset float64
	}{
		{name: "inside window", viewport: 300, rows: 10, offset: 0, live: 150},
		{name: "below bottom edge", viewport: 300, rows: 10, offset: 0, live: 320, wantDelta: 20, wantOffset: 20},
		{name: "bottom capped by content end", viewport: 300, rows: 10, offset: 190, live: 600, wantDelta: 10, wantOffset: 200},
		{name: "at content end", viewport: 300, rows: 10, offset: 200, live: 700, wantOffset: 200},
		{name: "above top edge", viewport: 300, rows: 10, offset: 100, live: 60, wantDelta: -40, wantOffset: 60},
		{name: "top capped at zero", viewport: 300, rows: 10, offset: 30, live: -100, wantDelta: -30},
		{name: "at top already", viewport: 300, rows: 10, offset: 0, live: -20},
		{name: "content shorter than viewport", viewport: 300, rows: 3, offset: 0, live: 400},
		{name: "inset bottom edge", viewport: 300, rows: 10, offset: 0, inset: 50, live: 260, wantDelta: 10, wantOffset: 10},
		{name: "inset top edge", viewport: 300, rows: 10, offset: 100, inset: 50, live: 140, wantDelta: -10, wantOffset: 90},
		{name: "oversized inset capped at half viewport", viewport: 60, rows: 10, offset: 100, inset: 50, live: 125, wantDelta: -5, wantOffset: 95},
		{name: "oversized inset at center", viewport: 60, rows: 10, offset: 100, inset: 50, live: 130, wantOffset: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var surface []float64
			s := NewScrollSync(tt.viewport, tt.rows, 50, func(off float64) { surface = append(surface, off) })
			s.SetEdgeInset(tt.inset)
			s.OnScroll(tt.offset)

			delta := s.AutoScroll(tt.live)
			if delta != tt.wantDelta {
				t.Errorf("delta = %v, want %v", delta, tt.wantDelta)
			}
			if s.Offset() != tt.wantOffset {
				t.Errorf("offset = %v, want %v", s.Offset(), tt.wantOffset)
			}
			if delta != 0 {
				if len(surface) != 1 || surface[0] != s.Offset() {
					t.Errorf("surface saw %v, tracked offset %v", surface, s.Offset())
				}
			} else if len(surface) != 0 {
				t.Errorf("surface scrolled without a delta: %v", surface)
			}
		})
	}
}

func TestScrollToClamps(t *testing.T) {
	s := NewScrollSync(300, 10, 50, nil)
	if got := s.ScrollTo(-10); got != 0 {
		t.Errorf("ScrollTo(-10) = %v", got)
	}
	if got := s.ScrollTo(1000); got != 200 {
		t.Errorf("ScrollTo(1000) = %v, want 200", got)
	}
	s.SetRowCount(4)
	if s.Offset() != 0 {
		t.Errorf("offset after shrinking content = %v, want 0", s.Offset())
	}
	if s.ContentHeight() != 200 {
		t.Errorf("ContentHeight() = %v, want 200", s.ContentHeight())
	}
}

func TestPropertyAutoScrollBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		viewport := rapid.Float64Range(1, 1000).Draw(t, "viewport")
		rows := rapid.IntRange(0, 100).Draw(t, "rows")
		s := NewScrollSync(viewport, rows, 50, nil)
		s.SetEdgeInset(rapid.Float64Range(0, 100).Draw(t, "inset"))
		s.OnScroll(rapid.Float64Range(-100, 6000).Draw(t, "offset"))

		for i := 0; i < 10; i++ {
			s.AutoScroll(rapid.Float64Range(-2000, 8000).Draw(t, "live"))
			if s.Offset() < 0 || s.Offset() > s.MaxScroll() {
				t.Fatalf("offset %v outside [0, %v]", s.Offset(), s.MaxScroll())
			}
		}
	})
}
