package reorder

import (
	"math"
	"time"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing
func Linear(t float64) float64 { return t }

// Ease is the CSS "ease-in" shaped curve, cubic-bezier(0.42, 0, 1, 1).
var Ease = CubicBezier(0.42, 0, 1, 1)

// EaseInOut applies Ease symmetrically: accelerate through the first half and
// decelerate through the second. It is the settle curve for rows.
var EaseInOut = InOut(Ease)

// InOut makes an easing symmetric around t=0.5
func InOut(e Easing) Easing {
	return func(t float64) float64 {
		if t < 0.5 {
			return e(t*2) / 2
		}
		return 1 - e((1-t)*2)/2
	}
}

// CubicBezier returns an easing for the curve through (0,0), (x1,y1), (x2,y2), (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(u float64) float64 { return ((ax*u+bx)*u + cx) * u }
	sampleY := func(u float64) float64 { return ((ay*u+by)*u + cy) * u }
	slopeX := func(u float64) float64 { return (3*ax*u+2*bx)*u + cx }

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		// Newton-Raphson, falling back to bisection when the slope flattens.
		u := t
		for i := 0; i < 8; i++ {
			dx := sampleX(u) - t
			if math.Abs(dx) < 1e-6 {
				return sampleY(u)
			}
			d := slopeX(u)
			if math.Abs(d) < 1e-6 {
				break
			}
			u -= dx / d
		}
		lo, hi := 0.0, 1.0
		u = t
		for i := 0; i < 32; i++ {
			x := sampleX(u)
			if math.Abs(x-t) < 1e-6 {
				break
			}
			if x < t {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return sampleY(u)
	}
}

// tween animates a value from one offset to another over a fixed duration.
type tween struct {
	from, to float64
	start    time.Time
	duration time.Duration
	easing   Easing
}

func newTween(from, to float64, start time.Time, d time.Duration, e Easing) tween {
	if e == nil {
		e = EaseInOut
	}
	return tween{from: from, to: to, start: start, duration: d, easing: e}
}

// at returns the value at now and whether the animation has finished
func (tw tween) at(now time.Time) (float64, bool) {
	if tw.duration <= 0 {
		return tw.to, true
	}
	elapsed := now.Sub(tw.start)
	if elapsed >= tw.duration {
		return tw.to, true
	}
	if elapsed <= 0 {
		return tw.from, false
	}
	p := tw.easing(float64(elapsed) / float64(tw.duration))
	return tw.from + (tw.to-tw.from)*p, false
}
