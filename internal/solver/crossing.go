package solver

import (
	"time"
)

// Func returns a scalar quantity (degrees, or degrees per interval) at time t.
type Func func(t time.Time) float64

// Direction describes whether we are looking for a rising or falling crossing.
type Direction int

const (
	// CrossingUp means the value is increasing through the target (rise, nadir slope).
	CrossingUp Direction = iota
	// CrossingDown means the value is decreasing through the target (set, noon slope).
	CrossingDown
)

// Result holds the output of a crossing search.
type Result struct {
	Time time.Time // approximate time of the event
	OK   bool      // true if an event was found
}

// FindCrossing searches for the first time in [start, end] where f crosses
// target in the given direction. It samples the interval every step and
// bisects the first bracket found down to tol.
func FindCrossing(f Func, start, end time.Time, target float64, dir Direction, step, tol time.Duration) Result {
	if !start.Before(end) || step <= 0 {
		return Result{OK: false}
	}

	var (
		prevT = start
		prevV = f(prevT) - target
	)

	for t := start.Add(step); ; t = t.Add(step) {
		if t.After(end) {
			t = end
		}
		v := f(t) - target

		if hasCrossing(prevV, v, dir) {
			// We have a bracket [prevT, t]
			return bisect(f, prevT, t, target, dir, tol)
		}

		if !t.Before(end) {
			break
		}
		prevT, prevV = t, v
	}

	// No crossing found.
	return Result{OK: false}
}

// Slope returns a Func giving the change of f across [t-half, t+half].
// Its downward zero crossing is a maximum of f, its upward one a minimum.
func Slope(f Func, half time.Duration) Func {
	return func(t time.Time) float64 {
		return f(t.Add(half)) - f(t.Add(-half))
	}
}

func hasCrossing(a1, a2 float64, dir Direction) bool {
	switch dir {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		// Generic sign change
		return a1*a2 <= 0
	}
}

func bisect(f Func, a, b time.Time, target float64, dir Direction, tol time.Duration) Result {
	altA := f(a) - target

	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		altM := f(mid) - target

		if hasCrossing(altA, altM, dir) {
			b = mid
		} else {
			a = mid
			altA = altM
		}
	}

	return Result{
		Time: a.Add(b.Sub(a) / 2),
		OK:   true,
	}
}
