package sun

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/suncompass/internal/solver"
	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

const (
	// DefaultStep is the sampling interval used to bracket transits.
	DefaultStep = 30 * time.Minute
	// DefaultTolerance is the bisection tolerance for transits.
	DefaultTolerance = 30 * time.Second

	// slopeHalfSpan is half the interval over which the altitude slope is taken.
	slopeHalfSpan = time.Minute
)

// Events holds the first occurrence of each event type in a search window.
// A type that does not occur in the window has OK == false.
type Events struct {
	Rise  solver.Result
	Noon  solver.Result
	Set   solver.Result
	Nadir solver.Result
}

// Oracle answers position and event-time queries for the Sun using a
// position Model for azimuth and transits, and go-sunrise for rise/set.
type Oracle struct {
	Model     Model
	Step      time.Duration
	Tolerance time.Duration
}

// NewOracle returns an Oracle over m with the default search parameters.
func NewOracle(m Model) *Oracle {
	return &Oracle{
		Model:     m,
		Step:      DefaultStep,
		Tolerance: DefaultTolerance,
	}
}

// Azimuth returns the Sun's azimuth in degrees [0, 360) at t.
func (o *Oracle) Azimuth(lat, lon float64, t time.Time) float64 {
	return o.Model.Horizontal(lat, lon, t).Azimuth
}

// EventsNear finds the first rise, noon, set and nadir in [start, start+horizon).
//
// Noon and nadir are the maximum and minimum of the altitude curve; their
// times are only as good as Tolerance and the model's azimuth is generally
// not exactly on the meridian there.
func (o *Oracle) EventsNear(lat, lon float64, start time.Time, horizon time.Duration) Events {
	end := start.Add(horizon)

	altFunc := func(t time.Time) float64 {
		return o.Model.Horizontal(lat, lon, t).Altitude
	}
	slope := solver.Slope(altFunc, slopeHalfSpan)

	var ev Events
	ev.Noon = within(solver.FindCrossing(slope, start, end, 0, solver.CrossingDown, o.Step, o.Tolerance), start, end)
	ev.Nadir = within(solver.FindCrossing(slope, start, end, 0, solver.CrossingUp, o.Step, o.Tolerance), start, end)
	ev.Rise, ev.Set = riseSet(lat, lon, start, end)
	return ev
}

// riseSet scans the UTC dates around [start, end) and returns the first
// sunrise and sunset in the window. go-sunrise reports zero times for days
// without a rise or set (polar day and night).
func riseSet(lat, lon float64, start, end time.Time) (rise, set solver.Result) {
	for _, d := range timeutil.UTCDates(start, end, 24*time.Hour) {
		r, s := sunrise.SunriseSunset(lat, lon, d.Year(), d.Month(), d.Day())
		if !rise.OK && !r.IsZero() && inWindow(r, start, end) {
			rise = solver.Result{Time: r, OK: true}
		}
		if !set.OK && !s.IsZero() && inWindow(s, start, end) {
			set = solver.Result{Time: s, OK: true}
		}
		if rise.OK && set.OK {
			break
		}
	}
	return rise, set
}

func within(r solver.Result, start, end time.Time) solver.Result {
	if !r.OK || !inWindow(r.Time, start, end) {
		return solver.Result{OK: false}
	}
	return r
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
