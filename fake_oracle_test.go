package suncompass_test

import (
	"time"

	"github.com/thurmanmarka/suncompass"
	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

const day = 24 * time.Hour

// day0 is a UTC midnight; the fake sun's nadir.
var day0 = time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

// fakeSun is a sun on a fixed daily schedule whose azimuth sweeps 360° per
// day at a constant rate, due south at noon.
type fakeSun struct {
	noon      time.Duration // time of day of the transit (UTC)
	rise, set time.Duration // time of day of rise/set
	noRiseSet bool          // polar day
	skew      time.Duration // reported transits are this far off the true ones
	// dropWithin simulates oracles that lose a transit when queried less
	// than this long before it.
	dropWithin time.Duration
	reverse    bool // azimuth decreases with time
}

func newFakeSun() *fakeSun {
	return &fakeSun{noon: 12 * time.Hour, rise: 6 * time.Hour, set: 18 * time.Hour}
}

func (f *fakeSun) AzimuthAt(_ suncompass.Place, t time.Time) float64 {
	frac := float64(t.Sub(day0.Add(f.noon))) / float64(day)
	if f.reverse {
		frac = -frac
	}
	return timeutil.Normalize360(180 + 360*frac)
}

func (f *fakeSun) EventsNear(_ suncompass.Place, t time.Time, horizon time.Duration) suncompass.RawEvents {
	end := t.Add(horizon)
	transit := func(offset time.Duration) suncompass.RawEvent {
		ev := first(offset+f.skew, t, end)
		if ev.OK && f.dropWithin > 0 && ev.Time.Sub(t) < f.dropWithin {
			return suncompass.RawEvent{}
		}
		return ev
	}

	out := suncompass.RawEvents{
		Noon:  transit(f.noon),
		Nadir: transit(f.noon + 12*time.Hour),
	}
	if !f.noRiseSet {
		out.Rise = first(f.rise, t, end)
		out.Set = first(f.set, t, end)
	}
	return out
}

// first returns the first daily occurrence at time-of-day offset in [start, end).
func first(offset time.Duration, start, end time.Time) suncompass.RawEvent {
	at := day0.Add(offset)
	for at.Before(start) {
		at = at.Add(day)
	}
	for !at.Add(-day).Before(start) {
		at = at.Add(-day)
	}
	if !at.Before(end) {
		return suncompass.RawEvent{}
	}
	return suncompass.RawEvent{Time: at, OK: true}
}

// funcOracle lets a test script the oracle directly.
type funcOracle struct {
	azimuth func(t time.Time) float64
	events  func(t time.Time, horizon time.Duration) suncompass.RawEvents
	calls   int
}

func (f *funcOracle) AzimuthAt(_ suncompass.Place, t time.Time) float64 {
	f.calls++
	if f.azimuth == nil {
		return 180
	}
	return f.azimuth(t)
}

func (f *funcOracle) EventsNear(_ suncompass.Place, t time.Time, horizon time.Duration) suncompass.RawEvents {
	if f.events == nil {
		return suncompass.RawEvents{}
	}
	return f.events(t, horizon)
}

func at(h, m int) time.Time {
	return day0.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}
