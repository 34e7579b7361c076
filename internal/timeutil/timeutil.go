package timeutil

import (
	"math"
	"time"
)

// -----------------------------
// Time relative to J2000
// -----------------------------

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
//
// This is an approximation suitable for low/medium-precision astronomy.
func DaysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Hours() / 24.0
}

// UTCDates returns the UTC calendar dates (at midnight) touched by
// [start-pad, end+pad], in ascending order.
func UTCDates(start, end time.Time, pad time.Duration) []time.Time {
	first := start.Add(-pad).UTC()
	last := end.Add(pad).UTC()

	d := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	var out []time.Time
	for !d.After(last) {
		out = append(out, d)
		d = d.AddDate(0, 0, 1)
	}
	return out
}

// ScaleDuration multiplies d by f, rounding to the nearest nanosecond.
// ok is false when the result is not finite or does not fit a Duration.
func ScaleDuration(d time.Duration, f float64) (time.Duration, bool) {
	v := math.Round(float64(d) * f)
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= math.MaxInt64 {
		return 0, false
	}
	return time.Duration(v), true
}

// -----------------------------
// Basic degree/radian helpers.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod can hand back 360 for tiny negative inputs after the shift.
	if d >= 360.0 {
		d = 0
	}
	return d
}

// SignedDelta returns the smallest signed angle (degrees) that takes from
// to to, in [-180, 180).
func SignedDelta(from, to float64) float64 {
	return Normalize360(to-from+180.0) - 180.0
}
