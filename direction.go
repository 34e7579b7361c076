package suncompass

import (
	"time"

	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

// DirectionSample is how far ahead the second azimuth sample is taken.
const DirectionSample = time.Minute

// ResolveAzimuth returns the sun's azimuth at now and whether it is
// increasing, judged from a second sample DirectionSample later. The
// difference is taken the short way round, so a sun crossing north from
// 359° to 1° counts as clockwise.
func ResolveAzimuth(o Oracle, p Place, now time.Time) SunAzimuthInfo {
	a0 := o.AzimuthAt(p, now)
	a1 := o.AzimuthAt(p, now.Add(DirectionSample))

	return SunAzimuthInfo{
		Azimuth:   float32(a0),
		Clockwise: timeutil.SignedDelta(a0, a1) >= 0,
	}
}
