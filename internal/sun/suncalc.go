package sun

import (
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

// SunCalc wraps the suncalc port of the suncalc.js position formulas.
type SunCalc struct{}

func (SunCalc) Horizontal(lat, lon float64, t time.Time) Horizontal {
	pos := suncalc.GetPosition(t, lat, lon)

	// suncalc reports azimuth in radians from south, positive toward west.
	return Horizontal{
		Azimuth:  timeutil.Normalize360(timeutil.Rad2Deg(pos.Azimuth) + 180),
		Altitude: timeutil.Rad2Deg(pos.Altitude),
	}
}
