package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

// Approx is the low-precision position model: a two-term equation of
// center for the Sun's ecliptic longitude and a linear sidereal time.
// Good to a few arcminutes, no refraction.
type Approx struct{}

func (Approx) Horizontal(lat, lon float64, t time.Time) Horizontal {
	d := timeutil.DaysSinceJ2000(t)
	ra, dec := approxEquatorial(d)

	gmst := 280.46061837 + 360.98564736629*d
	ha := timeutil.Deg2Rad(timeutil.Normalize360(gmst + lon - ra)) // positive west of the meridian

	sinH, cosH := math.Sincos(ha)
	sinDec, cosDec := math.Sincos(timeutil.Deg2Rad(dec))
	sinLat, cosLat := math.Sincos(timeutil.Deg2Rad(lat))

	alt := math.Asin(sinLat*sinDec + cosLat*cosDec*cosH)
	az := math.Atan2(-cosDec*sinH, sinDec*cosLat-cosDec*cosH*sinLat)

	return Horizontal{
		Azimuth:  timeutil.Normalize360(timeutil.Rad2Deg(az)),
		Altitude: timeutil.Rad2Deg(alt),
	}
}

// approxEquatorial returns the Sun's geocentric right ascension and
// declination in degrees, d days after J2000.
func approxEquatorial(d float64) (ra, dec float64) {
	anomaly := timeutil.Deg2Rad(357.529 + 0.98560028*d)
	meanLon := 280.459 + 0.98564736*d

	eclLon := timeutil.Deg2Rad(meanLon + 1.915*math.Sin(anomaly) + 0.020*math.Sin(2*anomaly))
	obliquity := timeutil.Deg2Rad(23.439 - 0.00000036*d)

	sinL, cosL := math.Sincos(eclLon)
	ra = timeutil.Normalize360(timeutil.Rad2Deg(math.Atan2(math.Cos(obliquity)*sinL, cosL)))
	dec = timeutil.Rad2Deg(math.Asin(math.Sin(obliquity) * sinL))
	return ra, dec
}
