// Package geomag computes the magnetic declination.
//
// WMMDeclination evaluates the World Magnetic Model. Declination is a
// centered dipole whose axis follows the IGRF geomagnetic pole; it captures
// the large-scale pattern only, local errors of several degrees are normal,
// and it serves as the fallback outside the WMM's validity.
package geomag

import (
	"math"
	"time"

	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

// Pole is the northern geomagnetic (dipole) pole at an epoch.
type Pole struct {
	Epoch float64 // decimal year
	Lat   float64 // degrees
	Lon   float64 // degrees, east positive
}

// IGRF-13/14 dipole pole positions.
var poles = []Pole{
	{Epoch: 2010, Lat: 80.08, Lon: -72.21},
	{Epoch: 2015, Lat: 80.37, Lon: -72.63},
	{Epoch: 2020, Lat: 80.65, Lon: -72.68},
	{Epoch: 2025, Lat: 80.85, Lon: -72.76},
}

// PoleAt interpolates the pole linearly between epochs, extrapolating
// from the nearest pair outside the table.
func PoleAt(t time.Time) Pole {
	y := DecimalYear(t)

	i := 0
	for i < len(poles)-2 && y > poles[i+1].Epoch {
		i++
	}
	a, b := poles[i], poles[i+1]
	f := (y - a.Epoch) / (b.Epoch - a.Epoch)

	return Pole{
		Epoch: y,
		Lat:   a.Lat + f*(b.Lat-a.Lat),
		Lon:   a.Lon + f*(b.Lon-a.Lon),
	}
}

// Declination returns the dipole declination in degrees (east positive)
// at lat, lon at time t: the initial great-circle bearing toward the pole,
// folded into [-180, 180).
func Declination(lat, lon float64, t time.Time) float64 {
	p := PoleAt(t)

	phi := timeutil.Deg2Rad(lat)
	phiP := timeutil.Deg2Rad(p.Lat)
	dLon := timeutil.Deg2Rad(p.Lon - lon)

	y := math.Sin(dLon) * math.Cos(phiP)
	x := math.Cos(phi)*math.Sin(phiP) - math.Sin(phi)*math.Cos(phiP)*math.Cos(dLon)

	return timeutil.SignedDelta(0, timeutil.Rad2Deg(math.Atan2(y, x)))
}

// DecimalYear converts t to a fractional year, e.g. 2020.5.
func DecimalYear(t time.Time) float64 {
	u := t.UTC()
	start := time.Date(u.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(u.Year()) + float64(u.Sub(start))/float64(end.Sub(start))
}
