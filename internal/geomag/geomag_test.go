package geomag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecimalYear(t *testing.T) {
	assert.InDelta(t, 2020.0, DecimalYear(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
	// 2020 is a leap year: July 2 00:00 is day 183 of 366.
	assert.InDelta(t, 2020+183.0/366.0, DecimalYear(time.Date(2020, time.July, 2, 0, 0, 0, 0, time.UTC)), 1e-9)
}

func TestPoleAt(t *testing.T) {
	p := PoleAt(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 80.65, p.Lat, 1e-6)
	assert.InDelta(t, -72.68, p.Lon, 1e-6)

	// Extrapolates past the table.
	later := PoleAt(time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Greater(t, later.Lat, 80.85)
}

func TestDeclination(t *testing.T) {
	when := time.Date(2020, time.May, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lat, lon float64
		min, max float64
	}{
		// Dipole values; the observed field adds regional anomalies on top.
		{"west of the pole meridian points east", 34.0, -118.5, 5, 15},
		{"on the pole meridian", 40.0, -72.68, -0.5, 0.5},
		{"east of the pole meridian points west", 51.5, -0.1, -20, -10},
		{"southern hemisphere", -33.9, 151.2, -5, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Declination(tt.lat, tt.lon, when)
			assert.GreaterOrEqual(t, d, tt.min)
			assert.LessOrEqual(t, d, tt.max)
		})
	}
}
