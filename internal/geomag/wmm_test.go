package geomag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWMMDeclination(t *testing.T) {
	when := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lat, lon float64
		min, max float64
	}{
		{"santa monica", 34.0, -118.5, 10.5, 13},
		{"london", 51.5, -0.13, -1.5, 1.5},
		{"sydney", -33.87, 151.21, 11.5, 14},
		{"maine", 44.3, -69.8, -17, -14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := WMMDeclination(tt.lat, tt.lon, 0, when)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, d, tt.min)
			assert.LessOrEqual(t, d, tt.max)
		})
	}
}

func TestWMMDeclination_AgreesWithDipoleInSign(t *testing.T) {
	// Far from local anomalies the dipole gets the sign and rough size right.
	when := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)

	wmm, err := WMMDeclination(34.0, -118.5, 0, when)
	require.NoError(t, err)
	assert.InDelta(t, wmm, Declination(34.0, -118.5, when), 5)
}
