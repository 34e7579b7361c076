package suncompass_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thurmanmarka/suncompass"
)

func TestResolveAzimuth(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   func(time.Time) float64
		wantAz    float32
		clockwise bool
	}{
		{
			name:      "increasing",
			azimuth:   func(t time.Time) float64 { return 100 + t.Sub(day0).Minutes() },
			wantAz:    100,
			clockwise: true,
		},
		{
			name:      "decreasing",
			azimuth:   func(t time.Time) float64 { return 100 - t.Sub(day0).Minutes() },
			wantAz:    100,
			clockwise: false,
		},
		{
			name: "increasing across north",
			azimuth: func(t time.Time) float64 {
				if t.After(day0) {
					return 0.5
				}
				return 359.5
			},
			wantAz:    359.5,
			clockwise: true,
		},
		{
			name: "decreasing across north",
			azimuth: func(t time.Time) float64 {
				if t.After(day0) {
					return 359.5
				}
				return 0.5
			},
			wantAz:    0.5,
			clockwise: false,
		},
		{
			name:      "stationary counts as clockwise",
			azimuth:   func(time.Time) float64 { return 42 },
			wantAz:    42,
			clockwise: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &funcOracle{azimuth: tt.azimuth}
			got := suncompass.ResolveAzimuth(oracle, santaMonica, day0)
			assert.Equal(t, tt.wantAz, got.Azimuth)
			assert.Equal(t, tt.clockwise, got.Clockwise)
			assert.Equal(t, 2, oracle.calls)
		})
	}
}

func TestResolveAzimuth_FakeSun(t *testing.T) {
	sun := newFakeSun()
	assert.True(t, suncompass.ResolveAzimuth(sun, santaMonica, at(9, 0)).Clockwise)

	sun.reverse = true
	assert.False(t, suncompass.ResolveAzimuth(sun, santaMonica, at(9, 0)).Clockwise)
}
