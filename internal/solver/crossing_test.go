package solver

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

// sine with a 24h period, peaking at 06:00 and bottoming out at 18:00.
func daySine(t time.Time) float64 {
	h := t.Sub(base).Hours()
	return 60 * math.Sin(2*math.Pi*h/24)
}

func TestFindCrossing(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		dir    Direction
		want   time.Time
	}{
		{"up through zero", 0, CrossingUp, base.Add(24 * time.Hour)},
		{"down through zero", 0, CrossingDown, base.Add(12 * time.Hour)},
		{"up through thirty", 30, CrossingUp, base.Add(2 * time.Hour)},
		{"down through thirty", 30, CrossingDown, base.Add(10 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FindCrossing(daySine, base.Add(time.Minute), base.Add(36*time.Hour), tt.target, tt.dir, 30*time.Minute, 10*time.Second)
			require.True(t, res.OK)
			assert.WithinDuration(t, tt.want, res.Time, 10*time.Second)
		})
	}
}

func TestFindCrossing_None(t *testing.T) {
	res := FindCrossing(daySine, base, base.Add(36*time.Hour), 75, CrossingUp, 30*time.Minute, 10*time.Second)
	assert.False(t, res.OK)

	res = FindCrossing(daySine, base, base, 0, CrossingUp, 30*time.Minute, 10*time.Second)
	assert.False(t, res.OK)
}

func TestFindCrossing_PartialLastStep(t *testing.T) {
	// The window ends 10 minutes after the crossing, short of the next sample.
	res := FindCrossing(daySine, base.Add(time.Hour), base.Add(12*time.Hour+10*time.Minute), 0, CrossingDown, 45*time.Minute, 10*time.Second)
	require.True(t, res.OK)
	assert.WithinDuration(t, base.Add(12*time.Hour), res.Time, 10*time.Second)
}

func TestSlopeFindsExtremes(t *testing.T) {
	slope := Slope(daySine, time.Minute)

	peak := FindCrossing(slope, base, base.Add(24*time.Hour), 0, CrossingDown, 30*time.Minute, 10*time.Second)
	require.True(t, peak.OK)
	assert.WithinDuration(t, base.Add(6*time.Hour), peak.Time, 10*time.Second)

	trough := FindCrossing(slope, base, base.Add(24*time.Hour), 0, CrossingUp, 30*time.Minute, 10*time.Second)
	require.True(t, trough.OK)
	assert.WithinDuration(t, base.Add(18*time.Hour), trough.Time, 10*time.Second)
}
