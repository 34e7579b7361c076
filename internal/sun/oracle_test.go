package sun

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

const (
	santaMonicaLat = 34.0
	santaMonicaLon = -118.5
)

func TestModelsAgree(t *testing.T) {
	when := time.Date(2020, time.May, 8, 22, 0, 0, 0, time.UTC)

	ref := Meeus{}.Horizontal(santaMonicaLat, santaMonicaLon, when)
	for _, name := range ModelNames() {
		m, err := ModelByName(name)
		require.NoError(t, err)

		got := m.Horizontal(santaMonicaLat, santaMonicaLon, when)
		assert.InDelta(t, 0, timeutil.SignedDelta(ref.Azimuth, got.Azimuth), 0.5, "%s azimuth", name)
		assert.InDelta(t, ref.Altitude, got.Altitude, 0.5, "%s altitude", name)
	}

	// Mid afternoon in May: high in the south-west sky.
	assert.Greater(t, ref.Azimuth, 200.0)
	assert.Less(t, ref.Azimuth, 270.0)
	assert.Greater(t, ref.Altitude, 45.0)
}

func TestModelByName_Unknown(t *testing.T) {
	_, err := ModelByName("ptolemy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approx, meeus, suncalc")
}

func TestEventsNear_SantaMonica(t *testing.T) {
	o := NewOracle(Meeus{})
	start := time.Date(2020, time.May, 9, 2, 30, 15, 0, time.UTC)

	ev := o.EventsNear(santaMonicaLat, santaMonicaLon, start, 36*time.Hour)
	require.True(t, ev.Rise.OK)
	require.True(t, ev.Noon.OK)
	require.True(t, ev.Set.OK)
	require.True(t, ev.Nadir.OK)

	assert.WithinDuration(t, time.Date(2020, time.May, 9, 2, 43, 51, 0, time.UTC), ev.Set.Time, 3*time.Minute)
	assert.WithinDuration(t, time.Date(2020, time.May, 9, 12, 58, 0, 0, time.UTC), ev.Rise.Time, 3*time.Minute)
	assert.WithinDuration(t, time.Date(2020, time.May, 9, 19, 50, 30, 0, time.UTC), ev.Noon.Time, 2*time.Minute)
	assert.WithinDuration(t, time.Date(2020, time.May, 9, 7, 50, 30, 0, time.UTC), ev.Nadir.Time, 2*time.Minute)

	// Transit times from the altitude curve are close to the meridian.
	noonAz := o.Azimuth(santaMonicaLat, santaMonicaLon, ev.Noon.Time)
	assert.InDelta(t, 180, noonAz, 2)
	nadirAz := o.Azimuth(santaMonicaLat, santaMonicaLon, ev.Nadir.Time)
	assert.InDelta(t, 0, timeutil.SignedDelta(0, nadirAz), 2)
}

func TestEventsNear_HorizonLimits(t *testing.T) {
	o := NewOracle(Meeus{})
	start := time.Date(2020, time.May, 8, 13, 44, 0, 0, time.UTC)

	ev := o.EventsNear(santaMonicaLat, santaMonicaLon, start, 14*time.Hour)

	// The next rise is the following morning, outside the window.
	assert.False(t, ev.Rise.OK)
	assert.False(t, ev.Nadir.OK)
	require.True(t, ev.Noon.OK)
	require.True(t, ev.Set.OK)
	assert.True(t, ev.Noon.Time.Before(ev.Set.Time))
}

func TestEventsNear_PolarDay(t *testing.T) {
	o := NewOracle(Meeus{})
	// Longyearbyen around the June solstice.
	start := time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC)

	ev := o.EventsNear(78.22, 15.65, start, 36*time.Hour)
	assert.False(t, ev.Rise.OK)
	assert.False(t, ev.Set.OK)
	require.True(t, ev.Noon.OK)
	require.True(t, ev.Nadir.OK)

	h := o.Model.Horizontal(78.22, 15.65, ev.Nadir.Time)
	assert.Greater(t, h.Altitude, 0.0, "midnight sun")
}

func TestApproxAzimuthQuadrants(t *testing.T) {
	day := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	// Greenwich, around the equinox.
	morning := Approx{}.Horizontal(51.48, 0, day.Add(8*time.Hour))
	evening := Approx{}.Horizontal(51.48, 0, day.Add(16*time.Hour))
	noon := Approx{}.Horizontal(51.48, 0, day.Add(12*time.Hour+7*time.Minute))

	assert.Greater(t, morning.Azimuth, 90.0)
	assert.Less(t, morning.Azimuth, 180.0)
	assert.Greater(t, evening.Azimuth, 180.0)
	assert.Less(t, evening.Azimuth, 270.0)
	assert.InDelta(t, 180, noon.Azimuth, 1)
	assert.InDelta(t, 90-51.48, noon.Altitude, 1)
	assert.False(t, math.IsNaN(noon.Altitude))
}
