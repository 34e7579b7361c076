package sun

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Horizontal is the Sun's topocentric position in degrees. Azimuth is a
// compass bearing in [0, 360), 0 = true north, increasing eastward.
type Horizontal struct {
	Azimuth  float64
	Altitude float64
}

// Model computes the Sun's horizontal position for an observer at lat, lon
// (degrees, east positive) at time t.
type Model interface {
	Horizontal(lat, lon float64, t time.Time) Horizontal
}

var models = map[string]Model{
	"approx":  Approx{},
	"meeus":   Meeus{},
	"suncalc": SunCalc{},
}

// ModelByName returns the named position model.
func ModelByName(name string) (Model, error) {
	m, ok := models[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown position model %q (use one of %s)", name, strings.Join(ModelNames(), ", "))
	}
	return m, nil
}

// ModelNames lists the registered position models in sorted order.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for k := range models {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
