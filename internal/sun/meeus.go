package sun

import (
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

// Meeus computes the apparent solar position with the algorithms of
// Meeus, Astronomical Algorithms ch. 25 (Sun) and ch. 13 (transformation).
// Delta T is ignored; the error is well under the correction tolerance.
type Meeus struct{}

func (Meeus) Horizontal(lat, lon float64, t time.Time) Horizontal {
	jd := julian.TimeToJD(t.UTC())

	α, δ := solar.ApparentEquatorial(jd)
	st := sidereal.Apparent(jd)

	// Meeus measures longitude positively westward and azimuth from the south.
	A, h := coord.EqToHz(α, δ, unit.AngleFromDeg(lat), unit.AngleFromDeg(-lon), st)

	return Horizontal{
		Azimuth:  timeutil.Normalize360(A.Deg() + 180),
		Altitude: h.Deg(),
	}
}
