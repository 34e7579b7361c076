package geomag

import (
	"fmt"
	"time"

	"github.com/westphae/geomag/pkg/egm96"
	"github.com/westphae/geomag/pkg/wmm"
)

// WMMDeclination returns the World Magnetic Model declination in degrees,
// east positive, at lat, lon (degrees) and altitude (meters above the
// WGS84 ellipsoid) at time t. It fails for times outside the model's
// validity period.
func WMMDeclination(lat, lon, altitude float64, t time.Time) (float64, error) {
	loc := egm96.NewLocationGeodetic(lat, lon, altitude)

	field, err := wmm.CalculateWMMMagneticField(loc, t.UTC())
	if err != nil {
		return 0, fmt.Errorf("wmm at %s: %w", t.UTC().Format(time.RFC3339), err)
	}

	d := field.D()
	return d, nil
}
