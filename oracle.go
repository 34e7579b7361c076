package suncompass

import (
	"time"

	"github.com/thurmanmarka/suncompass/internal/geomag"
	"github.com/thurmanmarka/suncompass/internal/sun"
)

// RawEvent is an oracle event time that may be missing.
type RawEvent struct {
	Time time.Time
	OK   bool
}

// RawEvents holds the first occurrence of each event type the oracle found.
type RawEvents struct {
	Rise, Noon, Set, Nadir RawEvent
}

// Oracle is the astronomical computation the engine relies on.
//
// EventsNear returns the first of each event type in [t, t+horizon). Any
// type may be missing: rise and set do not happen during polar day or
// night, and some oracles drop a transit when queried too close to it.
type Oracle interface {
	AzimuthAt(p Place, t time.Time) float64
	EventsNear(p Place, t time.Time, horizon time.Duration) RawEvents
}

// DeclinationModel returns the magnetic declination in degrees, east positive.
type DeclinationModel interface {
	DeclinationAt(p Place, t time.Time) float64
}

// FixedDeclination is a DeclinationModel returning a constant.
type FixedDeclination float64

func (d FixedDeclination) DeclinationAt(Place, time.Time) float64 {
	return float64(d)
}

// NewOracle returns the built-in oracle using the named position model
// ("meeus", "suncalc" or "approx").
func NewOracle(model string) (Oracle, error) {
	m, err := sun.ModelByName(model)
	if err != nil {
		return nil, err
	}
	return builtinOracle{o: sun.NewOracle(m)}, nil
}

type builtinOracle struct {
	o *sun.Oracle
}

func (b builtinOracle) AzimuthAt(p Place, t time.Time) float64 {
	return b.o.Azimuth(p.Lat, p.Lon, t)
}

func (b builtinOracle) EventsNear(p Place, t time.Time, horizon time.Duration) RawEvents {
	ev := b.o.EventsNear(p.Lat, p.Lon, t, horizon)
	return RawEvents{
		Rise:  RawEvent(ev.Rise),
		Noon:  RawEvent(ev.Noon),
		Set:   RawEvent(ev.Set),
		Nadir: RawEvent(ev.Nadir),
	}
}

// WMMDeclination returns the World Magnetic Model declination. Outside the
// model's validity period it answers with the dipole model instead.
func WMMDeclination() DeclinationModel {
	return worldModel{}
}

type worldModel struct{}

func (worldModel) DeclinationAt(p Place, t time.Time) float64 {
	d, err := geomag.WMMDeclination(p.Lat, p.Lon, p.Altitude, t)
	if err != nil {
		return geomag.Declination(p.Lat, p.Lon, t)
	}
	return d
}

// DipoleDeclination returns the built-in centered-dipole declination model.
func DipoleDeclination() DeclinationModel {
	return dipole{}
}

type dipole struct{}

func (dipole) DeclinationAt(p Place, t time.Time) float64 {
	return geomag.Declination(p.Lat, p.Lon, t)
}
