// Package suncompass computes a live solar timeline for compass display:
// the most recent sun event and the next several upcoming ones (rise,
// noon, set, nadir) around an instant, the sun's current azimuth and
// whether it is moving clockwise, and the local magnetic declination.
//
// Noon and nadir times reported by the underlying astronomical oracle are
// refined so that the sun's azimuth at the reported time sits on the
// meridian, which is what a compass dial actually shows.
//
// The astronomical oracle and the declination model are injected; the
// package ships built-in implementations backed by internal/sun and
// internal/geomag.
package suncompass

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

// Place represents an observer's location.
type Place struct {
	Lat      float64 `json:"lat"`      // degrees, north positive
	Lon      float64 `json:"lon"`      // degrees, east positive (west negative, e.g. -118.5)
	Altitude float64 `json:"altitude"` // meters above sea level
}

// Validate reports whether p is a usable location.
func (p Place) Validate() error {
	switch {
	case math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsNaN(p.Altitude):
		return fmt.Errorf("%w: NaN coordinate", ErrInvalidPlace)
	case p.Lat < -90 || p.Lat > 90:
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidPlace, p.Lat)
	case p.Lon < -180 || p.Lon > 180:
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidPlace, p.Lon)
	}
	return nil
}

// EventType identifies a solar event.
type EventType int

const (
	Rise EventType = iota
	Noon
	Set
	Nadir
)

var eventNames = map[EventType]string{
	Rise:  "RISE",
	Noon:  "NOON",
	Set:   "SET",
	Nadir: "NADIR",
}

// Rank is the tie-break order for events at the same instant:
// RISE < NOON < SET < NADIR.
func (e EventType) Rank() int {
	switch e {
	case Rise:
		return 0
	case Noon:
		return 1
	case Set:
		return 2
	case Nadir:
		return 3
	default:
		return 4
	}
}

// IsTransit reports whether e is a meridian crossing (NOON or NADIR).
func (e EventType) IsTransit() bool {
	return e == Noon || e == Nadir
}

func (e EventType) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return fmt.Sprintf("EventType(%d)", int(e))
}

// ParseEventType is the inverse of EventType.String (case-insensitive).
func ParseEventType(s string) (EventType, error) {
	for k, v := range eventNames {
		if strings.EqualFold(s, v) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EventType) UnmarshalText(b []byte) error {
	v, err := ParseEventType(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// SunEvent is a solar event at a real instant with the sun's azimuth then.
type SunEvent struct {
	Time    time.Time `json:"time"`
	Type    EventType `json:"type"`
	Azimuth float64   `json:"azimuth"` // degrees, [0, 360)
}

// Less orders events by time, then by type rank.
func (e SunEvent) Less(o SunEvent) bool {
	if !e.Time.Equal(o.Time) {
		return e.Time.Before(o.Time)
	}
	return e.Type.Rank() < o.Type.Rank()
}

func (e SunEvent) String() string {
	return fmt.Sprintf("%s %s az=%.2f°", e.Type, e.Time.UTC().Format(time.RFC3339), e.Azimuth)
}

// SortEvents sorts events in place by SunEvent.Less.
func SortEvents(events []SunEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Less(events[j])
	})
}

// SunAzimuthInfo is the sun's instantaneous bearing and its direction of travel.
type SunAzimuthInfo struct {
	Azimuth   float32 `json:"azimuth"`   // degrees true, [0, 360)
	Clockwise bool    `json:"clockwise"` // azimuth increasing
}

// SunInfo is an immutable timeline snapshot for one (Place, instant) query.
type SunInfo struct {
	Timestamp           time.Time      `json:"timestamp"`
	SunAzimuth          SunAzimuthInfo `json:"sunAzimuth"`
	MagneticDeclination float64        `json:"magneticDeclination"` // degrees, east positive
	// ClosestEventIndex is 0 or 1: whichever of SunEvents[0] (most recent)
	// and SunEvents[1] (next) is nearer Timestamp.
	ClosestEventIndex int        `json:"closestEventIndex"`
	SunEvents         []SunEvent `json:"sunEvents"`
	// HorizonCrossing is false when the window holds no rise or set
	// (polar day or night).
	HorizonCrossing bool `json:"horizonCrossing"`
}

// ClosestEvent returns the event at ClosestEventIndex.
func (s SunInfo) ClosestEvent() SunEvent {
	return s.SunEvents[s.ClosestEventIndex]
}

// MagneticAzimuth is the sun's bearing as read on a magnetic compass.
func (s SunInfo) MagneticAzimuth() float64 {
	return timeutil.Normalize360(float64(s.SunAzimuth.Azimuth) - s.MagneticDeclination)
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass converts a bearing in degrees to a 16-point compass label.
func Compass(az float64) string {
	idx := int(math.Floor((timeutil.Normalize360(az)+11.25)/22.5)) % len(compassPoints)
	return compassPoints[idx]
}
