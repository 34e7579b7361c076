package suncompass

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDegenerateOracleData is returned when the oracle yields no events
	// for a window that must contain some.
	ErrDegenerateOracleData = errors.New("degenerate astronomical data")

	// ErrNoPrecedingEvent is returned when no event precedes the first
	// upcoming one. It signals an oracle defect, not a user error.
	ErrNoPrecedingEvent = errors.New("no preceding event found")

	// ErrInvalidPlace is returned for out-of-range coordinates.
	ErrInvalidPlace = errors.New("invalid place")
)

// DegenerateOracleDataError describes the empty window.
type DegenerateOracleDataError struct {
	Window  string // "next" or "preceding"
	At      time.Time
	Horizon time.Duration
}

func (e *DegenerateOracleDataError) Error() string {
	return fmt.Sprintf("%v: no events in %s window [%s, +%s)",
		ErrDegenerateOracleData, e.Window, e.At.UTC().Format(time.RFC3339), e.Horizon)
}

func (e *DegenerateOracleDataError) Unwrap() error { return ErrDegenerateOracleData }

// NoPrecedingEventError carries both windows for diagnosis.
type NoPrecedingEventError struct {
	Preceding []SunEvent
	Next      []SunEvent
}

func (e *NoPrecedingEventError) Error() string {
	return fmt.Sprintf("%v: preceding=%v next=%v", ErrNoPrecedingEvent, e.Preceding, e.Next)
}

func (e *NoPrecedingEventError) Unwrap() error { return ErrNoPrecedingEvent }

// MissingTransitError reports a NOON or NADIR that neither window produced.
// Rise and set may legitimately be absent; transits may not.
type MissingTransitError struct {
	Type   EventType
	Events []SunEvent
}

func (e *MissingTransitError) Error() string {
	return fmt.Sprintf("%v: no %s among %v", ErrDegenerateOracleData, e.Type, e.Events)
}

func (e *MissingTransitError) Unwrap() error { return ErrDegenerateOracleData }
