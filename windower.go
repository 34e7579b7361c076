package suncompass

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Windows are the oracle query windows used to build a timeline.
//
// The defaults are tuned to oracles that lose a transit when queried close
// to it: the preceding window starts well before the first upcoming event
// and ends just past it, so the transit that was dropped from one query is
// present in the other.
type Windows struct {
	Next            time.Duration // horizon of the query starting at now
	PrecedingOffset time.Duration // preceding window starts this long before the first upcoming event
	PrecedingSpan   time.Duration // length of the preceding window
}

// DefaultWindows returns the 36h / 13h / 14h windows.
func DefaultWindows() Windows {
	return Windows{
		Next:            36 * time.Hour,
		PrecedingOffset: 13 * time.Hour,
		PrecedingSpan:   14 * time.Hour,
	}
}

// MinNextWindow is the shortest next window that always holds a NOON and
// a NADIR.
const MinNextWindow = 24 * time.Hour

// Validate checks the windows are positive, that the next window spans a
// full day and that the preceding window reaches the first upcoming event.
func (w Windows) Validate() error {
	switch {
	case w.Next <= 0 || w.PrecedingOffset <= 0 || w.PrecedingSpan <= 0:
		return errors.New("windows must be positive")
	case w.Next < MinNextWindow:
		return fmt.Errorf("next window %s is shorter than %s", w.Next, MinNextWindow)
	case w.PrecedingSpan <= w.PrecedingOffset:
		return fmt.Errorf("preceding span %s must exceed preceding offset %s", w.PrecedingSpan, w.PrecedingOffset)
	}
	return nil
}

// Windower selects the events to display around an instant.
type Windower struct {
	Oracle    Oracle
	Corrector *Corrector
	Windows   Windows
	Logger    zerolog.Logger
}

// NewWindower returns a Windower with the given windows.
func NewWindower(o Oracle, c *Corrector, w Windows, logger zerolog.Logger) *Windower {
	return &Windower{Oracle: o, Corrector: c, Windows: w, Logger: logger}
}

// Events returns the most recent event before now followed by every event
// the next window holds, sorted, with transits corrected.
func (w *Windower) Events(ctx context.Context, p Place, now time.Time) ([]SunEvent, error) {
	next := w.query(ctx, p, now, w.Windows.Next)
	if len(next) == 0 {
		return nil, &DegenerateOracleDataError{Window: "next", At: now, Horizon: w.Windows.Next}
	}

	start := next[0].Time.Add(-w.Windows.PrecedingOffset)
	preceding := w.query(ctx, p, start, w.Windows.PrecedingSpan)
	if len(preceding) == 0 {
		return nil, &DegenerateOracleDataError{Window: "preceding", At: start, Horizon: w.Windows.PrecedingSpan}
	}

	recent, ok := mostRecent(preceding, next[0])
	if !ok {
		return nil, &NoPrecedingEventError{Preceding: preceding, Next: next}
	}

	events := make([]SunEvent, 0, len(next)+1)
	events = append(events, recent)
	events = append(events, next...)

	if typ, ok := missingTransit(events); ok {
		return nil, &MissingTransitError{Type: typ, Events: events}
	}

	w.Logger.Debug().
		Time("now", now).
		Int("preceding", len(preceding)).
		Int("next", len(next)).
		Stringer("recent", recent).
		Msg("event window assembled")

	return events, nil
}

// mostRecent picks the latest event strictly before first and of a
// different type. The type check drops the copy of first that the
// preceding window sees when both windows straddle the same event.
func mostRecent(preceding []SunEvent, first SunEvent) (SunEvent, bool) {
	var (
		best  SunEvent
		found bool
	)
	for _, e := range preceding {
		if !e.Time.Before(first.Time) || e.Type == first.Type {
			continue
		}
		if !found || best.Less(e) {
			best, found = e, true
		}
	}
	return best, found
}

// missingTransit returns the first transit type absent from events.
func missingTransit(events []SunEvent) (EventType, bool) {
	var noon, nadir bool
	for _, e := range events {
		switch e.Type {
		case Noon:
			noon = true
		case Nadir:
			nadir = true
		}
	}
	switch {
	case !noon:
		return Noon, true
	case !nadir:
		return Nadir, true
	}
	return 0, false
}

// query converts one oracle answer into sorted events, dropping missing
// types and correcting transits.
func (w *Windower) query(ctx context.Context, p Place, at time.Time, horizon time.Duration) []SunEvent {
	raw := w.Oracle.EventsNear(p, at, horizon)

	events := make([]SunEvent, 0, 4)
	for _, r := range []struct {
		typ EventType
		ev  RawEvent
	}{
		{Rise, raw.Rise},
		{Noon, raw.Noon},
		{Set, raw.Set},
		{Nadir, raw.Nadir},
	} {
		if !r.ev.OK || r.ev.Time.IsZero() {
			continue
		}
		events = append(events, w.event(ctx, p, r.typ, r.ev.Time))
	}

	SortEvents(events)
	return events
}

func (w *Windower) event(ctx context.Context, p Place, typ EventType, t time.Time) SunEvent {
	if typ.IsTransit() && w.Corrector != nil {
		c := w.Corrector.Correct(ctx, p, typ, t)
		return SunEvent{Time: c.Time, Type: typ, Azimuth: c.Azimuth}
	}
	return SunEvent{Time: t, Type: typ, Azimuth: w.Oracle.AzimuthAt(p, t)}
}
