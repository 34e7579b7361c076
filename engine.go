package suncompass

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Engine assembles timeline snapshots. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	oracle      Oracle
	declination DeclinationModel
	windower    *Windower
	logger      zerolog.Logger
	metrics     *metrics
}

type options struct {
	logger    zerolog.Logger
	windows   Windows
	meter     metric.Meter
	corrector func(*Corrector)
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWindows overrides DefaultWindows.
func WithWindows(w Windows) Option {
	return func(o *options) { o.windows = w }
}

// WithMeter sets the meter used for engine metrics; the default is the
// global otel meter provider.
func WithMeter(m metric.Meter) Option {
	return func(o *options) { o.meter = m }
}

// WithCorrector adjusts the transit corrector's parameters.
func WithCorrector(f func(*Corrector)) Option {
	return func(o *options) { o.corrector = f }
}

// NewEngine returns an Engine over the given oracle and declination model.
func NewEngine(oracle Oracle, declination DeclinationModel, opts ...Option) (*Engine, error) {
	if oracle == nil {
		return nil, fmt.Errorf("suncompass: nil oracle")
	}
	if declination == nil {
		return nil, fmt.Errorf("suncompass: nil declination model")
	}

	o := options{
		logger:  zerolog.Nop(),
		windows: DefaultWindows(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.windows.Validate(); err != nil {
		return nil, fmt.Errorf("suncompass: %w", err)
	}
	if o.meter == nil {
		o.meter = defaultMeter()
	}
	m, err := newMetrics(o.meter)
	if err != nil {
		return nil, fmt.Errorf("suncompass: metrics: %w", err)
	}

	corrector := NewCorrector(oracle, o.logger)
	if o.corrector != nil {
		o.corrector(corrector)
	}
	corrector.metrics = m

	return &Engine{
		oracle:      oracle,
		declination: declination,
		windower:    NewWindower(oracle, corrector, o.windows, o.logger),
		logger:      o.logger,
		metrics:     m,
	}, nil
}

// ComputeTimeline builds the snapshot for p at now. Collaborator errors are
// returned as they are; nothing is retried.
func (e *Engine) ComputeTimeline(ctx context.Context, p Place, now time.Time) (SunInfo, error) {
	info, err := e.computeTimeline(ctx, p, now)
	e.metrics.timeline(ctx, err)
	if err != nil {
		return SunInfo{}, err
	}
	return info, nil
}

func (e *Engine) computeTimeline(ctx context.Context, p Place, now time.Time) (SunInfo, error) {
	if err := ctx.Err(); err != nil {
		return SunInfo{}, err
	}
	if err := p.Validate(); err != nil {
		return SunInfo{}, err
	}

	events, err := e.windower.Events(ctx, p, now)
	if err != nil {
		return SunInfo{}, err
	}

	info := SunInfo{
		Timestamp:           now,
		SunAzimuth:          ResolveAzimuth(e.oracle, p, now),
		MagneticDeclination: e.declination.DeclinationAt(p, now),
		ClosestEventIndex:   closestIndex(events, now),
		SunEvents:           events,
		HorizonCrossing:     crossesHorizon(events),
	}

	e.logger.Debug().
		Time("now", now).
		Float32("azimuth", info.SunAzimuth.Azimuth).
		Bool("clockwise", info.SunAzimuth.Clockwise).
		Stringer("closest", info.ClosestEvent()).
		Msg("timeline computed")

	return info, nil
}

// closestIndex picks between the boundary pair around now; events[0] is
// always the most recent past event and events[1] the first upcoming one.
func closestIndex(events []SunEvent, now time.Time) int {
	before, after := events[0], events[1]
	if now.Sub(before.Time) < after.Time.Sub(now) {
		return 0
	}
	return 1
}

func crossesHorizon(events []SunEvent) bool {
	for _, ev := range events {
		if ev.Type == Rise || ev.Type == Set {
			return true
		}
	}
	return false
}
