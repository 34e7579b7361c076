package suncompass

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/thurmanmarka/suncompass"

// metrics are the engine's OpenTelemetry instruments. A nil *metrics
// records nothing.
type metrics struct {
	timelines   metric.Int64Counter
	failures    metric.Int64Counter
	corrections metric.Int64Counter
	iterations  metric.Int64Histogram
}

func defaultMeter() metric.Meter {
	return otel.Meter(instrumentationName)
}

func newMetrics(m metric.Meter) (*metrics, error) {
	var (
		out metrics
		err error
	)
	if out.timelines, err = m.Int64Counter("suncompass.timelines",
		metric.WithDescription("Timelines computed successfully")); err != nil {
		return nil, err
	}
	if out.failures, err = m.Int64Counter("suncompass.timeline.failures",
		metric.WithDescription("Timeline computations that returned an error")); err != nil {
		return nil, err
	}
	if out.corrections, err = m.Int64Counter("suncompass.corrections",
		metric.WithDescription("Transit azimuth corrections by outcome")); err != nil {
		return nil, err
	}
	if out.iterations, err = m.Int64Histogram("suncompass.correction.iterations",
		metric.WithDescription("Azimuth samples spent per transit correction")); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *metrics) timeline(ctx context.Context, err error) {
	if m == nil {
		return
	}
	if err == nil {
		m.timelines.Add(ctx, 1)
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", errorKind(err))))
}

func (m *metrics) correction(ctx context.Context, typ EventType, c Correction) {
	if m == nil {
		return
	}
	outcome := "converged"
	if !c.Converged {
		outcome = "fallback"
	}
	attrs := metric.WithAttributes(
		attribute.String("type", typ.String()),
		attribute.String("outcome", outcome),
	)
	m.corrections.Add(ctx, 1, attrs)
	m.iterations.Record(ctx, int64(c.Iterations), attrs)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrDegenerateOracleData):
		return "degenerate_oracle_data"
	case errors.Is(err, ErrNoPrecedingEvent):
		return "no_preceding_event"
	case errors.Is(err, ErrInvalidPlace):
		return "invalid_place"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "context"
	default:
		return "other"
	}
}
