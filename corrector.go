package suncompass

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

const (
	// DefaultCorrectionTolerance is how close (degrees) a corrected transit's
	// azimuth must be to the meridian.
	DefaultCorrectionTolerance = 0.25
	// DefaultCorrectionStep is the first sample offset from the raw time.
	DefaultCorrectionStep = 5 * time.Minute
	// DefaultCorrectionIterations caps the number of azimuth samples.
	DefaultCorrectionIterations = 5
)

// Correction is the outcome of a single transit refinement.
type Correction struct {
	Time       time.Time
	Azimuth    float64
	Converged  bool // false: Time/Azimuth are the raw input
	Iterations int  // azimuth samples spent
}

// Corrector moves NOON and NADIR times onto the meridian as seen by the
// oracle's own azimuth. It never fails: when the search does not settle it
// hands back the oracle's original answer.
type Corrector struct {
	Oracle        Oracle
	Tolerance     float64
	Step          time.Duration
	MaxIterations int
	Logger        zerolog.Logger

	metrics *metrics
}

// NewCorrector returns a Corrector with the default tolerance, step and cap.
func NewCorrector(o Oracle, logger zerolog.Logger) *Corrector {
	return &Corrector{
		Oracle:        o,
		Tolerance:     DefaultCorrectionTolerance,
		Step:          DefaultCorrectionStep,
		MaxIterations: DefaultCorrectionIterations,
		Logger:        logger,
	}
}

// Correct refines raw, an approximate transit time, at place p.
//
// The search runs in a frame rotated by 0 or 180 degrees so that the target
// bearing is always 180 and never sits on the 0/360 seam: a sun near south
// (noon, most latitudes) is left alone, a sun near north is rotated.
func (c *Corrector) Correct(ctx context.Context, p Place, typ EventType, raw time.Time) Correction {
	res := c.correct(p, typ, raw)
	c.metrics.correction(ctx, typ, res)
	return res
}

func (c *Corrector) correct(p Place, typ EventType, raw time.Time) Correction {
	a0 := c.Oracle.AzimuthAt(p, raw)
	fallback := Correction{Time: raw, Azimuth: a0}

	offset := 0.0
	if math.Abs(a0-180) >= 90 {
		offset = 180
	}
	wrapped := func(a float64) float64 {
		return timeutil.Normalize360(a + offset)
	}

	// At least one sample is always taken, even when raw is already close.
	lastTime, lastWrapped := raw, wrapped(a0)

	step := c.Step
	for i := 1; i <= c.MaxIterations; i++ {
		fallback.Iterations = i
		t := lastTime.Add(step)
		a := c.Oracle.AzimuthAt(p, t)
		w := wrapped(a)
		errDeg := 180 - w

		if math.Abs(errDeg) < c.Tolerance {
			return Correction{Time: t, Azimuth: a, Converged: true, Iterations: i}
		}

		// Secant update: the step that would have zeroed the error given
		// the azimuth change over the last step.
		next, ok := timeutil.ScaleDuration(step, errDeg/(w-lastWrapped))
		if !ok || next == 0 {
			break
		}
		step = next
		lastTime, lastWrapped = t, w
	}

	c.Logger.Warn().
		Stringer("type", typ).
		Time("raw", raw).
		Float64("azimuth", a0).
		Int("iterations", fallback.Iterations).
		Msg("azimuth correction did not converge; keeping oracle time")

	return fallback
}
