package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/thurmanmarka/suncompass"
	"github.com/thurmanmarka/suncompass/internal/logging"
	"github.com/thurmanmarka/suncompass/internal/sun"
	"github.com/thurmanmarka/suncompass/internal/timeutil"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// report collects transit residuals for one position model.
type report struct {
	model     string
	before    stats // |azimuth - meridian| at the oracle's transit time, degrees
	after     stats // same, after correction
	shift     stats // |corrected - raw|, seconds
	iters     stats
	fallbacks int
}

// residual is the distance in degrees from az to the meridian the transit
// should sit on.
func residual(typ suncompass.EventType, az float64) float64 {
	target := 180.0
	if typ == suncompass.Nadir {
		target = 0
	}
	return math.Abs(timeutil.SignedDelta(target, az))
}

var csvHeader = []string{
	"model", "type", "raw", "corrected", "residual_before", "residual_after", "iterations", "converged",
}

// csvRow formats one corrected transit in csvHeader order.
func csvRow(model string, typ suncompass.EventType, raw time.Time, c suncompass.Correction,
	before, after float64) []string {
	return []string{
		model,
		typ.String(),
		raw.UTC().Format(time.RFC3339),
		c.Time.UTC().Format(time.RFC3339),
		fmt.Sprintf("%.6f", before),
		fmt.Sprintf("%.6f", after),
		fmt.Sprintf("%d", c.Iterations),
		fmt.Sprintf("%t", c.Converged),
	}
}

// main sweeps [start, end) in windows of --step, refining every NOON and NADIR the
// oracle reports and measuring how far off the meridian each one was.
func main() {
	fs := pflag.NewFlagSet("suncompass-profiler", pflag.ExitOnError)

	lat := fs.Float64("lat", 0, "latitude in degrees (north positive)")
	lon := fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
	startS := fs.String("start", "", "first date, YYYY-MM-DD (UTC, defaults to today)")
	days := fs.Int("days", 30, "number of days to sweep")
	step := fs.Duration("step", time.Hour, "sweep window length")
	models := fs.StringSlice("models", sun.ModelNames(), "position models to profile")
	verbose := fs.Bool("verbose", false, "log every transit instead of only the summary")
	outCSV := fs.String("outcsv", "", "optional path to write per-transit CSV")
	logLevel := fs.String("log-level", "info", "log level: trace, debug, info, warn, error")

	_ = fs.Parse(os.Args[1:])

	logging.UseUTC()
	logger := logging.New(*logLevel, false, os.Stderr)

	start := time.Now().UTC().Truncate(24 * time.Hour)
	if *startS != "" {
		var err error
		start, err = time.ParseInLocation("2006-01-02", *startS, time.UTC)
		if err != nil {
			logger.Fatal().Err(err).Str("start", *startS).Msg("invalid --start")
		}
	}
	if *days <= 0 || *step <= 0 {
		logger.Fatal().Int("days", *days).Dur("step", *step).Msg("--days and --step must be positive")
	}
	end := start.AddDate(0, 0, *days)

	if *lat == 0 && *lon == 0 {
		logger.Warn().Msg("lat=0 lon=0 (Gulf of Guinea). Did you mean to set --lat/--lon?")
	}
	place := suncompass.Place{Lat: *lat, Lon: *lon}
	if err := place.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid place")
	}

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *outCSV).Msg("failed to create outcsv")
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write(csvHeader); err != nil {
			logger.Fatal().Err(err).Msg("failed to write outcsv header")
		}
	}

	var reports []*report
	for _, name := range *models {
		oracle, err := suncompass.NewOracle(strings.TrimSpace(name))
		if err != nil {
			logger.Fatal().Err(err).Msg("unknown model")
		}

		rep := &report{model: name}
		profile(oracle, place, start, end, *step, rep, outWriter, *verbose, logger)
		reports = append(reports, rep)
	}

	fmt.Println("=== suncompass profiler summary ===")
	fmt.Printf("Lat/Lon: %.4f / %.4f\n", *lat, *lon)
	fmt.Printf("Range:   %s .. %s (step %s)\n", start.Format("2006-01-02"), end.Format("2006-01-02"), *step)

	for _, rep := range reports {
		fmt.Printf("\n[%s] transits: %d, fallbacks: %d\n", rep.model, rep.before.count, rep.fallbacks)
		if rep.before.count == 0 {
			fmt.Println("  no transits found")
			continue
		}
		printStats("Residual before correction (deg)", &rep.before)
		printStats("Residual after correction (deg)", &rep.after)
		printStats("Time shift (s)", &rep.shift)
		printStats("Iterations", &rep.iters)
	}
}

func profile(oracle suncompass.Oracle, p suncompass.Place, start, end time.Time, step time.Duration,
	rep *report, out *csv.Writer, verbose bool, logger zerolog.Logger) {
	ctx := context.Background()
	corrector := suncompass.NewCorrector(oracle, logger)

	for t := start; t.Before(end); t = t.Add(step) {
		raw := oracle.EventsNear(p, t, step)

		for _, tr := range []struct {
			typ suncompass.EventType
			ev  suncompass.RawEvent
		}{
			{suncompass.Noon, raw.Noon},
			{suncompass.Nadir, raw.Nadir},
		} {
			if !tr.ev.OK {
				continue
			}

			before := residual(tr.typ, oracle.AzimuthAt(p, tr.ev.Time))
			c := corrector.Correct(ctx, p, tr.typ, tr.ev.Time)
			after := residual(tr.typ, c.Azimuth)

			rep.before.add(before)
			rep.after.add(after)
			rep.shift.add(math.Abs(c.Time.Sub(tr.ev.Time).Seconds()))
			rep.iters.add(float64(c.Iterations))
			if !c.Converged {
				rep.fallbacks++
			}

			if verbose {
				logger.Info().
					Str("model", rep.model).
					Stringer("type", tr.typ).
					Time("raw", tr.ev.Time).
					Time("corrected", c.Time).
					Float64("before", before).
					Float64("after", after).
					Bool("converged", c.Converged).
					Msg("transit")
			}

			if out != nil {
				if err := out.Write(csvRow(rep.model, tr.typ, tr.ev.Time, c, before, after)); err != nil {
					logger.Error().Err(err).Msg("failed to write outcsv")
				}
			}
		}
	}
}

func printStats(title string, s *stats) {
	fmt.Printf("  %s:\n", title)
	fmt.Printf("    count: %d\n", s.count)
	fmt.Printf("    min:   %.3f\n", s.min)
	fmt.Printf("    max:   %.3f\n", s.max)
	fmt.Printf("    avg:   %.3f\n", s.avg())
}
