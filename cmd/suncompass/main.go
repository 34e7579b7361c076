package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/thurmanmarka/suncompass"
	"github.com/thurmanmarka/suncompass/internal/config"
	"github.com/thurmanmarka/suncompass/internal/logging"
)

func main() {
	fs := pflag.NewFlagSet("suncompass", pflag.ExitOnError)

	configPath := fs.String("config", "", "path to a config file (json, yaml or toml)")
	timeStr := fs.String("time", "", "instant in RFC3339 or 'YYYY-MM-DDTHH:MM' (defaults to now; ignored with --watch)")
	tzName := fs.String("tz", "Local", "IANA time zone used to print event times")

	fs.Float64("lat", 0, "latitude in degrees (north positive)")
	fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
	fs.Float64("altitude", 0, "observer altitude in meters")
	fs.String("model", "meeus", "sun position model: approx, meeus or suncalc")
	fs.String("declination", "wmm", "magnetic declination model: wmm, dipole or fixed")
	fs.Float64("fixed-declination", 0, "declination in degrees east when --declination=fixed")
	fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	fs.Bool("log-json", false, "write logs as JSON lines")
	fs.String("output", "text", "output format: text or json")
	fs.Duration("watch", 0, "recompute every interval until interrupted (0 = once)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `suncompass – live solar timeline for a compass dial

Usage: suncompass [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logging.UseUTC()
	logger := logging.New(cfg.Log.Level, cfg.Log.JSON, os.Stderr)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("bad configuration")
	}

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		logger.Fatal().Err(err).Str("tz", *tzName).Msg("invalid time zone")
	}

	if cfg.Place.Lat == 0 && cfg.Place.Lon == 0 {
		logger.Warn().Msg("lat=0 lon=0 (Gulf of Guinea). Use --lat and --lon to set a real location.")
	}

	engine, err := newEngine(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot build engine")
	}

	place := suncompass.Place{Lat: cfg.Place.Lat, Lon: cfg.Place.Lon, Altitude: cfg.Place.Altitude}
	render := renderText
	if cfg.Output == "json" {
		render = renderJSON
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch == 0 {
		now := time.Now()
		if *timeStr != "" {
			if now, err = parseTime(*timeStr, loc); err != nil {
				logger.Fatal().Err(err).Str("time", *timeStr).Msg("could not parse --time")
			}
		}
		if err := show(ctx, engine, place, now, loc, render); err != nil {
			logger.Fatal().Err(err).Msg("timeline failed")
		}
		return
	}

	if err := watch(ctx, engine, place, cfg.Watch, loc, render, logger); err != nil {
		logger.Fatal().Err(err).Msg("timeline failed")
	}
}

func newEngine(cfg config.Config, logger zerolog.Logger) (*suncompass.Engine, error) {
	oracle, err := suncompass.NewOracle(cfg.Model)
	if err != nil {
		return nil, err
	}

	var declination suncompass.DeclinationModel
	switch cfg.Declination.Mode {
	case "fixed":
		declination = suncompass.FixedDeclination(cfg.Declination.Fixed)
	case "dipole":
		declination = suncompass.DipoleDeclination()
	default:
		declination = suncompass.WMMDeclination()
	}

	return suncompass.NewEngine(oracle, declination,
		suncompass.WithLogger(logger),
		suncompass.WithWindows(suncompass.Windows{
			Next:            cfg.Windows.Next,
			PrecedingOffset: cfg.Windows.PrecedingOffset,
			PrecedingSpan:   cfg.Windows.PrecedingSpan,
		}),
	)
}

type renderFunc func(w io.Writer, p suncompass.Place, info suncompass.SunInfo, loc *time.Location) error

func show(ctx context.Context, e *suncompass.Engine, p suncompass.Place, now time.Time, loc *time.Location, render renderFunc) error {
	info, err := e.ComputeTimeline(ctx, p, now)
	if err != nil {
		return err
	}
	return render(os.Stdout, p, info, loc)
}

// watch recomputes the timeline every interval until ctx is cancelled.
// Failed snapshots are logged and skipped.
func watch(ctx context.Context, e *suncompass.Engine, p suncompass.Place, interval time.Duration, loc *time.Location, render renderFunc, logger zerolog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", interval).Msg("watching; interrupt to stop")

	for {
		if err := show(ctx, e, p, time.Now(), loc, render); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error().Err(err).Msg("timeline failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	var parseErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, parseErr
}

func renderText(w io.Writer, p suncompass.Place, info suncompass.SunInfo, loc *time.Location) error {
	direction := "counter-clockwise"
	if info.SunAzimuth.Clockwise {
		direction = "clockwise"
	}
	az := float64(info.SunAzimuth.Azimuth)

	fmt.Fprintf(w, "Sun timeline for lat=%.6f lon=%.6f\n", p.Lat, p.Lon)
	fmt.Fprintf(w, "At:          %s (%s)\n", info.Timestamp.In(loc).Format(time.RFC3339), loc)
	fmt.Fprintf(w, "Azimuth:     %.2f° true %s, moving %s\n", az, suncompass.Compass(az), direction)
	fmt.Fprintf(w, "Declination: %+.2f° (magnetic azimuth %.2f°)\n", info.MagneticDeclination, info.MagneticAzimuth())
	if !info.HorizonCrossing {
		fmt.Fprintln(w, "No sunrise or sunset in this window (polar day or night).")
	}
	fmt.Fprintln(w)

	for i, ev := range info.SunEvents {
		marker := " "
		if i == info.ClosestEventIndex {
			marker = "*"
		}
		_, err := fmt.Fprintf(w, "%s %-5s %s  az %6.2f° %s\n",
			marker, ev.Type, ev.Time.In(loc).Format(time.RFC3339), ev.Azimuth, suncompass.Compass(ev.Azimuth))
		if err != nil {
			return err
		}
	}
	return nil
}

type jsonOutput struct {
	Place           suncompass.Place   `json:"place"`
	MagneticAzimuth float64            `json:"magneticAzimuth"`
	Compass         string             `json:"compass"`
	Info            suncompass.SunInfo `json:"info"`
}

func renderJSON(w io.Writer, p suncompass.Place, info suncompass.SunInfo, _ *time.Location) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonOutput{
		Place:           p,
		MagneticAzimuth: info.MagneticAzimuth(),
		Compass:         suncompass.Compass(float64(info.SunAzimuth.Azimuth)),
		Info:            info,
	})
}
