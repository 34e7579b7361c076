// Package config loads suncompass settings from defaults, an optional
// config file, SUNCOMPASS_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thurmanmarka/suncompass/internal/sun"
)

// EnvPrefix is prepended to environment variable names, e.g.
// SUNCOMPASS_PLACE_LAT or SUNCOMPASS_LOG_LEVEL.
const EnvPrefix = "SUNCOMPASS"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// PlaceConfig is the observer location.
type PlaceConfig struct {
	Lat      float64 `json:"lat" mapstructure:"lat"`
	Lon      float64 `json:"lon" mapstructure:"lon"`
	Altitude float64 `json:"altitude" mapstructure:"altitude"`
}

// WindowsConfig holds the oracle query windows.
type WindowsConfig struct {
	Next            time.Duration `json:"next" mapstructure:"next"`
	PrecedingOffset time.Duration `json:"precedingOffset" mapstructure:"precedingOffset"`
	PrecedingSpan   time.Duration `json:"precedingSpan" mapstructure:"precedingSpan"`
}

// DeclinationConfig selects the magnetic declination model.
type DeclinationConfig struct {
	Mode  string  `json:"mode" mapstructure:"mode"`   // wmm, dipole or fixed
	Fixed float64 `json:"fixed" mapstructure:"fixed"` // degrees east, mode=fixed only
}

// LogConfig controls the command-line logger.
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
	JSON  bool   `json:"json" mapstructure:"json"`
}

// Config is the full suncompass configuration.
type Config struct {
	Place       PlaceConfig       `json:"place" mapstructure:"place"`
	Model       string            `json:"model" mapstructure:"model"`
	Windows     WindowsConfig     `json:"windows" mapstructure:"windows"`
	Declination DeclinationConfig `json:"declination" mapstructure:"declination"`
	Log         LogConfig         `json:"log" mapstructure:"log"`
	Output      string            `json:"output" mapstructure:"output"`
	Watch       time.Duration     `json:"watch" mapstructure:"watch"`
}

// flagKeys maps command-line flag names to config keys. Flags missing from
// the FlagSet passed to Load are skipped.
var flagKeys = map[string]string{
	"lat":               "place.lat",
	"lon":               "place.lon",
	"altitude":          "place.altitude",
	"model":             "model",
	"declination":       "declination.mode",
	"fixed-declination": "declination.fixed",
	"log-level":         "log.level",
	"log-json":          "log.json",
	"output":            "output",
	"watch":             "watch",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("place.lat", 0.0)
	v.SetDefault("place.lon", 0.0)
	v.SetDefault("place.altitude", 0.0)

	v.SetDefault("model", "meeus")

	v.SetDefault("windows.next", "36h")
	v.SetDefault("windows.precedingOffset", "13h")
	v.SetDefault("windows.precedingSpan", "14h")

	v.SetDefault("declination.mode", "wmm")
	v.SetDefault("declination.fixed", 0.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("output", "text")
	v.SetDefault("watch", "0s")
}

// Load builds a Config. path names an optional config file whose format is
// taken from its extension (json, yaml, toml); flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("binding flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if _, err := sun.ModelByName(c.Model); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch {
	case c.Place.Lat < -90 || c.Place.Lat > 90:
		return fmt.Errorf("%w: place.lat %v out of range", ErrInvalidConfig, c.Place.Lat)
	case c.Place.Lon < -180 || c.Place.Lon > 180:
		return fmt.Errorf("%w: place.lon %v out of range", ErrInvalidConfig, c.Place.Lon)
	case c.Windows.Next <= 0 || c.Windows.PrecedingOffset <= 0 || c.Windows.PrecedingSpan <= 0:
		return fmt.Errorf("%w: windows must be positive", ErrInvalidConfig)
	case c.Windows.Next < 24*time.Hour:
		return fmt.Errorf("%w: windows.next %s is shorter than a day", ErrInvalidConfig, c.Windows.Next)
	case c.Windows.PrecedingSpan <= c.Windows.PrecedingOffset:
		return fmt.Errorf("%w: windows.precedingSpan must exceed windows.precedingOffset", ErrInvalidConfig)
	case c.Watch < 0:
		return fmt.Errorf("%w: watch %s is negative", ErrInvalidConfig, c.Watch)
	}

	switch c.Declination.Mode {
	case "wmm", "dipole", "fixed":
	default:
		return fmt.Errorf("%w: declination.mode %q (use wmm, dipole or fixed)", ErrInvalidConfig, c.Declination.Mode)
	}

	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("%w: output %q (use text or json)", ErrInvalidConfig, c.Output)
	}

	return nil
}
