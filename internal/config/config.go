// Package config loads service settings from environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SourceURL       string        `envconfig:"SOURCE_URL" default:"https://www.usf.edu/coronavirus/updates/usf-cases.aspx"`
	FetchTimeout    time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	DBPath          string        `envconfig:"DB_PATH" default:"predictions.db"`

	ForecastHorizonDays     int `envconfig:"FORECAST_HORIZON_DAYS" default:"50"`
	PercentChangeWindowDays int `envconfig:"PERCENT_CHANGE_WINDOW_DAYS" default:"14"`

	// Scheduling: either a daily fire at ScheduleAt ("HH:MM") or a fixed
	// interval, optionally in a named timezone.
	ScheduleMode     string        `envconfig:"SCHEDULE_MODE" default:"daily"`
	ScheduleAt       string        `envconfig:"SCHEDULE_AT" default:"11:59"`
	ScheduleInterval time.Duration `envconfig:"SCHEDULE_INTERVAL" default:"1h"`
	ScheduleTimezone string        `envconfig:"SCHEDULE_TIMEZONE" default:""`

	// Derived from ScheduleAt / ScheduleTimezone during Load.
	ScheduleHour   int            `ignored:"true"`
	ScheduleMinute int            `ignored:"true"`
	Timezone       *time.Location `ignored:"true"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.SourceURL == "" {
		return nil, fmt.Errorf("SOURCE_URL is required")
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if cfg.ForecastHorizonDays <= 0 {
		return nil, fmt.Errorf("FORECAST_HORIZON_DAYS must be positive")
	}
	if cfg.PercentChangeWindowDays <= 0 {
		return nil, fmt.Errorf("PERCENT_CHANGE_WINDOW_DAYS must be positive")
	}

	switch cfg.ScheduleMode {
	case "daily":
		hour, minute, err := parseClockTime(cfg.ScheduleAt)
		if err != nil {
			return nil, fmt.Errorf("invalid SCHEDULE_AT: %w", err)
		}
		cfg.ScheduleHour, cfg.ScheduleMinute = hour, minute
	case "interval":
		if cfg.ScheduleInterval <= 0 {
			return nil, fmt.Errorf("SCHEDULE_INTERVAL must be positive")
		}
	default:
		return nil, fmt.Errorf("SCHEDULE_MODE must be %q or %q, got %q", "daily", "interval", cfg.ScheduleMode)
	}

	cfg.Timezone = time.UTC
	if cfg.ScheduleTimezone != "" {
		loc, err := time.LoadLocation(cfg.ScheduleTimezone)
		if err != nil {
			return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE: %w", err)
		}
		cfg.Timezone = loc
	}

	return &cfg, nil
}

func parseClockTime(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, errH := strconv.Atoi(hh)
	minute, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return hour, minute, nil
}
