package config

import (
	"fmt"

	"github.com/powerman/structlog"
	"github.com/spf13/viper"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/solarterm"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// BatchConfig holds configuration for manifest runs.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
	// Telemetry is the JSONL event file; empty disables events.
	Telemetry string `mapstructure:"telemetry"`
}

// Config holds all runtime configuration for an almanac session.
// Values are populated from .almanac.yaml, ALMANAC_* env vars, and CLI flags.
type Config struct {
	UTCOffsetMinutes int          `mapstructure:"utc_offset_minutes"`
	DayBoundary      string       `mapstructure:"day_boundary"`
	RootMethod       string       `mapstructure:"root_method"`
	Ayanamsa         string       `mapstructure:"ayanamsa"`
	CachePath        string       `mapstructure:"cache_path"`
	LogLevel         string       `mapstructure:"log_level"`
	Format           string       `mapstructure:"format"`
	Verbose          bool         `mapstructure:"verbose"`
	Server           ServerConfig `mapstructure:"server"`
	Batch            BatchConfig  `mapstructure:"batch"`

	// Location is set only when both latitude and longitude are configured.
	Location *chart.Location `mapstructure:"-"`

	boundary ganzhi.DayBoundary
	method   solarterm.Method
	ayanamsa astro.Ayanamsa
}

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "yaml"}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. Enumerated values
// are checked so a bad setting fails before any computation.
func Load() (Config, error) {
	viper.SetDefault("utc_offset_minutes", chart.DefaultOffsetMinutes)
	viper.SetDefault("day_boundary", "midnight")
	viper.SetDefault("root_method", "newton")
	viper.SetDefault("ayanamsa", "lahiri")
	viper.SetDefault("cache_path", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("server.port", 8392)
	viper.SetDefault("batch.workers", 4)
	viper.SetDefault("batch.telemetry", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if viper.IsSet("latitude") && viper.IsSet("longitude") {
		cfg.Location = &chart.Location{
			Latitude:  viper.GetFloat64("latitude"),
			Longitude: viper.GetFloat64("longitude"),
		}
		if err := cfg.Location.Validate(); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	var err error
	if cfg.boundary, err = ganzhi.ParseDayBoundary(cfg.DayBoundary); err != nil {
		return Config{}, fmt.Errorf("config: day_boundary: %w", err)
	}
	if cfg.method, err = solarterm.ParseMethod(cfg.RootMethod); err != nil {
		return Config{}, fmt.Errorf("config: root_method: %w", err)
	}
	if cfg.ayanamsa, err = astro.ParseAyanamsa(cfg.Ayanamsa); err != nil {
		return Config{}, fmt.Errorf("config: ayanamsa: %w", err)
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return Config{}, fmt.Errorf("config: log_level %q: want debug, info, warn or error", cfg.LogLevel)
	}
	if !validFormat(cfg.Format) {
		return Config{}, fmt.Errorf("config: format %q: want one of %v", cfg.Format, Formats)
	}
	return cfg, nil
}

var logLevels = map[string]func(*structlog.Logger) *structlog.Logger{
	"debug": func(l *structlog.Logger) *structlog.Logger { return l.SetLogLevel(structlog.DBG) },
	"info":  func(l *structlog.Logger) *structlog.Logger { return l.SetLogLevel(structlog.INF) },
	"warn":  func(l *structlog.Logger) *structlog.Logger { return l.SetLogLevel(structlog.WRN) },
	"error": func(l *structlog.Logger) *structlog.Logger { return l.SetLogLevel(structlog.ERR) },
}

// ApplyLogLevel sets the configured level on the process-wide logger.
func (c Config) ApplyLogLevel() {
	if set, ok := logLevels[c.LogLevel]; ok {
		set(structlog.DefaultLogger)
	}
}

// Boundary returns the parsed day_boundary.
func (c Config) Boundary() ganzhi.DayBoundary { return c.boundary }

// Method returns the parsed root_method.
func (c Config) Method() solarterm.Method { return c.method }

// AyanamsaMode returns the parsed ayanamsa.
func (c Config) AyanamsaMode() astro.Ayanamsa { return c.ayanamsa }

func validFormat(f string) bool {
	for _, ok := range Formats {
		if f == ok {
			return true
		}
	}
	return false
}
