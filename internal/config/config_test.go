package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/solarterm"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"UTCOffsetMinutes", cfg.UTCOffsetMinutes, 540},
		{"DayBoundary", cfg.DayBoundary, "midnight"},
		{"RootMethod", cfg.RootMethod, "newton"},
		{"Ayanamsa", cfg.Ayanamsa, "lahiri"},
		{"CachePath", cfg.CachePath, ""},
		{"LogLevel", cfg.LogLevel, "info"},
		{"Format", cfg.Format, "text"},
		{"ServerPort", cfg.Server.Port, 8392},
		{"BatchWorkers", cfg.Batch.Workers, 4},
		{"Boundary", cfg.Boundary(), ganzhi.Midnight},
		{"Method", cfg.Method(), solarterm.Newton},
		{"AyanamsaMode", cfg.AyanamsaMode(), astro.Lahiri},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
	if cfg.Location != nil {
		t.Errorf("Location = %+v, want nil", cfg.Location)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "utc_offset_minutes",
			envKey: "ALMANAC_UTC_OFFSET_MINUTES",
			envVal: "480",
			field:  func(c Config) any { return c.UTCOffsetMinutes },
			want:   480,
		},
		{
			name:   "day_boundary",
			envKey: "ALMANAC_DAY_BOUNDARY",
			envVal: "rollover23",
			field:  func(c Config) any { return c.Boundary() },
			want:   ganzhi.Rollover23,
		},
		{
			name:   "root_method",
			envKey: "ALMANAC_ROOT_METHOD",
			envVal: "bisect",
			field:  func(c Config) any { return c.Method() },
			want:   solarterm.Bisection,
		},
		{
			name:   "ayanamsa",
			envKey: "ALMANAC_AYANAMSA",
			envVal: "raman",
			field:  func(c Config) any { return c.AyanamsaMode() },
			want:   astro.Raman,
		},
		{
			name:   "server.port",
			envKey: "ALMANAC_SERVER_PORT",
			envVal: "9000",
			field:  func(c Config) any { return c.Server.Port },
			want:   9000,
		},
		{
			name:   "batch.workers",
			envKey: "ALMANAC_BATCH_WORKERS",
			envVal: "8",
			field:  func(c Config) any { return c.Batch.Workers },
			want:   8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so ALMANAC_* env vars map to config keys.
			viper.SetEnvPrefix("ALMANAC")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_Location(t *testing.T) {
	resetViper()
	viper.Set("latitude", 35.6895)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Location != nil {
		t.Error("latitude alone should not set a location")
	}

	viper.Set("longitude", 139.6917)
	cfg, err = Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Location == nil || cfg.Location.Longitude != 139.6917 {
		t.Errorf("Location = %+v", cfg.Location)
	}

	viper.Set("latitude", 95.0)
	if _, err := Load(); err == nil {
		t.Error("expected error for latitude 95")
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{"day_boundary", "noon", "day_boundary"},
		{"root_method", "secant", "root_method"},
		{"ayanamsa", "fagan", "ayanamsa"},
		{"log_level", "loud", "log_level"},
		{"format", "xml", "format"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
