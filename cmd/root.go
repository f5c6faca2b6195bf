// Package cmd is the almanac command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/powerman/structlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/config"
	"github.com/papapumpkin/almanac/internal/solarterm"
	"github.com/papapumpkin/almanac/internal/store"
	"github.com/papapumpkin/almanac/internal/ui"
)

var log = structlog.New(structlog.KeyUnit, "cmd")

// Version is the almanac release reported by the banner and the MCP server.
const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "almanac",
	Short: "Sexagenary calendar, solar terms and nine-star astrology",
	Long: `Almanac computes the four pillars of a birth instant, the 24 solar terms of a
year, the kigaku nine-star profile and approximate planetary positions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.New().Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .almanac.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.Int("offset", chart.DefaultOffsetMinutes, "UTC offset of local times in minutes east")
	pf.String("format", "text", "output format: text, json or yaml")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("cache", "", "SQLite file memoizing solved term instants")

	for key, flag := range map[string]string{
		"verbose":            "verbose",
		"utc_offset_minutes": "offset",
		"format":             "format",
		"log_level":          "log-level",
		"cache_path":         "cache",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".almanac")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("ALMANAC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// session is the shared state every computing command starts from.
type session struct {
	cfg    config.Config
	engine *chart.Engine
	cache  *store.SQLiteCache
}

// newSession loads configuration and builds the engine. With cache_path
// set, term instants persist across runs.
func newSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.ApplyLogLevel()

	opts := []solarterm.Option{solarterm.WithMethod(cfg.Method())}
	s := &session{cfg: cfg}
	if cfg.CachePath != "" {
		c, err := store.Open(ctx, cfg.CachePath)
		if err != nil {
			return nil, err
		}
		s.cache = c
		opts = append(opts, solarterm.WithCache(c))
		log.Debug("term cache", "path", cfg.CachePath)
	} else {
		opts = append(opts, solarterm.WithCache(solarterm.NewMemoryCache()))
	}
	s.engine = chart.NewEngine(solarterm.NewCalculator(opts...))
	return s, nil
}

// Close releases the persistent cache, if any.
func (s *session) Close() {
	if s.cache != nil {
		log.ErrIfFail(s.cache.Close)
	}
}

// write renders v in the configured format on the command's stdout.
func (s *session) write(cmd *cobra.Command, v any, text func() string) error {
	if err := ui.Write(cmd.OutOrStdout(), s.cfg.Format, v, text); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}
