package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/almanac/internal/store"
	"github.com/papapumpkin/almanac/internal/ui"
)

var errNoCache = errors.New("no cache configured; set cache_path or pass --cache")

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and pre-fill the persistent term cache",
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm FROM [TO]",
	Short: "Solve and store every term of a range of years",
	Example: `  almanac cache warm 1900 2100 --cache terms.db
  ALMANAC_ROOT_METHOD=bisect almanac cache warm 2024`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCacheWarm,
}

var cacheStatsCmd = &cobra.Command{
	Use:     "stats [YEAR]",
	Short:   "Show how many instants are stored, optionally listing one year",
	Example: `  almanac cache stats 2024 --cache terms.db`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheWarmCmd, cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("year %q: %w", s, err)
	}
	return y, nil
}

func runCacheWarm(cmd *cobra.Command, args []string) error {
	from, err := parseYear(args[0])
	if err != nil {
		return fmt.Errorf("cache warm: %w", err)
	}
	to := from
	if len(args) == 2 {
		if to, err = parseYear(args[1]); err != nil {
			return fmt.Errorf("cache warm: %w", err)
		}
	}
	if to < from {
		return fmt.Errorf("cache warm: range %d..%d is empty", from, to)
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	if s.cache == nil {
		return fmt.Errorf("cache warm: %w", errNoCache)
	}

	n, err := store.Warm(cmd.Context(), s.engine.Terms(), from, to)
	if err != nil {
		return err
	}
	ui.New().Success(fmt.Sprintf("%d instants cached for %d..%d (%s)", n, from, to, s.engine.Terms().Method()))
	return nil
}

// cacheStats is the structured form of the stats command.
type cacheStats struct {
	Path    string      `json:"path" yaml:"path"`
	Entries int         `json:"entries" yaml:"entries"`
	Rows    []store.Row `json:"rows,omitempty" yaml:"rows,omitempty"`
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	if s.cache == nil {
		return fmt.Errorf("cache stats: %w", errNoCache)
	}

	ctx := cmd.Context()
	n, err := s.cache.Count(ctx)
	if err != nil {
		return err
	}
	stats := cacheStats{Path: s.cfg.CachePath, Entries: n}
	if len(args) == 1 {
		year, err := parseYear(args[0])
		if err != nil {
			return fmt.Errorf("cache stats: %w", err)
		}
		if stats.Rows, err = s.cache.Year(ctx, s.engine.Terms().Method(), year); err != nil {
			return err
		}
	}
	return s.write(cmd, stats, func() string {
		return ui.CacheRows(stats.Path, stats.Entries, stats.Rows, s.cfg.UTCOffsetMinutes)
	})
}
