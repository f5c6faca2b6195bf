package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/almanac/internal/solarterm"
	"github.com/papapumpkin/almanac/internal/ui"
)

var termsCmd = &cobra.Command{
	Use:   "terms YEAR",
	Short: "List the 24 solar terms of a year",
	Long: `Solves the instant the Sun reaches each of the 24 solar-term longitudes
in the given Gregorian year. Times are shown at the configured offset
unless --utc is given.`,
	Example: `  almanac terms 2024
  almanac terms 2024 --method bisect --utc`,
	Args: cobra.ExactArgs(1),
	RunE: runTerms,
}

func init() {
	termsCmd.Flags().String("method", "", "root finder: newton or bisect (default from config)")
	termsCmd.Flags().Bool("utc", false, "show instants in UTC")
	rootCmd.AddCommand(termsCmd)
}

func runTerms(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("terms: year %q: %w", args[0], err)
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	calc := s.engine.Terms()
	if name, _ := cmd.Flags().GetString("method"); name != "" {
		m, err := solarterm.ParseMethod(name)
		if err != nil {
			return fmt.Errorf("terms: %w", err)
		}
		if m != calc.Method() {
			opts := []solarterm.Option{solarterm.WithMethod(m)}
			if s.cache != nil {
				opts = append(opts, solarterm.WithCache(s.cache))
			}
			calc = solarterm.NewCalculator(opts...)
		}
	}

	occs, err := calc.YearTerms(year)
	if err != nil {
		return err
	}
	log.Debug("terms solved", "year", year, "method", calc.Method())

	offset := s.cfg.UTCOffsetMinutes
	if utc, _ := cmd.Flags().GetBool("utc"); utc {
		offset = 0
	}
	return s.write(cmd, occs, func() string { return ui.Terms(year, occs, offset) })
}
