package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/ninestar"
	"github.com/papapumpkin/almanac/internal/ui"
)

var pillarsCmd = &cobra.Command{
	Use:   "pillars DATETIME",
	Short: "Compute the four pillars of a local birth instant",
	Long: `Computes the year, month, day and hour pillars of a local date and time,
with hidden stems, void branches and the nine-star profile.

DATETIME is "YYYY-MM-DD HH:MM[:SS]" (a 'T' separator is also accepted) in
the configured UTC offset.`,
	Example: `  almanac pillars 1992-02-17T17:18
  almanac pillars "2024-02-10 23:30" --rollover
  almanac pillars 1992-02-17T17:10 --true-solar --lat 32.75 --lon 129.87`,
	Args: cobra.ExactArgs(1),
	RunE: runPillars,
}

func init() {
	pillarsCmd.Flags().Bool("rollover", false, "start the day at 23:00 instead of midnight")
	pillarsCmd.Flags().Bool("true-solar", false, "read the day and hour from local apparent solar time (needs --lat/--lon)")
	pillarsCmd.Flags().String("gender", "male", "gender for the gua number: male or female")
	addLocationFlags(pillarsCmd)
	rootCmd.AddCommand(pillarsCmd)
}

func runPillars(cmd *cobra.Command, args []string) error {
	local, err := julian.ParseCivil(args[0])
	if err != nil {
		return fmt.Errorf("pillars: %w", err)
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	q := chart.Query{
		Local:         local,
		OffsetMinutes: s.cfg.UTCOffsetMinutes,
		Boundary:      s.cfg.Boundary(),
		Ayanamsa:      s.cfg.AyanamsaMode(),
		Location:      s.cfg.Location,
	}
	if rollover, _ := cmd.Flags().GetBool("rollover"); rollover {
		q.Boundary = ganzhi.Rollover23
	}
	q.TrueSolarTime, _ = cmd.Flags().GetBool("true-solar")
	gender, _ := cmd.Flags().GetString("gender")
	if q.Gender, err = ninestar.ParseGender(gender); err != nil {
		return fmt.Errorf("pillars: %w", err)
	}
	if q.Location, err = locationFlags(cmd, q.Location); err != nil {
		return fmt.Errorf("pillars: %w", err)
	}

	res, err := s.engine.Compute(q)
	if err != nil {
		return err
	}
	log.Debug("pillars", "local", local, "jd", res.JD, "node", res.Pillars.NodeName)

	return s.write(cmd, res, func() string { return ui.Chart(res) })
}
