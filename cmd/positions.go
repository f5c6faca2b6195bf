package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/ui"
)

var positionsCmd = &cobra.Command{
	Use:   "positions DATETIME",
	Short: "Show approximate tropical and sidereal positions",
	Long: `Lists the Sun, Moon, planets and lunar nodes in the tropical and sidereal
zodiacs. Planet longitudes are mean-motion approximations, not an
ephemeris. With --lat/--lon the ascendant and midheaven are added.`,
	Example: `  almanac positions 1992-02-17T17:18 --lat 35.7 --lon 139.8
  almanac positions 1992-02-17T17:18 --ayanamsa raman`,
	Args: cobra.ExactArgs(1),
	RunE: runPositions,
}

func init() {
	positionsCmd.Flags().String("ayanamsa", "", "sidereal mode: lahiri, krishnamurti or raman (default from config)")
	addLocationFlags(positionsCmd)
	rootCmd.AddCommand(positionsCmd)
}

func runPositions(cmd *cobra.Command, args []string) error {
	local, err := julian.ParseCivil(args[0])
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	ayanamsa := s.cfg.AyanamsaMode()
	if name, _ := cmd.Flags().GetString("ayanamsa"); name != "" {
		if ayanamsa, err = astro.ParseAyanamsa(name); err != nil {
			return fmt.Errorf("positions: %w", err)
		}
	}
	loc, err := locationFlags(cmd, s.cfg.Location)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	sky := chart.SkyAt(julian.FromCivil(local, s.cfg.UTCOffsetMinutes), ayanamsa, loc)
	return s.write(cmd, sky, func() string { return ui.Positions(sky) })
}
