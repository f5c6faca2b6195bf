package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/ninestar"
	"github.com/papapumpkin/almanac/internal/ui"
)

var ninestarCmd = &cobra.Command{
	Use:   "ninestar DATE",
	Short: "Compute the kigaku nine-star profile of a date",
	Long: `Computes the year, month, day and hour stars of a local date (the time of
day defaults to midnight), the gua number for the chosen gender, and the
year, month and day direction boards. Directions are graded for a person
born on the date unless --user-star names another year star.`,
	Example: `  almanac ninestar 1992-02-17
  almanac ninestar "1992-02-17 17:18" --gender female
  almanac ninestar 2024-05-01 --user-star 8`,
	Args: cobra.ExactArgs(1),
	RunE: runNineStar,
}

func init() {
	ninestarCmd.Flags().String("gender", "male", "gender for the gua number: male or female")
	ninestarCmd.Flags().Int("user-star", 0, "year star (1-9) to grade directions for; 0 uses the date's own")
	rootCmd.AddCommand(ninestarCmd)
}

func runNineStar(cmd *cobra.Command, args []string) error {
	local, err := julian.ParseCivil(args[0])
	if err != nil {
		return fmt.Errorf("ninestar: %w", err)
	}
	name, _ := cmd.Flags().GetString("gender")
	gender, err := ninestar.ParseGender(name)
	if err != nil {
		return fmt.Errorf("ninestar: %w", err)
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.engine.NineStar(local, s.cfg.UTCOffsetMinutes, gender)
	if err != nil {
		return err
	}
	if star, _ := cmd.Flags().GetInt("user-star"); star != 0 {
		if p.Directions, err = p.ReadDirections(star); err != nil {
			return fmt.Errorf("ninestar: --user-star: %w", err)
		}
	}
	return s.write(cmd, p, func() string { return ui.NineStar(p) })
}
