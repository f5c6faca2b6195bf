package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/almanac/internal/tui"
)

// tuiCmd launches the interactive solar-term year browser.
var tuiCmd = &cobra.Command{
	Use:   "tui [YEAR]",
	Short: "Browse solar terms year by year",
	Long: `Opens an interactive table of the 24 solar terms, starting at YEAR (the
current year by default). Left and right change the year, up and down
move between terms, q quits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	year := time.Now().Year()
	if len(args) == 1 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("tui: year %q: %w", args[0], err)
		}
		year = y
	}

	if !isStderrTTY() {
		return fmt.Errorf("almanac tui requires a TTY (terminal)")
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.Run(s.engine.Terms(), year, s.cfg.UTCOffsetMinutes)
}
