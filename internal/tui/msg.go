package tui

import "github.com/papapumpkin/almanac/internal/solarterm"

// MsgYearLoaded delivers the solved terms of one year.
type MsgYearLoaded struct {
	Year  int
	Terms []solarterm.Occurrence
	Err   error
}
