package julian

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Civil is a proleptic Gregorian date and time of day. Whether it denotes UT
// or a local zone is up to the caller; conversions take an explicit offset.
type Civil struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// civilLayouts are the accepted textual forms, tried in order.
var civilLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseCivil parses "YYYY-MM-DD", optionally followed by "HH:MM" or
// "HH:MM:SS[.fff]" separated by a space or 'T'.
func ParseCivil(s string) (Civil, error) {
	s = strings.TrimSpace(s)
	for _, layout := range civilLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return Civil{
			Year:   t.Year(),
			Month:  int(t.Month()),
			Day:    t.Day(),
			Hour:   t.Hour(),
			Minute: t.Minute(),
			Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
		}, nil
	}
	return Civil{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidCivil, s)
}

// Validate reports whether every field is within its calendar range.
func (c Civil) Validate() error {
	switch {
	case c.Month < 1 || c.Month > 12:
		return fmt.Errorf("%w: month %d", ErrInvalidCivil, c.Month)
	case c.Day < 1 || c.Day > DaysInMonth(c.Year, c.Month):
		return fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidCivil, c.Day, c.Year, c.Month)
	case c.Hour < 0 || c.Hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidCivil, c.Hour)
	case c.Minute < 0 || c.Minute > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidCivil, c.Minute)
	case c.Second < 0 || c.Second >= 60 || math.IsNaN(c.Second):
		return fmt.Errorf("%w: second %v", ErrInvalidCivil, c.Second)
	}
	return nil
}

// Date returns the civil date with the time of day cleared.
func (c Civil) Date() Civil {
	return Civil{Year: c.Year, Month: c.Month, Day: c.Day}
}

// DayNumber returns the integer Julian Day Number of the civil date,
// ignoring the time of day.
func (c Civil) DayNumber() int {
	a := (14 - c.Month) / 12
	y := c.Year + 4800 - a
	m := c.Month + 12*a - 3
	return c.Day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

// AddDays returns the date shifted by n whole days, keeping the time of day.
func (c Civil) AddDays(n int) Civil {
	y, m, d := dateFromDayNumber(c.DayNumber() + n)
	c.Year, c.Month, c.Day = y, m, d
	return c
}

// HourFraction returns the time of day in fractional hours.
func (c Civil) HourFraction() float64 {
	return float64(c.Hour) + float64(c.Minute)/60 + c.Second/3600
}

// Time converts to a time.Time in loc, truncated to the microsecond.
func (c Civil) Time(loc *time.Location) time.Time {
	whole := math.Floor(c.Second)
	micros := math.Round((c.Second - whole) * 1e6)
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, int(whole), int(micros)*1000, loc)
}

// String formats as "YYYY-MM-DD HH:MM:SS", adding a fraction of up to
// six digits when the seconds are not whole. Seconds are rounded to the
// microsecond, never up to 60.
func (c Civil) String() string {
	micros := int64(math.Round(c.Second * 1e6))
	if micros >= 60e6 {
		micros = 60e6 - 1
	}
	s := fmt.Sprintf("%s %02d:%02d:%02d", c.DateString(), c.Hour, c.Minute, micros/1e6)
	if frac := micros % 1e6; frac != 0 {
		s += "." + strings.TrimRight(fmt.Sprintf("%06d", frac), "0")
	}
	return s
}

// DateString formats the date part as "YYYY-MM-DD".
func (c Civil) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month, c.Day)
}

// MarshalText encodes the value in String form.
func (c Civil) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts any form ParseCivil does and validates it.
func (c *Civil) UnmarshalText(b []byte) error {
	v, err := ParseCivil(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month of year.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}
