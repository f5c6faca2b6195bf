package ganzhi

import (
	"fmt"
	"strings"
)

// DayBoundary selects when a new sexagenary day begins.
type DayBoundary int

const (
	// Midnight starts the day at 00:00 local time.
	Midnight DayBoundary = iota
	// Rollover23 starts the day at 23:00 local time, so the rat hour that
	// opens at 23:00 already belongs to the following day.
	Rollover23
)

func (d DayBoundary) String() string {
	if d == Rollover23 {
		return "rollover23"
	}
	return "midnight"
}

// MarshalText encodes the boundary name.
func (d DayBoundary) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText accepts anything ParseDayBoundary does.
func (d *DayBoundary) UnmarshalText(b []byte) error {
	v, err := ParseDayBoundary(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDayBoundary resolves "midnight" or "rollover23"; the empty string
// selects Midnight.
func ParseDayBoundary(s string) (DayBoundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "midnight", "00":
		return Midnight, nil
	case "rollover23", "23", "early-rat":
		return Rollover23, nil
	}
	return 0, fmt.Errorf("ganzhi: unknown day boundary %q", s)
}
