package ganzhi

import (
	"fmt"

	"github.com/papapumpkin/almanac/internal/julian"
)

// FourPillars is the year, month, day and hour pillars of one instant
// together with the month-boundary context used to read them.
type FourPillars struct {
	Year  Pillar `json:"year" yaml:"year"`
	Month Pillar `json:"month" yaml:"month"`
	Day   Pillar `json:"day" yaml:"day"`
	Hour  Pillar `json:"hour" yaml:"hour"`

	// NodeName is the node term that opened the month.
	NodeName      string    `json:"node_name" yaml:"node_name"`
	NodeJD        julian.JD `json:"node_jd" yaml:"node_jd"`
	DaysSinceNode float64   `json:"days_since_node" yaml:"days_since_node"`
	// NodeProgress is the fraction of the month elapsed at the instant.
	NodeProgress float64 `json:"node_progress" yaml:"node_progress"`

	DayRolledOver bool        `json:"day_rolled_over" yaml:"day_rolled_over"`
	Boundary      DayBoundary `json:"boundary" yaml:"boundary"`
	JD            julian.JD   `json:"jd" yaml:"jd"`
}

// FourPillars computes all four pillars for a local civil date/time
// observed offsetMinutes east of UTC.
func (c *Calendar) FourPillars(local julian.Civil, offsetMinutes int, boundary DayBoundary) (FourPillars, error) {
	if err := local.Validate(); err != nil {
		return FourPillars{}, fmt.Errorf("ganzhi: four pillars: %w", err)
	}
	return c.FourPillarsWithClock(julian.FromCivil(local, offsetMinutes), local, boundary)
}

// FourPillarsWithClock takes the year and month pillars from the instant
// jd and the day and hour pillars from clock, a local reading that may
// differ from standard time (local apparent solar time, for instance).
func (c *Calendar) FourPillarsWithClock(jd julian.JD, clock julian.Civil, boundary DayBoundary) (FourPillars, error) {
	if err := clock.Validate(); err != nil {
		return FourPillars{}, fmt.Errorf("ganzhi: four pillars: %w", err)
	}

	year, err := c.YearPillar(jd)
	if err != nil {
		return FourPillars{}, err
	}
	month, err := c.MonthPillar(jd, year.Stem)
	if err != nil {
		return FourPillars{}, err
	}

	day, rolled := dayPillarLocal(clock, boundary)
	civilDay, _ := dayPillarLocal(clock, Midnight)
	hour, err := HourPillar(clock.Hour, civilDay.Stem, boundary)
	if err != nil {
		return FourPillars{}, err
	}

	return FourPillars{
		Year:          year,
		Month:         month.Pillar,
		Day:           day,
		Hour:          hour,
		NodeName:      month.Node.Term.Name,
		NodeJD:        month.Node.JD,
		DaysSinceNode: month.DaysSinceNode,
		NodeProgress:  month.Progress(),
		DayRolledOver: rolled,
		Boundary:      boundary,
		JD:            jd,
	}, nil
}

// Pillars returns the four pillars in year, month, day, hour order.
func (fp FourPillars) Pillars() [4]Pillar {
	return [4]Pillar{fp.Year, fp.Month, fp.Day, fp.Hour}
}

// VoidBranches returns the void pair of the day pillar.
func (fp FourPillars) VoidBranches() [2]Branch {
	return fp.Day.VoidBranches()
}

// PillarHidden is the hidden-stem allocation of each pillar's branch.
type PillarHidden struct {
	Year  Hidden `json:"year" yaml:"year"`
	Month Hidden `json:"month" yaml:"month"`
	Day   Hidden `json:"day" yaml:"day"`
	Hour  Hidden `json:"hour" yaml:"hour"`
}

// HiddenStems allocates hidden stems for every pillar using the days
// elapsed since the month's node term.
func (fp FourPillars) HiddenStems() (PillarHidden, error) {
	var out PillarHidden
	targets := []struct {
		dst *Hidden
		b   Branch
	}{
		{&out.Year, fp.Year.Branch},
		{&out.Month, fp.Month.Branch},
		{&out.Day, fp.Day.Branch},
		{&out.Hour, fp.Hour.Branch},
	}
	for _, t := range targets {
		h, err := HiddenStems(t.b, fp.DaysSinceNode)
		if err != nil {
			return PillarHidden{}, err
		}
		*t.dst = h
	}
	return out, nil
}
