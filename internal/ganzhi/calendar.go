package ganzhi

import (
	"fmt"

	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/solarterm"
)

// Reference epochs.
const (
	// referenceYear is a 甲子 year.
	referenceYear = 1984
	// referenceDayNumber is the Julian Day Number of local date 1992-02-17,
	// a 癸亥 day.
	referenceDayNumber = 2448670
	referenceDayIndex  = 59
)

// TermSource supplies solar-term instants. *solarterm.Calculator
// satisfies it.
type TermSource interface {
	Occurrence(year, index int) (solarterm.Occurrence, error)
	PreviousNode(jd julian.JD) (solarterm.Occurrence, error)
	NextNode(jd julian.JD) (solarterm.Occurrence, error)
}

// Calendar derives pillars from instants using a term source for the
// year and month boundaries.
type Calendar struct {
	terms TermSource
}

// NewCalendar creates a Calendar over terms.
func NewCalendar(terms TermSource) *Calendar {
	return &Calendar{terms: terms}
}

// monthStemStart maps a year stem to the stem of that year's 寅 month.
var monthStemStart = [StemCount]Stem{2, 4, 6, 8, 0, 2, 4, 6, 8, 0}

// hourStemBase maps a day stem to the stem of that day's 子 hour.
var hourStemBase = [StemCount]Stem{0, 2, 4, 6, 8, 0, 2, 4, 6, 8}

// YearPillar returns the year pillar at jd. The sexagenary year changes at
// 立春, so instants before that year's 立春 belong to the previous year.
func (c *Calendar) YearPillar(jd julian.JD) (Pillar, error) {
	year := julian.ToCivil(jd).Year
	spring, err := c.terms.Occurrence(year, solarterm.SpringStart)
	if err != nil {
		return Pillar{}, fmt.Errorf("ganzhi: year pillar: %w", err)
	}
	if jd < spring.JD {
		year--
	}
	return pillarAt(year - referenceYear), nil
}

// Month is a month pillar together with the node terms that bound it.
type Month struct {
	Pillar   Pillar               `json:"pillar" yaml:"pillar"`
	Node     solarterm.Occurrence `json:"node" yaml:"node"`
	NextNode solarterm.Occurrence `json:"next_node" yaml:"next_node"`
	// DaysSinceNode is jd minus the node instant, in fractional days.
	DaysSinceNode float64 `json:"days_since_node" yaml:"days_since_node"`
}

// Progress returns how far through the month jd lies, in [0,1).
func (m Month) Progress() float64 {
	span := float64(m.NextNode.JD - m.Node.JD)
	if span <= 0 {
		return 0
	}
	return m.DaysSinceNode / span
}

// MonthPillar returns the month pillar at jd. yearStem must be the stem of
// the year pillar at the same instant.
func (c *Calendar) MonthPillar(jd julian.JD, yearStem Stem) (Month, error) {
	if !yearStem.Valid() {
		return Month{}, fmt.Errorf("ganzhi: month pillar: %w: %d", ErrInvalidStem, int(yearStem))
	}
	node, err := c.terms.PreviousNode(jd)
	if err != nil {
		return Month{}, fmt.Errorf("ganzhi: month pillar: %w", err)
	}
	next, err := c.terms.NextNode(jd)
	if err != nil {
		return Month{}, fmt.Errorf("ganzhi: month pillar: %w", err)
	}

	branch := Branch(node.Term.Branch)
	// Months count from 寅, the first month of the sexagenary year.
	ordinal := mod(int(branch)-2, BranchCount)
	stem := Stem(mod(int(monthStemStart[yearStem])+ordinal, StemCount))

	return Month{
		Pillar:        Pillar{Stem: stem, Branch: branch},
		Node:          node,
		NextNode:      next,
		DaysSinceNode: float64(jd - node.JD),
	}, nil
}

// DayIndex returns the sexagenary index of a local civil day given its
// Julian Day Number.
func DayIndex(dayNumber int) int {
	return mod(referenceDayIndex+dayNumber-referenceDayNumber, CycleLength)
}

// DayPillar returns the day pillar of the local civil day containing jd
// at offsetMinutes east of UTC. Under Rollover23, 23:00 and later count as
// the next day and rolled reports that this happened.
func DayPillar(jd julian.JD, offsetMinutes int, boundary DayBoundary) (p Pillar, rolled bool) {
	return dayPillarLocal(julian.UTCToLocal(jd, offsetMinutes), boundary)
}

func dayPillarLocal(local julian.Civil, boundary DayBoundary) (Pillar, bool) {
	dn := local.DayNumber()
	rolled := boundary == Rollover23 && local.Hour >= 23
	if rolled {
		dn++
	}
	return pillarAt(DayIndex(dn)), rolled
}

// HourPillar returns the pillar of the two-hour period containing the
// local hour. dayStem is the stem of the civil (calendar) day. Under
// Rollover23 the 23:00 rat hour takes its stem from the following day,
// while the 00:00 rat hour keeps the current day's.
func HourPillar(hour int, dayStem Stem, boundary DayBoundary) (Pillar, error) {
	if hour < 0 || hour > 23 {
		return Pillar{}, fmt.Errorf("ganzhi: hour pillar: %w: hour %d", julian.ErrInvalidCivil, hour)
	}
	if !dayStem.Valid() {
		return Pillar{}, fmt.Errorf("ganzhi: hour pillar: %w: %d", ErrInvalidStem, int(dayStem))
	}

	branch := Branch(((hour + 1) / 2) % BranchCount)
	effective := dayStem
	if boundary == Rollover23 && hour >= 23 {
		effective = Stem(mod(int(dayStem)+1, StemCount))
	}
	stem := Stem(mod(int(hourStemBase[effective])+int(branch), StemCount))
	return Pillar{Stem: stem, Branch: branch}, nil
}
