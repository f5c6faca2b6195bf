package ninestar

import (
	"fmt"

	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/solarterm"
)

// Sexagenary day indexes the half-cycles are anchored to.
const (
	WinterAnchorIndex = 0  // 甲子
	SummerAnchorIndex = 30 // 甲午
)

// TermSource supplies solar-term instants. *solarterm.Calculator
// satisfies it.
type TermSource interface {
	Occurrence(year, index int) (solarterm.Occurrence, error)
}

// Kigaku evaluates date-dependent stars. All comparisons are made between
// whole local civil days at a fixed UTC offset.
type Kigaku struct {
	terms  TermSource
	offset int
}

// New creates a Kigaku that reads local dates at offsetMinutes east of
// UTC.
func New(terms TermSource, offsetMinutes int) *Kigaku {
	return &Kigaku{terms: terms, offset: offsetMinutes}
}

// Anchor is the day nearest a solstice that carries a given sexagenary
// index.
type Anchor struct {
	Solstice  solarterm.Occurrence `json:"solstice" yaml:"solstice"`
	DayNumber int                  `json:"day_number" yaml:"day_number"`
	Pillar    ganzhi.Pillar        `json:"pillar" yaml:"pillar"`
}

// Date returns the anchor's local civil date.
func (a Anchor) Date() julian.Civil {
	return julian.ToCivil(julian.JD(a.DayNumber)).Date()
}

// SolsticeJiazi finds the day with sexagenary index target nearest the
// given solstice term (solarterm.WinterSolstice or SummerSolstice) of
// year. Candidates lie at most 30 days either side; on a tie the earlier
// day wins.
func (k *Kigaku) SolsticeJiazi(year, solstice, target int) (Anchor, error) {
	if solstice != solarterm.WinterSolstice && solstice != solarterm.SummerSolstice {
		return Anchor{}, fmt.Errorf("ninestar: %w: term %d is not a solstice", ErrNoAnchor, solstice)
	}
	occ, err := k.terms.Occurrence(year, solstice)
	if err != nil {
		return Anchor{}, fmt.Errorf("ninestar: %w: %w", ErrNoAnchor, err)
	}

	dn := k.localDayNumber(occ.JD)
	idx := ganzhi.DayIndex(dn)
	after := mod(target-idx, ganzhi.CycleLength)
	before := mod(idx-target, ganzhi.CycleLength)
	if after < before {
		dn += after
	} else {
		dn -= before
	}

	p, err := ganzhi.PillarFromIndex(ganzhi.DayIndex(dn))
	if err != nil {
		return Anchor{}, fmt.Errorf("ninestar: %w: %w", ErrNoAnchor, err)
	}
	return Anchor{Solstice: occ, DayNumber: dn, Pillar: p}, nil
}

// DayStar is a day's star with the half-cycle it falls in.
type DayStar struct {
	Value     int    `json:"value" yaml:"value"`
	Ascending bool   `json:"ascending" yaml:"ascending"`
	Anchor    Anchor `json:"anchor" yaml:"anchor"`
	// DaysSinceAnchor counts whole days from the anchor to the date.
	DaysSinceAnchor int `json:"days_since_anchor" yaml:"days_since_anchor"`
}

// DayStar returns the star of a local civil date. Stars ascend from the
// jiazi day nearest the winter solstice until the anchor day near the
// summer solstice, then descend until the next winter anchor.
func (k *Kigaku) DayStar(date julian.Civil) (DayStar, error) {
	dn := date.DayNumber()
	y := date.Year

	// Periods are tried latest first.
	periods := []struct {
		year, solstice, target int
		ascending              bool
	}{
		{y, solarterm.WinterSolstice, WinterAnchorIndex, true},
		{y, solarterm.SummerSolstice, SummerAnchorIndex, false},
		{y - 1, solarterm.WinterSolstice, WinterAnchorIndex, true},
		{y - 1, solarterm.SummerSolstice, SummerAnchorIndex, false},
	}
	for _, p := range periods {
		a, err := k.SolsticeJiazi(p.year, p.solstice, p.target)
		if err != nil {
			return DayStar{}, err
		}
		if dn < a.DayNumber {
			continue
		}
		days := dn - a.DayNumber
		value := 9 - days%9
		if p.ascending {
			value = days%9 + 1
		}
		return DayStar{Value: value, Ascending: p.ascending, Anchor: a, DaysSinceAnchor: days}, nil
	}
	return DayStar{}, fmt.Errorf("ninestar: %w: %v precedes every candidate", ErrNoAnchor, date.Date())
}

// TargetYear returns the kigaku year of a local civil date: the civil year,
// or the one before it when the date is earlier than that year's 立春.
func (k *Kigaku) TargetYear(date julian.Civil) (int, error) {
	spring, err := k.terms.Occurrence(date.Year, solarterm.SpringStart)
	if err != nil {
		return 0, fmt.Errorf("ninestar: target year: %w", err)
	}
	if date.DayNumber() < k.localDayNumber(spring.JD) {
		return date.Year - 1, nil
	}
	return date.Year, nil
}

// KigakuMonth returns the month ordinal in [1,12] of a local civil date:
// the civil month, or the one before it when the date is earlier than the
// month's node term.
func (k *Kigaku) KigakuMonth(date julian.Civil) (int, error) {
	node, err := solarterm.NodeForMonth(date.Month)
	if err != nil {
		return 0, fmt.Errorf("ninestar: kigaku month: %w", err)
	}
	occ, err := k.terms.Occurrence(date.Year, node.Index)
	if err != nil {
		return 0, fmt.Errorf("ninestar: kigaku month: %w", err)
	}
	m := date.Month
	if date.DayNumber() < k.localDayNumber(occ.JD) {
		m--
		if m == 0 {
			m = 12
		}
	}
	return m, nil
}

// Profile is the full set of stars for a local date and time.
type Profile struct {
	TargetYear   int           `json:"target_year" yaml:"target_year"`
	KigakuMonth  int           `json:"kigaku_month" yaml:"kigaku_month"`
	YearStar     int           `json:"year_star" yaml:"year_star"`
	MonthStar    int           `json:"month_star" yaml:"month_star"`
	DayStar      int           `json:"day_star" yaml:"day_star"`
	Ascending    bool          `json:"ascending" yaml:"ascending"`
	DayAnchor    julian.Civil  `json:"day_anchor" yaml:"day_anchor"`
	AnchorPillar ganzhi.Pillar `json:"anchor_pillar" yaml:"anchor_pillar"`
	HourStar     int           `json:"hour_star" yaml:"hour_star"`
	Gender       Gender        `json:"gender" yaml:"gender"`
	Gua          int           `json:"gua" yaml:"gua"`
	YearBoard    Board         `json:"year_board" yaml:"year_board"`
	MonthBoard   Board         `json:"month_board" yaml:"month_board"`
	DayBoard     Board         `json:"day_board" yaml:"day_board"`
	// Directions grades the compass for someone whose year star is
	// YearStar, i.e. a person born at the profiled instant.
	Directions []DirectionReading `json:"directions" yaml:"directions"`
}

// YearBranch returns the branch of the kigaku target year.
func (p Profile) YearBranch() ganzhi.Branch {
	return ganzhi.Branch(mod(p.TargetYear-4, ganzhi.BranchCount))
}

// ReadDirections grades the profile's boards for a person with the given
// year star.
func (p Profile) ReadDirections(userStar int) ([]DirectionReading, error) {
	return ReadDirections(p.YearBoard, p.MonthBoard, p.DayBoard, userStar, p.YearBranch())
}

// Profile computes every star for a local civil date/time.
func (k *Kigaku) Profile(local julian.Civil, g Gender) (Profile, error) {
	if err := local.Validate(); err != nil {
		return Profile{}, fmt.Errorf("ninestar: profile: %w", err)
	}

	year, err := k.TargetYear(local)
	if err != nil {
		return Profile{}, err
	}
	month, err := k.KigakuMonth(local)
	if err != nil {
		return Profile{}, err
	}
	ys := YearStar(year)
	ms, err := MonthStar(ys, month)
	if err != nil {
		return Profile{}, err
	}
	ds, err := k.DayStar(local)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		TargetYear:   year,
		KigakuMonth:  month,
		YearStar:     ys,
		MonthStar:    ms,
		DayStar:      ds.Value,
		Ascending:    ds.Ascending,
		DayAnchor:    ds.Anchor.Date(),
		AnchorPillar: ds.Anchor.Pillar,
		HourStar:     HourStar(ds.Value, local.Hour),
		Gender:       g,
		Gua:          Gua(year, g),
	}
	if p.YearBoard, err = NewBoard(ys); err != nil {
		return Profile{}, err
	}
	if p.MonthBoard, err = NewBoard(ms); err != nil {
		return Profile{}, err
	}
	if p.DayBoard, err = NewBoard(ds.Value); err != nil {
		return Profile{}, err
	}
	if p.Directions, err = p.ReadDirections(ys); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (k *Kigaku) localDayNumber(jd julian.JD) int {
	return julian.UTCToLocal(jd, k.offset).DayNumber()
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
