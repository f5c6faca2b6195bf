// Package chart answers birth queries: it composes the four pillars, the
// nine-star profile and the sidereal positions of one instant into a single
// result.
package chart

import (
	"fmt"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/ninestar"
	"github.com/papapumpkin/almanac/internal/solarterm"
)

// DefaultOffsetMinutes is Japan Standard Time.
const DefaultOffsetMinutes = 540

// Location is an observer position in degrees, north and east positive.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude" toml:"longitude"`
}

// Validate checks the coordinate ranges.
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidLocation, l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidLocation, l.Longitude)
	}
	return nil
}

// Query is one birth instant and how to read it.
type Query struct {
	Local         julian.Civil       `json:"local" yaml:"local"`
	OffsetMinutes int                `json:"offset_minutes" yaml:"offset_minutes"`
	Boundary      ganzhi.DayBoundary `json:"boundary" yaml:"boundary"`
	Gender        ninestar.Gender    `json:"gender" yaml:"gender"`
	Ayanamsa      astro.Ayanamsa     `json:"ayanamsa" yaml:"ayanamsa"`
	// Location enables house angles and true solar time; nil skips both.
	Location *Location `json:"location,omitempty" yaml:"location,omitempty"`
	// TrueSolarTime reads the day and hour pillars from local apparent
	// solar time. It requires Location.
	TrueSolarTime bool `json:"true_solar_time" yaml:"true_solar_time"`
}

// Result is the canonical answer to a Query.
type Result struct {
	Query     Query               `json:"query" yaml:"query"`
	JD        julian.JD           `json:"jd" yaml:"jd"`
	UTC       julian.Civil        `json:"utc" yaml:"utc"`
	Pillars   ganzhi.FourPillars  `json:"pillars" yaml:"pillars"`
	Hidden    ganzhi.PillarHidden `json:"hidden" yaml:"hidden"`
	Void      [2]ganzhi.Branch    `json:"void" yaml:"void"`
	NineStar  ninestar.Profile    `json:"nine_star" yaml:"nine_star"`
	SolarTime *astro.SolarTime    `json:"solar_time,omitempty" yaml:"solar_time,omitempty"`
	Sky       Sky                 `json:"sky" yaml:"sky"`
}

// Engine evaluates queries against one term calculator, so term instants
// solved for one query are reused by the next when the calculator carries
// a cache. It is safe for concurrent use.
type Engine struct {
	terms    *solarterm.Calculator
	calendar *ganzhi.Calendar
}

// NewEngine creates an Engine over terms.
func NewEngine(terms *solarterm.Calculator) *Engine {
	return &Engine{terms: terms, calendar: ganzhi.NewCalendar(terms)}
}

// Terms returns the engine's term calculator.
func (e *Engine) Terms() *solarterm.Calculator { return e.terms }

// Compute evaluates q.
func (e *Engine) Compute(q Query) (Result, error) {
	if err := q.Local.Validate(); err != nil {
		return Result{}, fmt.Errorf("chart: %w", err)
	}
	if q.Location != nil {
		if err := q.Location.Validate(); err != nil {
			return Result{}, fmt.Errorf("chart: %w", err)
		}
	}
	if q.TrueSolarTime && q.Location == nil {
		return Result{}, fmt.Errorf("chart: %w", ErrNeedsLocation)
	}

	jd := julian.FromCivil(q.Local, q.OffsetMinutes)
	res := Result{Query: q, JD: jd, UTC: julian.ToCivil(jd)}

	clock := q.Local
	if q.TrueSolarTime {
		st := astro.TrueSolarTime(q.Local, q.OffsetMinutes, q.Location.Longitude)
		res.SolarTime = &st
		clock = st.Apparent
	}

	fp, err := e.calendar.FourPillarsWithClock(jd, clock, q.Boundary)
	if err != nil {
		return Result{}, fmt.Errorf("chart: %w", err)
	}
	res.Pillars = fp
	if res.Hidden, err = fp.HiddenStems(); err != nil {
		return Result{}, fmt.Errorf("chart: %w", err)
	}
	res.Void = fp.VoidBranches()

	k := ninestar.New(e.terms, q.OffsetMinutes)
	if res.NineStar, err = k.Profile(q.Local, q.Gender); err != nil {
		return Result{}, fmt.Errorf("chart: %w", err)
	}

	res.Sky = SkyAt(jd, q.Ayanamsa, q.Location)
	return res, nil
}

// YearTerms returns the 24 term occurrences of a civil year.
func (e *Engine) YearTerms(year int) ([]solarterm.Occurrence, error) {
	return e.terms.YearTerms(year)
}

// NineStar returns the nine-star profile of a local date/time.
func (e *Engine) NineStar(local julian.Civil, offsetMinutes int, g ninestar.Gender) (ninestar.Profile, error) {
	return ninestar.New(e.terms, offsetMinutes).Profile(local, g)
}
