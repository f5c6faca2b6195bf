package solarterm

import (
	"fmt"

	"github.com/papapumpkin/almanac/internal/julian"
)

// Occurrence is a term together with the instant it falls in a given
// year.
type Occurrence struct {
	Term Term      `json:"term" yaml:"term"`
	Year int       `json:"year" yaml:"year"`
	JD   julian.JD `json:"jd" yaml:"jd"`
}

// Calculator solves term occurrences with a fixed method and an optional
// memo. It is safe for concurrent use when its Cache is.
type Calculator struct {
	method Method
	cache  Cache
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithMethod selects the root-finding algorithm. The default is Newton.
func WithMethod(m Method) Option {
	return func(c *Calculator) { c.method = m }
}

// WithCache memoizes solved instants in cache.
func WithCache(cache Cache) Option {
	return func(c *Calculator) { c.cache = cache }
}

// NewCalculator builds a Calculator.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{method: Newton}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Method reports the configured root-finding algorithm.
func (c *Calculator) Method() Method { return c.method }

// Occurrence solves term index i for the given Gregorian year.
func (c *Calculator) Occurrence(year, i int) (Occurrence, error) {
	t, err := ByIndex(i)
	if err != nil {
		return Occurrence{}, err
	}

	key := Key{Method: c.method, Year: year, Term: i}
	if c.cache != nil {
		if jd, ok := c.cache.Get(key); ok {
			return Occurrence{Term: t, Year: year, JD: jd}, nil
		}
	}

	sol, err := c.method.Solve(t.Longitude, Estimate(year, i))
	if err != nil {
		return Occurrence{}, fmt.Errorf("solarterm: %s %d: %w", t.Name, year, err)
	}
	if c.cache != nil {
		c.cache.Put(key, sol.JD)
	}
	return Occurrence{Term: t, Year: year, JD: sol.JD}, nil
}

// TermInstant solves the named term for year. Unknown names fail with
// ErrUnknownTerm.
func (c *Calculator) TermInstant(year int, name string) (Occurrence, error) {
	t, err := Lookup(name)
	if err != nil {
		return Occurrence{}, err
	}
	return c.Occurrence(year, t.Index)
}

// YearTerms returns all 24 occurrences for year in chronological order.
func (c *Calculator) YearTerms(year int) ([]Occurrence, error) {
	out := make([]Occurrence, 0, Count)
	for i := 0; i < Count; i++ {
		o, err := c.Occurrence(year, i)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// PreviousNode returns the latest node term at or before jd.
func (c *Calculator) PreviousNode(jd julian.JD) (Occurrence, error) {
	var best Occurrence
	found := false
	err := c.eachNodeAround(jd, func(o Occurrence) {
		if o.JD <= jd && (!found || o.JD > best.JD) {
			best, found = o, true
		}
	})
	if err != nil {
		return Occurrence{}, err
	}
	return best, nil
}

// NextNode returns the earliest node term strictly after jd.
func (c *Calculator) NextNode(jd julian.JD) (Occurrence, error) {
	var best Occurrence
	found := false
	err := c.eachNodeAround(jd, func(o Occurrence) {
		if o.JD > jd && (!found || o.JD < best.JD) {
			best, found = o, true
		}
	})
	if err != nil {
		return Occurrence{}, err
	}
	return best, nil
}

// eachNodeAround visits every node occurrence in the civil years either
// side of jd, which always contains the neighbours of jd.
func (c *Calculator) eachNodeAround(jd julian.JD, visit func(Occurrence)) error {
	year := julian.ToCivil(jd).Year
	for y := year - 1; y <= year+1; y++ {
		for i := 0; i < Count; i += 2 {
			o, err := c.Occurrence(y, i)
			if err != nil {
				return err
			}
			visit(o)
		}
	}
	return nil
}

// YearTerms solves all 24 occurrences for year with the default method
// and no memo.
func YearTerms(year int) ([]Occurrence, error) {
	return NewCalculator().YearTerms(year)
}
