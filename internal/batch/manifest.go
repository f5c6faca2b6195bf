// Package batch evaluates many birth records from a TOML manifest
// concurrently and can re-run them whenever the manifest changes.
package batch

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/ninestar"
)

// Manifest is the parsed form of a births file.
//
//	[defaults]
//	utc_offset_minutes = 540
//	day_boundary = "midnight"
//
//	[[birth]]
//	id = "a"
//	datetime = "1992-02-17 17:18"
//	gender = "female"
type Manifest struct {
	Defaults Defaults `toml:"defaults"`
	Births   []Birth  `toml:"birth"`
}

// Defaults apply to every record that does not override them.
type Defaults struct {
	UTCOffsetMinutes *int     `toml:"utc_offset_minutes"`
	DayBoundary      string   `toml:"day_boundary"`
	Ayanamsa         string   `toml:"ayanamsa"`
	Gender           string   `toml:"gender"`
	Latitude         *float64 `toml:"latitude"`
	Longitude        *float64 `toml:"longitude"`
	TrueSolarTime    bool     `toml:"true_solar_time"`
}

// Birth is one record. Datetime is local civil time as a quoted string,
// "YYYY-MM-DD HH:MM" with optional seconds.
type Birth struct {
	ID               string   `toml:"id"`
	Datetime         string   `toml:"datetime"`
	UTCOffsetMinutes *int     `toml:"utc_offset_minutes"`
	DayBoundary      string   `toml:"day_boundary"`
	Ayanamsa         string   `toml:"ayanamsa"`
	Gender           string   `toml:"gender"`
	Latitude         *float64 `toml:"latitude"`
	Longitude        *float64 `toml:"longitude"`
	TrueSolarTime    *bool    `toml:"true_solar_time"`
}

// Job is a validated record ready for evaluation.
type Job struct {
	ID    string
	Query chart.Query
}

// Parse decodes manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("batch: parse manifest: %w", err)
	}
	return &m, nil
}

// Load reads and decodes the manifest at path on fs.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("batch: manifest %s: %w", path, err)
		}
		return nil, fmt.Errorf("batch: read manifest: %w", err)
	}
	return Parse(data)
}

// Plan validates every record and resolves it against the defaults. All
// problems are collected; jobs are returned only when there are none.
func Plan(m *Manifest) ([]Job, []ValidationError) {
	if len(m.Births) == 0 {
		return nil, []ValidationError{{Err: ErrNoRecords}}
	}

	var errs []ValidationError
	d := m.Defaults
	if _, err := ganzhi.ParseDayBoundary(d.DayBoundary); err != nil {
		errs = append(errs, ValidationError{Field: "day_boundary", Err: err})
	}
	if _, err := astro.ParseAyanamsa(d.Ayanamsa); err != nil {
		errs = append(errs, ValidationError{Field: "ayanamsa", Err: err})
	}
	if _, err := ninestar.ParseGender(d.Gender); err != nil {
		errs = append(errs, ValidationError{Field: "gender", Err: err})
	}

	seen := make(map[string]bool, len(m.Births))
	jobs := make([]Job, 0, len(m.Births))
	for i, b := range m.Births {
		label := recordLabel(b.ID, i)
		fail := func(field string, err error) {
			errs = append(errs, ValidationError{Record: label, Field: field, Err: err})
		}

		if b.ID == "" {
			fail("id", fmt.Errorf("%w: id", ErrMissingField))
		} else if seen[b.ID] {
			fail("id", fmt.Errorf("%w: %q", ErrDuplicateID, b.ID))
		}
		seen[b.ID] = true

		var q chart.Query
		var err error
		if b.Datetime == "" {
			fail("datetime", fmt.Errorf("%w: datetime", ErrMissingField))
		} else if q.Local, err = julian.ParseCivil(b.Datetime); err != nil {
			fail("datetime", err)
		}

		q.OffsetMinutes = chart.DefaultOffsetMinutes
		if d.UTCOffsetMinutes != nil {
			q.OffsetMinutes = *d.UTCOffsetMinutes
		}
		if b.UTCOffsetMinutes != nil {
			q.OffsetMinutes = *b.UTCOffsetMinutes
		}
		if q.OffsetMinutes < -14*60 || q.OffsetMinutes > 14*60 {
			fail("utc_offset_minutes", fmt.Errorf("offset %d out of range", q.OffsetMinutes))
		}

		if q.Boundary, err = ganzhi.ParseDayBoundary(firstNonEmpty(b.DayBoundary, d.DayBoundary)); err != nil && b.DayBoundary != "" {
			fail("day_boundary", err)
		}
		if q.Ayanamsa, err = astro.ParseAyanamsa(firstNonEmpty(b.Ayanamsa, d.Ayanamsa)); err != nil && b.Ayanamsa != "" {
			fail("ayanamsa", err)
		}
		if q.Gender, err = ninestar.ParseGender(firstNonEmpty(b.Gender, d.Gender)); err != nil && b.Gender != "" {
			fail("gender", err)
		}

		lat, lon := pick(b.Latitude, d.Latitude), pick(b.Longitude, d.Longitude)
		switch {
		case lat != nil && lon != nil:
			q.Location = &chart.Location{Latitude: *lat, Longitude: *lon}
			if err := q.Location.Validate(); err != nil {
				fail("location", err)
			}
		case lat != nil || lon != nil:
			fail("location", fmt.Errorf("%w: latitude and longitude go together", ErrMissingField))
		}

		q.TrueSolarTime = d.TrueSolarTime
		if b.TrueSolarTime != nil {
			q.TrueSolarTime = *b.TrueSolarTime
		}
		if q.TrueSolarTime && q.Location == nil {
			fail("true_solar_time", chart.ErrNeedsLocation)
		}

		jobs = append(jobs, Job{ID: label, Query: q})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return jobs, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func pick(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}
