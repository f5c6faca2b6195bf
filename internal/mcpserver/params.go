package mcpserver

import (
	"fmt"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/ninestar"
)

// reading is the parsed common part of a tool input.
type reading struct {
	local    julian.Civil
	offset   int
	boundary ganzhi.DayBoundary
	ayanamsa astro.Ayanamsa
	gender   ninestar.Gender
	location *chart.Location
}

// readingInput carries the fields shared by the instant-based tools.
type readingInput struct {
	Datetime      string
	OffsetMinutes *int
	Boundary      string
	Ayanamsa      string
	Gender        string
	Latitude      *float64
	Longitude     *float64
}

// parse resolves in against the server defaults.
func (s *Server) parse(in readingInput) (reading, error) {
	if in.Datetime == "" {
		return reading{}, fmt.Errorf("datetime is required")
	}
	r := reading{offset: s.offset, boundary: s.boundary, ayanamsa: s.ayanamsa}

	var err error
	if r.local, err = julian.ParseCivil(in.Datetime); err != nil {
		return reading{}, err
	}
	if in.OffsetMinutes != nil {
		r.offset = *in.OffsetMinutes
	}
	if r.offset < -14*60 || r.offset > 14*60 {
		return reading{}, fmt.Errorf("utc_offset_minutes %d out of range", r.offset)
	}
	if in.Boundary != "" {
		if r.boundary, err = ganzhi.ParseDayBoundary(in.Boundary); err != nil {
			return reading{}, err
		}
	}
	if in.Ayanamsa != "" {
		if r.ayanamsa, err = astro.ParseAyanamsa(in.Ayanamsa); err != nil {
			return reading{}, err
		}
	}
	if r.gender, err = ninestar.ParseGender(in.Gender); err != nil {
		return reading{}, err
	}

	switch {
	case in.Latitude != nil && in.Longitude != nil:
		loc := chart.Location{Latitude: *in.Latitude, Longitude: *in.Longitude}
		if err := loc.Validate(); err != nil {
			return reading{}, err
		}
		r.location = &loc
	case in.Latitude != nil || in.Longitude != nil:
		return reading{}, fmt.Errorf("latitude and longitude must be given together")
	}
	return r, nil
}

// query builds a chart query from r.
func (r reading) query(trueSolar bool) chart.Query {
	return chart.Query{
		Local:         r.local,
		OffsetMinutes: r.offset,
		Boundary:      r.boundary,
		Gender:        r.gender,
		Ayanamsa:      r.ayanamsa,
		Location:      r.location,
		TrueSolarTime: trueSolar,
	}
}
