package chart

import (
	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/julian"
)

// BodyPosition is a body in both frames.
type BodyPosition struct {
	Body       string  `json:"body" yaml:"body"`
	Tropical   float64 `json:"tropical" yaml:"tropical"`
	Sidereal   float64 `json:"sidereal" yaml:"sidereal"`
	Sign       int     `json:"sign" yaml:"sign"`
	Nakshatra  int     `json:"nakshatra" yaml:"nakshatra"`
	Retrograde bool    `json:"retrograde" yaml:"retrograde"`
}

// Angles are the house angles for an observer, tropical and sidereal.
type Angles struct {
	Ascendant         float64 `json:"ascendant" yaml:"ascendant"`
	Midheaven         float64 `json:"midheaven" yaml:"midheaven"`
	SiderealAscendant float64 `json:"sidereal_ascendant" yaml:"sidereal_ascendant"`
	SiderealMidheaven float64 `json:"sidereal_midheaven" yaml:"sidereal_midheaven"`
	LocalSidereal     float64 `json:"local_sidereal_time" yaml:"local_sidereal_time"`
}

// Sky is the set of positions at one instant.
type Sky struct {
	Ayanamsa       string         `json:"ayanamsa" yaml:"ayanamsa"`
	AyanamsaOffset float64        `json:"ayanamsa_offset" yaml:"ayanamsa_offset"`
	Bodies         []BodyPosition `json:"bodies" yaml:"bodies"`
	// Angles is nil without an observer location.
	Angles *Angles `json:"angles,omitempty" yaml:"angles,omitempty"`
}

// SkyAt computes every body position at jd and, when loc is set, the
// house angles for that observer.
func SkyAt(jd julian.JD, ayanamsa astro.Ayanamsa, loc *Location) Sky {
	sky := Sky{
		Ayanamsa:       ayanamsa.String(),
		AyanamsaOffset: ayanamsa.Offset(jd),
	}
	for _, p := range astro.Positions(jd) {
		sid := ayanamsa.Sidereal(p.Longitude, jd)
		sky.Bodies = append(sky.Bodies, BodyPosition{
			Body:       p.Body.String(),
			Tropical:   p.Longitude,
			Sidereal:   sid,
			Sign:       astro.SignIndex(sid),
			Nakshatra:  astro.NakshatraIndex(sid),
			Retrograde: p.Retrograde,
		})
	}
	if loc != nil {
		asc := astro.Ascendant(jd, loc.Latitude, loc.Longitude)
		mc := astro.Midheaven(jd, loc.Longitude)
		sky.Angles = &Angles{
			Ascendant:         asc,
			Midheaven:         mc,
			SiderealAscendant: ayanamsa.Sidereal(asc, jd),
			SiderealMidheaven: ayanamsa.Sidereal(mc, jd),
			LocalSidereal:     astro.LocalSiderealTime(jd, loc.Longitude),
		}
	}
	return sky
}
