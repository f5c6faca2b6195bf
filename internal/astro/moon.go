package astro

import "github.com/papapumpkin/almanac/internal/julian"

// lunarTerm is one periodic correction: amplitude in degrees and the
// integer multipliers of D, M, M' and F in its argument.
type lunarTerm struct {
	amp         float64
	d, m, mp, f float64
}

var lunarTerms = [...]lunarTerm{
	{amp: 6.288774, mp: 1},
	{amp: 1.274027, d: 2, mp: -1},
	{amp: 0.658314, d: 2},
	{amp: 0.213618, mp: 2},
	{amp: -0.185116, m: 1},
	{amp: -0.114332, f: 2},
}

// MoonLongitude returns the Moon's geocentric ecliptic longitude in
// degrees [0, 360) from its mean longitude and the six largest periodic
// terms. Error is around a quarter of a degree.
func MoonLongitude(jd julian.JD) float64 {
	t := jd.Centuries()

	// Mean longitude, elongation, solar anomaly, lunar anomaly and
	// argument of latitude.
	lp := 218.3164477 + 481267.88123421*t
	d := 297.8501921 + 445267.1114034*t
	m := 357.5291092 + 35999.0502909*t
	mp := 134.9633964 + 477198.8675055*t
	f := 93.2720950 + 483202.0175233*t

	sum := 0.0
	for _, term := range lunarTerms {
		sum += term.amp * sinD(term.d*d+term.m*m+term.mp*mp+term.f*f)
	}
	return Normalize(lp + sum)
}

// MoonSunElongation returns the Moon's longitude minus the Sun's, wrapped
// into (-180, 180].
func MoonSunElongation(jd julian.JD) float64 {
	return SignedDelta(MoonLongitude(jd) - SunLongitude(jd))
}
