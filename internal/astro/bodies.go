package astro

import (
	"fmt"
	"math"
	"strings"

	"github.com/papapumpkin/almanac/internal/julian"
)

// Body identifies a point whose ecliptic longitude the model can produce.
type Body int

// Supported bodies. Rahu is the mean ascending lunar node and Ketu the
// point opposite it.
const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Rahu
	Ketu
)

var bodyNames = [...]string{
	Sun:     "sun",
	Moon:    "moon",
	Mercury: "mercury",
	Venus:   "venus",
	Mars:    "mars",
	Jupiter: "jupiter",
	Saturn:  "saturn",
	Uranus:  "uranus",
	Neptune: "neptune",
	Pluto:   "pluto",
	Rahu:    "rahu",
	Ketu:    "ketu",
}

// Bodies returns every supported body in display order.
func Bodies() []Body {
	out := make([]Body, len(bodyNames))
	for i := range out {
		out[i] = Body(i)
	}
	return out
}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// ParseBody resolves a case-insensitive body name.
func ParseBody(name string) (Body, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range bodyNames {
		if s == n {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

// meanElement is a mean longitude at J2000 and its daily rate.
type meanElement struct {
	l0   float64
	rate float64
	// inner planets are retrograde near conjunction, outer ones near
	// opposition.
	inner bool
}

var planetElements = map[Body]meanElement{
	Mercury: {l0: 252.250906, rate: 4.09233445, inner: true},
	Venus:   {l0: 181.979801, rate: 1.60213034, inner: true},
	Mars:    {l0: 355.433, rate: 0.52402075},
	Jupiter: {l0: 34.351519, rate: 0.0830853},
	Saturn:  {l0: 50.077444, rate: 0.03345969},
	Uranus:  {l0: 314.055005, rate: 0.0117308},
	Neptune: {l0: 304.348665, rate: 0.00598183},
	Pluto:   {l0: 238.92881, rate: 0.003975},
}

// Elongation thresholds for the retrograde heuristic, in degrees.
const (
	innerRetrogradeElongation = 20.0
	outerRetrogradeElongation = 160.0
)

// Position is a body's tropical ecliptic longitude at an instant.
type Position struct {
	Body       Body    `json:"body" yaml:"body"`
	Longitude  float64 `json:"longitude" yaml:"longitude"`
	Retrograde bool    `json:"retrograde" yaml:"retrograde"`
}

// Sign returns the zodiac sign index of the position.
func (p Position) Sign() int { return SignIndex(p.Longitude) }

// MeanNode returns the longitude of the mean ascending lunar node.
func MeanNode(jd julian.JD) float64 {
	t := jd.Centuries()
	return Normalize(125.04452 - 1934.136261*t + 0.0020708*t*t)
}

// BodyPosition returns the position of b at jd.
//
// Planets use a single mean-motion term each: this is an indicative model
// good to several degrees, not an ephemeris. Retrograde motion is flagged
// from elongation alone.
func BodyPosition(jd julian.JD, b Body) (Position, error) {
	if b < 0 || int(b) >= len(bodyNames) {
		return Position{}, fmt.Errorf("%w: %v", ErrUnknownBody, b)
	}
	return position(jd, b), nil
}

// Positions returns the positions of every supported body at jd.
func Positions(jd julian.JD) []Position {
	out := make([]Position, 0, len(bodyNames))
	for _, b := range Bodies() {
		out = append(out, position(jd, b))
	}
	return out
}

func position(jd julian.JD, b Body) Position {
	switch b {
	case Sun:
		return Position{Body: b, Longitude: SunLongitude(jd)}
	case Moon:
		return Position{Body: b, Longitude: MoonLongitude(jd)}
	case Rahu:
		return Position{Body: b, Longitude: MeanNode(jd), Retrograde: true}
	case Ketu:
		return Position{Body: b, Longitude: Normalize(MeanNode(jd) + 180), Retrograde: true}
	}

	el := planetElements[b]
	lon := Normalize(el.l0 + el.rate*jd.DaysSinceJ2000())

	elong := math.Abs(SignedDelta(lon - SunLongitude(jd)))
	retro := elong > outerRetrogradeElongation
	if el.inner {
		retro = elong < innerRetrogradeElongation
	}
	return Position{Body: b, Longitude: lon, Retrograde: retro}
}

// SignIndex returns the 30-degree zodiac sign index [0, 12) of lon.
func SignIndex(lon float64) int {
	return int(Normalize(lon)/30) % 12
}

// NakshatraIndex returns the lunar mansion index [0, 27) of a sidereal
// longitude.
func NakshatraIndex(lon float64) int {
	return int(Normalize(lon)/(360.0/27)) % 27
}
