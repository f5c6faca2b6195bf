package astro

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/almanac/internal/julian"
)

// Ayanamsa selects a tropical-to-sidereal offset model.
type Ayanamsa int

// Supported ayanamsa modes.
const (
	Lahiri Ayanamsa = iota
	Krishnamurti
	Raman
)

// precessionRate is the general precession in degrees per Julian year.
const precessionRate = 50.29 / 3600

var ayanamsaModes = [...]struct {
	name  string
	j2000 float64
}{
	Lahiri:       {name: "lahiri", j2000: 23.8531},
	Krishnamurti: {name: "krishnamurti", j2000: 23.76},
	Raman:        {name: "raman", j2000: 22.41},
}

func (a Ayanamsa) String() string {
	if a < 0 || int(a) >= len(ayanamsaModes) {
		return fmt.Sprintf("Ayanamsa(%d)", int(a))
	}
	return ayanamsaModes[a].name
}

// ParseAyanamsa resolves a mode name; the empty string selects Lahiri.
func ParseAyanamsa(name string) (Ayanamsa, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Lahiri, nil
	}
	for i, m := range ayanamsaModes {
		if m.name == n {
			return Ayanamsa(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAyanamsa, name)
}

// MarshalText implements encoding.TextMarshaler.
func (a Ayanamsa) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Ayanamsa) UnmarshalText(b []byte) error {
	v, err := ParseAyanamsa(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Offset returns the ayanamsa in degrees at jd, linear in time.
func (a Ayanamsa) Offset(jd julian.JD) float64 {
	years := jd.DaysSinceJ2000() / 365.25
	return ayanamsaModes[a].j2000 + precessionRate*years
}

// Sidereal converts a tropical longitude at jd into the sidereal frame.
func (a Ayanamsa) Sidereal(tropical float64, jd julian.JD) float64 {
	return Normalize(tropical - a.Offset(jd))
}
