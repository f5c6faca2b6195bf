package astro

import (
	"fmt"
	"math"

	"github.com/papapumpkin/almanac/internal/julian"
)

const (
	// synodicRate is the mean motion of the Moon relative to the Sun.
	synodicRate = 12.190749

	newMoonMaxIter   = 50
	newMoonTolerance = 1e-4
)

// FindNewMoon returns the conjunction of Moon and Sun nearest to near,
// refining by linear correction on the wrapped elongation.
func FindNewMoon(near julian.JD) (julian.JD, error) {
	jd := near
	for i := 0; i < newMoonMaxIter; i++ {
		delta := MoonSunElongation(jd)
		if math.Abs(delta) < newMoonTolerance {
			return jd, nil
		}
		jd -= julian.JD(delta / synodicRate)
	}
	return jd, fmt.Errorf("astro: new moon near %.4f: %w", float64(near), ErrNotConverged)
}
