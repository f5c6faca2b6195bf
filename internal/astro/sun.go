// Package astro holds the low-order position model: apparent solar
// longitude, a short lunar series, mean-motion planets, the sidereal
// offset, house angles and local solar time. The series are accurate to
// roughly a hundredth of a degree for the Sun near the present epoch and
// degrade slowly, without bound checks, far from J2000.
package astro

import "github.com/papapumpkin/almanac/internal/julian"

// SunMeanMotion is the Sun's mean daily motion in ecliptic longitude.
const SunMeanMotion = 0.98564736

// SunLongitude returns the apparent geocentric ecliptic longitude of the
// Sun in degrees [0, 360), referred to the true equinox of date.
func SunLongitude(jd julian.JD) float64 {
	t := jd.Centuries()

	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t

	c := (1.914602-0.004817*t-0.000014*t*t)*sinD(m) +
		(0.019993-0.000101*t)*sinD(2*m) +
		0.000289*sinD(3*m)

	// Nutation in longitude and aberration, folded into one term.
	omega := 125.04 - 1934.136*t
	return Normalize(l0 + c - 0.00569 - 0.00478*sinD(omega))
}

// Obliquity returns the mean obliquity of the ecliptic in degrees.
func Obliquity(jd julian.JD) float64 {
	return 23.439291 - 0.0130042*jd.Centuries()
}
