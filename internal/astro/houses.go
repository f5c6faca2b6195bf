package astro

import "github.com/papapumpkin/almanac/internal/julian"

// GreenwichSiderealTime returns the mean sidereal time at Greenwich in
// degrees [0, 360).
func GreenwichSiderealTime(jd julian.JD) float64 {
	d := jd.DaysSinceJ2000()
	t := jd.Centuries()
	return Normalize(280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000)
}

// LocalSiderealTime returns the mean sidereal time at an east-positive
// geographic longitude, in degrees.
func LocalSiderealTime(jd julian.JD, longitude float64) float64 {
	return Normalize(GreenwichSiderealTime(jd) + longitude)
}

// Ascendant returns the ecliptic longitude rising on the eastern horizon
// for an observer at latitude/longitude (degrees, north and east positive).
func Ascendant(jd julian.JD, latitude, longitude float64) float64 {
	theta := LocalSiderealTime(jd, longitude)
	eps := Obliquity(jd)
	// The bare quotient lands on the western intersection.
	desc := atan2D(-cosD(theta), sinD(eps)*tanD(latitude)+cosD(eps)*sinD(theta))
	return Normalize(desc + 180)
}

// Midheaven returns the ecliptic longitude culminating on the meridian.
func Midheaven(jd julian.JD, longitude float64) float64 {
	theta := LocalSiderealTime(jd, longitude)
	return Normalize(atan2D(sinD(theta), cosD(theta)*cosD(Obliquity(jd))))
}
