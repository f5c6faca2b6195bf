package astro

import (
	"math"

	"github.com/papapumpkin/almanac/internal/julian"
)

// EquationOfTime returns apparent minus mean solar time in minutes at jd.
func EquationOfTime(jd julian.JD) float64 {
	t := jd.Centuries()
	tau := t / 10 // millennia

	l0 := 280.4664567 + 360007.6982779*tau + 0.03032028*tau*tau
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t*t
	e := 0.016708634 - 0.000042037*t

	y := math.Pow(tanD(Obliquity(jd)/2), 2)

	eq := y*sinD(2*l0) -
		2*e*sinD(m) +
		4*e*y*sinD(m)*cosD(2*l0) -
		0.5*y*y*sinD(4*l0) -
		1.25*e*e*sinD(2*m)

	// Radians to degrees to minutes of time.
	return eq * rad2deg * 4
}

// SolarTime is a local standard time resolved into local mean and local
// apparent (true) solar time.
type SolarTime struct {
	Standard julian.Civil `json:"standard" yaml:"standard"`
	Mean     julian.Civil `json:"mean" yaml:"mean"`
	Apparent julian.Civil `json:"apparent" yaml:"apparent"`

	// LongitudeCorrection is the observer's offset from the zone meridian
	// in minutes of time, east positive.
	LongitudeCorrection float64 `json:"longitude_correction" yaml:"longitude_correction"`
	// EquationOfTime is in minutes.
	EquationOfTime float64 `json:"equation_of_time" yaml:"equation_of_time"`
}

// TrueSolarTime resolves a local standard time observed offsetMinutes east
// of UTC at an east-positive longitude. The zone meridian is taken as
// offsetMinutes/4 degrees.
func TrueSolarTime(local julian.Civil, offsetMinutes int, longitude float64) SolarTime {
	jd := julian.FromCivil(local, offsetMinutes)
	corr := (longitude - float64(offsetMinutes)/4) * 4
	eot := EquationOfTime(jd)

	zone := float64(offsetMinutes)
	return SolarTime{
		Standard:            local,
		Mean:                julian.ToCivil(jd + julian.JD((zone+corr)/1440)),
		Apparent:            julian.ToCivil(jd + julian.JD((zone+corr+eot)/1440)),
		LongitudeCorrection: corr,
		EquationOfTime:      eot,
	}
}
