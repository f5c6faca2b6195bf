// Package julian converts between civil Gregorian date/times and the Julian
// Day, a continuous count of days whose fractional part encodes the UTC time
// of day. Every other astronomical computation in almanac consumes a JD.
package julian

import (
	"math"
	"time"
)

// JD is a Julian Day in UT: days elapsed since -4712-01-01 12:00.
type JD float64

const (
	// J2000 is the JD of the J2000.0 epoch, 2000-01-01 12:00 UT.
	J2000 JD = 2451545.0

	// SecondsPerDay excludes leap seconds.
	SecondsPerDay = 86400

	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0
)

// FromCivil converts a civil date/time observed at a fixed UTC offset into a
// JD using the Meeus algorithm. The proleptic Gregorian calendar is used for
// all dates; there is no Julian/Gregorian cutover.
func FromCivil(c Civil, offsetMinutes int) JD {
	y, m := c.Year, c.Month
	if m <= 2 {
		y--
		m += 12
	}
	a := floorDiv(y, 100)
	b := 2 - a + floorDiv(a, 4)

	dayFrac := (float64(c.Hour) + float64(c.Minute)/60 + c.Second/3600) / 24
	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(c.Day) + float64(b) - 1524.5 + dayFrac

	return JD(jd - float64(offsetMinutes)/1440)
}

// ToCivil converts a JD back to the UTC civil date/time. Seconds are
// rounded to the millisecond, which is coarser than float64 JD resolution
// for any date in the supported range, so FromCivil/ToCivil round-trips
// whole seconds exactly.
func ToCivil(j JD) Civil {
	z := math.Floor(float64(j) + 0.5)
	f := float64(j) + 0.5 - z

	secs := math.Round(f*SecondsPerDay*1e3) / 1e3
	if secs >= SecondsPerDay {
		z++
		secs -= SecondsPerDay
	}

	year, month, day := dateFromDayNumber(int(z))

	hour := int(secs / 3600)
	secs -= float64(hour) * 3600
	minute := int(secs / 60)
	secs -= float64(minute) * 60

	return Civil{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: secs,
	}
}

// UTCToLocal converts a JD to the civil date/time at the given UTC offset.
func UTCToLocal(j JD, offsetMinutes int) Civil {
	return ToCivil(j + JD(float64(offsetMinutes)/1440))
}

// LocalToUTC converts a civil date/time observed at offsetMinutes east of
// UTC into the UTC civil date/time.
func LocalToUTC(c Civil, offsetMinutes int) Civil {
	return ToCivil(FromCivil(c, offsetMinutes))
}

// FromTime converts a time.Time to a JD.
func FromTime(t time.Time) JD {
	u := t.UTC()
	return FromCivil(Civil{
		Year:   u.Year(),
		Month:  int(u.Month()),
		Day:    u.Day(),
		Hour:   u.Hour(),
		Minute: u.Minute(),
		Second: float64(u.Second()) + float64(u.Nanosecond())/1e9,
	}, 0)
}

// Time converts the JD to a UTC time.Time at millisecond precision.
func (j JD) Time() time.Time {
	return ToCivil(j).Time(time.UTC)
}

// Centuries returns Julian centuries elapsed since J2000.0.
func (j JD) Centuries() float64 {
	return float64(j-J2000) / DaysPerCentury
}

// DaysSinceJ2000 returns days elapsed since J2000.0.
func (j JD) DaysSinceJ2000() float64 {
	return float64(j - J2000)
}

// DayNumber returns the integer Julian Day Number of the UTC civil day
// containing the instant.
func (j JD) DayNumber() int {
	return int(math.Floor(float64(j) + 0.5))
}

// Add returns the JD shifted by the given number of days.
func (j JD) Add(days float64) JD {
	return j + JD(days)
}

// dateFromDayNumber inverts a Julian Day Number into a Gregorian date using
// the Z/alpha/A/B/C/D/E decomposition.
func dateFromDayNumber(z int) (year, month, day int) {
	alpha := int(math.Floor((float64(z) - 1867216.25) / 36524.25))
	a := z + 1 + alpha - floorDiv(alpha, 4)
	b := a + 1524
	c := int(math.Floor((float64(b) - 122.1) / 365.25))
	d := int(math.Floor(365.25 * float64(c)))
	e := int(math.Floor(float64(b-d) / 30.6001))

	day = b - d - int(math.Floor(30.6001*float64(e)))
	if e < 14 {
		month = e - 1
	} else {
		month = e - 13
	}
	if month > 2 {
		year = c - 4716
	} else {
		year = c - 4715
	}
	return year, month, day
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
