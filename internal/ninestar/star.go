// Package ninestar computes nine-star (kigaku) numbers: the year, month,
// day and hour stars of a date and the personal gua number.
package ninestar

import (
	"fmt"
	"strings"
)

// DigitSumReduce sums decimal digits repeatedly until one digit remains.
// Zero reduces to 9, so the result is always in [1,9].
func DigitSumReduce(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 {
		sum := 0
		for ; n > 0; n /= 10 {
			sum += n % 10
		}
		n = sum
	}
	if n == 0 {
		return 9
	}
	return n
}

// wrap maps any integer onto [1,9].
func wrap(n int) int {
	r := n % 9
	if r <= 0 {
		r += 9
	}
	return r
}

// YearStar returns the year star for a kigaku year (one that starts at
// 立春): 11 minus the digit-sum reduction of the year, folded into [1,9].
func YearStar(year int) int {
	s := 11 - DigitSumReduce(year)
	if s > 9 {
		s -= 9
	}
	return s
}

// februaryStar maps a year star to the month star of that year's
// February (寅) month.
var februaryStar = [10]int{0, 8, 2, 5, 8, 2, 5, 8, 2, 5}

// MonthStar returns the month star for a year star and a kigaku month
// ordinal in [1,12]. Stars count down by one per month from February.
func MonthStar(yearStar, month int) (int, error) {
	if yearStar < 1 || yearStar > 9 {
		return 0, fmt.Errorf("%w: year star %d", ErrInvalidStar, yearStar)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidStar, month)
	}
	elapsed := (month - 2 + 12) % 12
	return wrap(februaryStar[yearStar] - elapsed), nil
}

// HourStar returns the star of the two-hour period containing hour on a
// day whose star is dayStar.
func HourStar(dayStar, hour int) int {
	branch := ((hour + 1) / 2) % 12
	return (dayStar-1+branch)%9 + 1
}

// Gender selects the gua formula.
type Gender int

// Genders.
const (
	Male Gender = iota
	Female
)

// String returns "male" or "female".
func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// MarshalText encodes the gender name.
func (g Gender) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// UnmarshalText accepts anything ParseGender does.
func (g *Gender) UnmarshalText(b []byte) error {
	v, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseGender resolves "male"/"m" or "female"/"f"; the empty string
// selects Male.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "m", "male":
		return Male, nil
	case "f", "female":
		return Female, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGender, s)
}

// Gua returns the personal gua number for a kigaku year. The male number
// equals the year star; the female one counts the other way. Gua 5 has no
// trigram and is replaced by 2 for men and 8 for women.
func Gua(year int, g Gender) int {
	r := DigitSumReduce(year)
	if g == Female {
		n := wrap(r + 4)
		if n == 5 {
			return 8
		}
		return n
	}
	n := YearStar(year)
	if n == 5 {
		return 2
	}
	return n
}
