package ninestar

import (
	"fmt"

	"github.com/papapumpkin/almanac/internal/ganzhi"
)

// Direction is one of the eight outer palaces of the nine-palace board.
type Direction int

// Directions, clockwise from north.
const (
	North Direction = iota
	Northeast
	East
	Southeast
	South
	Southwest
	West
	Northwest
)

// DirectionCount is the number of outer palaces.
const DirectionCount = 8

var directionCodes = [DirectionCount]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// directionPalaces holds each direction's 後天定位 palace number; the
// centre palace is 5.
var directionPalaces = [DirectionCount]int{1, 8, 3, 4, 9, 2, 7, 6}

// String returns the compass code ("N", "NE", ...).
func (d Direction) String() string {
	if d < 0 || d >= DirectionCount {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionCodes[d]
}

// MarshalText encodes the compass code.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Palace returns the fixed palace number of d.
func (d Direction) Palace() int { return directionPalaces[d] }

// Opposite returns the direction across the centre.
func (d Direction) Opposite() Direction { return (d + 4) % DirectionCount }

// branchDirections places each earthly branch on the compass.
var branchDirections = [ganzhi.BranchCount]Direction{
	North, Northeast, Northeast, East, Southeast, Southeast,
	South, Southwest, Southwest, West, Northwest, Northwest,
}

// BranchDirection returns the compass direction of a branch.
func BranchDirection(b ganzhi.Branch) Direction { return branchDirections[b] }

// Board is a nine-palace board: a centre star and the star flown into
// each outer palace. Stars is indexed by Direction.
type Board struct {
	Center int                 `json:"center" yaml:"center"`
	Stars  [DirectionCount]int `json:"stars" yaml:"stars"`
}

// NewBoard flies the stars out from center: the palace numbered p holds
// ((center-1)+(p-5)) mod 9 + 1, so center 5 reproduces the fixed layout.
func NewBoard(center int) (Board, error) {
	if center < 1 || center > 9 {
		return Board{}, fmt.Errorf("%w: centre %d", ErrInvalidStar, center)
	}
	b := Board{Center: center}
	for d := North; d < DirectionCount; d++ {
		b.Stars[d] = mod(center-1+d.Palace()-5, 9) + 1
	}
	return b, nil
}

// Star returns the star in direction d.
func (b Board) Star(d Direction) int { return b.Stars[d] }

// GooSatsu returns the direction holding star 5. There is none when 5
// occupies the centre.
func (b Board) GooSatsu() (Direction, bool) {
	for d := North; d < DirectionCount; d++ {
		if b.Stars[d] == 5 {
			return d, true
		}
	}
	return 0, false
}

// AnkenSatsu returns the direction opposite GooSatsu.
func (b Board) AnkenSatsu() (Direction, bool) {
	d, ok := b.GooSatsu()
	if !ok {
		return 0, false
	}
	return d.Opposite(), true
}

// Saiha returns the direction opposite the year branch.
func Saiha(yearBranch ganzhi.Branch) Direction {
	return BranchDirection(yearBranch).Opposite()
}

// starElements maps stars 1..9 to their phase; index 0 is unused.
var starElements = [10]ganzhi.Element{
	0, ganzhi.Water, ganzhi.Earth, ganzhi.Wood, ganzhi.Wood, ganzhi.Earth,
	ganzhi.Metal, ganzhi.Metal, ganzhi.Earth, ganzhi.Fire,
}

// StarElement returns the phase of a star in [1,9].
func StarElement(star int) (ganzhi.Element, error) {
	if star < 1 || star > 9 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStar, star)
	}
	return starElements[star], nil
}

// generates reports whether phase a generates phase b.
func generates(a, b ganzhi.Element) bool { return (a+1)%5 == b }

// LuckyDirections lists, clockwise from north, the directions whose star
// stands in a generating relation with userStar. best is the first
// direction whose star generates userStar; ok is false when there is none.
func (b Board) LuckyDirections(userStar int) (lucky []Direction, best Direction, ok bool, err error) {
	user, err := StarElement(userStar)
	if err != nil {
		return nil, 0, false, err
	}
	for d := North; d < DirectionCount; d++ {
		e := starElements[b.Stars[d]]
		switch {
		case generates(e, user):
			lucky = append(lucky, d)
			if !ok {
				best, ok = d, true
			}
		case generates(user, e):
			lucky = append(lucky, d)
		}
	}
	return lucky, best, ok, nil
}

// Status grades a direction.
type Status int

// Statuses from best to worst.
const (
	StatusBest Status = iota
	StatusGood
	StatusNeutral
	StatusBad
	StatusWorst
)

var statusNames = [...]string{"best", "good", "neutral", "bad", "worst"}

// String returns the lower-case status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// DirectionReading is the verdict on one direction across the year, month
// and day boards.
type DirectionReading struct {
	Direction Direction `json:"direction" yaml:"direction"`
	YearStar  int       `json:"year_star" yaml:"year_star"`
	MonthStar int       `json:"month_star" yaml:"month_star"`
	DayStar   int       `json:"day_star" yaml:"day_star"`
	Status    Status    `json:"status" yaml:"status"`
	Notes     []string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ReadDirections grades every direction for a person whose year star is
// userStar. Star 5 (goo-satsu) or the palace opposite it (anken-satsu) on
// any board is worst; the year-branch breaker (saiha) is bad. Remaining
// directions are graded on the day board by LuckyDirections.
func ReadDirections(year, month, day Board, userStar int, yearBranch ganzhi.Branch) ([]DirectionReading, error) {
	lucky, best, hasBest, err := day.LuckyDirections(userStar)
	if err != nil {
		return nil, err
	}
	isLucky := make(map[Direction]bool, len(lucky))
	for _, d := range lucky {
		isLucky[d] = true
	}
	saiha := Saiha(yearBranch)

	boards := []struct {
		prefix string
		board  Board
	}{{"year", year}, {"month", month}, {"day", day}}

	out := make([]DirectionReading, 0, DirectionCount)
	for d := North; d < DirectionCount; d++ {
		r := DirectionReading{
			Direction: d,
			YearStar:  year.Star(d),
			MonthStar: month.Star(d),
			DayStar:   day.Star(d),
			Status:    StatusNeutral,
		}
		for _, b := range boards {
			if g, ok := b.board.GooSatsu(); ok && g == d {
				r.Notes = append(r.Notes, b.prefix+"_goo_satsu")
				r.Status = StatusWorst
			}
		}
		for _, b := range boards {
			if a, ok := b.board.AnkenSatsu(); ok && a == d {
				r.Notes = append(r.Notes, b.prefix+"_anken_satsu")
				r.Status = StatusWorst
			}
		}
		if d == saiha {
			r.Notes = append(r.Notes, "saiha")
			if r.Status == StatusNeutral {
				r.Status = StatusBad
			}
		}
		if r.Status == StatusNeutral {
			switch {
			case hasBest && d == best:
				r.Notes = append(r.Notes, "best_direction")
				r.Status = StatusBest
			case isLucky[d]:
				r.Notes = append(r.Notes, "lucky")
				r.Status = StatusGood
			}
		}
		out = append(out, r)
	}
	return out, nil
}
