package ninestar

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/papapumpkin/almanac/internal/ganzhi"
)

func TestNewBoard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		center int
		want   [DirectionCount]int // N NE E SE S SW W NW
		goo    Direction
		hasGoo bool
	}{
		// Stars sit on their own palaces.
		{5, [DirectionCount]int{1, 8, 3, 4, 9, 2, 7, 6}, 0, false},
		// 一白中宮: 2 flies to NW, 3 to W, 4 to NE, 5 to S.
		{1, [DirectionCount]int{6, 4, 8, 9, 5, 7, 3, 2}, South, true},
		{2, [DirectionCount]int{7, 5, 9, 1, 6, 8, 4, 3}, Northeast, true},
		{6, [DirectionCount]int{2, 9, 4, 5, 1, 3, 8, 7}, Southeast, true},
		{8, [DirectionCount]int{4, 2, 6, 7, 3, 5, 1, 9}, Southwest, true},
	}
	for _, tt := range tests {
		b, err := NewBoard(tt.center)
		if err != nil {
			t.Fatalf("NewBoard(%d): %v", tt.center, err)
		}
		if b.Stars != tt.want {
			t.Errorf("NewBoard(%d) = %v, want %v", tt.center, b.Stars, tt.want)
		}
		goo, ok := b.GooSatsu()
		if ok != tt.hasGoo || goo != tt.goo {
			t.Errorf("centre %d: goo-satsu = %v/%v, want %v/%v", tt.center, goo, ok, tt.goo, tt.hasGoo)
		}
		anken, ok := b.AnkenSatsu()
		if ok != tt.hasGoo || (ok && anken != tt.goo.Opposite()) {
			t.Errorf("centre %d: anken-satsu = %v/%v, want opposite of %v", tt.center, anken, ok, tt.goo)
		}
	}

	for _, bad := range []int{0, 10, -1} {
		if _, err := NewBoard(bad); !errors.Is(err, ErrInvalidStar) {
			t.Errorf("NewBoard(%d) error = %v, want ErrInvalidStar", bad, err)
		}
	}
}

func TestNewBoard_EveryStarOnce(t *testing.T) {
	t.Parallel()

	for c := 1; c <= 9; c++ {
		b, err := NewBoard(c)
		if err != nil {
			t.Fatal(err)
		}
		seen := map[int]bool{c: true}
		for _, s := range b.Stars {
			if seen[s] {
				t.Fatalf("centre %d: star %d placed twice in %v", c, s, b.Stars)
			}
			seen[s] = true
		}
	}
}

func TestDirection_Opposite(t *testing.T) {
	t.Parallel()

	pairs := map[Direction]Direction{
		North: South, Northeast: Southwest, East: West, Southeast: Northwest,
	}
	for a, b := range pairs {
		if a.Opposite() != b || b.Opposite() != a {
			t.Errorf("%v and %v are not opposite", a, b)
		}
		if a.Palace()+b.Palace() != 10 {
			t.Errorf("palaces %d and %d do not sum to 10", a.Palace(), b.Palace())
		}
	}
}

func TestSaiha(t *testing.T) {
	t.Parallel()

	tests := []struct {
		branch ganzhi.Branch
		want   Direction
	}{
		{0, South},     // 子
		{2, Southwest}, // 寅
		{6, North},     // 午
		{8, Northeast}, // 申
		{11, Southeast},
	}
	for _, tt := range tests {
		if got := Saiha(tt.branch); got != tt.want {
			t.Errorf("Saiha(%v) = %v, want %v", tt.branch, got, tt.want)
		}
	}
}

func TestLuckyDirections(t *testing.T) {
	t.Parallel()

	day, err := NewBoard(6)
	if err != nil {
		t.Fatal(err)
	}
	// Fire (9) is fed by wood in E and SW and feeds the earth in N, SE, W.
	lucky, best, ok, err := day.LuckyDirections(9)
	if err != nil {
		t.Fatal(err)
	}
	want := []Direction{North, East, Southeast, Southwest, West}
	if !slices.Equal(lucky, want) {
		t.Errorf("lucky = %v, want %v", lucky, want)
	}
	if !ok || best != East {
		t.Errorf("best = %v/%v, want E", best, ok)
	}

	if _, _, _, err := day.LuckyDirections(0); !errors.Is(err, ErrInvalidStar) {
		t.Errorf("user star 0 error = %v", err)
	}
}

func TestReadDirections(t *testing.T) {
	t.Parallel()

	year, _ := NewBoard(8)
	month, _ := NewBoard(2)
	day, _ := NewBoard(6)
	const shen = ganzhi.Branch(8)

	got, err := ReadDirections(year, month, day, 9, shen)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != DirectionCount {
		t.Fatalf("got %d readings, want %d", len(got), DirectionCount)
	}

	want := map[Direction]struct {
		status Status
		notes  string
	}{
		North:     {StatusGood, "lucky"},
		Northeast: {StatusWorst, "month_goo_satsu,year_anken_satsu,saiha"},
		East:      {StatusBest, "best_direction"},
		Southeast: {StatusWorst, "day_goo_satsu"},
		South:     {StatusNeutral, ""},
		Southwest: {StatusWorst, "year_goo_satsu,month_anken_satsu"},
		West:      {StatusGood, "lucky"},
		Northwest: {StatusWorst, "day_anken_satsu"},
	}
	for _, r := range got {
		w := want[r.Direction]
		if r.Status != w.status || strings.Join(r.Notes, ",") != w.notes {
			t.Errorf("%v: %v %v, want %v [%s]", r.Direction, r.Status, r.Notes, w.status, w.notes)
		}
		if r.YearStar != year.Star(r.Direction) || r.DayStar != day.Star(r.Direction) {
			t.Errorf("%v: stars %d/%d do not match the boards", r.Direction, r.YearStar, r.DayStar)
		}
	}
}
