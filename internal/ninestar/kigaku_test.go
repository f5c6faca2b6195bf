package ninestar

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/solarterm"
)

func newTestKigaku() *Kigaku {
	return New(solarterm.NewCalculator(solarterm.WithCache(solarterm.NewMemoryCache())), 540)
}

func date(y, m, d int) julian.Civil {
	return julian.Civil{Year: y, Month: m, Day: d}
}

func TestSolsticeJiazi(t *testing.T) {
	t.Parallel()

	k := newTestKigaku()
	tests := []struct {
		name     string
		year     int
		solstice int
		target   int
		want     julian.Civil
		pillar   string
	}{
		{"winter 2023", 2023, solarterm.WinterSolstice, WinterAnchorIndex, date(2024, 1, 1), "甲子"},
		{"summer 2024", 2024, solarterm.SummerSolstice, SummerAnchorIndex, date(2024, 5, 30), "甲午"},
		{"winter 2024", 2024, solarterm.WinterSolstice, WinterAnchorIndex, date(2024, 12, 26), "甲子"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := k.SolsticeJiazi(tt.year, tt.solstice, tt.target)
			if err != nil {
				t.Fatal(err)
			}
			if a.Date() != tt.want {
				t.Errorf("anchor = %v, want %v", a.Date(), tt.want)
			}
			if a.Pillar.String() != tt.pillar || ganzhi.DayIndex(a.DayNumber) != tt.target {
				t.Errorf("anchor pillar = %s", a.Pillar)
			}
			solsticeDay := julian.UTCToLocal(a.Solstice.JD, 540).DayNumber()
			if d := a.DayNumber - solsticeDay; d < -30 || d > 30 {
				t.Errorf("anchor %d days from the solstice", d)
			}
		})
	}

	if _, err := k.SolsticeJiazi(2024, solarterm.SpringStart, 0); !errors.Is(err, ErrNoAnchor) {
		t.Errorf("non-solstice error = %v, want ErrNoAnchor", err)
	}
}

func TestSolsticeJiazi_AlwaysNearest(t *testing.T) {
	t.Parallel()

	k := newTestKigaku()
	for y := 1950; y <= 2050; y++ {
		for _, s := range []struct{ term, target int }{
			{solarterm.WinterSolstice, WinterAnchorIndex},
			{solarterm.SummerSolstice, SummerAnchorIndex},
		} {
			a, err := k.SolsticeJiazi(y, s.term, s.target)
			if err != nil {
				t.Fatal(err)
			}
			solsticeDay := julian.UTCToLocal(a.Solstice.JD, 540).DayNumber()
			d := a.DayNumber - solsticeDay
			if d < -30 || d >= 30 {
				t.Fatalf("%d term %d: anchor %d days from solstice", y, s.term, d)
			}
		}
	}
}

func TestDayStar(t *testing.T) {
	t.Parallel()

	k := newTestKigaku()
	tests := []struct {
		date      julian.Civil
		value     int
		ascending bool
	}{
		{date(2024, 1, 1), 1, true},
		{date(2024, 2, 10), 5, true},
		{date(2024, 6, 15), 2, false},
		{date(2024, 7, 20), 3, false},
		{date(2024, 12, 31), 6, true},
		{date(2025, 1, 5), 2, true},
		{date(1992, 2, 17), 6, true},
	}
	for _, tt := range tests {
		ds, err := k.DayStar(tt.date)
		if err != nil {
			t.Fatalf("%v: %v", tt.date, err)
		}
		if ds.Value != tt.value || ds.Ascending != tt.ascending {
			t.Errorf("%v: star %d ascending=%v, want %d %v", tt.date, ds.Value, ds.Ascending, tt.value, tt.ascending)
		}
	}
}

func TestDayStar_StepsByOne(t *testing.T) {
	t.Parallel()

	k := newTestKigaku()
	d := date(2023, 11, 1)
	prev, err := k.DayStar(d)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		d = d.AddDays(1)
		cur, err := k.DayStar(d)
		if err != nil {
			t.Fatal(err)
		}
		if cur.Ascending == prev.Ascending {
			step := 1
			if !cur.Ascending {
				step = -1
			}
			if cur.Value != wrap(prev.Value+step) {
				t.Fatalf("%v: %d follows %d", d, cur.Value, prev.Value)
			}
		} else if cur.DaysSinceAnchor != 0 {
			t.Fatalf("%v: direction changed off an anchor day", d)
		}
		if cur.Value < 1 || cur.Value > 9 {
			t.Fatalf("%v: star %d", d, cur.Value)
		}
		prev = cur
	}
}

func TestKigakuMonthAndTargetYear(t *testing.T) {
	t.Parallel()

	k := newTestKigaku()
	tests := []struct {
		date  julian.Civil
		month int
		year  int
	}{
		{date(2024, 2, 3), 1, 2023},
		{date(2024, 2, 4), 2, 2024},
		{date(2024, 1, 3), 12, 2023},
		{date(2024, 1, 6), 1, 2023},
		{date(2024, 7, 31), 7, 2024},
	}
	for _, tt := range tests {
		m, err := k.KigakuMonth(tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if m != tt.month {
			t.Errorf("KigakuMonth(%v) = %d, want %d", tt.date, m, tt.month)
		}
		y, err := k.TargetYear(tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if y != tt.year {
			t.Errorf("TargetYear(%v) = %d, want %d", tt.date, y, tt.year)
		}
	}
}

func TestProfile(t *testing.T) {
	t.Parallel()

	p, err := newTestKigaku().Profile(julian.Civil{Year: 1992, Month: 2, Day: 17, Hour: 17, Minute: 18}, Female)
	if err != nil {
		t.Fatal(err)
	}
	want := Profile{
		TargetYear:   1992,
		KigakuMonth:  2,
		YearStar:     8,
		MonthStar:    2,
		DayStar:      6,
		Ascending:    true,
		DayAnchor:    p.DayAnchor,
		AnchorPillar: p.AnchorPillar,
		HourStar:     6,
		Gender:       Female,
		Gua:          7,
		YearBoard:    Board{Center: 8, Stars: [DirectionCount]int{4, 2, 6, 7, 3, 5, 1, 9}},
		MonthBoard:   Board{Center: 2, Stars: [DirectionCount]int{7, 5, 9, 1, 6, 8, 4, 3}},
		DayBoard:     Board{Center: 6, Stars: [DirectionCount]int{2, 9, 4, 5, 1, 3, 8, 7}},
		Directions:   p.Directions,
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Profile =\n%+v\nwant\n%+v", p, want)
	}
	if p.YearBranch().String() != "申" {
		t.Errorf("year branch = %s, want 申", p.YearBranch())
	}

	// An earth-8 native finds every lucky palace of this day blocked.
	var statuses []string
	for _, r := range p.Directions {
		statuses = append(statuses, r.Direction.String()+"="+r.Status.String())
	}
	if got, want := strings.Join(statuses, " "), "N=neutral NE=worst E=neutral SE=worst S=neutral SW=worst W=neutral NW=worst"; got != want {
		t.Errorf("directions = %s, want %s", got, want)
	}
	if p.AnchorPillar.String() != "甲子" {
		t.Errorf("anchor pillar = %s", p.AnchorPillar)
	}

	if _, err := newTestKigaku().Profile(julian.Civil{Year: 1992, Month: 2, Day: 30}, Male); !errors.Is(err, julian.ErrInvalidCivil) {
		t.Errorf("invalid date error = %v", err)
	}
}
