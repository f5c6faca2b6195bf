package solarterm

import (
	"errors"
	"sync"
	"testing"

	"github.com/papapumpkin/almanac/internal/julian"
)

func TestYearTerms_Ordered(t *testing.T) {
	t.Parallel()

	occ, err := YearTerms(2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(occ) != Count {
		t.Fatalf("got %d terms, want %d", len(occ), Count)
	}
	for i := 1; i < len(occ); i++ {
		if occ[i].JD <= occ[i-1].JD {
			t.Errorf("%s not after %s", occ[i].Term.Name, occ[i-1].Term.Name)
		}
		gap := float64(occ[i].JD - occ[i-1].JD)
		if gap < 14 || gap > 16.5 {
			t.Errorf("gap %s->%s = %.2f days", occ[i-1].Term.Name, occ[i].Term.Name, gap)
		}
	}
	for _, o := range occ {
		if o.Year != 2024 {
			t.Errorf("%s year = %d", o.Term.Name, o.Year)
		}
	}
}

func TestCalculator_MethodsAgree(t *testing.T) {
	t.Parallel()

	newton := NewCalculator()
	bisect := NewCalculator(WithMethod(Bisection))
	if bisect.Method() != Bisection {
		t.Fatalf("Method() = %v", bisect.Method())
	}
	for i := 0; i < Count; i++ {
		a, err := newton.Occurrence(1992, i)
		if err != nil {
			t.Fatal(err)
		}
		b, err := bisect.Occurrence(1992, i)
		if err != nil {
			t.Fatal(err)
		}
		if secs := float64(a.JD-b.JD) * julian.SecondsPerDay; secs > 10 || secs < -10 {
			t.Errorf("term %d: %.1fs apart", i, secs)
		}
	}
}

func TestCalculator_TermInstant(t *testing.T) {
	t.Parallel()

	c := NewCalculator()
	o, err := c.TermInstant(2000, "立春")
	if err != nil {
		t.Fatal(err)
	}
	local := julian.UTCToLocal(o.JD, 540)
	if local.Month != 2 || local.Day != 4 {
		t.Errorf("立春 2000 at %v JST, want 02-04", local)
	}

	if _, err := c.TermInstant(2000, "nope"); !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("TermInstant(nope) error = %v, want ErrUnknownTerm", err)
	}
	if _, err := c.Occurrence(2000, 24); !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("Occurrence(24) error = %v, want ErrUnknownTerm", err)
	}
}

func TestCalculator_PreviousAndNextNode(t *testing.T) {
	t.Parallel()

	c := NewCalculator()
	tests := []struct {
		name     string
		at       julian.Civil
		prev     string
		prevYear int
		next     string
	}{
		{"early January before xiaohan", julian.Civil{Year: 2024, Month: 1, Day: 2}, "大雪", 2023, "小寒"},
		{"mid February", julian.Civil{Year: 2024, Month: 2, Day: 15}, "立春", 2024, "啓蟄"},
		{"late December", julian.Civil{Year: 2024, Month: 12, Day: 30}, "大雪", 2024, "小寒"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			jd := julian.FromCivil(tt.at, 0)
			prev, err := c.PreviousNode(jd)
			if err != nil {
				t.Fatal(err)
			}
			if prev.Term.Name != tt.prev || prev.Year != tt.prevYear {
				t.Errorf("PreviousNode = %s %d, want %s %d", prev.Term.Name, prev.Year, tt.prev, tt.prevYear)
			}
			next, err := c.NextNode(jd)
			if err != nil {
				t.Fatal(err)
			}
			if next.Term.Name != tt.next {
				t.Errorf("NextNode = %s, want %s", next.Term.Name, tt.next)
			}
			if !(prev.JD <= jd && jd < next.JD) {
				t.Errorf("jd %v not in [%v, %v)", jd, prev.JD, next.JD)
			}
		})
	}
}

func TestCalculator_NodeBoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	c := NewCalculator()
	o, err := c.TermInstant(2024, "立春")
	if err != nil {
		t.Fatal(err)
	}
	prev, err := c.PreviousNode(o.JD)
	if err != nil {
		t.Fatal(err)
	}
	if prev.Term.Name != "立春" {
		t.Errorf("PreviousNode at the node instant = %s, want 立春", prev.Term.Name)
	}
	next, err := c.NextNode(o.JD)
	if err != nil {
		t.Fatal(err)
	}
	if next.Term.Name != "啓蟄" {
		t.Errorf("NextNode at the node instant = %s, want 啓蟄", next.Term.Name)
	}
}

func TestCalculator_UsesCache(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache()
	c := NewCalculator(WithCache(cache))

	first, err := c.YearTerms(2010)
	if err != nil {
		t.Fatal(err)
	}
	if cache.Len() != Count {
		t.Fatalf("cache holds %d entries, want %d", cache.Len(), Count)
	}
	second, err := c.YearTerms(2010)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].JD != second[i].JD {
			t.Errorf("term %d differs after caching", i)
		}
	}

	// A planted entry is served as-is.
	cache.Put(Key{Method: Newton, Year: 2010, Term: 5}, 42)
	o, err := c.Occurrence(2010, 5)
	if err != nil {
		t.Fatal(err)
	}
	if o.JD != 42 {
		t.Errorf("Occurrence ignored cache: %v", o.JD)
	}

	// Methods are cached separately.
	b := NewCalculator(WithMethod(Bisection), WithCache(cache))
	if o, _ := b.Occurrence(2010, 5); o.JD == 42 {
		t.Error("bisection read the newton entry")
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache()
	c := NewCalculator(WithCache(cache))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := 2000; y < 2004; y++ {
				if _, err := c.YearTerms(y); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if cache.Len() != 4*Count {
		t.Errorf("cache holds %d entries, want %d", cache.Len(), 4*Count)
	}
}
