package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/ninestar"
	"github.com/papapumpkin/almanac/internal/solarterm"
	"github.com/papapumpkin/almanac/internal/store"
)

func referenceResult(t *testing.T) chart.Result {
	t.Helper()
	e := chart.NewEngine(solarterm.NewCalculator())
	res, err := e.Compute(chart.Query{
		Local:         julian.Civil{Year: 1992, Month: 2, Day: 17, Hour: 17, Minute: 18},
		OffsetMinutes: 540,
		Gender:        ninestar.Female,
		Location:      &chart.Location{Latitude: 35.6895, Longitude: 139.6917},
		TrueSolarTime: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestOffsetLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{540, "UTC+09:00"},
		{0, "UTC+00:00"},
		{-330, "UTC-05:30"},
		{345, "UTC+05:45"},
	}
	for _, tt := range tests {
		if got := OffsetLabel(tt.in); got != tt.want {
			t.Errorf("OffsetLabel(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChart_Text(t *testing.T) {
	t.Parallel()

	out := Chart(referenceResult(t))
	for _, want := range []string{
		"1992-02-17 17:18:00", "UTC+09:00",
		"壬申", "壬寅", "癸亥", "辛酉", "ren-shen",
		"[丙]", "立春 +12.77 days",
		"子丑", "17:22 (EoT",
		"nine star", "2nd month", "ascending from 甲子 1991-12-20", "(female)",
		"status", "SW", "worst", "year_goo_satsu",
		"lahiri", "sun", "rahu", "asc",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("chart text missing %q:\n%s", want, out)
		}
	}
}

func TestTerms_Text(t *testing.T) {
	t.Parallel()

	occs, err := solarterm.YearTerms(2024)
	if err != nil {
		t.Fatal(err)
	}
	out := Terms(2024, occs, 540)
	for _, want := range []string{"solar terms", "2024", "立春", "lichun", "2024-02-04 17:2", "冬至", "2024-12-21 18:"} {
		if !strings.Contains(out, want) {
			t.Errorf("terms text missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "●"); n != 12 {
		t.Errorf("got %d node markers, want 12", n)
	}
}

func TestWrite_Formats(t *testing.T) {
	t.Parallel()

	res := referenceResult(t)
	text := func() string { return "plain\n" }

	var js bytes.Buffer
	if err := Write(&js, "json", res, text); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"year": "壬申"`, `"void": [`, `"local": "1992-02-17 17:18:00"`, `"ayanamsa": "lahiri"`} {
		if !strings.Contains(js.String(), want) {
			t.Errorf("json missing %q", want)
		}
	}

	var ym bytes.Buffer
	if err := Write(&ym, "yaml", res.Pillars, text); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"year: 壬申", "hour: 辛酉", "node_name: 立春"} {
		if !strings.Contains(ym.String(), want) {
			t.Errorf("yaml missing %q:\n%s", want, ym.String())
		}
	}

	var tx bytes.Buffer
	if err := Write(&tx, "", res, text); err != nil || tx.String() != "plain\n" {
		t.Errorf("text = %q, %v", tx.String(), err)
	}

	if err := Write(&tx, "xml", res, text); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("xml error = %v", err)
	}
}

func TestSolarTime_Text(t *testing.T) {
	t.Parallel()
	res := referenceResult(t)
	if res.SolarTime == nil {
		t.Fatal("reference result has no solar time")
	}

	out := SolarTime(*res.SolarTime)
	for _, want := range []string{"17:36", "+18.77 min", "17:22", "EoT -14.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("solar time output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheRows_Text(t *testing.T) {
	t.Parallel()
	rows := []store.Row{
		{Method: "newton", Year: 2024, Term: 2, JD: 2460344.852, SolvedAt: "2024-01-01T00:00:00Z"},
		{Method: "newton", Year: 2024, Term: 99, JD: 2460344.852},
	}

	out := CacheRows("terms.db", 1234, rows, 540)
	for _, want := range []string{"terms.db", "1,234 instants", "立春", "2024-02-04 17:", "ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("cache output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "99") {
		t.Errorf("unknown term index rendered:\n%s", out)
	}

	if got := CacheRows("empty.db", 0, nil, 0); strings.Count(got, "\n") != 1 {
		t.Errorf("empty cache = %q, want a single line", got)
	}
}
