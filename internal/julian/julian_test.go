package julian

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestFromCivil_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		civil  Civil
		offset int
		want   JD
	}{
		{"J2000 epoch", Civil{Year: 2000, Month: 1, Day: 1, Hour: 12}, 0, 2451545.0},
		{"Sputnik launch", Civil{Year: 1957, Month: 10, Day: 4, Hour: 19, Minute: 26, Second: 24}, 0, 2436116.31},
		{"Gregorian leap day", Civil{Year: 2000, Month: 2, Day: 29}, 0, 2451603.5},
		{"century non-leap", Civil{Year: 1900, Month: 3, Day: 1}, 0, 2415079.5},
		{"JST midnight", Civil{Year: 1992, Month: 2, Day: 17}, 540, 2448669.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FromCivil(tt.civil, tt.offset)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("FromCivil(%v, %d) = %.6f, want %.6f", tt.civil, tt.offset, got, tt.want)
			}
		})
	}
}

func TestToCivil_RoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		year := 1600 + rng.Intn(900)
		month := 1 + rng.Intn(12)
		c := Civil{
			Year:   year,
			Month:  month,
			Day:    1 + rng.Intn(DaysInMonth(year, month)),
			Hour:   rng.Intn(24),
			Minute: rng.Intn(60),
			Second: float64(rng.Intn(60)),
		}
		got := ToCivil(FromCivil(c, 0))
		if diff := secondsBetween(c, got); math.Abs(diff) >= 1 {
			t.Fatalf("round trip of %v gave %v (%.3fs apart)", c, got, diff)
		}
		if got.Year != c.Year || got.Month != c.Month || got.Day != c.Day {
			t.Fatalf("round trip of %v changed the date to %v", c, got)
		}
	}
}

func TestToCivil_EndOfDayCarry(t *testing.T) {
	t.Parallel()

	c := Civil{Year: 2023, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59.9999999}
	got := ToCivil(FromCivil(c, 0))
	if got.Year != 2024 || got.Month != 1 || got.Day != 1 || got.Hour != 0 || got.Minute != 0 {
		t.Errorf("expected carry into 2024-01-01 00:00, got %v", got)
	}
}

func TestUTCToLocal_AppliesOffset(t *testing.T) {
	t.Parallel()

	jd := FromCivil(Civil{Year: 2024, Month: 2, Day: 3, Hour: 20}, 0)
	got := UTCToLocal(jd, 540)
	want := Civil{Year: 2024, Month: 2, Day: 4, Hour: 5}
	if got != want {
		t.Errorf("UTCToLocal = %v, want %v", got, want)
	}
	if back := LocalToUTC(want, 540); back != (Civil{Year: 2024, Month: 2, Day: 3, Hour: 20}) {
		t.Errorf("LocalToUTC = %v, want 2024-02-03 20:00", back)
	}
}

func TestFromTime_MatchesFromCivil(t *testing.T) {
	t.Parallel()

	tm := time.Date(2021, time.June, 21, 3, 32, 0, 0, time.UTC)
	got := FromTime(tm)
	want := FromCivil(Civil{Year: 2021, Month: 6, Day: 21, Hour: 3, Minute: 32}, 0)
	if got != want {
		t.Errorf("FromTime = %v, want %v", got, want)
	}
	if back := got.Time(); !back.Equal(tm) {
		t.Errorf("Time() = %v, want %v", back, tm)
	}
}

func TestDayNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		civil Civil
		want  int
	}{
		{Civil{Year: 2000, Month: 1, Day: 1}, 2451545},
		{Civil{Year: 1992, Month: 2, Day: 17}, 2448670},
		{Civil{Year: 1858, Month: 11, Day: 17}, 2400001},
	}
	for _, tt := range tests {
		if got := tt.civil.DayNumber(); got != tt.want {
			t.Errorf("%v.DayNumber() = %d, want %d", tt.civil, got, tt.want)
		}
		noon := FromCivil(tt.civil, 0).Add(0.5)
		if got := noon.DayNumber(); got != tt.want {
			t.Errorf("JD(%v noon).DayNumber() = %d, want %d", tt.civil, got, tt.want)
		}
	}
}

func TestAddDays_CrossesLeapDay(t *testing.T) {
	t.Parallel()

	c := Civil{Year: 2024, Month: 2, Day: 28, Hour: 23, Minute: 30}
	got := c.AddDays(1)
	if got.Month != 2 || got.Day != 29 || got.Hour != 23 || got.Minute != 30 {
		t.Errorf("AddDays(1) = %v, want 2024-02-29 23:30", got)
	}
	if got := c.AddDays(2); got.Month != 3 || got.Day != 1 {
		t.Errorf("AddDays(2) = %v, want 2024-03-01", got)
	}
	if got := c.AddDays(-59); got.Year != 2023 || got.Month != 12 || got.Day != 31 {
		t.Errorf("AddDays(-59) = %v, want 2023-12-31", got)
	}
}

func TestParseCivil(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Civil
		wantErr bool
	}{
		{in: "1992-02-17", want: Civil{Year: 1992, Month: 2, Day: 17}},
		{in: "1992-02-17T17:18", want: Civil{Year: 1992, Month: 2, Day: 17, Hour: 17, Minute: 18}},
		{in: " 2000-02-04 20:40:05 ", want: Civil{Year: 2000, Month: 2, Day: 4, Hour: 20, Minute: 40, Second: 5}},
		{in: "2000-02-04T20:40:05.25", want: Civil{Year: 2000, Month: 2, Day: 4, Hour: 20, Minute: 40, Second: 5.25}},
		{in: "2001-02-29", wantErr: true},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCivil(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCivil) {
				t.Errorf("ParseCivil(%q) error = %v, want ErrInvalidCivil", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCivil(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCivil(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	bad := []Civil{
		{Year: 2023, Month: 13, Day: 1},
		{Year: 2023, Month: 2, Day: 29},
		{Year: 2023, Month: 1, Day: 1, Hour: 24},
		{Year: 2023, Month: 1, Day: 1, Minute: -1},
		{Year: 2023, Month: 1, Day: 1, Second: 60},
	}
	for _, c := range bad {
		if err := c.Validate(); !errors.Is(err, ErrInvalidCivil) {
			t.Errorf("%+v.Validate() = %v, want ErrInvalidCivil", c, err)
		}
	}
	if err := (Civil{Year: 2024, Month: 2, Day: 29, Hour: 23, Minute: 59, Second: 59.5}).Validate(); err != nil {
		t.Errorf("valid leap day rejected: %v", err)
	}
}

func TestFromCivil_Monotonic(t *testing.T) {
	t.Parallel()

	c := Civil{Year: 1999, Month: 12, Day: 31, Hour: 23}
	prev := FromCivil(c, 0)
	for i := 0; i < 48; i++ {
		c.Minute += 30
		if c.Minute >= 60 {
			c.Minute -= 60
			c.Hour++
			if c.Hour == 24 {
				c.Hour = 0
				c = c.AddDays(1)
			}
		}
		next := FromCivil(c, 0)
		if next <= prev {
			t.Fatalf("JD not increasing at %v: %v <= %v", c, next, prev)
		}
		prev = next
	}
}

func secondsBetween(a, b Civil) float64 {
	return float64(FromCivil(b, 0)-FromCivil(a, 0)) * SecondsPerDay
}

func TestCivil_TextRoundTrip(t *testing.T) {
	t.Parallel()

	c := Civil{Year: 1992, Month: 2, Day: 17, Hour: 17, Minute: 18}
	b, err := c.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "1992-02-17 17:18:00" {
		t.Errorf("MarshalText = %s", b)
	}
	var back Civil
	if err := back.UnmarshalText(b); err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("UnmarshalText = %v, want %v", back, c)
	}
	if err := back.UnmarshalText([]byte("1992-13-01")); !errors.Is(err, ErrInvalidCivil) {
		t.Errorf("bad month error = %v", err)
	}
}

func TestCivil_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sec  float64
		want string
	}{
		{0, "1992-02-17 17:18:00"},
		{5.25, "1992-02-17 17:18:05.25"},
		{5.0000004, "1992-02-17 17:18:05"},
		{59.123456, "1992-02-17 17:18:59.123456"},
		{59.9999999, "1992-02-17 17:18:59.999999"},
	}
	for _, tt := range tests {
		c := Civil{Year: 1992, Month: 2, Day: 17, Hour: 17, Minute: 18, Second: tt.sec}
		got := c.String()
		if got != tt.want {
			t.Errorf("String(%v s) = %q, want %q", tt.sec, got, tt.want)
		}
		back, err := ParseCivil(got)
		if err != nil {
			t.Fatalf("ParseCivil(%q): %v", got, err)
		}
		if math.Abs(back.Second-tt.sec) > 1e-6 {
			t.Errorf("round trip of %q = %v s, want %v", got, back.Second, tt.sec)
		}
		if d := c.DateString(); d != "1992-02-17" {
			t.Errorf("DateString = %q", d)
		}
	}
}
