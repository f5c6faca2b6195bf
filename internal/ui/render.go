package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/ninestar"
	"github.com/papapumpkin/almanac/internal/solarterm"
	"github.com/papapumpkin/almanac/internal/store"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorAccent  = lipgloss.Color("#FFD700")
	colorMuted   = lipgloss.Color("#636363")
	colorWhite   = lipgloss.Color("#EEEEEE")

	styleHeading = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleLabel   = lipgloss.NewStyle().Foreground(colorMuted).Width(10)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleActive  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(colorMuted)

	stylePillarColumn = lipgloss.NewStyle().Width(14).PaddingRight(2)
	stylePillar       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

// OffsetLabel formats a UTC offset in minutes as "UTC+09:00".
func OffsetLabel(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, minutes/60, minutes%60)
}

func line(b *strings.Builder, label, value string) {
	b.WriteString(styleLabel.Render(label))
	b.WriteString(styleValue.Render(value))
	b.WriteByte('\n')
}

// Chart renders a full chart result.
func Chart(res chart.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n\n", styleHeading.Render("chart"), res.Query.Local, OffsetLabel(res.Query.OffsetMinutes))
	b.WriteString(Pillars(res.Pillars, res.Hidden))
	b.WriteByte('\n')

	fp := res.Pillars
	line(&b, "node", fmt.Sprintf("%s +%.2f days (%.0f%% of month)", fp.NodeName, fp.DaysSinceNode, fp.NodeProgress*100))
	line(&b, "void", res.Void[0].String()+res.Void[1].String())
	line(&b, "boundary", fp.Boundary.String())
	if fp.DayRolledOver {
		line(&b, "", "day rolled over at 23:00")
	}
	if res.SolarTime != nil {
		b.WriteString(SolarTime(*res.SolarTime))
	}
	b.WriteByte('\n')
	b.WriteString(NineStar(res.NineStar))
	b.WriteByte('\n')
	b.WriteString(Positions(res.Sky))
	return b.String()
}

// Pillars renders the four pillars side by side with their hidden stems.
func Pillars(fp ganzhi.FourPillars, hidden ganzhi.PillarHidden) string {
	cols := []struct {
		label string
		p     ganzhi.Pillar
		h     ganzhi.Hidden
	}{
		{"year", fp.Year, hidden.Year},
		{"month", fp.Month, hidden.Month},
		{"day", fp.Day, hidden.Day},
		{"hour", fp.Hour, hidden.Hour},
	}
	blocks := make([]string, 0, len(cols))
	for _, c := range cols {
		body := lipgloss.JoinVertical(lipgloss.Left,
			styleLabel.Render(c.label),
			stylePillar.Render(c.p.String()),
			styleValue.Render(c.p.Pinyin()),
			hiddenStems(c.h),
		)
		blocks = append(blocks, stylePillarColumn.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...) + "\n"
}

func hiddenStems(h ganzhi.Hidden) string {
	parts := make([]string, 0, len(h.Stems))
	for _, s := range h.Stems {
		if s.Stem == h.Active {
			parts = append(parts, styleActive.Render("["+s.Stem.String()+"]"))
			continue
		}
		parts = append(parts, s.Stem.String())
	}
	return strings.Join(parts, " ")
}

// NineStar renders a nine-star profile.
func NineStar(p ninestar.Profile) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("nine star") + "\n")
	dir := "ascending"
	if !p.Ascending {
		dir = "descending"
	}
	line(&b, "year", fmt.Sprintf("%d (kigaku year %d)", p.YearStar, p.TargetYear))
	line(&b, "month", fmt.Sprintf("%d (%s month)", p.MonthStar, humanize.Ordinal(p.KigakuMonth)))
	line(&b, "day", fmt.Sprintf("%d %s from %s %s", p.DayStar, dir, p.AnchorPillar, p.DayAnchor.DateString()))
	line(&b, "hour", fmt.Sprintf("%d", p.HourStar))
	line(&b, "gua", fmt.Sprintf("%d (%s)", p.Gua, p.Gender))
	if len(p.Directions) == 0 {
		return b.String()
	}

	rows := make([][]string, 0, len(p.Directions))
	for _, r := range p.Directions {
		rows = append(rows, []string{
			r.Direction.String(),
			fmt.Sprint(r.YearStar),
			fmt.Sprint(r.MonthStar),
			fmt.Sprint(r.DayStar),
			r.Status.String(),
			strings.Join(r.Notes, " "),
		})
	}
	b.WriteString(newTable("dir", "year", "month", "day", "status", "notes").Rows(rows...).String())
	b.WriteByte('\n')
	return b.String()
}

// SolarTime renders the standard-to-apparent time correction.
func SolarTime(st astro.SolarTime) string {
	var b strings.Builder
	line(&b, "mean", fmt.Sprintf("%s (%+.2f min)", clock(st.Mean), st.LongitudeCorrection))
	line(&b, "apparent", fmt.Sprintf("%s (EoT %+.2f min)", clock(st.Apparent), st.EquationOfTime))
	return b.String()
}

// Positions renders body positions in both frames.
func Positions(sky chart.Sky) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %.4f°\n", styleHeading.Render("sky"), sky.Ayanamsa, sky.AyanamsaOffset)

	rows := make([][]string, 0, len(sky.Bodies))
	for _, p := range sky.Bodies {
		r := ""
		if p.Retrograde {
			r = "R"
		}
		rows = append(rows, []string{
			p.Body,
			fmt.Sprintf("%8.3f", p.Tropical),
			fmt.Sprintf("%8.3f", p.Sidereal),
			fmt.Sprintf("%d", p.Sign+1),
			fmt.Sprintf("%d", p.Nakshatra+1),
			r,
		})
	}
	b.WriteString(newTable("body", "tropical", "sidereal", "sign", "nak", "").Rows(rows...).String())
	b.WriteByte('\n')

	if a := sky.Angles; a != nil {
		line(&b, "asc", fmt.Sprintf("%.3f° (sidereal %.3f°)", a.Ascendant, a.SiderealAscendant))
		line(&b, "mc", fmt.Sprintf("%.3f° (sidereal %.3f°)", a.Midheaven, a.SiderealMidheaven))
		line(&b, "lst", fmt.Sprintf("%.3f°", a.LocalSidereal))
	}
	return b.String()
}

// Terms renders a year's solar terms in local time at offsetMinutes.
func Terms(year int, occs []solarterm.Occurrence, offsetMinutes int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d %s\n", styleHeading.Render("solar terms"), year, OffsetLabel(offsetMinutes))

	rows := make([][]string, 0, len(occs))
	for _, o := range occs {
		node := ""
		if o.Term.Node {
			node = "●"
		}
		local := julian.UTCToLocal(o.JD, offsetMinutes)
		rows = append(rows, []string{
			fmt.Sprintf("%2d", o.Term.Index),
			o.Term.Name,
			o.Term.Pinyin,
			fmt.Sprintf("%3.0f°", o.Term.Longitude),
			clockDate(local),
			node,
		})
	}
	b.WriteString(newTable("#", "term", "pinyin", "λ", "local", "node").Rows(rows...).String())
	b.WriteByte('\n')
	return b.String()
}

// CacheRows renders the persisted instants of a term cache. Rows whose
// term index is unknown are skipped.
func CacheRows(path string, count int, rows []store.Row, offsetMinutes int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s instants\n", styleHeading.Render("term cache"), path, humanize.Comma(int64(count)))
	if len(rows) == 0 {
		return b.String()
	}

	lines := make([][]string, 0, len(rows))
	for _, r := range rows {
		term, err := solarterm.ByIndex(r.Term)
		if err != nil {
			continue
		}
		solved := r.SolvedAt
		if t, err := r.Solved(); err == nil {
			solved = humanize.Time(t)
		}
		lines = append(lines, []string{
			fmt.Sprintf("%2d", r.Term),
			term.Name,
			r.Method,
			clockDate(julian.UTCToLocal(julian.JD(r.JD), offsetMinutes)),
			solved,
		})
	}
	b.WriteString(newTable("#", "term", "method", "local", "solved").Rows(lines...).String())
	b.WriteByte('\n')
	return b.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeading.Padding(0, 1)
			}
			return styleValue.Padding(0, 1)
		}).
		Headers(headers...)
}

func clock(c julian.Civil) string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func clockDate(c julian.Civil) string {
	return c.DateString() + " " + clock(c)
}
