package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/solarterm"
	"github.com/papapumpkin/almanac/internal/ui"
)

// Model is the solar-term year browser.
type Model struct {
	Year   int
	Terms  []solarterm.Occurrence
	Cursor int
	Err    error

	Loading bool
	Width   int
	Height  int

	calc     *solarterm.Calculator
	calendar *ganzhi.Calendar
	offset   int
	thisYear int

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
}

// NewModel creates a browser starting at year, showing local times at
// offsetMinutes east of UTC.
func NewModel(calc *solarterm.Calculator, year, offsetMinutes int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)
	return Model{
		Year:     year,
		Loading:  true,
		calc:     calc,
		calendar: ganzhi.NewCalendar(calc),
		offset:   offsetMinutes,
		thisYear: year,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		Width:    80,
	}
}

// Init starts loading the first year.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadYear(m.calc, m.Year))
}

func loadYear(calc *solarterm.Calculator, year int) tea.Cmd {
	return func() tea.Msg {
		terms, err := calc.YearTerms(year)
		return MsgYearLoaded{Year: year, Terms: terms, Err: err}
	}
}

// Update handles key presses and load results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgYearLoaded:
		// A slower load for a year already left behind is dropped.
		if msg.Year != m.Year {
			return m, nil
		}
		m.Loading = false
		m.Terms, m.Err = msg.Terms, msg.Err
		if m.Cursor >= len(m.Terms) {
			m.Cursor = 0
		}
		return m, nil

	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.Cursor < len(m.Terms)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.keys.PrevYear):
		return m.gotoYear(m.Year - 1)
	case key.Matches(msg, m.keys.NextYear):
		return m.gotoYear(m.Year + 1)
	case key.Matches(msg, m.keys.Today):
		return m.gotoYear(m.thisYear)
	}
	return m, nil
}

func (m Model) gotoYear(year int) (tea.Model, tea.Cmd) {
	if year == m.Year && !m.Loading {
		return m, nil
	}
	m.Year = year
	m.Loading = true
	m.Err = nil
	return m, tea.Batch(m.spinner.Tick, loadYear(m.calc, year))
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder
	status := fmt.Sprintf("almanac  %d  %s", m.Year, ui.OffsetLabel(m.offset))
	b.WriteString(styleStatusBar.Width(m.Width).Render(status))
	b.WriteString("\n\n")

	switch {
	case m.Loading:
		b.WriteString(m.spinner.View() + " solving terms…\n")
	case m.Err != nil:
		b.WriteString(styleError.Render("error: "+m.Err.Error()) + "\n")
	default:
		b.WriteString(m.termRows())
		b.WriteString("\n")
		b.WriteString(m.detail())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) termRows() string {
	var b strings.Builder
	for i, o := range m.Terms {
		local := julian.UTCToLocal(o.JD, m.offset)
		row := fmt.Sprintf("%-2d %s %-12s %04d-%02d-%02d %02d:%02d",
			o.Term.Index, o.Term.Name, o.Term.Pinyin, local.Year, local.Month, local.Day, local.Hour, local.Minute)

		style := styleRowNormal
		if o.Term.Node {
			style = styleRowNode
		}
		prefix := "  "
		if i == m.Cursor {
			style = styleRowSelected
			prefix = styleIndicator.Render(selectionIndicator) + " "
		}
		b.WriteString(prefix + style.Render(row) + "\n")
	}
	return b.String()
}

// detail describes the selected term: its sexagenary day and, for node
// terms, the month it opens.
func (m Model) detail() string {
	if m.Cursor >= len(m.Terms) {
		return ""
	}
	o := m.Terms[m.Cursor]
	var lines []string
	add := func(label, value string) {
		lines = append(lines, styleDetailLabel.Render(label)+value)
	}

	add("term", fmt.Sprintf("%s %s, solar longitude %.0f°", o.Term.Name, o.Term.Pinyin, o.Term.Longitude))
	day, _ := ganzhi.DayPillar(o.JD, m.offset, ganzhi.Midnight)
	add("day", day.String())
	if year, err := m.calendar.YearPillar(o.JD); err == nil {
		add("year", year.String())
		if o.Term.Node {
			if month, err := m.calendar.MonthPillar(o.JD, year.Stem); err == nil {
				add("opens", month.Pillar.String()+" month")
			}
		}
	}
	if m.Cursor+1 < len(m.Terms) {
		add("next", fmt.Sprintf("%.2f days", float64(m.Terms[m.Cursor+1].JD-o.JD)))
	}
	return styleDetail.Render(strings.Join(lines, "\n")) + "\n"
}
