package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/almanac/internal/solarterm"
)

func newTestModel(year int) Model {
	return NewModel(solarterm.NewCalculator(solarterm.WithCache(solarterm.NewMemoryCache())), year, 540)
}

// load runs the year loader synchronously and feeds its message back.
func load(t *testing.T, m Model) Model {
	t.Helper()
	msg := loadYear(m.calc, m.Year)()
	tm, _ := m.Update(msg)
	return tm.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	tm, cmd := m.Update(msg)
	return tm.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadsYear(t *testing.T) {
	t.Parallel()

	m := newTestModel(2024)
	if !m.Loading {
		t.Fatal("new model should start loading")
	}
	if !strings.Contains(m.View(), "solving terms") {
		t.Error("loading view missing spinner text")
	}

	m = load(t, m)
	if m.Loading || m.Err != nil {
		t.Fatalf("loading=%v err=%v", m.Loading, m.Err)
	}
	if len(m.Terms) != solarterm.Count {
		t.Fatalf("got %d terms", len(m.Terms))
	}

	view := m.View()
	for _, want := range []string{"almanac  2024  UTC+09:00", "小寒", "2024-01-06 05:44", "冬至", "day", "next"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_YearNavigation(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(2024))

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Year != 2025 || !m.Loading || cmd == nil {
		t.Fatalf("right: year=%d loading=%v cmd=%v", m.Year, m.Loading, cmd != nil)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Year != 2023 {
		t.Fatalf("year = %d, want 2023", m.Year)
	}

	// A late result for a year already left is ignored.
	stale, _ := m.Update(MsgYearLoaded{Year: 2025})
	if !stale.(Model).Loading {
		t.Error("stale load applied")
	}

	m = load(t, m)
	if m.Loading || m.Terms[0].Year != 2023 {
		t.Errorf("loaded %v", m.Terms[0].Year)
	}

	m, _ = press(m, runes("t"))
	if m.Year != 2024 {
		t.Errorf("t: year = %d, want 2024", m.Year)
	}
}

func TestModel_CursorAndDetail(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(2024))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("cursor moved above top: %d", m.Cursor)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, runes("j"))
	if m.Cursor != solarterm.SpringStart {
		t.Fatalf("cursor = %d, want %d", m.Cursor, solarterm.SpringStart)
	}

	detail := m.detail()
	for _, want := range []string{"立春", "甲辰", "丙寅 month"} {
		if !strings.Contains(detail, want) {
			t.Errorf("detail missing %q:\n%s", want, detail)
		}
	}

	for range 40 {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Cursor != solarterm.Count-1 {
		t.Errorf("cursor = %d, want last row", m.Cursor)
	}
	if strings.Contains(m.detail(), "next") {
		t.Error("last term should have no next gap")
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(2024))
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()

	tm, _ := newTestModel(2024).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := tm.(Model)
	if m.Width != 120 || m.Height != 40 {
		t.Errorf("size = %dx%d", m.Width, m.Height)
	}
}
