// Package tui is an interactive solar-term year browser.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/almanac/internal/solarterm"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program browsing from year.
// The program uses the alternate screen buffer for a clean TUI experience.
func NewProgram(calc *solarterm.Calculator, year, offsetMinutes int, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(calc, year, offsetMinutes), allOpts...)
}

// Run creates and runs a TUI program, blocking until it exits.
func Run(calc *solarterm.Calculator, year, offsetMinutes int) error {
	if _, err := NewProgram(calc, year, offsetMinutes).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
// Useful for testing or redirecting output.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
