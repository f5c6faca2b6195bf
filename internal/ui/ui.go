// Package ui renders almanac results for the terminal. Printer writes
// status lines to stderr; the Render functions build the stdout views.
package ui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/papapumpkin/almanac/internal/ansi"
	"github.com/papapumpkin/almanac/internal/batch"
)

// Printer writes progress and diagnostics to stderr. Escape codes are
// dropped when stderr is not a terminal.
type Printer struct {
	color bool
}

// New creates a Printer for the current stderr.
func New() *Printer {
	fd := os.Stderr.Fd()
	return &Printer{color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

// c returns code when colour is enabled.
func (p *Printer) c(code string) string {
	if p.color {
		return code
	}
	return ""
}

// Banner prints the program name and version.
func (p *Printer) Banner(version string) {
	fmt.Fprintln(os.Stderr, p.c(ansi.Bold+ansi.Cyan)+"almanac "+p.c(ansi.Reset)+p.c(ansi.Dim)+version+p.c(ansi.Reset))
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, p.c(ansi.Red+ansi.Bold)+"error: "+p.c(ansi.Reset)+"%s\n", msg)
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(os.Stderr, p.c(ansi.Yellow)+"warning: "+p.c(ansi.Reset)+"%s\n", msg)
}

// Info prints a dimmed status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, p.c(ansi.Dim)+"%s"+p.c(ansi.Reset)+"\n", msg)
}

// Success prints a completion line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(os.Stderr, p.c(ansi.Green+ansi.Bold)+"✓ "+p.c(ansi.Reset)+"%s\n", msg)
}

// ValidationErrors lists every manifest problem carried by err.
func (p *Printer) ValidationErrors(path string, err error) {
	var list []*batch.ValidationError
	collectValidation(err, &list)
	if len(list) == 0 {
		p.Error(err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, p.c(ansi.Red+ansi.Bold)+"✗ %s"+p.c(ansi.Reset)+": %d error(s):\n", path, len(list))
	for _, ve := range list {
		fmt.Fprintf(os.Stderr, "  "+p.c(ansi.Red)+"• "+p.c(ansi.Reset)+"%s\n", ve.Error())
	}
}

func collectValidation(err error, out *[]*batch.ValidationError) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectValidation(e, out)
		}
		return
	}
	var ve *batch.ValidationError
	if errors.As(err, &ve) {
		*out = append(*out, ve)
	}
}

// BatchSummary prints the totals of one manifest run.
func (p *Printer) BatchSummary(rep *batch.Report) {
	color := ansi.Green
	if rep.Failed > 0 {
		color = ansi.Yellow
	}
	fmt.Fprintf(os.Stderr, "\n"+p.c(ansi.Dim)+"┌─ "+p.c(ansi.Reset)+p.c(ansi.Bold)+"run %s"+p.c(ansi.Reset)+"\n", shortRun(rep.RunID))
	fmt.Fprintf(os.Stderr, p.c(ansi.Dim)+"│"+p.c(ansi.Reset)+"  records: %s, "+p.c(color)+"%d failed"+p.c(ansi.Reset)+"\n",
		humanize.Comma(int64(len(rep.Outcomes))), rep.Failed)
	fmt.Fprintf(os.Stderr, p.c(ansi.Dim)+"│"+p.c(ansi.Reset)+"  elapsed: %s\n", rep.Elapsed.Round(time.Millisecond))
	for _, o := range rep.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(os.Stderr, p.c(ansi.Dim)+"│"+p.c(ansi.Reset)+"  "+p.c(ansi.Red)+"✗ %s"+p.c(ansi.Reset)+": %v\n", o.ID, o.Err)
		}
	}
	fmt.Fprintln(os.Stderr, p.c(ansi.Dim)+"└──────────────────────────────────────────"+p.c(ansi.Reset))
}

// WatchStarted announces a watch loop on path.
func (p *Printer) WatchStarted(path string) {
	fmt.Fprintf(os.Stderr, p.c(ansi.Magenta)+"◆ watching"+p.c(ansi.Reset)+" %s "+p.c(ansi.Dim)+"(ctrl-c to stop)"+p.c(ansi.Reset)+"\n", path)
}

func shortRun(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
