package ui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/almanac/internal/ansi"
	"github.com/papapumpkin/almanac/internal/batch"
)

// captureStderr redirects os.Stderr to a pipe and returns the captured
// output with escape codes removed.
func captureStderr(fn func()) string {
	r, w, _ := os.Pipe()
	orig := os.Stderr
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = orig

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	r.Close()
	return ansi.Strip(string(buf[:n]))
}

func TestBatchSummary(t *testing.T) {
	p := New()
	output := captureStderr(func() {
		p.BatchSummary(&batch.Report{
			RunID: "0123456789abcdef",
			Outcomes: []batch.Outcome{
				{ID: "ok"},
				{ID: "broken", Err: errors.New("no bracket")},
			},
			Failed:  1,
			Elapsed: 1534 * time.Millisecond,
		})
	})

	checks := []struct {
		name   string
		substr string
	}{
		{"run id", "run 01234567"},
		{"records", "records: 2"},
		{"failed", "1 failed"},
		{"elapsed", "1.534s"},
		{"failure", "broken: no bracket"},
	}

	for _, c := range checks {
		if !strings.Contains(output, c.substr) {
			t.Errorf("expected output to contain %s (%q), got:\n%s", c.name, c.substr, output)
		}
	}
	if strings.Contains(output, "ok:") {
		t.Errorf("successful records should not be listed, got:\n%s", output)
	}
}

func TestValidationErrors_ListsEach(t *testing.T) {
	p := New()
	err := errors.Join(
		batch.ErrInvalidManifest,
		&batch.ValidationError{Record: "a", Field: "datetime", Err: errors.New("bad date")},
		&batch.ValidationError{Field: "ayanamsa", Err: errors.New("unknown")},
	)
	output := captureStderr(func() { p.ValidationErrors("births.toml", err) })

	for _, want := range []string{"births.toml: 2 error(s)", "birth a.datetime: bad date", "defaults.ayanamsa: unknown"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in:\n%s", want, output)
		}
	}
}

func TestValidationErrors_PlainError(t *testing.T) {
	p := New()
	output := captureStderr(func() { p.ValidationErrors("births.toml", errors.New("parse failure")) })
	if !strings.Contains(output, "error: parse failure") {
		t.Errorf("got:\n%s", output)
	}
}

func TestPrinter_NoColorWhenPiped(t *testing.T) {
	p := New()
	output := captureStderr(func() { p.Success("done") })
	if strings.Contains(output, "\033[") {
		t.Errorf("escape codes written to a pipe: %q", output)
	}
	if !strings.Contains(output, "✓ done") {
		t.Errorf("got %q", output)
	}
}
