package solarterm

import (
	"errors"
	"testing"
)

func TestTable(t *testing.T) {
	t.Parallel()

	nodes := 0
	branches := make(map[int]bool)
	for i, term := range All() {
		if term.Index != i {
			t.Errorf("term %s has index %d at position %d", term.Name, term.Index, i)
		}
		want := float64((285 + 15*i) % 360)
		if term.Longitude != want {
			t.Errorf("term %s longitude = %v, want %v", term.Name, term.Longitude, want)
		}
		if term.Month != i/2+1 {
			t.Errorf("term %s month = %d, want %d", term.Name, term.Month, i/2+1)
		}
		if term.Node != (i%2 == 0) {
			t.Errorf("term %s node = %v", term.Name, term.Node)
		}
		if term.Node {
			nodes++
			branches[term.Branch] = true
		}
	}
	if nodes != 12 || len(Nodes()) != 12 {
		t.Errorf("got %d nodes, want 12", nodes)
	}
	if len(branches) != 12 {
		t.Errorf("node branches not distinct: %v", branches)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want int
	}{
		{"立春", 2},
		{"lichun", 2},
		{"ＬＩＣＨＵＮ", 2},
		{" Dongzhi ", 23},
		{"驚蟄", 4},
		{"春分", 5},
	}
	for _, tt := range tests {
		got, err := Lookup(tt.name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", tt.name, err)
			continue
		}
		if got.Index != tt.want {
			t.Errorf("Lookup(%q) = %d, want %d", tt.name, got.Index, tt.want)
		}
	}

	for _, bad := range []string{"", "midsummer", "立春x"} {
		if _, err := Lookup(bad); !errors.Is(err, ErrUnknownTerm) {
			t.Errorf("Lookup(%q) error = %v, want ErrUnknownTerm", bad, err)
		}
	}
}

func TestByIndexAndNodeForMonth(t *testing.T) {
	t.Parallel()

	if _, err := ByIndex(24); !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("ByIndex(24) error = %v", err)
	}
	if _, err := ByIndex(-1); !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("ByIndex(-1) error = %v", err)
	}
	for m := 1; m <= 12; m++ {
		n, err := NodeForMonth(m)
		if err != nil {
			t.Fatalf("NodeForMonth(%d): %v", m, err)
		}
		if !n.Node || n.Month != m {
			t.Errorf("NodeForMonth(%d) = %+v", m, n)
		}
	}
	if _, err := NodeForMonth(13); !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("NodeForMonth(13) error = %v", err)
	}
}
