package ganzhi

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Pillar is a stem/branch pair of equal parity, one of the 60 positions of
// the sexagenary cycle.
type Pillar struct {
	Stem   Stem
	Branch Branch
}

// NewPillar pairs a stem and branch, rejecting pairs whose parities differ
// since those never occur in the cycle.
func NewPillar(s Stem, b Branch) (Pillar, error) {
	if !s.Valid() {
		return Pillar{}, fmt.Errorf("%w: %d", ErrInvalidStem, int(s))
	}
	if !b.Valid() {
		return Pillar{}, fmt.Errorf("%w: %d", ErrInvalidBranch, int(b))
	}
	if int(s)%2 != int(b)%2 {
		return Pillar{}, fmt.Errorf("%w: %s%s has mismatched parity", ErrInvalidPillar, s, b)
	}
	return Pillar{Stem: s, Branch: b}, nil
}

// PillarFromIndex returns the pillar at sexagenary index i.
func PillarFromIndex(i int) (Pillar, error) {
	if i < 0 || i >= CycleLength {
		return Pillar{}, fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	return pillarAt(i), nil
}

// pillarAt maps any integer onto the cycle.
func pillarAt(i int) Pillar {
	i = mod(i, CycleLength)
	return Pillar{Stem: Stem(i % StemCount), Branch: Branch(i % BranchCount)}
}

// Index returns the sexagenary index in [0,60): the unique i with
// i mod 10 = stem and i mod 12 = branch.
func (p Pillar) Index() int {
	return mod(6*int(p.Stem)-5*int(p.Branch), CycleLength)
}

// VoidBranches returns the two branches left unpaired in the ten-day
// group p belongs to.
func (p Pillar) VoidBranches() [2]Branch {
	return voidTable[p.Index()/10]
}

func (p Pillar) String() string {
	return p.Stem.String() + p.Branch.String()
}

// Pinyin returns the romanized form, e.g. "jia-zi".
func (p Pillar) Pinyin() string {
	return p.Stem.Pinyin() + "-" + p.Branch.Pinyin()
}

// MarshalText encodes the pillar as its two-character name.
func (p Pillar) MarshalText() ([]byte, error) {
	if !p.Stem.Valid() || !p.Branch.Valid() {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidPillar, int(p.Stem), int(p.Branch))
	}
	return []byte(p.String()), nil
}

// UnmarshalText accepts anything ParsePillar does.
func (p *Pillar) UnmarshalText(b []byte) error {
	v, err := ParsePillar(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePillar reads a pillar written as two characters ("甲子"), as
// pinyin with or without a separator ("jia-zi", "Jia Zi", "jiazi"), or as a
// sexagenary index ("0".."59"). Input is NFKC-normalized first so
// full-width forms are accepted.
func ParsePillar(s string) (Pillar, error) {
	in := strings.TrimSpace(norm.NFKC.String(s))
	if in == "" {
		return Pillar{}, fmt.Errorf("%w: empty", ErrInvalidPillar)
	}

	if r := []rune(in); len(r) == 2 {
		si := indexOf(stemNames[:], string(r[0]))
		bi := indexOf(branchNames[:], string(r[1]))
		if si >= 0 && bi >= 0 {
			return NewPillar(Stem(si), Branch(bi))
		}
	}

	if idx, err := strconv.Atoi(in); err == nil {
		return PillarFromIndex(idx)
	}

	compact := strings.NewReplacer("-", "", " ", "", "_", "").Replace(cases.Fold().String(in))
	for si, sp := range stemPinyin {
		rest, ok := strings.CutPrefix(compact, sp)
		if !ok {
			continue
		}
		if bi := indexOf(branchPinyin[:], rest); bi >= 0 {
			return NewPillar(Stem(si), Branch(bi))
		}
	}
	return Pillar{}, fmt.Errorf("%w: %q", ErrInvalidPillar, s)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// voidTable maps each ten-day group to its void branch pair.
var voidTable = [6][2]Branch{
	{10, 11}, // 戌亥
	{8, 9},   // 申酉
	{6, 7},   // 午未
	{4, 5},   // 辰巳
	{2, 3},   // 寅卯
	{0, 1},   // 子丑
}
