// Package ganzhi implements the sexagenary stem/branch algebra: the four
// pillars of an instant, the stems hidden in each branch and the void
// branch pair of a day.
package ganzhi

import "fmt"

// Element is one of the five phases.
type Element int

// The five elements, in generating order.
const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [...]string{"wood", "fire", "earth", "metal", "water"}

func (e Element) String() string {
	if e < 0 || int(e) >= len(elementNames) {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Polarity is yang or yin.
type Polarity int

// Polarities alternate along both stems and branches, starting with yang.
const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yin {
		return "yin"
	}
	return "yang"
}

// Stem is one of the ten heavenly stems, 甲 = 0 through 癸 = 9.
type Stem int

// Stem counts.
const (
	StemCount   = 10
	BranchCount = 12
	CycleLength = 60
)

var (
	stemNames   = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	stemPinyin  = [StemCount]string{"jia", "yi", "bing", "ding", "wu", "ji", "geng", "xin", "ren", "gui"}
	branchNames = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
)

var branchPinyin = [BranchCount]string{
	"zi", "chou", "yin", "mao", "chen", "si", "wu", "wei", "shen", "you", "xu", "hai",
}

var branchAnimals = [BranchCount]string{
	"rat", "ox", "tiger", "rabbit", "dragon", "snake",
	"horse", "goat", "monkey", "rooster", "dog", "pig",
}

var branchElements = [BranchCount]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

// NewStem validates a stem index.
func NewStem(i int) (Stem, error) {
	if i < 0 || i >= StemCount {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStem, i)
	}
	return Stem(i), nil
}

// Valid reports whether s is in range.
func (s Stem) Valid() bool { return s >= 0 && s < StemCount }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemNames[s]
}

// MarshalText encodes the stem as its character.
func (s Stem) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Pinyin returns the romanized name.
func (s Stem) Pinyin() string { return stemPinyin[s] }

// Element returns the stem's phase; consecutive pairs share one.
func (s Stem) Element() Element { return Element(s / 2) }

// Polarity returns yang for even stems.
func (s Stem) Polarity() Polarity { return Polarity(s % 2) }

// Branch is one of the twelve earthly branches, 子 = 0 through 亥 = 11.
type Branch int

// NewBranch validates a branch index.
func NewBranch(i int) (Branch, error) {
	if i < 0 || i >= BranchCount {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBranch, i)
	}
	return Branch(i), nil
}

// Valid reports whether b is in range.
func (b Branch) Valid() bool { return b >= 0 && b < BranchCount }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

// MarshalText encodes the branch as its character.
func (b Branch) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// Pinyin returns the romanized name.
func (b Branch) Pinyin() string { return branchPinyin[b] }

// Animal returns the zodiac animal in English.
func (b Branch) Animal() string { return branchAnimals[b] }

// Element returns the branch's phase.
func (b Branch) Element() Element { return branchElements[b] }

// Polarity returns yang for even branches.
func (b Branch) Polarity() Polarity { return Polarity(b % 2) }

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
