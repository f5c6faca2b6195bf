package ganzhi

import "fmt"

// Phase labels which hidden stem of a branch is in force.
type Phase int

// Phases in the order they occur after a node term.
const (
	Residual Phase = iota
	Middle
	Proper
)

func (p Phase) String() string {
	switch p {
	case Residual:
		return "residual"
	case Middle:
		return "middle"
	case Proper:
		return "proper"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText encodes the phase name.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// HiddenStem is one stem contained in a branch and the number of days
// after the node term for which it rules.
type HiddenStem struct {
	Stem Stem `json:"stem" yaml:"stem"`
	Days int  `json:"days" yaml:"days"`
}

// hiddenSpans lists each branch's stems in the order they take effect.
// Every row spans 30 days.
var hiddenSpans = [BranchCount][]HiddenStem{
	{{8, 10}, {9, 20}},         // 子: 壬 癸
	{{9, 9}, {7, 3}, {5, 18}},  // 丑: 癸 辛 己
	{{4, 7}, {2, 7}, {0, 16}},  // 寅: 戊 丙 甲
	{{0, 10}, {1, 20}},         // 卯: 甲 乙
	{{1, 9}, {9, 3}, {4, 18}},  // 辰: 乙 癸 戊
	{{4, 7}, {6, 7}, {2, 16}},  // 巳: 戊 庚 丙
	{{2, 10}, {5, 9}, {3, 11}}, // 午: 丙 己 丁
	{{3, 9}, {1, 3}, {5, 18}},  // 未: 丁 乙 己
	{{4, 7}, {8, 7}, {6, 16}},  // 申: 戊 壬 庚
	{{6, 10}, {7, 20}},         // 酉: 庚 辛
	{{7, 9}, {3, 3}, {4, 18}},  // 戌: 辛 丁 戊
	{{4, 7}, {0, 7}, {8, 16}},  // 亥: 戊 甲 壬
}

// Hidden is the hidden-stem allocation of a branch at a point in its
// month.
type Hidden struct {
	Branch Branch       `json:"branch" yaml:"branch"`
	Stems  []HiddenStem `json:"stems" yaml:"stems"`
	// Active is the stem in force and Phase its position in Stems.
	Active Stem  `json:"active" yaml:"active"`
	Phase  Phase `json:"phase" yaml:"phase"`
}

// Main returns the proper (last) stem, the branch's principal one.
func (h Hidden) Main() Stem {
	return h.Stems[len(h.Stems)-1].Stem
}

// HiddenStems walks b's cumulative day spans and returns the stem in force
// daysSinceNode days after the governing node term. Values past the last
// span fall back to the proper stem.
func HiddenStems(b Branch, daysSinceNode float64) (Hidden, error) {
	if !b.Valid() {
		return Hidden{}, fmt.Errorf("%w: %d", ErrInvalidBranch, int(b))
	}
	spans := hiddenSpans[b]
	h := Hidden{
		Branch: b,
		Stems:  append([]HiddenStem(nil), spans...),
		Active: spans[len(spans)-1].Stem,
		Phase:  Proper,
	}

	cum := 0
	for i, s := range spans {
		cum += s.Days
		if daysSinceNode < float64(cum) {
			h.Active = s.Stem
			switch i {
			case 0:
				h.Phase = Residual
			case len(spans) - 1:
				h.Phase = Proper
			default:
				h.Phase = Middle
			}
			break
		}
	}
	return h, nil
}
