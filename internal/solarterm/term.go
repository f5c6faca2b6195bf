// Package solarterm finds the instants at which the Sun reaches the 24
// solar-term longitudes. Twelve of the terms are nodes that open a
// sexagenary month; the other twelve are mid-points.
package solarterm

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Count is the number of solar terms in a year.
const Count = 24

// Term is a static solar-term record. Index orders terms as they fall in a
// Gregorian year, starting with the node in early January.
type Term struct {
	Index     int     `json:"index" yaml:"index"`
	Name      string  `json:"name" yaml:"name"`
	Pinyin    string  `json:"pinyin" yaml:"pinyin"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	// Month is the civil month in which the term nominally falls.
	Month int `json:"month" yaml:"month"`
	// Node marks the twelve terms that open a sexagenary month.
	Node bool `json:"node" yaml:"node"`
	// Branch is the branch index of the sexagenary month the term lies in.
	Branch int `json:"branch" yaml:"branch"`
}

var terms = [Count]Term{
	{Index: 0, Name: "小寒", Pinyin: "xiaohan", Longitude: 285, Month: 1, Node: true, Branch: 1},
	{Index: 1, Name: "大寒", Pinyin: "dahan", Longitude: 300, Month: 1, Branch: 1},
	{Index: 2, Name: "立春", Pinyin: "lichun", Longitude: 315, Month: 2, Node: true, Branch: 2},
	{Index: 3, Name: "雨水", Pinyin: "yushui", Longitude: 330, Month: 2, Branch: 2},
	{Index: 4, Name: "啓蟄", Pinyin: "jingzhe", Longitude: 345, Month: 3, Node: true, Branch: 3},
	{Index: 5, Name: "春分", Pinyin: "chunfen", Longitude: 0, Month: 3, Branch: 3},
	{Index: 6, Name: "清明", Pinyin: "qingming", Longitude: 15, Month: 4, Node: true, Branch: 4},
	{Index: 7, Name: "穀雨", Pinyin: "guyu", Longitude: 30, Month: 4, Branch: 4},
	{Index: 8, Name: "立夏", Pinyin: "lixia", Longitude: 45, Month: 5, Node: true, Branch: 5},
	{Index: 9, Name: "小満", Pinyin: "xiaoman", Longitude: 60, Month: 5, Branch: 5},
	{Index: 10, Name: "芒種", Pinyin: "mangzhong", Longitude: 75, Month: 6, Node: true, Branch: 6},
	{Index: 11, Name: "夏至", Pinyin: "xiazhi", Longitude: 90, Month: 6, Branch: 6},
	{Index: 12, Name: "小暑", Pinyin: "xiaoshu", Longitude: 105, Month: 7, Node: true, Branch: 7},
	{Index: 13, Name: "大暑", Pinyin: "dashu", Longitude: 120, Month: 7, Branch: 7},
	{Index: 14, Name: "立秋", Pinyin: "liqiu", Longitude: 135, Month: 8, Node: true, Branch: 8},
	{Index: 15, Name: "処暑", Pinyin: "chushu", Longitude: 150, Month: 8, Branch: 8},
	{Index: 16, Name: "白露", Pinyin: "bailu", Longitude: 165, Month: 9, Node: true, Branch: 9},
	{Index: 17, Name: "秋分", Pinyin: "qiufen", Longitude: 180, Month: 9, Branch: 9},
	{Index: 18, Name: "寒露", Pinyin: "hanlu", Longitude: 195, Month: 10, Node: true, Branch: 10},
	{Index: 19, Name: "霜降", Pinyin: "shuangjiang", Longitude: 210, Month: 10, Branch: 10},
	{Index: 20, Name: "立冬", Pinyin: "lidong", Longitude: 225, Month: 11, Node: true, Branch: 11},
	{Index: 21, Name: "小雪", Pinyin: "xiaoxue", Longitude: 240, Month: 11, Branch: 11},
	{Index: 22, Name: "大雪", Pinyin: "daxue", Longitude: 255, Month: 12, Node: true, Branch: 0},
	{Index: 23, Name: "冬至", Pinyin: "dongzhi", Longitude: 270, Month: 12, Branch: 0},
}

// Well-known term indexes.
const (
	SpringStart    = 2
	SummerSolstice = 11
	WinterSolstice = 23
)

// aliases maps alternative spellings to a canonical index.
var aliases = map[string]int{
	"驚蟄": 4,
	"惊蛰": 4,
	"小满": 9,
	"芒种": 10,
	"处暑": 15,
	"谷雨": 7,
}

// All returns the 24 terms in index order.
func All() []Term {
	out := make([]Term, Count)
	copy(out, terms[:])
	return out
}

// Nodes returns the twelve month-opening terms in index order.
func Nodes() []Term {
	out := make([]Term, 0, Count/2)
	for _, t := range terms {
		if t.Node {
			out = append(out, t)
		}
	}
	return out
}

// ByIndex returns the term with the given index.
func ByIndex(i int) (Term, error) {
	if i < 0 || i >= Count {
		return Term{}, fmt.Errorf("%w: index %d", ErrUnknownTerm, i)
	}
	return terms[i], nil
}

// Lookup resolves a term by its kanji name, a common variant, or its
// pinyin (case-insensitive). Full-width input is folded before matching.
func Lookup(name string) (Term, error) {
	n := strings.ToLower(strings.TrimSpace(norm.NFKC.String(name)))
	for _, t := range terms {
		if t.Name == n || t.Pinyin == n {
			return t, nil
		}
	}
	if i, ok := aliases[n]; ok {
		return terms[i], nil
	}
	return Term{}, fmt.Errorf("%w: %q", ErrUnknownTerm, name)
}

// NodeForMonth returns the node term that opens the given civil month.
func NodeForMonth(month int) (Term, error) {
	if month < 1 || month > 12 {
		return Term{}, fmt.Errorf("%w: month %d", ErrUnknownTerm, month)
	}
	return terms[2*(month-1)], nil
}
