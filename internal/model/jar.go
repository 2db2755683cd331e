// Package model defines the six-jar allocation model shared by every surface.
package model

import "github.com/shopspring/decimal"

// LabelStyle tags how a jar's chart label is emphasized.
type LabelStyle int

const (
	LabelNormal LabelStyle = iota
	LabelEmphasis
)

func (l LabelStyle) String() string {
	if l == LabelEmphasis {
		return "emphasis"
	}
	return "normal"
}

// Jar is one of the six fixed budget categories.
type Jar struct {
	Code        string // stable identifier, e.g. "NEC"
	Title       string
	Description string
	Color       string // hex color token, no computational meaning
	Label       LabelStyle
}

// Emphasized reports whether the jar belongs to the long-term savings class.
func (j Jar) Emphasized() bool {
	return j.Label == LabelEmphasis
}

// DisplayName returns "Title (CODE)".
func (j Jar) DisplayName() string {
	return j.Title + " (" + j.Code + ")"
}

// JarCount is the number of jars in every plan.
const JarCount = 6

var jars = [JarCount]Jar{
	{Code: "NEC", Title: "Necessities", Description: "Food, bills, rent", Color: "#3366CC"},
	{Code: "FFA", Title: "Financial Freedom", Description: "Investments, passive income", Color: "#109618", Label: LabelEmphasis},
	{Code: "LTSS", Title: "Long-Term Savings", Description: "Holidays, car, home", Color: "#FF9900", Label: LabelEmphasis},
	{Code: "EDU", Title: "Education", Description: "Books, courses, growth", Color: "#990099"},
	{Code: "PLAY", Title: "Play", Description: "Cinema, restaurants, hobbies", Color: "#DC3912"},
	{Code: "GIVE", Title: "Give", Description: "Charity, gifts", Color: "#0099C6"},
}

// Jars returns the six jars in canonical order. The slice is a fresh copy.
func Jars() []Jar {
	out := make([]Jar, JarCount)
	copy(out, jars[:])
	return out
}

// JarByCode looks up a jar by its code.
func JarByCode(code string) (Jar, bool) {
	for _, j := range jars {
		if j.Code == code {
			return j, true
		}
	}
	return Jar{}, false
}

// DefaultPercents is the starting split of the editable mode.
var DefaultPercents = [JarCount]int{50, 15, 12, 12, 10, 1}

// FixedFractions is the immutable split of the fixed mode. Sums to 1.0.
var FixedFractions = [JarCount]decimal.Decimal{
	decimal.RequireFromString("0.55"),
	decimal.RequireFromString("0.10"),
	decimal.RequireFromString("0.10"),
	decimal.RequireFromString("0.10"),
	decimal.RequireFromString("0.10"),
	decimal.RequireFromString("0.05"),
}

// DefaultPercentSlice returns DefaultPercents as a new slice.
func DefaultPercentSlice() []int {
	out := make([]int, JarCount)
	copy(out, DefaultPercents[:])
	return out
}
