// Package budget implements the six-jar split: the sum-to-100 validator,
// the proportional allocator and the calculator that ties them together.
package budget

import "fmt"

// State classifies a percent split against the 100% target.
type State int

const (
	StateExact State = iota
	StateUnderfilled
	StateOverLimit
)

func (s State) String() string {
	switch s {
	case StateUnderfilled:
		return "underfilled"
	case StateOverLimit:
		return "over_limit"
	default:
		return "exact"
	}
}

// Validation is the outcome of checking a percent split.
type Validation struct {
	Total     int
	State     State
	Excess    int // Total-100 when over the limit
	Remainder int // 100-Total when underfilled
}

// Validate sums the percents and classifies the split. Values are taken as
// given; clamping happens at the input boundary.
func Validate(percents []int) Validation {
	total := 0
	for _, p := range percents {
		total += p
	}

	v := Validation{Total: total}
	switch {
	case total > 100:
		v.State = StateOverLimit
		v.Excess = total - 100
	case total < 100:
		v.State = StateUnderfilled
		v.Remainder = 100 - total
	default:
		v.State = StateExact
	}
	return v
}

// Blocks reports whether the allocation must not be produced.
func (v Validation) Blocks() bool {
	return v.State == StateOverLimit
}

// Message is the user-facing status line for the split.
func (v Validation) Message() string {
	switch v.State {
	case StateOverLimit:
		return fmt.Sprintf("Over the limit! Total: %d%%. Remove %d%%.", v.Total, v.Excess)
	case StateUnderfilled:
		return fmt.Sprintf("Left to allocate: %d%% (total: %d%%).", v.Remainder, v.Total)
	default:
		return "Perfect budget (100%)."
	}
}
