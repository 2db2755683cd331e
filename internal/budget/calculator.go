package budget

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/jars/internal/model"
)

// ErrPercentCount is returned when an editable input does not carry one
// percent per jar.
var ErrPercentCount = errors.New("wrong number of percents")

// ErrOverLimit marks a split whose percents add up to more than 100. Compute
// does not return it; callers that must fail on a blocked result wrap it.
var ErrOverLimit = errors.New("allocation over the limit")

// Input is one interaction's worth of user-provided values.
type Input struct {
	Income   float64
	Percents []int // ignored in fixed mode
}

// Result is the full recomputation for one input.
type Result struct {
	Mode   model.Mode
	Income decimal.Decimal
	// Validation is nil in fixed mode, where the split is not runtime-checked.
	Validation *Validation
	// Allocation is nil when the validation blocks.
	Allocation *Allocation
}

// Blocked reports whether the split was rejected as over the limit.
func (r Result) Blocked() bool {
	return r.Validation != nil && r.Validation.Blocks()
}

// Calculator computes allocations for one mode. It holds no mutable state.
type Calculator struct {
	mode model.Mode
	jars []model.Jar
}

// NewCalculator returns a calculator over the six canonical jars.
func NewCalculator(mode model.Mode) *Calculator {
	return &Calculator{mode: mode, jars: model.Jars()}
}

// Mode returns the calculator's mode.
func (c *Calculator) Mode() model.Mode {
	return c.mode
}

// Jars returns the jars the calculator allocates across.
func (c *Calculator) Jars() []model.Jar {
	out := make([]model.Jar, len(c.jars))
	copy(out, c.jars)
	return out
}

// Compute validates (editable mode) and allocates. It is a pure function of
// the input: equal inputs always produce equal results.
func (c *Calculator) Compute(in Input) (Result, error) {
	income := incomeDecimal(in.Income)
	res := Result{Mode: c.mode, Income: income}

	if !c.mode.Editable() {
		shares := make([]Share, len(c.jars))
		for i, j := range c.jars {
			shares[i] = Share{Jar: j, Ratio: model.FixedFractions[i]}
		}
		alloc := Allocate(income, shares)
		res.Allocation = &alloc
		return res, nil
	}

	if len(in.Percents) != len(c.jars) {
		return res, fmt.Errorf("%w: got %d, want %d", ErrPercentCount, len(in.Percents), len(c.jars))
	}

	v := Validate(in.Percents)
	res.Validation = &v
	if v.Blocks() {
		return res, nil
	}

	shares := make([]Share, len(c.jars))
	for i, j := range c.jars {
		shares[i] = Share{Jar: j, Ratio: decimal.NewFromInt(int64(in.Percents[i])).Div(hundred)}
	}
	alloc := Allocate(income, shares)
	res.Allocation = &alloc
	return res, nil
}

// incomeDecimal clamps before converting; NewFromFloat panics on NaN and Inf.
func incomeDecimal(v float64) decimal.Decimal {
	return decimal.NewFromFloat(ClampIncome(v)).Round(2)
}
