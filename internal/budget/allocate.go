package budget

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/jars/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Share pairs a jar with the ratio of income it receives (0.5 == 50%).
type Share struct {
	Jar   model.Jar
	Ratio decimal.Decimal
}

// Line is one jar's slice of the allocation.
type Line struct {
	Jar     model.Jar
	Percent decimal.Decimal // Ratio * 100
	Amount  decimal.Decimal
	Share   string // formatted percent, e.g. "50%"
}

// Allocation is the derived per-jar split of an income.
type Allocation struct {
	Income decimal.Decimal
	Lines  []Line
	Total  decimal.Decimal // sum of Lines[i].Amount
}

// Allocate computes amount_i = ratio_i * income for every share. Amounts are
// exact decimals, so an exact split allocates precisely the income.
func Allocate(income decimal.Decimal, shares []Share) Allocation {
	alloc := Allocation{
		Income: income,
		Lines:  make([]Line, 0, len(shares)),
		Total:  decimal.Zero,
	}
	for _, s := range shares {
		amount := income.Mul(s.Ratio)
		pct := s.Ratio.Mul(hundred)
		alloc.Lines = append(alloc.Lines, Line{
			Jar:     s.Jar,
			Percent: pct,
			Amount:  amount,
			Share:   pct.String() + "%",
		})
		alloc.Total = alloc.Total.Add(amount)
	}
	return alloc
}

// ByCode maps each jar code to its amount.
func (a Allocation) ByCode() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a.Lines))
	for _, l := range a.Lines {
		out[l.Jar.Code] = l.Amount
	}
	return out
}

// Amounts returns the per-jar amounts in jar order.
func (a Allocation) Amounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(a.Lines))
	for i, l := range a.Lines {
		out[i] = l.Amount
	}
	return out
}
