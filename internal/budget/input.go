package budget

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// IncomeStep is the income field's increment.
	IncomeStep = 100.0
	// PercentStep is a percent field's increment.
	PercentStep = 1
	// MaxPercent bounds a single jar's percent.
	MaxPercent = 100
	// MaxIncome caps income so cent rounding and decimal conversion stay finite.
	MaxIncome = 1e12
)

// ClampIncome keeps income within [0, MaxIncome] and rounds it to cents.
func ClampIncome(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= MaxIncome {
		return MaxIncome
	}
	return math.Round(v*100) / 100
}

// ClampPercent keeps a percent within [0, 100].
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > MaxPercent {
		return MaxPercent
	}
	return p
}

// ClampPercents clamps every value in place and returns the slice.
func ClampPercents(ps []int) []int {
	for i, p := range ps {
		ps[i] = ClampPercent(p)
	}
	return ps
}

// StepIncome moves income by n steps of IncomeStep and clamps.
func StepIncome(v float64, n int) float64 {
	return ClampIncome(v + float64(n)*IncomeStep)
}

// StepPercent moves a percent by n steps of PercentStep and clamps.
func StepPercent(p, n int) int {
	return ClampPercent(p + n*PercentStep)
}

// ParsePercents parses a comma-separated list such as "50,15,12,12,10,1".
// Values are clamped; the count is checked by Calculator.Compute.
func ParsePercents(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parsing percent %q: %w", strings.TrimSpace(p), err)
		}
		out = append(out, ClampPercent(n))
	}
	return out, nil
}

// ParseIncome parses a user-typed income, accepting "," as decimal separator.
func ParseIncome(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing income %q: %w", s, err)
	}
	return ClampIncome(v), nil
}
