// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CurrencySuffix is appended to every formatted amount.
const CurrencySuffix = " zł"

// FormatMoney formats an amount with thousands separators and two decimals.
// e.g., 4666 -> "4,666.00 zł"
func FormatMoney(d decimal.Decimal) string {
	return FormatAmount(d) + CurrencySuffix
}

// FormatAmount is FormatMoney without the currency suffix.
func FormatAmount(d decimal.Decimal) string {
	// Round first so FormatFloat never sees binary noise past the cents.
	f := d.Round(2).InexactFloat64()
	if f < 0 {
		return "-" + humanize.FormatFloat("#,###.##", -f)
	}
	return humanize.FormatFloat("#,###.##", f)
}

// FormatIncome formats a raw income value the way the input field shows it.
func FormatIncome(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPercent formats an integer percent, e.g. 50 -> "50%".
func FormatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercents joins a split as "50/15/12/12/10/1".
func FormatPercents(ps []int) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "/")
}

// FormatShare formats a 0-1 ratio as a one-decimal percentage.
func FormatShare(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
