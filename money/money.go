// Package money rounds and formats Ringgit amounts and spells them out in English.
//
// Rounding goes through shopspring/decimal on the shortest decimal form of the
// float, so values such as 2.675 round the way they read (2.68) rather than the
// way they are stored in binary. Formatting never consults a locale.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Currency is the ISO code printed in labels such as "Total (MYR)".
	Currency = "MYR"
	// Symbol prefixes every formatted amount.
	Symbol = "RM"
	// CurrencyName follows the spelled-out total.
	CurrencyName = "Ringgit"
)

// Round2 rounds n to two decimal places, halves away from zero.
// Non-finite input yields 0.
func Round2(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(n).Round(2).Float64()
	return f
}

// FormatCurrency formats n as "RM 4,235.00".
func FormatCurrency(n float64) string {
	return Symbol + " " + FormatAmount(n)
}

// FormatAmount formats n with comma thousands grouping and two decimals, e.g. "4,235.00".
func FormatAmount(n float64) string {
	s := decimal.NewFromFloat(Round2(n)).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg && strings.Trim(intPart+frac, "0") != "" {
		b.WriteByte('-')
	}
	b.WriteString(group(intPart))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// group inserts a comma every three digits from the right.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatQuantity prints a quantity with the fewest digits that represent it: 25, 2.5, 0.125.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
