package money

import (
	"errors"
	"strings"
)

// MaxWords is the exclusive upper bound of the amounts NumberToWords spells.
const MaxWords = 1e18

// ErrTooLarge is returned for amounts NumberToWords cannot spell.
var ErrTooLarge = errors.New("money: amount too large to spell in words")

var ones = [...]string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

var scales = []struct {
	value uint64
	word  string
}{
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

// NumberToWords spells the integer part of |n| in Title Case English,
// e.g. 4235 -> "Four Thousand Two Hundred Thirty Five". Cents are not worded.
// It returns ErrTooLarge when |n| is not below MaxWords or is NaN.
func NumberToWords(n float64) (string, error) {
	if n < 0 {
		n = -n
	}
	if !(n < MaxWords) {
		return "", ErrTooLarge
	}
	v := uint64(n)
	if v == 0 {
		return ones[0], nil
	}
	return strings.Join(cardinal(v), " "), nil
}

// InWords returns the legal "total in words" phrase without the trailing "Only".
func InWords(n float64) (string, error) {
	w, err := NumberToWords(n)
	if err != nil {
		return "", err
	}
	return w + " " + CurrencyName, nil
}

func cardinal(v uint64) []string {
	var parts []string
	for _, s := range scales {
		if v < s.value {
			continue
		}
		group := v / s.value
		v %= s.value
		if group >= 1000 {
			parts = append(parts, cardinal(group)...)
		} else {
			parts = append(parts, under1000(int(group))...)
		}
		parts = append(parts, s.word)
	}
	if v > 0 {
		parts = append(parts, under1000(int(v))...)
	}
	return parts
}

func under1000(n int) []string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, ones[h], "Hundred")
	}
	if r := n % 100; r > 0 {
		parts = append(parts, under100(r)...)
	}
	return parts
}

func under100(n int) []string {
	if n < 20 {
		return []string{ones[n]}
	}
	if o := n % 10; o > 0 {
		return []string{tens[n/10], ones[o]}
	}
	return []string{tens[n/10]}
}
