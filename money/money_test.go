package money

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2.675, 2.68},
		{1.005, 1.01},
		{4235, 4235},
		{0.125, 0.13},
		{19.999, 20},
		{-2.675, -2.68},
		{0.1 + 0.2, 0.3},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4235, "RM 4,235.00"},
		{0, "RM 0.00"},
		{15, "RM 15.00"},
		{999.999, "RM 1,000.00"},
		{1234567.891, "RM 1,234,567.89"},
		{100, "RM 100.00"},
		{-1500.5, "RM -1,500.50"},
		{-0.001, "RM 0.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroup(t *testing.T) {
	tests := map[string]string{
		"0":          "0",
		"999":        "999",
		"1000":       "1,000",
		"123456":     "123,456",
		"1234567890": "1,234,567,890",
	}
	for in, want := range tests {
		if got := group(in); got != want {
			t.Errorf("group(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{25, "25"},
		{2.5, "2.5"},
		{0, "0"},
		{0.125, "0.125"},
	}
	for _, tt := range tests {
		if got := FormatQuantity(tt.in); got != tt.want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Zero"},
		{4235, "Four Thousand Two Hundred Thirty Five"},
		{7, "Seven"},
		{13, "Thirteen"},
		{40, "Forty"},
		{100, "One Hundred"},
		{101, "One Hundred One"},
		{1000, "One Thousand"},
		{1000000, "One Million"},
		{1001000, "One Million One Thousand"},
		{2000000005, "Two Billion Five"},
		{999999999, "Nine Hundred Ninety Nine Million Nine Hundred Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{1000.99, "One Thousand"},
		{-42, "Forty Two"},
		{0.75, "Zero"},
	}
	for _, tt := range tests {
		got, err := NumberToWords(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("NumberToWords(%v) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestNumberToWordsOutOfRange(t *testing.T) {
	if got, err := NumberToWords(MaxWords - 1024); err != nil || !strings.HasPrefix(got, "Nine Hundred Ninety Nine Million Nine Hundred") {
		t.Errorf("just below MaxWords = %q, %v", got, err)
	}
	for _, n := range []float64{MaxWords, -MaxWords, 5e20, math.Inf(1), math.NaN()} {
		if got, err := NumberToWords(n); !errors.Is(err, ErrTooLarge) {
			t.Errorf("NumberToWords(%v) = %q, %v, want ErrTooLarge", n, got, err)
		}
	}
}

func TestInWords(t *testing.T) {
	if got, err := InWords(4235); err != nil || got != "Four Thousand Two Hundred Thirty Five Ringgit" {
		t.Errorf("InWords = %q, %v", got, err)
	}
	if _, err := InWords(1e19); !errors.Is(err, ErrTooLarge) {
		t.Errorf("InWords(1e19) error = %v", err)
	}
}
