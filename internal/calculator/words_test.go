package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/money"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "Zero Rupees Only"},
		{"single digit", "7", "Seven Rupees Only"},
		{"teen", "13", "Thirteen Rupees Only"},
		{"round tens", "40", "Forty Rupees Only"},
		{"tens and units", "99", "Ninety Nine Rupees Only"},
		{"hundred", "100", "One Hundred Rupees Only"},
		{"hundred with remainder", "105", "One Hundred and Five Rupees Only"},
		{"thousand with paise", "1500.50", "One Thousand Five Hundred Rupees and Fifty Paise Only"},
		{"ten lakh", "1000000", "Ten Lakh Rupees Only"},
		{"one crore", "10000000", "One Crore Rupees Only"},
		{
			"all groups",
			"12345678.05",
			"One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight Rupees and Five Paise Only",
		},
		{
			"largest representable",
			"999999999.99",
			"Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Rupees and Ninety Nine Paise Only",
		},
		{"paise only", "0.75", "Zero Rupees and Seventy Five Paise Only"},
		{"rounds to paise", "10.005", "Ten Rupees and One Paise Only"},
		{"lakh and units skip hundreds", "100021", "One Lakh and Twenty One Rupees Only"},
		{"overflow", "1000000000", Overflow},
		{"negative", "-250", "Negative Two Hundred and Fifty Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountInWords(decimal.RequireFromString(tt.amount))
			if got != tt.want {
				t.Errorf("AmountInWords(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestAmountInWordsCoercedInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1500.50", "One Thousand Five Hundred Rupees and Fifty Paise Only"},
		{" 100 ", "One Hundred Rupees Only"},
		{"", "Zero Rupees Only"},
		{"abc", "Zero Rupees Only"},
		{"12345678901", Overflow},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := AmountInWords(money.ToDecimal(tt.input)); got != tt.want {
				t.Errorf("AmountInWords(ToDecimal(%q)) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAmountInWordsHasNoStrayWhitespace(t *testing.T) {
	for _, s := range []string{"0", "20", "1000", "100000", "10000000", "20000000.20"} {
		got := AmountInWords(decimal.RequireFromString(s))
		for i := 1; i < len(got); i++ {
			if got[i] == ' ' && got[i-1] == ' ' {
				t.Errorf("AmountInWords(%s) = %q contains a double space", s, got)
			}
		}
		if got[0] == ' ' || got[len(got)-1] == ' ' {
			t.Errorf("AmountInWords(%s) = %q is not trimmed", s, got)
		}
	}
}
