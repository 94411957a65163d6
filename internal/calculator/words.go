package calculator

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Overflow is returned in place of words when the rupee part of an amount
// has more than nine digits.
const Overflow = "overflow"

const maxIntegerDigits = 9

var ones = [20]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [10]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Indian grouping of a 9 digit integer: 2+2+2+1+2.
var placeGroups = [...]struct {
	width  int
	suffix string
}{
	{2, "Crore"},
	{2, "Lakh"},
	{2, "Thousand"},
	{1, "Hundred"},
	{2, ""},
}

// AmountInWords renders a rupee amount for invoices using the Indian
// numbering system, e.g. 1500.50 becomes
// "One Thousand Five Hundred Rupees and Fifty Paise Only".
//
// The amount is rounded to paise first. Amounts of 10^9 rupees or more
// return Overflow.
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Round(2)
	if amount.IsNegative() {
		words := AmountInWords(amount.Neg())
		if words == Overflow {
			return Overflow
		}
		return "Negative " + words
	}

	rupees, paise, _ := strings.Cut(amount.StringFixed(2), ".")
	if len(rupees) > maxIntegerDigits {
		return Overflow
	}

	var b strings.Builder
	words := integerWords(rupees)
	if words == "" {
		words = "Zero "
	}
	b.WriteString(words)
	b.WriteString("Rupees")
	if p, _ := strconv.Atoi(paise); p > 0 {
		b.WriteString(" and ")
		b.WriteString(underHundred(p))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")

	return strings.Join(strings.Fields(b.String()), " ")
}

// integerWords renders up to nine digits. Each emitted word is followed by
// a space; zero renders as "".
func integerWords(digits string) string {
	padded := strings.Repeat("0", maxIntegerDigits-len(digits)) + digits

	var b strings.Builder
	pos := 0
	for i, g := range placeGroups {
		n, _ := strconv.Atoi(padded[pos : pos+g.width])
		pos += g.width
		if n == 0 {
			continue
		}
		if i == len(placeGroups)-1 && b.Len() > 0 {
			b.WriteString("and ")
		}
		b.WriteString(underHundred(n))
		b.WriteString(" ")
		if g.suffix != "" {
			b.WriteString(g.suffix)
			b.WriteString(" ")
		}
	}
	return b.String()
}

func underHundred(n int) string {
	if n < 20 {
		return ones[n]
	}
	return tens[n/10] + " " + ones[n%10]
}
