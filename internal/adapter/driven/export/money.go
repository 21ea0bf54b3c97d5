package export

import (
	"math"
	"strconv"
	"strings"
)

// formatMoney formats an amount as $1,234.50.
func formatMoney(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, decPart := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	result := "$" + b.String() + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// formatQuantity drops the decimals of whole quantities.
func formatQuantity(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
