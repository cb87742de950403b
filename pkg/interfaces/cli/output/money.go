package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP formats an amount in Colombian pesos as "$12.500". The amount is
// rounded to whole pesos and dots separate thousands.
func FormatCOP(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	prefix := "$"
	if neg {
		prefix = "-$"
	}
	if len(digits) <= 3 {
		return prefix + digits
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3 + len(prefix))
	b.WriteString(prefix)

	rem := len(digits) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(digits[:rem])
	for i := rem; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// FormatHours formats an hour count such as 8 or 12.5
func FormatHours(hours decimal.Decimal) string {
	return hours.String() + "h"
}
