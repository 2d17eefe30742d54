package currency

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

// Format renders amount with two decimals and a space thousands separator:
// "$1 234.50" for USD, "13 860.00 HTG" for gourdes.
func Format(amount decimal.Decimal, cur enums.Currency) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(whole) + "." + frac

	if cur == enums.CurrencyHTG {
		return sign + grouped + " HTG"
	}
	return sign + "$" + grouped
}

func groupThousands(digits string) string {
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
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
