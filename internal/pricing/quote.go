package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
)

// QuoteResult prices a quantity against a table. Tier is nil when the
// quantity matched no tier and the base price applied.
type QuoteResult struct {
	Quantity        int             `json:"quantity"`
	Tier            *Tier           `json:"tier,omitempty"`
	AppliedLabel    string          `json:"applied_label,omitempty"`
	BasePrice       decimal.Decimal `json:"base_price"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Savings         decimal.Decimal `json:"savings"`
	DiscountPercent int             `json:"discount_percent"`
}

// Quote resolves qty against table and computes the line totals.
func Quote(table *Table, qty int, basePrice decimal.Decimal) (QuoteResult, error) {
	if qty < 1 {
		return QuoteResult{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": qty})
	}
	if basePrice.IsNegative() {
		return QuoteResult{}, pkgerrors.New(pkgerrors.CodeValidation, "base price must not be negative")
	}

	qtyDec := decimal.NewFromInt(int64(qty))
	result := QuoteResult{
		Quantity:  qty,
		BasePrice: basePrice,
		UnitPrice: basePrice,
		Subtotal:  basePrice.Mul(qtyDec),
		Savings:   decimal.Zero,
	}

	tier, ok := table.Resolve(qty)
	if !ok {
		return result, nil
	}

	result.Tier = &tier
	result.UnitPrice = tier.UnitPrice
	result.Subtotal = tier.UnitPrice.Mul(qtyDec)
	result.DiscountPercent = tier.DiscountPercent
	result.AppliedLabel = fmt.Sprintf("bundle tier %s", tier.Label())

	diff := basePrice.Sub(tier.UnitPrice)
	if diff.IsPositive() {
		result.Savings = diff.Mul(qtyDec)
	}
	return result, nil
}
