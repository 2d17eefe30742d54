package pricing

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Tier is one bundle price bracket. MaxQty nil means the tier is unbounded.
type Tier struct {
	MinQty          int             `json:"min_quantity"`
	MaxQty          *int            `json:"max_quantity,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent int             `json:"discount_percent"`
}

// Bounded reports whether the tier has an upper quantity.
func (t Tier) Bounded() bool {
	return t.MaxQty != nil
}

// Contains reports whether qty falls inside [MinQty, MaxQty].
func (t Tier) Contains(qty int) bool {
	if qty < t.MinQty {
		return false
	}
	return t.MaxQty == nil || qty <= *t.MaxQty
}

// Label renders "1-2", "100+" or a single quantity for exact tiers.
func (t Tier) Label() string {
	switch {
	case t.MaxQty == nil:
		return strconv.Itoa(t.MinQty) + "+"
	case *t.MaxQty == t.MinQty:
		return strconv.Itoa(t.MinQty)
	default:
		return fmt.Sprintf("%d-%d", t.MinQty, *t.MaxQty)
	}
}

func (t Tier) clone() Tier {
	out := t
	if t.MaxQty != nil {
		max := *t.MaxQty
		out.MaxQty = &max
	}
	return out
}

func (t Tier) validate(i int) error {
	if t.MinQty < 1 {
		return fmt.Errorf("tier %d: min quantity must be >= 1, got %d", i, t.MinQty)
	}
	if t.MaxQty != nil && *t.MaxQty < t.MinQty {
		return fmt.Errorf("tier %d: max quantity %d below min %d", i, *t.MaxQty, t.MinQty)
	}
	if !t.UnitPrice.IsPositive() {
		return fmt.Errorf("tier %d: unit price must be positive, got %s", i, t.UnitPrice)
	}
	if t.DiscountPercent < 0 || t.DiscountPercent > 100 {
		return fmt.Errorf("tier %d: discount percent must be within [0,100], got %d", i, t.DiscountPercent)
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
