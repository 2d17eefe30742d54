package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/pkg/db/models"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

// Table is an immutable, validated set of tiers sorted by MinQty.
type Table struct {
	mode  enums.TierMode
	tiers []Tier
}

// NewTable validates tiers for mode and returns a table holding a private copy.
//
// Range tables must be ascending and contiguous (next.min == prev.max+1) with
// only the last tier unbounded. Exact tables hold one discrete quantity per
// tier; an unbounded exact tier is pinned to its MinQty.
func NewTable(mode enums.TierMode, tiers []Tier) (*Table, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid tier mode %q", mode)
	}
	if len(tiers) == 0 {
		return nil, errors.New("tier table must contain at least one tier")
	}

	copied := make([]Tier, len(tiers))
	for i, t := range tiers {
		if err := t.validate(i); err != nil {
			return nil, err
		}
		copied[i] = t.clone()
	}

	switch mode {
	case enums.TierModeRange:
		for i := 1; i < len(copied); i++ {
			prev, cur := copied[i-1], copied[i]
			if prev.MaxQty == nil {
				return nil, fmt.Errorf("tier %d: only the last tier may be unbounded", i-1)
			}
			if cur.MinQty != *prev.MaxQty+1 {
				return nil, fmt.Errorf("tier %d: min %d does not follow previous max %d", i, cur.MinQty, *prev.MaxQty)
			}
		}
	case enums.TierModeExact:
		for i := range copied {
			if copied[i].MaxQty == nil {
				copied[i].MaxQty = intPtr(copied[i].MinQty)
			}
			if *copied[i].MaxQty != copied[i].MinQty {
				return nil, fmt.Errorf("tier %d: exact tiers need min == max", i)
			}
			if i > 0 && copied[i].MinQty <= copied[i-1].MinQty {
				return nil, fmt.Errorf("tier %d: quantities must be strictly ascending", i)
			}
		}
	}

	return &Table{mode: mode, tiers: copied}, nil
}

// MustTable is NewTable for tables known to be valid at compile time.
func MustTable(mode enums.TierMode, tiers []Tier) *Table {
	t, err := NewTable(mode, tiers)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable is the storefront's standard bundle table.
func DefaultTable() *Table {
	return MustTable(enums.TierModeRange, []Tier{
		{MinQty: 1, MaxQty: intPtr(2), UnitPrice: decimal.RequireFromString("10.00"), DiscountPercent: 0},
		{MinQty: 3, MaxQty: intPtr(5), UnitPrice: decimal.RequireFromString("9.00"), DiscountPercent: 10},
		{MinQty: 6, MaxQty: intPtr(9), UnitPrice: decimal.RequireFromString("8.50"), DiscountPercent: 15},
		{MinQty: 10, MaxQty: intPtr(49), UnitPrice: decimal.RequireFromString("8.00"), DiscountPercent: 20},
		{MinQty: 50, MaxQty: intPtr(99), UnitPrice: decimal.RequireFromString("7.50"), DiscountPercent: 25},
		{MinQty: 100, UnitPrice: decimal.RequireFromString("7.00"), DiscountPercent: 30},
	})
}

// ParseTable decodes a JSON tier array, e.g. from configuration.
func ParseTable(mode enums.TierMode, raw string) (*Table, error) {
	var tiers []Tier
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &tiers); err != nil {
		return nil, fmt.Errorf("decoding tier table: %w", err)
	}
	return NewTable(mode, tiers)
}

// Mode returns the matching mode.
func (t *Table) Mode() enums.TierMode {
	return t.mode
}

// Tiers returns a copy of the tiers.
func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	for i, tier := range t.tiers {
		out[i] = tier.clone()
	}
	return out
}

// Len returns the number of tiers.
func (t *Table) Len() int {
	return len(t.tiers)
}

// MaxDiscount returns the largest discount percent in the table.
func (t *Table) MaxDiscount() int {
	max := 0
	for _, tier := range t.tiers {
		if tier.DiscountPercent > max {
			max = tier.DiscountPercent
		}
	}
	return max
}

// Resolve returns the tier matching qty. The boolean is false when no tier
// matches, in which case callers price at the product's base price.
func (t *Table) Resolve(qty int) (Tier, bool) {
	if t == nil || qty < 1 {
		return Tier{}, false
	}
	// last tier with MinQty <= qty
	idx := sort.Search(len(t.tiers), func(i int) bool { return t.tiers[i].MinQty > qty }) - 1
	if idx < 0 {
		return Tier{}, false
	}
	tier := t.tiers[idx]
	if t.mode == enums.TierModeExact {
		if tier.MinQty != qty {
			return Tier{}, false
		}
		return tier.clone(), true
	}
	if !tier.Contains(qty) {
		return Tier{}, false
	}
	return tier.clone(), true
}

// WithMode re-expresses the table in another mode. A range table becomes one
// exact tier per range start; an exact table becomes contiguous ranges that
// run up to the next quantity, the last unbounded.
func (t *Table) WithMode(mode enums.TierMode) (*Table, error) {
	if mode == t.mode {
		return t, nil
	}
	tiers := t.Tiers()
	switch mode {
	case enums.TierModeExact:
		for i := range tiers {
			tiers[i].MaxQty = intPtr(tiers[i].MinQty)
		}
	case enums.TierModeRange:
		for i := range tiers {
			if i == len(tiers)-1 {
				tiers[i].MaxQty = nil
				continue
			}
			tiers[i].MaxQty = intPtr(tiers[i+1].MinQty - 1)
		}
	}
	return NewTable(mode, tiers)
}

// FromPriceTiers builds a table from per-product tier rows. Rows carry only a
// starting quantity and unit price; discounts are derived from basePrice. In
// range mode a base-price tier covers quantities below the first row.
func FromPriceTiers(mode enums.TierMode, basePrice decimal.Decimal, rows []models.ProductPriceTier) (*Table, error) {
	if len(rows) == 0 {
		return nil, errors.New("no price tiers")
	}
	if !basePrice.IsPositive() {
		return nil, errors.New("base price must be positive")
	}

	sorted := make([]models.ProductPriceTier, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinQty < sorted[j].MinQty })

	tiers := make([]Tier, 0, len(sorted)+1)
	if mode == enums.TierModeRange && sorted[0].MinQty > 1 {
		tiers = append(tiers, Tier{MinQty: 1, UnitPrice: basePrice})
	}
	for _, row := range sorted {
		tiers = append(tiers, Tier{
			MinQty:          row.MinQty,
			UnitPrice:       row.UnitPrice,
			DiscountPercent: DiscountPercent(basePrice, row.UnitPrice),
		})
	}
	for i := range tiers {
		switch {
		case mode == enums.TierModeExact:
			tiers[i].MaxQty = intPtr(tiers[i].MinQty)
		case i < len(tiers)-1:
			tiers[i].MaxQty = intPtr(tiers[i+1].MinQty - 1)
		}
	}
	return NewTable(mode, tiers)
}

// DiscountPercent returns round((1 - price/base) * 100) clamped to [0,100].
func DiscountPercent(base, price decimal.Decimal) int {
	if !base.IsPositive() || price.GreaterThanOrEqual(base) {
		return 0
	}
	pct := decimal.NewFromInt(1).Sub(price.Div(base)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	return int(pct)
}
