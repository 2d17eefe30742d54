package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/internal/currency"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

// CollapsedTierCount is how many tiers a collapsed bundle shows.
const CollapsedTierCount = 3

// Converter turns USD catalog prices into the display currency.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to enums.Currency) (decimal.Decimal, error)
}

// BundleOptions parameterizes the single bundle view: tier matching mode,
// tooltip, display currency and whether all tiers are listed.
type BundleOptions struct {
	Mode        enums.TierMode
	ShowTooltip bool
	Currency    enums.Currency
	Expanded    bool
}

// BundleTierView is one rendered tier.
type BundleTierView struct {
	Label           string          `json:"label"`
	SelectQuantity  int             `json:"select_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DisplayPrice    string          `json:"display_price"`
	DiscountPercent int             `json:"discount_percent"`
	DiscountBadge   string          `json:"discount_badge,omitempty"`
	Selected        bool            `json:"selected"`
}

// BundleView is everything a client needs to render bundle deals.
type BundleView struct {
	Mode               enums.TierMode   `json:"mode"`
	Currency           enums.Currency   `json:"currency"`
	Quantity           int              `json:"quantity"`
	Header             string           `json:"header"`
	MaxDiscountPercent int              `json:"max_discount_percent"`
	Tooltip            string           `json:"tooltip,omitempty"`
	Tiers              []BundleTierView `json:"tiers"`
	Selected           *BundleTierView  `json:"selected,omitempty"`
	Expanded           bool             `json:"expanded"`
	CanExpand          bool             `json:"can_expand"`
}

// BuildBundle renders table for qty. Tier prices are USD and converted into
// opts.Currency; a nil converter is only valid for USD.
func BuildBundle(ctx context.Context, table *Table, qty int, opts BundleOptions, conv Converter) (*BundleView, error) {
	if table == nil {
		return nil, fmt.Errorf("tier table required")
	}
	if opts.Mode != "" && opts.Mode != table.Mode() {
		converted, err := table.WithMode(opts.Mode)
		if err != nil {
			return nil, err
		}
		table = converted
	}
	if opts.Currency == "" {
		opts.Currency = enums.CurrencyUSD
	}
	if opts.Currency != enums.CurrencyUSD && conv == nil {
		return nil, fmt.Errorf("currency converter required for %s", opts.Currency)
	}

	selected, found := table.Resolve(qty)
	maxDiscount := table.MaxDiscount()

	view := &BundleView{
		Mode:               table.Mode(),
		Currency:           opts.Currency,
		Quantity:           qty,
		Header:             fmt.Sprintf("Save up to %d%%", maxDiscount),
		MaxDiscountPercent: maxDiscount,
		Expanded:           opts.Expanded,
		CanExpand:          table.Len() > CollapsedTierCount,
	}
	if opts.ShowTooltip {
		view.Tooltip = tooltipFor(table.Mode())
	}

	tiers := table.Tiers()
	if !opts.Expanded && len(tiers) > CollapsedTierCount {
		tiers = tiers[:CollapsedTierCount]
	}

	view.Tiers = make([]BundleTierView, 0, len(tiers))
	for _, tier := range tiers {
		tv, err := renderTier(ctx, tier, found && tier.MinQty == selected.MinQty, opts.Currency, conv)
		if err != nil {
			return nil, err
		}
		view.Tiers = append(view.Tiers, tv)
		if tv.Selected {
			sel := tv
			view.Selected = &sel
		}
	}

	// the selected tier can sit in the collapsed-away part of the table
	if found && view.Selected == nil {
		tv, err := renderTier(ctx, selected, true, opts.Currency, conv)
		if err != nil {
			return nil, err
		}
		view.Selected = &tv
	}
	return view, nil
}

func renderTier(ctx context.Context, tier Tier, selected bool, cur enums.Currency, conv Converter) (BundleTierView, error) {
	price := tier.UnitPrice
	if cur != enums.CurrencyUSD {
		converted, err := conv.Convert(ctx, price, enums.CurrencyUSD, cur)
		if err != nil {
			return BundleTierView{}, err
		}
		price = converted
	}
	tv := BundleTierView{
		Label:           tier.Label(),
		SelectQuantity:  tier.MinQty,
		UnitPrice:       price,
		DisplayPrice:    currency.Format(price, cur),
		DiscountPercent: tier.DiscountPercent,
		Selected:        selected,
	}
	if tier.DiscountPercent > 0 {
		tv.DiscountBadge = fmt.Sprintf("%d%% Off", tier.DiscountPercent)
	}
	return tv, nil
}

func tooltipFor(mode enums.TierMode) string {
	if mode == enums.TierModeExact {
		return "Bundle prices apply when you buy exactly the listed quantity."
	}
	return "Bundle prices apply to every unit once your quantity reaches a tier."
}
