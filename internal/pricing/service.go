package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/pkg/config"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"github.com/lakaymarket/storefront-backend/pkg/metrics"
)

// Service resolves tiers, quotes and bundle views against the configured table
// or a caller supplied one (e.g. a product's own tiers).
type Service interface {
	Table() *Table
	TableFor(mode enums.TierMode) (*Table, error)
	Quote(ctx context.Context, table *Table, qty int, basePrice decimal.Decimal) (QuoteResult, error)
	Bundle(ctx context.Context, table *Table, qty int, opts BundleOptions) (*BundleView, error)
}

type service struct {
	table   *Table
	conv    Converter
	metrics *metrics.PricingMetrics
	logg    *logger.Logger
}

// TableFromConfig builds the default table, honouring a JSON override.
func TableFromConfig(cfg config.PricingConfig) (*Table, error) {
	mode, err := enums.ParseTierMode(cfg.TierMode)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.TierTable) != "" {
		return ParseTable(mode, cfg.TierTable)
	}
	return DefaultTable().WithMode(mode)
}

// NewService constructs a pricing service instance.
func NewService(table *Table, conv Converter, m *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if table == nil {
		return nil, fmt.Errorf("tier table required")
	}
	if conv == nil {
		return nil, fmt.Errorf("currency converter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{table: table, conv: conv, metrics: m, logg: logg}, nil
}

func (s *service) Table() *Table {
	return s.table
}

func (s *service) TableFor(mode enums.TierMode) (*Table, error) {
	if mode == "" {
		return s.table, nil
	}
	return s.table.WithMode(mode)
}

func (s *service) Quote(ctx context.Context, table *Table, qty int, basePrice decimal.Decimal) (QuoteResult, error) {
	if table == nil {
		table = s.table
	}
	result, err := Quote(table, qty, basePrice)
	if err != nil {
		return QuoteResult{}, err
	}
	s.metrics.ObserveResolution(table.Mode().String(), result.Tier != nil)
	if result.Tier == nil {
		s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
			"quantity":  qty,
			"tier_mode": table.Mode().String(),
		}), "no bundle tier matched, using base price")
	}
	return result, nil
}

func (s *service) Bundle(ctx context.Context, table *Table, qty int, opts BundleOptions) (*BundleView, error) {
	if table == nil {
		table = s.table
	}
	view, err := BuildBundle(ctx, table, qty, opts, s.conv)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveResolution(view.Mode.String(), view.Selected != nil)
	return view, nil
}
