package currency

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
)

// Converter converts between USD and HTG using a RateSource.
type Converter struct {
	rates RateSource
}

func NewConverter(rates RateSource) (*Converter, error) {
	if rates == nil {
		return nil, errors.New("rate source required")
	}
	return &Converter{rates: rates}, nil
}

// Rate exposes the current USD to HTG rate.
func (c *Converter) Rate(ctx context.Context) (decimal.Decimal, error) {
	rate, err := c.rates.Rate(ctx)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "exchange rate unavailable")
	}
	return rate, nil
}

// Convert returns amount expressed in to, rounded to cents.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to enums.Currency) (decimal.Decimal, error) {
	if !from.IsValid() || !to.IsValid() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unsupported currency").
			WithDetails(map[string]any{"from": from, "to": to})
	}
	if from == to {
		return amount.Round(2), nil
	}

	rate, err := c.Rate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if from == enums.CurrencyUSD {
		return amount.Mul(rate).Round(2), nil
	}
	return amount.DivRound(rate, 2), nil
}

// ConvertUSDToHTG is the storefront's common conversion.
func (c *Converter) ConvertUSDToHTG(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	return c.Convert(ctx, amount, enums.CurrencyUSD, enums.CurrencyHTG)
}
