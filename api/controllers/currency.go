package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/api/responses"
	"github.com/lakaymarket/storefront-backend/api/validators"
	"github.com/lakaymarket/storefront-backend/internal/currency"
	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
)

type conversionResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      enums.Currency  `json:"from"`
	To        enums.Currency  `json:"to"`
	Converted decimal.Decimal `json:"converted"`
	Display   string          `json:"display"`
}

func CurrencyConvert(conv pricing.Converter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		amount, err := validators.ParseQueryDecimal(r, "amount")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryEnum(r, "from", enums.CurrencyUSD, enums.ParseCurrency)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryEnum(r, "to", enums.CurrencyHTG, enums.ParseCurrency)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		converted, err := conv.Convert(r.Context(), amount, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, conversionResponse{
			Amount:    amount,
			From:      from,
			To:        to,
			Converted: converted,
			Display:   currency.Format(converted, to),
		})
	}
}
