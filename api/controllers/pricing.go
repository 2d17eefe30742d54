package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/api/responses"
	"github.com/lakaymarket/storefront-backend/api/validators"
	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
)

type quoteRequest struct {
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	BasePrice string `json:"base_price" validate:"required,money"`
	Mode      string `json:"mode,omitempty" validate:"omitempty,tiermode"`
}

type tiersResponse struct {
	Mode               enums.TierMode `json:"mode"`
	MaxDiscountPercent int            `json:"max_discount_percent"`
	Tiers              []pricing.Tier `json:"tiers"`
}

// PricingQuote quotes a quantity against the configured default table.
func PricingQuote(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		base, err := decimal.NewFromString(strings.TrimSpace(payload.BasePrice))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid base_price"))
			return
		}

		var mode enums.TierMode
		if payload.Mode != "" {
			if mode, err = enums.ParseTierMode(payload.Mode); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid mode"))
				return
			}
		}
		table, err := svc.TableFor(mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Quote(r.Context(), table, payload.Quantity, base)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func PricingTiers(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := validators.ParseQueryEnum[enums.TierMode](r, "mode", "", enums.ParseTierMode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		table, err := svc.TableFor(mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tiersResponse{
			Mode:               table.Mode(),
			MaxDiscountPercent: table.MaxDiscount(),
			Tiers:              table.Tiers(),
		})
	}
}
