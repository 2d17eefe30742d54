package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lakaymarket/storefront-backend/api/responses"
	"github.com/lakaymarket/storefront-backend/api/validators"
	"github.com/lakaymarket/storefront-backend/internal/catalog"
	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"github.com/lakaymarket/storefront-backend/pkg/pagination"
)

const maxSearchLength = 120

// ListProducts returns a cursor page of active products.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cur, err := validators.ParseQueryEnum(r, "currency", enums.CurrencyUSD, enums.ParseCurrency)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sellerID, err := validators.ParseQueryUUID(r, "seller_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var category *enums.Category
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			parsed, err := enums.ParseCategory(strings.ToLower(raw))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			category = &parsed
		}

		result, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{
			Filters: catalog.ListFilters{
				Category: category,
				SellerID: sellerID,
				Query:    validators.SanitizeString(r.URL.Query().Get("q"), maxSearchLength),
			},
			Pagination: pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")},
			Currency:   cur,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, result.Products, len(result.Products), result.NextCursor)
	}
}

func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cur, err := validators.ParseQueryEnum(r, "currency", enums.CurrencyUSD, enums.ParseCurrency)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithProductID(r.Context(), id.String())
		product, err := svc.GetProduct(ctx, id, cur)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductBundle renders the bundle tier selector for a product.
func ProductBundle(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opts, qty, err := parseBundleQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithProductID(r.Context(), id.String())
		view, err := svc.Bundle(ctx, id, qty, opts)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type productQuoteRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Mode     string `json:"mode,omitempty" validate:"omitempty,tiermode"`
}

// ProductQuote prices a quantity against the product's own tier table.
func ProductQuote(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productQuoteRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var mode enums.TierMode
		if payload.Mode != "" {
			if mode, err = enums.ParseTierMode(payload.Mode); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid mode"))
				return
			}
		}

		ctx := logg.WithProductID(r.Context(), id.String())
		result, err := svc.Quote(ctx, id, payload.Quantity, mode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseBundleQuery(r *http.Request) (pricing.BundleOptions, int, error) {
	qty, err := validators.ParseQueryInt(r, "qty", 1, 1, 1_000_000)
	if err != nil {
		return pricing.BundleOptions{}, 0, err
	}
	mode, err := validators.ParseQueryEnum[enums.TierMode](r, "mode", "", enums.ParseTierMode)
	if err != nil {
		return pricing.BundleOptions{}, 0, err
	}
	cur, err := validators.ParseQueryEnum(r, "currency", enums.CurrencyUSD, enums.ParseCurrency)
	if err != nil {
		return pricing.BundleOptions{}, 0, err
	}
	expanded, err := validators.ParseQueryBool(r, "expanded", false)
	if err != nil {
		return pricing.BundleOptions{}, 0, err
	}
	tooltip, err := validators.ParseQueryBool(r, "tooltip", false)
	if err != nil {
		return pricing.BundleOptions{}, 0, err
	}
	return pricing.BundleOptions{Mode: mode, Currency: cur, Expanded: expanded, ShowTooltip: tooltip}, qty, nil
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
