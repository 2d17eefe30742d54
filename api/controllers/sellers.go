package controllers

import (
	"net/http"

	"github.com/lakaymarket/storefront-backend/api/responses"
	"github.com/lakaymarket/storefront-backend/api/validators"
	"github.com/lakaymarket/storefront-backend/internal/catalog"
	"github.com/lakaymarket/storefront-backend/internal/sellers"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
)

const defaultTopVendors = 10

func ListSellers(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := svc.ListSellerCards(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, cards, len(cards), "")
	}
}

// TopVendors serves the top vendors rail. defaultLimit applies when ?limit is absent.
func TopVendors(svc sellers.Service, defaultLimit int, logg *logger.Logger) http.HandlerFunc {
	if defaultLimit <= 0 {
		defaultLimit = defaultTopVendors
	}
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendors, err := svc.TopVendors(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, vendors, len(vendors), "")
	}
}

func GetSeller(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithSellerID(r.Context(), id.String())
		card, err := svc.GetSellerCard(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, card)
	}
}

// SellerProducts lists a seller's active products. Unknown sellers are 404.
func SellerProducts(sellerSvc sellers.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cur, err := validators.ParseQueryEnum(r, "currency", enums.CurrencyUSD, enums.ParseCurrency)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithSellerID(r.Context(), id.String())
		if _, err := sellerSvc.GetSellerCard(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		products, err := catalogSvc.ListSellerProducts(ctx, id, cur)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WritePage(w, products, len(products), "")
	}
}
