package controllers

import (
	"net/http"

	"github.com/lakaymarket/storefront-backend/api/middleware"
	"github.com/lakaymarket/storefront-backend/api/responses"
	"github.com/lakaymarket/storefront-backend/internal/navigation"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

type menuSource interface {
	Menu(lang enums.Language) navigation.Menu
}

// Navigation returns categories and home tabs in the negotiated language.
func Navigation(src menuSource, fallback enums.Language) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.LanguageFromContext(r.Context())
		if lang == "" {
			lang = fallback
		}
		responses.WriteSuccess(w, src.Menu(lang))
	}
}
