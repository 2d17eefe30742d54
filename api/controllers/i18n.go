package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lakaymarket/storefront-backend/api/responses"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
)

type dictionarySource interface {
	Dictionary(lang enums.Language) map[string]string
}

type dictionaryResponse struct {
	Language enums.Language    `json:"language"`
	Messages map[string]string `json:"messages"`
}

func I18nDictionary(src dictionarySource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, err := enums.ParseLanguage(chi.URLParam(r, "lang"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "unsupported language"))
			return
		}
		responses.WriteSuccess(w, dictionaryResponse{Language: lang, Messages: src.Dictionary(lang)})
	}
}
