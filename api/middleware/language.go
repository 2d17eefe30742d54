package middleware

import (
	"net/http"
	"strings"

	"github.com/lakaymarket/storefront-backend/pkg/enums"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
)

type languageMatcher interface {
	Match(acceptLanguage string) enums.Language
}

// Language resolves the request language from ?lang=, then Accept-Language.
func Language(matcher languageMatcher, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var lang enums.Language
			if raw := strings.TrimSpace(r.URL.Query().Get("lang")); raw != "" {
				if parsed, err := enums.ParseLanguage(raw); err == nil {
					lang = parsed
				}
			}
			if lang == "" {
				lang = matcher.Match(r.Header.Get("Accept-Language"))
			}

			ctx := WithLanguage(r.Context(), lang)
			if logg != nil {
				ctx = logg.WithLanguage(ctx, lang.String())
			}
			w.Header().Set("Content-Language", lang.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
