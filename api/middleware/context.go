package middleware

import (
	"context"

	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

type contextKey string

const ctxLanguage contextKey = "language"

// LanguageFromContext returns the negotiated language, or "" when unset.
func LanguageFromContext(ctx context.Context) enums.Language {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxLanguage).(enums.Language); ok {
		return v
	}
	return ""
}

func WithLanguage(ctx context.Context, lang enums.Language) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLanguage, lang)
}
