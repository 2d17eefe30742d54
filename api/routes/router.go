package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lakaymarket/storefront-backend/api/controllers"
	"github.com/lakaymarket/storefront-backend/api/middleware"
	"github.com/lakaymarket/storefront-backend/internal/catalog"
	"github.com/lakaymarket/storefront-backend/internal/i18n"
	"github.com/lakaymarket/storefront-backend/internal/navigation"
	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/internal/sellers"
	"github.com/lakaymarket/storefront-backend/pkg/config"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"github.com/lakaymarket/storefront-backend/pkg/metrics"
	"github.com/lakaymarket/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers. Pingers and
// RateLimiter may be nil.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
	RateLimiter redis.RateLimiter
	Pingers     map[string]controllers.Pinger

	Catalog    catalog.Service
	Sellers    sellers.Service
	Pricing    pricing.Service
	Converter  pricing.Converter
	I18n       *i18n.Catalog
	Navigation *navigation.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Pingers))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	apiPolicy := middleware.RateLimitPolicy{
		Name:             "api",
		Window:           cfg.HTTP.RateLimitWindow,
		Limit:            cfg.HTTP.RateLimitMax,
		TrustedProxyHops: cfg.HTTP.TrustedProxyHops,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(apiPolicy, d.RateLimiter, logg))
		r.Use(middleware.Language(d.I18n, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(d.Catalog, logg))
			r.Get("/{productId}/bundle", controllers.ProductBundle(d.Catalog, logg))
			r.Post("/{productId}/quote", controllers.ProductQuote(d.Catalog, logg))
		})

		r.Route("/pricing", func(r chi.Router) {
			r.Post("/quote", controllers.PricingQuote(d.Pricing, logg))
			r.Get("/tiers", controllers.PricingTiers(d.Pricing, logg))
		})

		r.Route("/sellers", func(r chi.Router) {
			r.Get("/", controllers.ListSellers(d.Sellers, logg))
			r.Get("/top", controllers.TopVendors(d.Sellers, cfg.Catalog.TopVendors, logg))
			r.Get("/{sellerId}", controllers.GetSeller(d.Sellers, logg))
			r.Get("/{sellerId}/products", controllers.SellerProducts(d.Sellers, d.Catalog, logg))
		})

		r.Get("/currency/convert", controllers.CurrencyConvert(d.Converter, logg))
		r.Get("/i18n/{lang}", controllers.I18nDictionary(d.I18n, logg))
		r.Get("/navigation", controllers.Navigation(d.Navigation, d.I18n.Fallback()))
	})

	return r
}
