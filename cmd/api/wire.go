package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/api/controllers"
	"github.com/lakaymarket/storefront-backend/api/routes"
	"github.com/lakaymarket/storefront-backend/internal/catalog"
	"github.com/lakaymarket/storefront-backend/internal/currency"
	"github.com/lakaymarket/storefront-backend/internal/i18n"
	"github.com/lakaymarket/storefront-backend/internal/media"
	"github.com/lakaymarket/storefront-backend/internal/navigation"
	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/internal/sellers"
	"github.com/lakaymarket/storefront-backend/pkg/config"
	"github.com/lakaymarket/storefront-backend/pkg/db"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"github.com/lakaymarket/storefront-backend/pkg/metrics"
	"github.com/lakaymarket/storefront-backend/pkg/redis"
	"github.com/lakaymarket/storefront-backend/pkg/storage/gcs"
)

const readHeaderTimeout = 10 * time.Second

func buildHandler(ctx context.Context, cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, storage *gcs.Client) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	conv, err := buildConverter(cfg.Currency, logg, redisClient, metrics.NewRateMetrics(reg))
	if err != nil {
		return nil, err
	}

	table, err := pricing.TableFromConfig(cfg.Pricing)
	if err != nil {
		return nil, fmt.Errorf("building tier table: %w", err)
	}
	priceSvc, err := pricing.NewService(table, conv, metrics.NewPricingMetrics(reg), logg)
	if err != nil {
		return nil, err
	}

	resolver, err := media.NewResolver(storage, cfg.Storage)
	if err != nil {
		return nil, err
	}

	catalogSvc, err := catalog.NewService(catalog.ServiceParams{
		Repo:        catalog.NewRepository(dbClient.DB()),
		Cache:       redisClient,
		CacheKey:    redisClient.CatalogKey("products"),
		SnapshotTTL: cfg.Catalog.SnapshotTTL,
		Pricing:     priceSvc,
		Converter:   conv,
		Images:      resolver,
		Logger:      logg,
	})
	if err != nil {
		return nil, err
	}

	// A snapshot cached by the previous release may predate the migrations
	// that just ran.
	if err := catalogSvc.InvalidateSnapshot(ctx); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "invalidating product snapshot failed")
	}

	sellerSvc, err := sellers.NewService(sellers.NewRepository(dbClient.DB()), catalogSvc, resolver, logg)
	if err != nil {
		return nil, err
	}

	lang, err := enums.ParseLanguage(cfg.I18n.DefaultLanguage)
	if err != nil {
		return nil, err
	}
	dict, err := i18n.New(lang)
	if err != nil {
		return nil, err
	}

	return routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Gatherer:    reg,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		RateLimiter: redisClient,
		Pingers: map[string]controllers.Pinger{
			"db":      dbClient,
			"redis":   redisClient,
			"storage": storage,
		},
		Catalog:    catalogSvc,
		Sellers:    sellerSvc,
		Pricing:    priceSvc,
		Converter:  conv,
		I18n:       dict,
		Navigation: navigation.NewService(dict),
	}), nil
}

// buildConverter layers the provider (or the static rate when no provider is
// configured) behind the Redis cache with the static rate as fallback.
func buildConverter(cfg config.CurrencyConfig, logg *logger.Logger, cache *redis.Client, m *metrics.RateMetrics) (*currency.Converter, error) {
	fallback, err := decimal.NewFromString(cfg.FallbackRate)
	if err != nil {
		return nil, fmt.Errorf("parsing fallback rate: %w", err)
	}

	var source currency.RateSource
	if cfg.ProviderURL != "" {
		source, err = currency.NewHTTPSource(cfg.ProviderURL, cfg.FetchTimeout, cfg.RetryAttempts)
	} else {
		source, err = currency.NewStaticSource(fallback)
	}
	if err != nil {
		return nil, err
	}

	cached, err := currency.NewCachedSource(currency.CachedSourceParams{
		Source:   source,
		Cache:    cache,
		Key:      cache.ExchangeRateKey(enums.CurrencyUSD.String(), enums.CurrencyHTG.String()),
		TTL:      cfg.CacheTTL,
		Fallback: fallback,
		Metrics:  m,
		Logger:   logg,
	})
	if err != nil {
		return nil, err
	}
	return currency.NewConverter(cached)
}
