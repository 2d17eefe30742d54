package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"github.com/lakaymarket/storefront-backend/pkg/metrics"
	"github.com/lakaymarket/storefront-backend/pkg/redis"
)

// CachedSource reads through a Redis cache, collapses concurrent provider
// calls, and answers with the fallback rate when the provider fails.
type CachedSource struct {
	source   RateSource
	cache    redis.Cache
	key      string
	ttl      time.Duration
	fallback decimal.Decimal
	group    singleflight.Group
	metrics  *metrics.RateMetrics
	logg     *logger.Logger
}

// CachedSourceParams groups the CachedSource collaborators. Cache may be nil.
type CachedSourceParams struct {
	Source   RateSource
	Cache    redis.Cache
	Key      string
	TTL      time.Duration
	Fallback decimal.Decimal
	Metrics  *metrics.RateMetrics
	Logger   *logger.Logger
}

func NewCachedSource(p CachedSourceParams) (*CachedSource, error) {
	if p.Source == nil {
		return nil, errors.New("rate source required")
	}
	if !p.Fallback.IsPositive() {
		return nil, fmt.Errorf("fallback rate must be positive, got %s", p.Fallback)
	}
	if p.Logger == nil {
		return nil, errors.New("logger required")
	}
	if p.Key == "" {
		p.Key = "fx:usd_htg"
	}
	return &CachedSource{
		source:   p.Source,
		cache:    p.Cache,
		key:      p.Key,
		ttl:      p.TTL,
		fallback: p.Fallback,
		metrics:  p.Metrics,
		logg:     p.Logger,
	}, nil
}

func (c *CachedSource) Rate(ctx context.Context) (decimal.Decimal, error) {
	if rate, ok := c.cached(ctx); ok {
		c.metrics.IncLookup(metrics.OutcomeCacheHit)
		return rate, nil
	}

	// The fetch is shared by every waiting caller, so it must not inherit the
	// cancellation of whichever request happened to start it.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(c.key, func() (any, error) {
		rate, err := c.source.Rate(fetchCtx)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			if setErr := c.cache.Set(fetchCtx, c.key, rate.String(), c.ttl); setErr != nil {
				c.logg.Warn(c.logg.WithField(fetchCtx, "error", setErr.Error()), "caching exchange rate failed")
			}
		}
		return rate, nil
	})
	if err != nil {
		c.metrics.IncLookup(metrics.OutcomeFallback)
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{
			"error":         err.Error(),
			"fallback_rate": c.fallback.String(),
		}), "exchange rate provider failed, using fallback rate")
		return c.fallback, nil
	}

	c.metrics.IncLookup(metrics.OutcomeSuccess)
	return v.(decimal.Decimal), nil
}

func (c *CachedSource) cached(ctx context.Context) (decimal.Decimal, bool) {
	if c.cache == nil {
		return decimal.Zero, false
	}
	raw, err := c.cache.Get(ctx, c.key)
	if err != nil {
		if !redis.IsMiss(err) {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "reading cached exchange rate failed")
		}
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}
