package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeMatched  = "matched"
	OutcomeNotFound = "not_found"

	OutcomeSuccess  = "success"
	OutcomeCacheHit = "cache_hit"
	OutcomeFallback = "fallback"
)

// PricingMetrics counts tier resolutions by mode and outcome.
type PricingMetrics struct {
	resolutions *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tier_resolutions_total",
		Help: "Bundle tier resolutions, by tier mode and outcome.",
	}, []string{"mode", "outcome"})
	reg.MustRegister(resolutions)
	return &PricingMetrics{resolutions: resolutions}
}

// ObserveResolution records whether a quantity matched a tier.
func (p *PricingMetrics) ObserveResolution(mode string, matched bool) {
	if p == nil || p.resolutions == nil {
		return
	}
	outcome := OutcomeNotFound
	if matched {
		outcome = OutcomeMatched
	}
	p.resolutions.WithLabelValues(normalizeLabel(mode), outcome).Inc()
}

// RateMetrics counts exchange rate lookups by outcome.
type RateMetrics struct {
	lookups *prometheus.CounterVec
}

// NewRateMetrics registers the exchange rate metrics on the provided registerer.
func NewRateMetrics(reg prometheus.Registerer) *RateMetrics {
	if reg == nil {
		return &RateMetrics{}
	}
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exchange_rate_lookups_total",
		Help: "Exchange rate lookups, by outcome (success, cache_hit, fallback).",
	}, []string{"outcome"})
	reg.MustRegister(lookups)
	return &RateMetrics{lookups: lookups}
}

// IncLookup increments the counter for outcome.
func (r *RateMetrics) IncLookup(outcome string) {
	if r == nil || r.lookups == nil {
		return
	}
	r.lookups.WithLabelValues(normalizeLabel(outcome)).Inc()
}
