package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/lakaymarket/storefront-backend/api/responses"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"github.com/lakaymarket/storefront-backend/pkg/redis"
)

// RateLimitPolicy throttles a traffic surface per client IP. TrustedProxyHops
// is how many proxies in front of the service append to X-Forwarded-For; zero
// ignores forwarding headers and keys on the socket peer.
type RateLimitPolicy struct {
	Name             string
	Window           time.Duration
	Limit            int
	TrustedProxyHops int
}

func (p RateLimitPolicy) enabled() bool {
	return p.Window > 0 && p.Limit > 0
}

func (p RateLimitPolicy) scope(ip string) string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" {
		name = "api"
	}
	return name + ":" + ip
}

// RateLimit enforces a fixed-window per-IP limit. Limiter errors fail open.
func RateLimit(policy RateLimitPolicy, limiter redis.RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := clientIP(r, policy.TrustedProxyHops)
			allowed, count, err := limiter.FixedWindowAllow(ctx, policy.scope(ip), int64(policy.Limit), policy.Window)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate_limit.unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{
						"ip":             ip,
						"policy":         policy.Name,
						"attempts":       count,
						"limit":          policy.Limit,
						"window_seconds": int(policy.Window.Seconds()),
					}), "rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the address the outermost trusted proxy saw. Entries left of
// that hop are client supplied and never used.
func clientIP(r *http.Request, trustedHops int) string {
	if r == nil {
		return ""
	}
	if trustedHops > 0 {
		if header := r.Header.Get("X-Forwarded-For"); header != "" {
			var hops []string
			for _, part := range strings.Split(header, ",") {
				if ip := strings.TrimSpace(part); ip != "" {
					hops = append(hops, ip)
				}
			}
			if len(hops) >= trustedHops {
				return hops[len(hops)-trustedHops]
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
