package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// getRateLimitForEndpoint determines which rate limit bucket applies.
func (mw *Middleware) getRateLimitForEndpoint(path string) (int, time.Duration) {
	// Verification emails are the most abusable endpoint
	if strings.HasPrefix(path, "/verify") {
		return mw.cfg.RateLimit.VerifyLimit, mw.cfg.RateLimit.VerifyWindow
	}

	// Admin login brute force protection
	if strings.HasPrefix(path, "/auth/login") {
		return mw.cfg.RateLimit.LoginLimit, mw.cfg.RateLimit.LoginWindow
	}

	return mw.cfg.RateLimit.GeneralLimit, mw.cfg.RateLimit.GeneralWindow
}

// getClientIP extracts the real client IP from request headers
func (mw *Middleware) getClientIP(r *http.Request) string {
	// Try X-Forwarded-For first (if behind proxy/load balancer)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}

// generateRateLimitKey creates a unique cache key for rate limiting.
// Dynamic routes are grouped by their base path to prevent cache key
// explosion, e.g. /products/123 counts as /products/:id.
func (mw *Middleware) generateRateLimitKey(ip, endpoint string) string {
	normalized := strings.TrimSuffix(endpoint, "/")

	for _, prefix := range []string{"/products/", "/orders/", "/admin/orders/", "/admin/products/"} {
		if strings.HasPrefix(normalized, prefix) && len(normalized) > len(prefix) {
			normalized = prefix + ":id"
			break
		}
	}

	return fmt.Sprintf("ratelimit:%s:%s", ip, normalized)
}

// RateLimitMiddleware implements fixed-window rate limiting backed by
// Redis. Cache failures fail open so an outage never takes the shop down.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			// Health checks and the root probe are never limited
			if r.URL.Path == "/" || strings.HasPrefix(r.URL.Path, "/health") {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := mw.getClientIP(r)
			limit, window := mw.getRateLimitForEndpoint(r.URL.Path)
			key := mw.generateRateLimitKey(clientIP, r.URL.Path)

			count, err := mw.cacheService.IncrementRateLimit(key, window)
			if err != nil {
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", r.URL.Path),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				w.Header().Set("Content-Type", "application/json")

				http.Error(w, fmt.Sprintf(`{"message":"Rate limit exceeded. Please try again later.","data":{"limit":%d,"window":"%s","retry_after":%d}}`,
					limit, window.String(), int(window.Seconds())), http.StatusTooManyRequests)
				return
			}

			remaining := max(0, int64(limit)-count)
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

			next.ServeHTTP(w, r)
		})
	}
}
