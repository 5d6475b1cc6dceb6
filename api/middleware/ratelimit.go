package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

const (
	bucketAuth    = "auth"
	bucketAdmin   = "admin"
	bucketGeneral = "general"
)

func (mw *Middleware) bucketForPath(path string) (string, int, time.Duration) {
	cfg := mw.cfg.RateLimit

	switch {
	case strings.HasPrefix(path, "/api/admin/login"):
		return bucketAuth, cfg.AuthLimit, cfg.AuthWindow
	case strings.HasPrefix(path, "/api/admin"):
		return bucketAdmin, cfg.AdminLimit, cfg.AdminWindow
	default:
		return bucketGeneral, cfg.GeneralLimit, cfg.GeneralWindow
	}
}

// clientIP relies on chi's RealIP having already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimitMiddleware counts requests per client and bucket in a fixed
// window. Cache failures let the request through.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled || mw.cache == nil || strings.HasPrefix(r.URL.Path, "/health") {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := clientIP(r)
			bucket, limit, window := mw.bucketForPath(r.URL.Path)

			count, err := mw.cache.IncrementRateLimit(ctx, ip, bucket, window)
			if err != nil {
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", ip),
					gecho.Field("bucket", bucket),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, limit-count)))

			if count > limit {
				retryAfter := window
				if ttl, err := mw.cache.RateLimitTTL(ctx, ip, bucket); err == nil && ttl > 0 {
					retryAfter = ttl
				}

				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", ip),
					gecho.Field("bucket", bucket),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Round(time.Second).Seconds())))
				gecho.TooManyRequests(w,
					gecho.WithMessage("Rate limit exceeded. Please try again later."),
					gecho.Send(),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
