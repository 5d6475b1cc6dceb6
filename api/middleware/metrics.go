package middleware

import (
	"net/http"
	"promo_store_server/api/health"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware labels requests by route pattern, not raw path, so ids
// do not create new series.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		health.HttpInFlight.Inc()
		defer health.HttpInFlight.Dec()

		ww := chiware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		labels := prometheus.Labels{
			"method": r.Method,
			"route":  path,
			"status": strconv.Itoa(ww.Status()),
		}

		health.HttpRequestsTotal.With(labels).Inc()
		health.HttpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}
