package health

import (
	"promo_store_server/services"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promo_store",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of storefront and admin requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)

	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promo_store",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served, by route pattern",
		},
		[]string{"method", "route", "status"},
	)

	HttpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "promo_store",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served",
		},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HttpRequestDuration,
		HttpRequestsTotal,
		HttpInFlight,
		services.CheckoutOrders,
		services.CheckoutFailures,
	}
}
