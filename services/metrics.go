package services

import "github.com/prometheus/client_golang/prometheus"

var (
	CheckoutOrders = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "promo_store",
			Subsystem: "checkout",
			Name:      "orders_total",
			Help:      "Orders placed through checkout",
		},
	)

	CheckoutFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promo_store",
			Subsystem: "checkout",
			Name:      "failures_total",
			Help:      "Checkouts rejected or rolled back, by reason",
		},
		[]string{"reason"},
	)
)
