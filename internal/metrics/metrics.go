// Package metrics holds the Prometheus instruments of the master-record
// service. All collectors are registered with the global registry, so
// serving promhttp.Handler() on /metrics is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmms_http_requests_total",
			Help: "HTTP requests by route template, method and status code.",
		}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cmms_http_request_duration_seconds",
			Help:    "HTTP request latency by route template and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"})

	RecordMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmms_record_mutations_total",
			Help: "Committed master-record mutations by record kind and action.",
		}, []string{"kind", "action"})

	LowStockItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cmms_low_stock_items",
			Help: "Active store item configs at or below their reorder level, per store.",
		}, []string{"tenant", "store"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RecordMutationsTotal,
		LowStockItems,
	)
}
