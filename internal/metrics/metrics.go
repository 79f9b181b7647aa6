// Package metrics provides Prometheus metrics for petskub.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a LINE sign-in exchange.
const (
	ExchangeSuccess       = "success"
	ExchangeBadRequest    = "bad_request"
	ExchangeNotConfigured = "not_configured"
	ExchangeUpstreamError = "upstream_error"
)

var (
	// ShareResolutionsTotal counts share previews by outcome.
	ShareResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petskub",
			Name:      "share_resolutions_total",
			Help:      "Total number of share previews served, by outcome",
		},
		[]string{"outcome"},
	)

	// LineExchangesTotal counts LINE token exchanges by outcome.
	LineExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petskub",
			Name:      "line_exchanges_total",
			Help:      "Total number of LINE token exchanges, by outcome",
		},
		[]string{"outcome"},
	)

	// RequestDuration measures HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "petskub",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)

// RecordShareResolution records whether a share preview found its article.
func RecordShareResolution(hit bool) {
	outcome := "fallback"
	if hit {
		outcome = "hit"
	}
	ShareResolutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordLineExchange records the outcome of a LINE token exchange.
func RecordLineExchange(outcome string) {
	LineExchangesTotal.WithLabelValues(outcome).Inc()
}

// RecordRequest records one served HTTP request.
func RecordRequest(route, method, status string, seconds float64) {
	RequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}
