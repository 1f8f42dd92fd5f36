// Package metrics holds the Prometheus collectors exported by "mvx serve" at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OMDb client metrics
var (
	OMDbRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mvx_omdb_requests_total",
			Help: "Total number of OMDb API requests.",
		},
		[]string{"kind", "status"},
	)

	OMDbRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mvx_omdb_request_duration_seconds",
			Help:    "OMDb API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)

// View controller metrics
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mvx_searches_total",
			Help: "Total number of searches by outcome.",
		},
		[]string{"outcome"},
	)

	WatchlistMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mvx_watchlist_mutations_total",
			Help: "Total number of watchlist add/remove operations.",
		},
		[]string{"op", "result"},
	)

	WatchlistSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mvx_watchlist_size",
			Help: "Number of movies currently in the watchlist.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		OMDbRequestsTotal,
		OMDbRequestDuration,
		SearchesTotal,
		WatchlistMutationsTotal,
		WatchlistSize,
	)
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
