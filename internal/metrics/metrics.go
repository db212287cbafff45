package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookfind_search_requests_total",
		Help: "Total number of catalog search requests by outcome",
	}, []string{"status"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookfind_search_duration_seconds",
		Help:    "Duration of catalog search requests in seconds",
		Buckets: prometheus.DefBuckets,
	})

	SearchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookfind_search_results",
		Help:    "Number of books returned per successful search",
		Buckets: []float64{0, 1, 5, 10, 20, 40},
	})

	DebounceCommits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookfind_debounce_commits_total",
		Help: "Queries that settled and were committed for search",
	})

	StaleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookfind_stale_responses_total",
		Help: "Search outcomes discarded because a newer request superseded them",
	})
)

// Outcome labels for SearchRequestsTotal.
const (
	StatusOK        = "ok"
	StatusHTTPError = "http_error"
	StatusNetwork   = "network_error"
	StatusDecode    = "decode_error"
	StatusCancelled = "cancelled"
)
