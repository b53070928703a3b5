package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcome label values
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Subtitle lookup metrics
var (
	SubtitleLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_lookups_total",
			Help: "Total number of subtitle lookups by outcome.",
		},
		[]string{"outcome"},
	)

	SubtitlesReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "subtitle_lookup_results",
			Help:    "Number of subtitles returned per lookup.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of OpenSubtitles API requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

// HTTP adapter metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route pattern and status code.",
		},
		[]string{"route", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		SubtitleLookupsTotal,
		SubtitlesReturned,
		UpstreamRequestDuration,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
