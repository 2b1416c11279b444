package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus collectors for the service.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsLimited prometheus.Counter

	SearchesTotal    *prometheus.CounterVec
	FlightsGenerated prometheus.Counter
	ValueScore       prometheus.Histogram

	PriceLocksTotal *prometheus.CounterVec
	ActiveSessions  prometheus.GaugeFunc
}

// NewRegistry registers every collector on reg. sessionCount feeds the
// active-session gauge and may be nil.
func NewRegistry(reg prometheus.Registerer, sessionCount func() int) *Registry {
	factory := promauto.With(reg)
	if sessionCount == nil {
		sessionCount = func() int { return 0 }
	}

	return &Registry{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheepnow_http_requests_total",
				Help: "Total HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cheepnow_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"route", "method"},
		),
		HTTPRequestsLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cheepnow_http_requests_rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		),
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheepnow_searches_total",
				Help: "Flight searches by outcome",
			},
			[]string{"outcome"},
		),
		FlightsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cheepnow_flights_generated_total",
				Help: "Synthetic flight offers generated",
			},
		),
		ValueScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cheepnow_value_score",
				Help:    "Distribution of value scores across generated offers",
				Buckets: prometheus.LinearBuckets(10, 10, 9),
			},
		),
		PriceLocksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheepnow_price_locks_total",
				Help: "Price lock operations by action",
			},
			[]string{"action"},
		),
		ActiveSessions: factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "cheepnow_sessions_active",
				Help: "Sessions currently held in memory",
			},
			func() float64 { return float64(sessionCount()) },
		),
	}
}

// ObserveSearch records a finished search and the scores it produced.
func (r *Registry) ObserveSearch(outcome string, scores []float64) {
	r.SearchesTotal.WithLabelValues(outcome).Inc()
	r.FlightsGenerated.Add(float64(len(scores)))
	for _, s := range scores {
		r.ValueScore.Observe(s)
	}
}
