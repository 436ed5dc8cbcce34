package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for searches and provider lookups.
type Metrics struct {
	// Provider lookups by outcome: "ok", "error", "timeout"
	ProviderCalls *prometheus.CounterVec

	// Latency of one ZIP lookup
	ProviderLatency prometheus.Histogram

	// Searches by outcome
	Searches *prometheus.CounterVec

	// Listings by partition: "affordable", "over_budget", "filtered", "dismissed"
	Listings *prometheus.CounterVec
}

// NewMetrics registers the search metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ProviderCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_search_provider_calls_total",
			Help: "Listings provider lookups by outcome",
		}, []string{"provider", "outcome"}),

		ProviderLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rental_search_provider_duration_seconds",
			Help:    "Duration of one per-ZIP listings lookup",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_search_searches_total",
			Help: "Searches by outcome",
		}, []string{"outcome"}),

		Listings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_search_listings_total",
			Help: "Listings returned to callers by partition",
		}, []string{"partition"}),
	}
}

func (m *Metrics) observeProviderCall(provider, outcome string, d time.Duration) {
	if m != nil {
		m.ProviderCalls.WithLabelValues(provider, outcome).Inc()
		m.ProviderLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) incSearch(outcome string) {
	if m != nil {
		m.Searches.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) addListings(partition string, n int) {
	if m != nil && n > 0 {
		m.Listings.WithLabelValues(partition).Add(float64(n))
	}
}
