package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	AdapterFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "listdex",
			Name:      "adapter_failures_total",
			Help:      "Total table adapter failures degraded to empty results",
		},
		[]string{"source_type"},
	)

	SponsorshipLookupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "listdex",
			Name:      "sponsorship_lookup_failures_total",
			Help:      "Total sponsorship lookups degraded to no-sponsorship",
		},
	)

	SponsorshipCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "listdex",
			Name:      "sponsorship_cache_total",
			Help:      "Sponsorship cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "listdex",
			Name:      "search_results_total",
			Help:      "Total search results returned by partition",
		},
		[]string{"partition"}, // "sponsored" / "regular"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(AdapterFailuresTotal)
	prometheus.MustRegister(SponsorshipLookupFailuresTotal)
	prometheus.MustRegister(SponsorshipCacheTotal)
	prometheus.MustRegister(SearchResultsTotal)
	searchMetricsRegistered = true
}
