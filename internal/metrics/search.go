package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and corpus Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datenkarte",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"with_origin"},
	)

	SearchResultCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "datenkarte",
			Name:      "search_result_count",
			Help:      "Number of features returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	DatasetsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "datenkarte",
			Name:      "datasets_loaded",
			Help:      "Number of datasets in the corpus",
		},
	)

	FeaturesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "datenkarte",
			Name:      "features_loaded",
			Help:      "Number of features in the corpus",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResultCount)
	prometheus.MustRegister(DatasetsLoaded)
	prometheus.MustRegister(FeaturesLoaded)
	searchMetricsRegistered = true
}
