package metrics

import "github.com/prometheus/client_golang/prometheus"

// Cluster call and edit-flow Prometheus metrics.
var (
	WeaviateRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "weaviate_requests_total",
			Help:      "Total number of calls to the Weaviate REST API",
		},
		[]string{"op", "status"},
	)

	WeaviateRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "weaviate_request_duration_seconds",
			Help:      "Weaviate REST call duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)

	ConfigReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "config_reconcile_total",
			Help:      "Collection config reconciliations by outcome",
		},
		[]string{"outcome"}, // "applied" / "noop" / "rejected"
	)

	ObjectSaveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "object_save_total",
			Help:      "Object property saves by outcome",
		},
		[]string{"outcome"}, // "saved" / "rejected" / "error"
	)

	TypeMapCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "type_map_cache_total",
			Help:      "Session type map cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Keyword and hybrid search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"mode"},
	)

	BatchObjectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "batch_objects_total",
			Help:      "Objects sent in batch imports by outcome",
		},
		[]string{"outcome"}, // "imported" / "failed"
	)
)

var weaviateMetricsRegistered bool

// RegisterWeaviateMetrics registers the cluster call and edit-flow metrics. Must be called once from main.
func RegisterWeaviateMetrics() {
	if weaviateMetricsRegistered {
		return
	}
	prometheus.MustRegister(WeaviateRequestsTotal)
	prometheus.MustRegister(WeaviateRequestDuration)
	prometheus.MustRegister(ConfigReconcileTotal)
	prometheus.MustRegister(ObjectSaveTotal)
	prometheus.MustRegister(TypeMapCacheTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(BatchObjectsTotal)
	weaviateMetricsRegistered = true
}
