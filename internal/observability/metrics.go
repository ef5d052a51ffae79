package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogpessoal_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogpessoal_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheLookups counts cache-aside lookups by outcome (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogpessoal_cache_lookups_total",
		Help: "Cache-aside lookups by outcome",
	}, []string{"outcome"})

	// AuthDecisions counts authentication filter outcomes by scheme and result.
	AuthDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogpessoal_auth_decisions_total",
		Help: "Authentication decisions by scheme and result",
	}, []string{"scheme", "result"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	if table == "" {
		table = "unknown"
	}
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// RecordAuth increments the authentication decision counter.
func RecordAuth(scheme, result string) {
	AuthDecisions.WithLabelValues(scheme, result).Inc()
}
