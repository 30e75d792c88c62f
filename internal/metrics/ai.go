package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ai900"

// AI service Prometheus metrics.
var (
	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "Total number of requests to AI services",
		},
		[]string{"service", "operation", "status"},
	)

	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_request_duration_seconds",
			Help:      "AI service request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "operation"},
	)

	AITokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_tokens_total",
			Help:      "Total tokens consumed by model calls",
		},
		[]string{"service", "model", "type"}, // type: prompt / completion
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var aiMetricsRegistered bool

// RegisterAIMetrics registers Prometheus AI service metrics. Must be called once from main.
func RegisterAIMetrics() {
	if aiMetricsRegistered {
		return
	}
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(AITokensTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	aiMetricsRegistered = true
}

// ObserveRequest records the outcome and latency of one AI service call.
func ObserveRequest(service, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	AIRequestsTotal.WithLabelValues(service, operation, status).Inc()
	AIRequestDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}

// ObserveTokens records prompt and completion token usage for a model.
func ObserveTokens(service, model string, prompt, completion int) {
	if prompt > 0 {
		AITokensTotal.WithLabelValues(service, model, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		AITokensTotal.WithLabelValues(service, model, "completion").Add(float64(completion))
	}
}
