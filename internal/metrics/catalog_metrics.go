package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics содержит метрики обращений к каталогу и состояния breaker.
// Все методы безопасны для nil-получателя.
type CatalogMetrics struct {
	calls        *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	breakerState *prometheus.GaugeVec
	transitions  *prometheus.CounterVec
}

// NewCatalogMetrics регистрирует метрики в DefaultRegisterer.
func NewCatalogMetrics() *CatalogMetrics {
	return NewCatalogMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewCatalogMetricsWithRegisterer регистрирует метрики в переданном registerer.
func NewCatalogMetricsWithRegisterer(registerer prometheus.Registerer) *CatalogMetrics {
	return &CatalogMetrics{
		calls: register(registerer, "catalog_calls_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_calls_total",
			Help: "Calls to the product catalog by operation and result",
		}, []string{"operation", "result"})),
		duration: register(registerer, "catalog_call_duration_seconds", prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_call_duration_seconds",
			Help:    "Duration of product catalog calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"})),
		breakerState: register(registerer, "catalog_breaker_state", prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "catalog_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 open, 2 half-open",
		}, []string{"name"})),
		transitions: register(registerer, "catalog_breaker_transitions_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		}, []string{"name", "from", "to"})),
	}
}

// RecordCall учитывает вызов каталога и его длительность.
func (m *CatalogMetrics) RecordCall(operation, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetBreakerState публикует текущее состояние breaker.
func (m *CatalogMetrics) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBreakerTransition учитывает смену состояния breaker.
func (m *CatalogMetrics) RecordBreakerTransition(name, from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(name, from, to).Inc()
}
