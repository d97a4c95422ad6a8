package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Операции оркестратора для меток.
const (
	OperationPlace    = "place"
	OperationGet      = "get"
	OperationList     = "list"
	OperationCancel   = "cancel"
	OperationComplete = "complete"
)

// OrderMetrics содержит метрики операций над заказами.
// Все методы безопасны для nil-получателя.
type OrderMetrics struct {
	placed    prometheus.Counter
	cancelled prometheus.Counter
	completed prometheus.Counter

	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge

	compensations   *prometheus.CounterVec
	releaseFailures prometheus.Counter

	timelineEvents prometheus.Counter
	outboxEvents   prometheus.Counter
}

// NewOrderMetrics регистрирует метрики в DefaultRegisterer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer регистрирует метрики в переданном registerer.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	return &OrderMetrics{
		placed: register(registerer, "orders_placed_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders placed",
		})),
		cancelled: register(registerer, "orders_cancelled_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "Total number of orders cancelled",
		})),
		completed: register(registerer, "orders_completed_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_completed_total",
			Help: "Total number of orders completed",
		})),
		failures: register(registerer, "orders_operation_failures_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_operation_failures_total",
			Help: "Failed order operations by operation and error kind",
		}, []string{"operation", "kind"})),
		duration: register(registerer, "orders_operation_duration_seconds", prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orders_operation_duration_seconds",
			Help:    "Duration of order operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"})),
		inFlight: register(registerer, "orders_operations_in_flight", prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orders_operations_in_flight",
			Help: "Number of order operations currently executing",
		})),
		compensations: register(registerer, "orders_placement_compensations_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_placement_compensations_total",
			Help: "Compensating stock releases issued after failed placements",
		}, []string{"result"})),
		releaseFailures: register(registerer, "orders_stock_release_failures_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_stock_release_failures_total",
			Help: "Stock release calls that failed during cancellation",
		})),
		timelineEvents: register(registerer, "orders_timeline_events_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_timeline_events_total",
			Help: "Total number of timeline events recorded",
		})),
		outboxEvents: register(registerer, "orders_outbox_events_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_outbox_events_total",
			Help: "Total number of outbox events enqueued",
		})),
	}
}

// RecordPlaced увеличивает счётчик размещённых заказов.
func (m *OrderMetrics) RecordPlaced() {
	if m == nil {
		return
	}
	m.placed.Inc()
}

// RecordCancelled увеличивает счётчик отменённых заказов.
func (m *OrderMetrics) RecordCancelled() {
	if m == nil {
		return
	}
	m.cancelled.Inc()
}

// RecordCompleted увеличивает счётчик завершённых заказов.
func (m *OrderMetrics) RecordCompleted() {
	if m == nil {
		return
	}
	m.completed.Inc()
}

// RecordFailure учитывает неуспешную операцию с категорией ошибки.
func (m *OrderMetrics) RecordFailure(operation, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(operation, kind).Inc()
}

// StartOperation отмечает начало операции и возвращает функцию завершения.
func (m *OrderMetrics) StartOperation(operation string) func() {
	if m == nil {
		return func() {}
	}
	started := time.Now()
	m.inFlight.Inc()
	return func() {
		m.inFlight.Dec()
		m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	}
}

// RecordCompensation учитывает компенсирующий release после сбоя размещения.
func (m *OrderMetrics) RecordCompensation(success bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !success {
		result = "failed"
	}
	m.compensations.WithLabelValues(result).Inc()
}

// RecordReleaseFailure учитывает неуспешный release при отмене.
func (m *OrderMetrics) RecordReleaseFailure() {
	if m == nil {
		return
	}
	m.releaseFailures.Inc()
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *OrderMetrics) RecordTimelineEvent() {
	if m == nil {
		return
	}
	m.timelineEvents.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *OrderMetrics) RecordOutboxEvent() {
	if m == nil {
		return
	}
	m.outboxEvents.Inc()
}
