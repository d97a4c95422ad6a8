package catalog

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	"github.com/vladislavdragonenkov/ordertracking/internal/metrics"
)

const (
	tracerName = "github.com/vladislavdragonenkov/ordertracking/internal/catalog"
	// DefaultCallTimeout — таймаут одного вызова каталога.
	DefaultCallTimeout = 3 * time.Second
)

// Gateway — типизированный клиент каталога под защитой circuit breaker.
// Любой сбой переводится в PRODUCT_NOT_FOUND, REMOTE_RESOURCE_ERROR или SERVICE_UNAVAILABLE.
type Gateway struct {
	transport Transport
	breaker   *CircuitBreaker
	timeout   time.Duration
	metrics   *metrics.CatalogMetrics
	tracer    trace.Tracer
	logger    *log.Entry
	now       func() time.Time
}

// GatewayOption настраивает Gateway.
type GatewayOption func(*Gateway)

// WithCallTimeout задаёт таймаут одного вызова.
func WithCallTimeout(timeout time.Duration) GatewayOption {
	return func(g *Gateway) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// WithGatewayMetrics подключает метрики вызовов.
func WithGatewayMetrics(m *metrics.CatalogMetrics) GatewayOption {
	return func(g *Gateway) { g.metrics = m }
}

// WithTracerProvider подменяет провайдера трассировки.
func WithTracerProvider(provider trace.TracerProvider) GatewayOption {
	return func(g *Gateway) {
		if provider != nil {
			g.tracer = provider.Tracer(tracerName)
		}
	}
}

// WithGatewayLogger задаёт логгер.
func WithGatewayLogger(logger *log.Entry) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithGatewayClock подменяет время для конвертов ошибок.
func WithGatewayClock(clock Clock) GatewayOption {
	return func(g *Gateway) {
		if clock != nil {
			g.now = clock
		}
	}
}

// NewCatalogBreaker создаёт breaker, который считает отказом только
// недоступность каталога и ответы 5xx, и публикует своё состояние в метрики.
func NewCatalogBreaker(cfg BreakerConfig, m *metrics.CatalogMetrics, opts ...BreakerOption) *CircuitBreaker {
	base := []BreakerOption{
		WithFailurePredicate(isBreakerFailure),
		WithStateListener(func(name string, from, to CircuitState) {
			m.SetBreakerState(name, int(to))
			m.RecordBreakerTransition(name, from.String(), to.String())
		}),
	}
	cb := NewCircuitBreaker("catalog", cfg, append(base, opts...)...)
	m.SetBreakerState(cb.Name(), int(CircuitClosed))
	return cb
}

// NewGateway создаёт шлюз. Если breaker не задан, используется NewCatalogBreaker с настройками по умолчанию.
func NewGateway(transport Transport, breaker *CircuitBreaker, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		transport: transport,
		breaker:   breaker,
		timeout:   DefaultCallTimeout,
		tracer:    otel.Tracer(tracerName),
		logger:    log.New().WithField("component", "catalog-gateway"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.breaker == nil {
		g.breaker = NewCatalogBreaker(DefaultBreakerConfig(), g.metrics, WithBreakerLogger(g.logger))
	}
	return g
}

// Breaker возвращает breaker шлюза (для health-check).
func (g *Gateway) Breaker() *CircuitBreaker { return g.breaker }

// Fetch возвращает актуальное состояние товара.
func (g *Gateway) Fetch(ctx context.Context, productID string) (domain.ProductView, error) {
	return g.call(ctx, "fetch", productPath(productID), productID, 0, func(ctx context.Context) (domain.ProductView, error) {
		return g.transport.GetProduct(ctx, productID)
	})
}

// Reserve списывает quantity единиц товара в каталоге.
func (g *Gateway) Reserve(ctx context.Context, productID string, quantity int) (domain.ProductView, error) {
	return g.call(ctx, "reserve", reduceStockPath, productID, quantity, func(ctx context.Context) (domain.ProductView, error) {
		return g.transport.ReduceStock(ctx, productID, quantity)
	})
}

// Release возвращает quantity единиц товара в каталог.
func (g *Gateway) Release(ctx context.Context, productID string, quantity int) (domain.ProductView, error) {
	return g.call(ctx, "release", increaseStockPath, productID, quantity, func(ctx context.Context) (domain.ProductView, error) {
		return g.transport.IncreaseStock(ctx, productID, quantity)
	})
}

func (g *Gateway) call(
	ctx context.Context,
	operation, path, productID string,
	quantity int,
	fn func(context.Context) (domain.ProductView, error),
) (domain.ProductView, error) {
	ctx, span := g.tracer.Start(ctx, "catalog."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("product.id", productID),
			attribute.Int("quantity", quantity),
		),
	)
	defer span.End()

	started := time.Now()
	var view domain.ProductView
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		v, err := fn(callCtx)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	elapsed := time.Since(started)

	if err == nil {
		g.metrics.RecordCall(operation, "ok", elapsed)
		span.SetStatus(codes.Ok, "")
		return view, nil
	}

	result := resultLabel(err)
	g.metrics.RecordCall(operation, result, elapsed)

	translated := translateFailure(err, path, g.now())
	span.SetAttributes(attribute.String("catalog.result", result))
	span.RecordError(translated)
	span.SetStatus(codes.Error, result)

	entry := g.logger.WithFields(log.Fields{
		"operation":  operation,
		"product_id": productID,
		"quantity":   quantity,
		"result":     result,
	}).WithError(err)
	if result == "structured" {
		entry.Info("Catalog returned error response")
	} else {
		entry.Warn("Catalog call failed")
	}
	return domain.ProductView{}, translated
}

func resultLabel(err error) string {
	var structured *StructuredFailure
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.As(err, &structured):
		return "structured"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "unavailable"
	}
}

var _ domain.ProductGateway = (*Gateway)(nil)
