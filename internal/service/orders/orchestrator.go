package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	"github.com/vladislavdragonenkov/ordertracking/internal/metrics"
	"github.com/vladislavdragonenkov/ordertracking/internal/service/reservation"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// StockReserver — координатор резервов, которым пользуется оркестратор.
type StockReserver interface {
	ReserveForOrder(ctx context.Context, items []domain.ItemRequest) ([]domain.OrderLine, error)
	ReleaseForOrder(ctx context.Context, lines []domain.OrderLine) error
	Policy() reservation.CompensationPolicy
}

// Service описывает операции над заказами, доступные транспорту.
type Service interface {
	PlaceOrder(ctx context.Context, customerID string, items []domain.ItemRequest) (domain.OrderSummary, error)
	GetOrder(ctx context.Context, orderID string) (domain.OrderSummary, error)
	ListCustomerOrders(ctx context.Context, customerID string, limit int) ([]domain.OrderSummary, error)
	CancelOrder(ctx context.Context, orderID string) (domain.OrderSummary, error)
	CompleteOrder(ctx context.Context, orderID string) (domain.OrderSummary, error)
	GetOrderTimeline(ctx context.Context, orderID string) ([]domain.TimelineEvent, error)
}

// Orchestrator реализует жизненный цикл заказа: CREATED → CANCELLED | COMPLETED.
type Orchestrator struct {
	orders   domain.OrderRepository
	reserver StockReserver
	outbox   domain.OutboxRepository
	timeline domain.TimelineRepository
	metrics  *metrics.OrderMetrics
	logger   *log.Entry
	now      func() time.Time

	maxSaveAttempts int
	retryBaseDelay  time.Duration
}

// Option настраивает Orchestrator.
type Option func(*Orchestrator)

// WithOutbox подключает outbox для событий заказа. Запись события идёт
// после сохранения заказа отдельной операцией репозитория.
func WithOutbox(outbox domain.OutboxRepository) Option {
	return func(o *Orchestrator) { o.outbox = outbox }
}

// WithTimeline подключает хранилище таймлайна.
func WithTimeline(timeline domain.TimelineRepository) Option {
	return func(o *Orchestrator) { o.timeline = timeline }
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSaveRetry задаёт число попыток сохранения при конфликте версий и базовую задержку.
func WithSaveRetry(attempts int, baseDelay time.Duration) Option {
	return func(o *Orchestrator) {
		if attempts > 0 {
			o.maxSaveAttempts = attempts
		}
		if baseDelay >= 0 {
			o.retryBaseDelay = baseDelay
		}
	}
}

// NewOrchestrator создаёт оркестратор заказов.
func NewOrchestrator(orders domain.OrderRepository, reserver StockReserver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		orders:          orders,
		reserver:        reserver,
		logger:          log.New().WithField("component", "order-orchestrator"),
		now:             time.Now,
		maxSaveAttempts: 3,
		retryBaseDelay:  10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// PlaceOrder резервирует позиции и сохраняет новый заказ в статусе CREATED.
//
// Любая ошибка приводится к доменной: ошибки таксономии возвращаются как есть,
// а недоступность без ответа каталога и прочие сбои становятся
// SERVICE_UNAVAILABLE "Order service is temporarily unavailable".
func (o *Orchestrator) PlaceOrder(ctx context.Context, customerID string, items []domain.ItemRequest) (domain.OrderSummary, error) {
	done := o.metrics.StartOperation(metrics.OperationPlace)
	defer done()

	summary, err := o.placeOrder(ctx, customerID, items)
	if err != nil {
		err = placementFallback(err)
		o.recordFailure(metrics.OperationPlace, err)
		return domain.OrderSummary{}, err
	}
	return summary, nil
}

func (o *Orchestrator) placeOrder(ctx context.Context, customerID string, items []domain.ItemRequest) (domain.OrderSummary, error) {
	if len(items) == 0 {
		return domain.OrderSummary{}, domain.NewInvalidOrder(domain.MsgOrderItemsRequired)
	}
	if customerID == "" {
		return domain.OrderSummary{}, domain.NewInvalidOrder(domain.MsgCustomerRequired)
	}

	lines, err := o.reserver.ReserveForOrder(ctx, items)
	if err != nil {
		return domain.OrderSummary{}, err
	}

	order := domain.NewOrder(customerID, lines)
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		o.releaseAfterFailedPersist(ctx, lines)
		return domain.OrderSummary{}, fmt.Errorf("order invariants violated: %w", errors.Join(errs...))
	}

	stored, err := o.orders.Create(ctx, order)
	if err != nil {
		o.logger.WithError(err).WithField("customer_id", customerID).Error("Persist order failed")
		o.releaseAfterFailedPersist(ctx, lines)
		return domain.OrderSummary{}, fmt.Errorf("create order: %w", err)
	}

	o.emitEvent(ctx, &stored, domain.EventOrderPlaced, "")
	o.metrics.RecordPlaced()
	o.logger.WithFields(log.Fields{
		"order_id":     stored.ID,
		"customer_id":  stored.CustomerID,
		"total_amount": stored.TotalAmount.String(),
		"lines":        len(stored.Items),
	}).Info("Order placed")

	return stored.Summary(), nil
}

// releaseAfterFailedPersist возвращает резервы, если заказ так и не был сохранён.
func (o *Orchestrator) releaseAfterFailedPersist(ctx context.Context, lines []domain.OrderLine) {
	if o.reserver.Policy() != reservation.CompensateReservations {
		return
	}
	if err := o.reserver.ReleaseForOrder(context.WithoutCancel(ctx), lines); err != nil {
		o.logger.WithError(err).Error("Release after failed persist incomplete")
	}
}

// placementFallback приводит ошибку размещения к доменной таксономии.
func placementFallback(err error) error {
	se, ok := domain.AsServiceError(err)
	if ok && se.Kind != domain.KindServiceUnavailable {
		return err
	}
	if ok && se.Message == domain.MsgOrderServiceUnavailable {
		return err
	}
	return domain.NewOrderServiceUnavailable(err)
}

// GetOrder возвращает заказ по ID.
func (o *Orchestrator) GetOrder(ctx context.Context, orderID string) (domain.OrderSummary, error) {
	done := o.metrics.StartOperation(metrics.OperationGet)
	defer done()

	order, err := o.load(ctx, orderID)
	if err != nil {
		o.recordFailure(metrics.OperationGet, err)
		return domain.OrderSummary{}, err
	}
	return order.Summary(), nil
}

// ListCustomerOrders возвращает заказы клиента, новые первыми.
func (o *Orchestrator) ListCustomerOrders(ctx context.Context, customerID string, limit int) ([]domain.OrderSummary, error) {
	done := o.metrics.StartOperation(metrics.OperationList)
	defer done()

	if customerID == "" {
		err := domain.NewInvalidOrder(domain.MsgCustomerRequired)
		o.recordFailure(metrics.OperationList, err)
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	orders, err := o.orders.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		o.recordFailure(metrics.OperationList, err)
		return nil, fmt.Errorf("list orders: %w", err)
	}
	result := make([]domain.OrderSummary, 0, len(orders))
	for _, order := range orders {
		result = append(result, order.Summary())
	}
	return result, nil
}

// CancelOrder переводит заказ в CANCELLED и возвращает резервы всех позиций.
// Сбой возврата отдельной позиции не мешает отмене: он логируется и уходит в outbox.
func (o *Orchestrator) CancelOrder(ctx context.Context, orderID string) (domain.OrderSummary, error) {
	done := o.metrics.StartOperation(metrics.OperationCancel)
	defer done()

	summary, err := o.cancelOrder(ctx, orderID)
	if err != nil {
		o.recordFailure(metrics.OperationCancel, err)
		return domain.OrderSummary{}, err
	}
	o.metrics.RecordCancelled()
	return summary, nil
}

func (o *Orchestrator) cancelOrder(ctx context.Context, orderID string) (domain.OrderSummary, error) {
	order, err := o.load(ctx, orderID)
	if err != nil {
		return domain.OrderSummary{}, err
	}

	// Переход фиксируется до возврата остатков: проигравшая конкурентная
	// операция получает ошибку и каталог не трогает.
	saved, err := o.transition(ctx, order, (*domain.Order).Cancel)
	if err != nil {
		return domain.OrderSummary{}, err
	}

	// Отмена сохранена; дальше только таймауты шлюза.
	detached := context.WithoutCancel(ctx)
	if err := o.reserver.ReleaseForOrder(detached, saved.Items); err != nil {
		o.logger.WithError(err).WithField("order_id", saved.ID).Warn("Stock release incomplete after cancellation")
		o.recordReleaseFailures(detached, &saved, err)
	}

	o.emitEvent(detached, &saved, domain.EventOrderCancelled, "")
	o.logger.WithField("order_id", saved.ID).Info("Order cancelled")
	return saved.Summary(), nil
}

// CompleteOrder переводит заказ в COMPLETED. Остатки в каталоге не меняются.
func (o *Orchestrator) CompleteOrder(ctx context.Context, orderID string) (domain.OrderSummary, error) {
	done := o.metrics.StartOperation(metrics.OperationComplete)
	defer done()

	summary, err := o.completeOrder(ctx, orderID)
	if err != nil {
		o.recordFailure(metrics.OperationComplete, err)
		return domain.OrderSummary{}, err
	}
	o.metrics.RecordCompleted()
	return summary, nil
}

func (o *Orchestrator) completeOrder(ctx context.Context, orderID string) (domain.OrderSummary, error) {
	order, err := o.load(ctx, orderID)
	if err != nil {
		return domain.OrderSummary{}, err
	}

	saved, err := o.transition(ctx, order, (*domain.Order).Complete)
	if err != nil {
		return domain.OrderSummary{}, err
	}

	o.emitEvent(ctx, &saved, domain.EventOrderCompleted, "")
	o.logger.WithField("order_id", saved.ID).Info("Order completed")
	return saved.Summary(), nil
}

// GetOrderTimeline возвращает историю событий заказа.
func (o *Orchestrator) GetOrderTimeline(ctx context.Context, orderID string) ([]domain.TimelineEvent, error) {
	if _, err := o.load(ctx, orderID); err != nil {
		return nil, err
	}
	if o.timeline == nil {
		return nil, nil
	}
	events, err := o.timeline.List(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	return events, nil
}

func (o *Orchestrator) load(ctx context.Context, orderID string) (domain.Order, error) {
	if orderID == "" {
		return domain.Order{}, domain.NewOrderNotFound(nil)
	}
	order, err := o.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, domain.NewOrderNotFound(err)
		}
		return domain.Order{}, fmt.Errorf("load order %s: %w", orderID, err)
	}
	return order, nil
}

// transition применяет переход и сохраняет заказ с optimistic locking.
// При конфликте версий заказ перечитывается и переход проверяется заново.
func (o *Orchestrator) transition(
	ctx context.Context,
	order domain.Order,
	apply func(*domain.Order, time.Time) error,
) (domain.Order, error) {
	for attempt := 0; ; attempt++ {
		next := order
		if err := apply(&next, o.now().UTC()); err != nil {
			return domain.Order{}, err
		}

		err := o.orders.Save(ctx, next)
		if err == nil {
			next.Version++
			return next, nil
		}
		if !domain.IsVersionConflict(err) {
			return domain.Order{}, fmt.Errorf("save order %s: %w", order.ID, err)
		}
		if attempt+1 >= o.maxSaveAttempts {
			conflict := domain.NewOrderConflict("Order was modified concurrently")
			conflict.Cause = err
			return domain.Order{}, conflict
		}

		o.logger.WithFields(log.Fields{
			"order_id": order.ID,
			"attempt":  attempt + 1,
			"version":  order.Version,
		}).Warn("Version conflict detected, retrying")

		delay := o.retryBaseDelay * time.Duration(1<<uint(attempt))
		select {
		case <-ctx.Done():
			return domain.Order{}, fmt.Errorf("save order %s: %w", order.ID, ctx.Err())
		case <-time.After(delay):
		}

		fresh, loadErr := o.load(ctx, order.ID)
		if loadErr != nil {
			return domain.Order{}, loadErr
		}
		order = fresh
	}
}

func (o *Orchestrator) recordReleaseFailures(ctx context.Context, order *domain.Order, err error) {
	var releaseErr *reservation.ReleaseError
	if !errors.As(err, &releaseErr) {
		o.emitEvent(ctx, order, domain.EventStockReleaseFailed, err.Error())
		return
	}
	for _, failed := range releaseErr.Failed {
		reason := fmt.Sprintf("product %s x %d: %v", failed.ProductID, failed.Quantity, failed.Err)
		o.emitEvent(ctx, order, domain.EventStockReleaseFailed, reason)
	}
}

func (o *Orchestrator) recordFailure(operation string, err error) {
	kind := "INTERNAL"
	if se, ok := domain.AsServiceError(err); ok {
		kind = string(se.Kind)
	}
	o.metrics.RecordFailure(operation, kind)
}

var _ Service = (*Orchestrator)(nil)
