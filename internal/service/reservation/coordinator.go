package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	"github.com/vladislavdragonenkov/ordertracking/internal/metrics"
)

// CompensationPolicy определяет судьбу уже сделанных резервов при сбое размещения.
type CompensationPolicy string

const (
	// CompensateReservations — вернуть резервы предыдущих позиций в обратном порядке.
	CompensateReservations CompensationPolicy = "compensate"
	// KeepReservations — оставить резервы как есть; расхождение разбирается вручную.
	KeepReservations CompensationPolicy = "keep"
)

// ParseCompensationPolicy разбирает политику из конфигурации.
func ParseCompensationPolicy(raw string) (CompensationPolicy, error) {
	switch CompensationPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case CompensateReservations:
		return CompensateReservations, nil
	case KeepReservations:
		return KeepReservations, nil
	default:
		return "", fmt.Errorf("unknown compensation policy %q", raw)
	}
}

// Coordinator последовательно резервирует и возвращает товары в каталоге.
type Coordinator struct {
	gateway domain.ProductGateway
	policy  CompensationPolicy
	metrics *metrics.OrderMetrics
	logger  *log.Entry
}

// Option настраивает Coordinator.
type Option func(*Coordinator)

// WithPolicy задаёт политику компенсации.
func WithPolicy(policy CompensationPolicy) Option {
	return func(c *Coordinator) {
		if policy != "" {
			c.policy = policy
		}
	}
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoordinator создаёт координатор резервов. По умолчанию резервы компенсируются.
func NewCoordinator(gateway domain.ProductGateway, opts ...Option) *Coordinator {
	c := &Coordinator{
		gateway: gateway,
		policy:  CompensateReservations,
		logger:  log.New().WithField("component", "reservation-coordinator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy возвращает действующую политику компенсации.
func (c *Coordinator) Policy() CompensationPolicy { return c.policy }

// ReserveForOrder проверяет и резервирует позиции строго по порядку.
//
// Проверки позиции: товар существует, активен, количество >= 1, остатка хватает.
// Первая же ошибка прерывает обработку; последующие позиции не запрашиваются.
func (c *Coordinator) ReserveForOrder(ctx context.Context, items []domain.ItemRequest) ([]domain.OrderLine, error) {
	lines := make([]domain.OrderLine, 0, len(items))

	for idx, item := range items {
		line, err := c.reserveItem(ctx, item)
		if err != nil {
			c.logger.WithFields(log.Fields{
				"product_id": item.ProductID,
				"position":   idx,
				"reserved":   len(lines),
			}).WithError(err).Warn("Order placement aborted")

			if c.policy == CompensateReservations {
				c.compensate(ctx, lines)
			}
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (c *Coordinator) reserveItem(ctx context.Context, item domain.ItemRequest) (domain.OrderLine, error) {
	view, err := c.gateway.Fetch(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.OrderLine{}, domain.NewProductIDNotFound(item.ProductID, err)
		}
		return domain.OrderLine{}, err
	}
	if !view.Active {
		return domain.OrderLine{}, domain.NewInvalidOrder("Product is inactive: " + view.Name)
	}
	if item.Quantity < 1 {
		return domain.OrderLine{}, domain.NewInvalidQuantity(item.Quantity)
	}
	if view.StockQuantity < item.Quantity {
		return domain.OrderLine{}, domain.NewInsufficientStock(view.Name)
	}

	if _, err := c.gateway.Reserve(ctx, item.ProductID, item.Quantity); err != nil {
		return domain.OrderLine{}, err
	}

	return domain.OrderLine{
		ProductID:   item.ProductID,
		ProductName: view.Name,
		Price:       view.Price,
		Quantity:    item.Quantity,
	}, nil
}

// compensate возвращает резервы в обратном порядке. Отмена контекста вызывающего
// не прерывает компенсацию; ошибки только логируются.
func (c *Coordinator) compensate(ctx context.Context, reserved []domain.OrderLine) {
	ctx = context.WithoutCancel(ctx)
	for i := len(reserved) - 1; i >= 0; i-- {
		line := reserved[i]
		entry := c.logger.WithFields(log.Fields{
			"product_id": line.ProductID,
			"quantity":   line.Quantity,
		})
		if _, err := c.gateway.Release(ctx, line.ProductID, line.Quantity); err != nil {
			c.metrics.RecordCompensation(false)
			entry.WithError(err).Error("Compensating release failed, stock stays reserved")
			continue
		}
		c.metrics.RecordCompensation(true)
		entry.Info("Reservation compensated")
	}
}

// ReleaseFailure описывает позицию, по которой не удалось вернуть резерв.
type ReleaseFailure struct {
	ProductID string
	Quantity  int
	Err       error
}

// ReleaseError агрегирует неудачные release при отмене заказа.
type ReleaseError struct {
	Failed []ReleaseFailure
}

func (e *ReleaseError) Error() string {
	return fmt.Sprintf("release failed for %d line(s): %v", len(e.Failed), errors.Join(e.Unwrap()...))
}

func (e *ReleaseError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}

// ReleaseForOrder возвращает резерв по каждой позиции в исходном порядке.
// Ошибка по одной позиции не прерывает остальные; итог — *ReleaseError или nil.
func (c *Coordinator) ReleaseForOrder(ctx context.Context, lines []domain.OrderLine) error {
	var failed []ReleaseFailure

	for _, line := range lines {
		if _, err := c.gateway.Release(ctx, line.ProductID, line.Quantity); err != nil {
			c.metrics.RecordReleaseFailure()
			c.logger.WithFields(log.Fields{
				"product_id": line.ProductID,
				"quantity":   line.Quantity,
			}).WithError(err).Warn("Stock release failed")
			failed = append(failed, ReleaseFailure{ProductID: line.ProductID, Quantity: line.Quantity, Err: err})
		}
	}

	if len(failed) == 0 {
		return nil
	}
	return &ReleaseError{Failed: failed}
}
