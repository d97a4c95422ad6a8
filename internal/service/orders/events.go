package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

// AggregateTypeOrder — тип агрегата в outbox.
const AggregateTypeOrder = "order"

// EventLine — позиция заказа в теле события.
type EventLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// EventPayload — тело события заказа в outbox.
type EventPayload struct {
	OrderID     string             `json:"order_id"`
	CustomerID  string             `json:"customer_id"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []EventLine        `json:"items,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func newEventPayload(order *domain.Order, reason string, occurred time.Time) EventPayload {
	lines := make([]EventLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, EventLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return EventPayload{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       lines,
		Reason:      reason,
		OccurredAt:  occurred,
	}
}

// emitEvent кладёт событие в outbox и таймлайн после сохранения заказа,
// вне его транзакции. Ошибки только логируются: состояние заказа уже
// сохранено и откатывать его не нужно. Отмена ctx вызывающим запись не прерывает.
func (o *Orchestrator) emitEvent(ctx context.Context, order *domain.Order, eventType, reason string) {
	ctx = context.WithoutCancel(ctx)
	occurred := o.now().UTC()
	entry := o.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"event":    eventType,
	})

	if o.outbox != nil {
		data, err := json.Marshal(newEventPayload(order, reason, occurred))
		if err != nil {
			entry.WithError(err).Error("Marshal event failed")
		} else {
			msg := domain.OutboxMessage{
				AggregateType: AggregateTypeOrder,
				AggregateID:   order.ID,
				EventType:     eventType,
				Payload:       data,
				CreatedAt:     occurred,
			}
			if _, err := o.outbox.Enqueue(ctx, msg); err != nil {
				entry.WithError(err).Error("Enqueue event failed")
			} else {
				o.metrics.RecordOutboxEvent()
			}
		}
	}

	if o.timeline != nil {
		event := domain.NewTimelineEvent(order.ID, eventType, reason, occurred)
		if err := o.timeline.Append(ctx, event); err != nil {
			entry.WithError(err).Warn("Append timeline event failed")
		} else {
			o.metrics.RecordTimelineEvent()
		}
	}
}
