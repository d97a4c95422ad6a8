package domain

import (
	"context"
	"encoding/json"
	"time"
)

// ProductGateway описывает обращения к каталогу товаров.
// Любая ошибка — *ServiceError категорий PRODUCT_NOT_FOUND,
// REMOTE_RESOURCE_ERROR или SERVICE_UNAVAILABLE.
type ProductGateway interface {
	Fetch(ctx context.Context, productID string) (ProductView, error)
	Reserve(ctx context.Context, productID string, quantity int) (ProductView, error)
	Release(ctx context.Context, productID string, quantity int) (ProductView, error)
}

// OutboxPublisher публикует события из outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(ctx context.Context, event TimelineEvent) error
	List(ctx context.Context, orderID string) ([]TimelineEvent, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	Attempts      int
	CreatedAt     time.Time
}

// DeadLetter — тело сообщения, отправленного в DLQ после исчерпания попыток.
// Payload содержит исходное тело события без изменений.
type DeadLetter struct {
	OutboxID       string          `json:"outbox_id"`
	AggregateType  string          `json:"aggregate_type"`
	AggregateID    string          `json:"aggregate_id"`
	EventType      string          `json:"event_type"`
	Payload        json.RawMessage `json:"payload"`
	PublishError   string          `json:"publish_error"`
	DLQPublishedAt time.Time       `json:"dlq_published_at"`
}

// OutboxStats описывает текущее состояние backlog outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// Типы событий заказа.
const (
	EventOrderPlaced          = "OrderPlaced"
	EventOrderCancelled       = "OrderCancelled"
	EventOrderCompleted       = "OrderCompleted"
	EventStockReleaseFailed   = "StockReleaseFailed"
	EventPlacementCompensated = "PlacementCompensated"
)
