package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "orders.events"
	TopicDeadLetterQueue = "orders.events.dlq"
)

// DeadLetterTopic возвращает DLQ-топик для топика событий.
func DeadLetterTopic(topic string) string {
	if topic == "" || topic == TopicOrderEvents {
		return TopicDeadLetterQueue
	}
	return topic + ".dlq"
}

// Заголовки сообщений
const (
	HeaderEventType     = "x-event-type"
	HeaderAggregateType = "x-aggregate-type"
	HeaderOutboxID      = "x-outbox-id"
)

// Envelope — обёртка события заказа в топике.
type Envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}

// NewEnvelope оборачивает запись outbox; published_at всегда в UTC.
func NewEnvelope(msg domain.OutboxMessage, publishedAt time.Time) Envelope {
	return Envelope{
		ID:            msg.ID,
		AggregateType: msg.AggregateType,
		AggregateID:   msg.AggregateID,
		EventType:     msg.EventType,
		Payload:       json.RawMessage(msg.Payload),
		PublishedAt:   publishedAt.UTC(),
	}
}

// Key — ключ партиционирования: события одного заказа идут в одну партицию.
func (e Envelope) Key() string {
	if e.AggregateID != "" {
		return e.AggregateID
	}
	return e.ID
}

// Headers дублирует метаданные конверта для фильтрации без разбора тела.
func (e Envelope) Headers() []sarama.RecordHeader {
	return []sarama.RecordHeader{
		header(HeaderEventType, e.EventType),
		header(HeaderAggregateType, e.AggregateType),
		header(HeaderOutboxID, e.ID),
	}
}

// ParseEnvelope разбирает событие заказа из сообщения Kafka.
func ParseEnvelope(message *sarama.ConsumerMessage) (*Envelope, error) {
	if message == nil {
		return nil, fmt.Errorf("kafka message is nil")
	}
	var envelope Envelope
	if err := json.Unmarshal(message.Value, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order event: %w", err)
	}
	return &envelope, nil
}

func header(key, value string) sarama.RecordHeader {
	return sarama.RecordHeader{Key: []byte(key), Value: []byte(value)}
}
