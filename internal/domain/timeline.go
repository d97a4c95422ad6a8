package domain

import "time"

// TimelineEvent описывает событие в жизненном цикле заказа.
type TimelineEvent struct {
	OrderID  string
	Type     string
	Reason   string
	Occurred time.Time
}

// NewTimelineEvent создаёт событие таймлайна в UTC.
func NewTimelineEvent(orderID, eventType, reason string, occurred time.Time) TimelineEvent {
	return TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Reason:   reason,
		Occurred: occurred.UTC(),
	}
}
