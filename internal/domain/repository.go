package domain

import "context"

// OrderRepository описывает требования к хранилищу заказов.
//
// Хранилище сериализует запись по одному ID: Save применяет изменения
// только если Version совпадает с сохранённой, иначе ErrOrderVersionConflict.
type OrderRepository interface {
	// Create назначает ID и CreatedAt, сохраняет заказ и возвращает сохранённую версию.
	Create(ctx context.Context, order Order) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// ListByCustomer возвращает заказы клиента, новые первыми; limit <= 0 — без ограничения.
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]Order, error)
	// Save обновляет статус заказа с учётом optimistic locking.
	Save(ctx context.Context, order Order) error
}
