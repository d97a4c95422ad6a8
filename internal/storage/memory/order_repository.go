package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

// OrderRepository хранит заказы в памяти. Save проверяет версию так же,
// как PostgreSQL-реализация.
type OrderRepository struct {
	mu         sync.RWMutex
	orders     map[string]domain.Order
	byCustomer map[string][]string
	now        func() time.Time
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:     make(map[string]domain.Order),
		byCustomer: make(map[string][]string),
		now:        time.Now,
	}
}

func (r *OrderRepository) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Items) == 0 {
		return domain.Order{}, domain.ErrItemsRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	} else if _, taken := r.orders[order.ID]; taken {
		return domain.Order{}, domain.ErrOrderVersionConflict
	}

	order.CreatedAt = r.now().UTC()
	order.UpdatedAt = order.CreatedAt
	order.Version = 0

	r.orders[order.ID] = cloneOrder(order)
	r.byCustomer[order.CustomerID] = append(r.byCustomer[order.CustomerID], order.ID)
	return cloneOrder(order), nil
}

func (r *OrderRepository) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// ListByCustomer отдаёт заказы клиента от новых к старым; limit<=0 без ограничения.
func (r *OrderRepository) ListByCustomer(_ context.Context, customerID string, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	ids := r.byCustomer[customerID]
	result := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		result = append(result, cloneOrder(r.orders[id]))
	}
	r.mu.RUnlock()

	slices.SortFunc(result, func(a, b domain.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Save меняет статус и updated_at, если версия совпадает с сохранённой.
func (r *OrderRepository) Save(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	switch {
	case !ok:
		return domain.ErrOrderNotFound
	case stored.Version != order.Version:
		return domain.ErrOrderVersionConflict
	}

	stored.Status = order.Status
	stored.UpdatedAt = order.UpdatedAt
	stored.Version++
	r.orders[order.ID] = stored
	return nil
}

func cloneOrder(order domain.Order) domain.Order {
	order.Items = slices.Clone(order.Items)
	return order
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
