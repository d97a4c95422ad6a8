package catalog

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

// MemoryCatalog — каталог в памяти процесса с семантикой HTTP API.
// Используется для локального запуска без внешнего каталога и в тестах.
type MemoryCatalog struct {
	mu       sync.Mutex
	products map[string]domain.ProductView
	now      func() time.Time
}

// NewMemoryCatalog создаёт каталог с начальным набором товаров.
func NewMemoryCatalog(products ...domain.ProductView) *MemoryCatalog {
	c := &MemoryCatalog{
		products: make(map[string]domain.ProductView, len(products)),
		now:      time.Now,
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

// Put добавляет или заменяет товар.
func (c *MemoryCatalog) Put(product domain.ProductView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = product
}

// Stock возвращает текущий остаток товара.
func (c *MemoryCatalog) Stock(productID string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	return p.StockQuantity, ok
}

// GetProduct возвращает товар или StructuredFailure 404.
func (c *MemoryCatalog) GetProduct(ctx context.Context, productID string) (domain.ProductView, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProductView{}, &UnavailableFailure{Operation: "fetch", Path: productPath(productID), Cause: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	if !ok {
		return domain.ProductView{}, c.failure("fetch", http.StatusNotFound, "Product not found with id: "+productID, productPath(productID))
	}
	return p, nil
}

// ReduceStock списывает остаток; отрицательный остаток запрещён.
func (c *MemoryCatalog) ReduceStock(ctx context.Context, productID string, quantity int) (domain.ProductView, error) {
	return c.adjust(ctx, "reserve", reduceStockPath, productID, -quantity, quantity)
}

// IncreaseStock возвращает остаток.
func (c *MemoryCatalog) IncreaseStock(ctx context.Context, productID string, quantity int) (domain.ProductView, error) {
	return c.adjust(ctx, "release", increaseStockPath, productID, quantity, quantity)
}

func (c *MemoryCatalog) adjust(ctx context.Context, operation, path, productID string, delta, quantity int) (domain.ProductView, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProductView{}, &UnavailableFailure{Operation: operation, Path: path, Cause: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[productID]
	if !ok {
		return domain.ProductView{}, c.failure(operation, http.StatusNotFound, "Product not found with id: "+productID, path)
	}
	if quantity <= 0 {
		return domain.ProductView{}, c.failure(operation, http.StatusBadRequest, "Quantity must be greater than zero", path)
	}
	if p.StockQuantity+delta < 0 {
		return domain.ProductView{}, c.failure(operation, http.StatusBadRequest, "Insufficient stock for product: "+p.Name, path)
	}
	p.StockQuantity += delta
	c.products[productID] = p
	return p, nil
}

func (c *MemoryCatalog) failure(operation string, status int, message, path string) *StructuredFailure {
	return &StructuredFailure{
		Operation:  operation,
		StatusCode: status,
		Envelope: domain.ErrorEnvelope{
			Timestamp: c.now().UTC(),
			Status:    status,
			Error:     http.StatusText(status),
			Message:   message,
			Path:      path,
		},
	}
}

var _ Transport = (*MemoryCatalog)(nil)
var _ Transport = (*HTTPClient)(nil)
