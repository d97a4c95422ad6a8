package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusCreated — заказ принят, товары зарезервированы в каталоге.
	OrderStatusCreated OrderStatus = "CREATED"
	// OrderStatusCancelled — заказ отменён, резервы возвращены (терминальный).
	OrderStatusCancelled OrderStatus = "CANCELLED"
	// OrderStatusCompleted — заказ исполнен (терминальный).
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// IsTerminal сообщает, что из статуса нет переходов.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusCompleted
}

// Valid проверяет, что статус входит в жизненный цикл.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusCancelled, OrderStatusCompleted:
		return true
	default:
		return false
	}
}

// ItemRequest — позиция во входящем запросе на размещение.
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// OrderLine — позиция заказа со снимком названия и цены на момент размещения.
type OrderLine struct {
	ProductID   string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// Subtotal возвращает price × quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order агрегирует состояние заказа и владеет его позициями.
type Order struct {
	ID          string
	CustomerID  string
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Items       []OrderLine
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder собирает заказ в статусе CREATED из провалидированных позиций.
// ID и CreatedAt проставляет репозиторий при первом сохранении.
func NewOrder(customerID string, lines []OrderLine) Order {
	items := make([]OrderLine, len(lines))
	copy(items, lines)
	return Order{
		CustomerID:  customerID,
		Status:      OrderStatusCreated,
		TotalAmount: SumLines(items),
		Items:       items,
	}
}

// SumLines считает сумму позиций.
func SumLines(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// TotalItems возвращает суммарное количество единиц товара.
func (o Order) TotalItems() int {
	var n int
	for _, line := range o.Items {
		n += line.Quantity
	}
	return n
}

// Cancel переводит заказ в CANCELLED.
func (o *Order) Cancel(now time.Time) error {
	switch o.Status {
	case OrderStatusCancelled:
		return NewOrderConflict(MsgOrderAlreadyCancelled)
	case OrderStatusCompleted:
		return NewOrderConflict(MsgCompletedNotCancellable)
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = now
	return nil
}

// Complete переводит заказ в COMPLETED.
func (o *Order) Complete(now time.Time) error {
	switch o.Status {
	case OrderStatusCancelled:
		return NewOrderConflict(MsgCancelledNotCompletable)
	case OrderStatusCompleted:
		return NewOrderConflict(MsgOrderAlreadyCompleted)
	}
	o.Status = OrderStatusCompleted
	o.UpdatedAt = now
	return nil
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrStatusUnknown)
	}

	for _, item := range o.Items {
		if item.Quantity < 1 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.Price.IsNegative() {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}
	if !SumLines(o.Items).Equal(o.TotalAmount) {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}

// OrderSummary — представление заказа для клиента.
type OrderSummary struct {
	OrderID        string
	CustomerID     string
	Status         OrderStatus
	TotalAmount    decimal.Decimal
	TotalItems     int
	ProductSummary []string
	CreatedAt      time.Time
}

// Summary строит клиентское представление заказа.
func (o Order) Summary() OrderSummary {
	products := make([]string, 0, len(o.Items))
	for _, line := range o.Items {
		products = append(products, fmt.Sprintf("%s x %d", line.ProductName, line.Quantity))
	}
	return OrderSummary{
		OrderID:        o.ID,
		CustomerID:     o.CustomerID,
		Status:         o.Status,
		TotalAmount:    o.TotalAmount,
		TotalItems:     o.TotalItems(),
		ProductSummary: products,
		CreatedAt:      o.CreatedAt,
	}
}

// ProductView — текущее состояние товара в каталоге. Не кэшируется.
type ProductView struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	StockQuantity int
	Active        bool
}
