package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidOrder — заказ не может быть принят или изменён (пустой состав, неверный переход).
	ErrInvalidOrder = errors.New("invalid order")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderConflict — недопустимый переход из терминального статуса.
	ErrOrderConflict = errors.New("order state conflict")
	// ErrProductIDNotFound — позиция ссылается на товар, которого нет в каталоге.
	ErrProductIDNotFound = errors.New("product id not found")
	// ErrInvalidQuantity — запрошенное количество меньше единицы.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInsufficientStock — остатка на складе не хватает.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductNotFound — каталог ответил структурированной ошибкой 404.
	ErrProductNotFound = errors.New("product not found")
	// ErrRemoteResource — каталог ответил иной структурированной ошибкой.
	ErrRemoteResource = errors.New("remote resource error")
	// ErrServiceUnavailable — зависимость недоступна (таймаут, сеть, открытый breaker).
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrCustomerRequired — не указан идентификатор клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// ErrItemsRequired — в заказе нет ни одной позиции.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// ErrItemQtyInvalid — количество в позиции меньше единицы.
	ErrItemQtyInvalid = errors.New("item quantity must be at least one")
	// ErrItemPriceInvalid — отрицательная цена позиции.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// ErrAmountMismatch — сумма заказа не совпадает с суммой позиций.
	ErrAmountMismatch = errors.New("order total does not match items sum")
	// ErrStatusUnknown — статус вне жизненного цикла заказа.
	ErrStatusUnknown = errors.New("unknown order status")
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = errors.New("order version conflict")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// ErrorKind — категория доменной ошибки, определяющая её конверт.
type ErrorKind string

const (
	KindInvalidOrder       ErrorKind = "INVALID_ORDER"
	KindOrderNotFound      ErrorKind = "ORDER_NOT_FOUND"
	KindOrderConflict      ErrorKind = "ORDER_CONFLICT"
	KindProductIDNotFound  ErrorKind = "PRODUCT_ID_NOT_FOUND"
	KindInvalidQuantity    ErrorKind = "INVALID_QUANTITY"
	KindInsufficientStock  ErrorKind = "INSUFFICIENT_STOCK"
	KindProductNotFound    ErrorKind = "PRODUCT_NOT_FOUND"
	KindRemoteResource     ErrorKind = "REMOTE_RESOURCE_ERROR"
	KindServiceUnavailable ErrorKind = "SERVICE_UNAVAILABLE"
)

// Сообщения, которые видит клиент.
const (
	MsgOrderNotFound             = "Order not found"
	MsgOrderItemsRequired        = "Order must contain at least one item"
	MsgCustomerRequired          = "Customer ID is required"
	MsgOrderAlreadyCancelled     = "Order already cancelled"
	MsgCompletedNotCancellable   = "Completed order cannot be cancelled"
	MsgCancelledNotCompletable   = "Cancelled order cannot be completed"
	MsgOrderAlreadyCompleted     = "Order already completed"
	MsgProductServiceUnavailable = "Product Service is currently unavailable"
	MsgOrderServiceUnavailable   = "Order service is temporarily unavailable"
	MsgInternalError             = "Something went wrong"
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidOrder:       ErrInvalidOrder,
	KindOrderNotFound:      ErrOrderNotFound,
	KindOrderConflict:      ErrOrderConflict,
	KindProductIDNotFound:  ErrProductIDNotFound,
	KindInvalidQuantity:    ErrInvalidQuantity,
	KindInsufficientStock:  ErrInsufficientStock,
	KindProductNotFound:    ErrProductNotFound,
	KindRemoteResource:     ErrRemoteResource,
	KindServiceUnavailable: ErrServiceUnavailable,
}

// ServiceError — типизированная ошибка доменной таксономии.
//
// Envelope заполнен, если ошибка пришла из каталога или была синтезирована шлюзом;
// Remote отмечает, что конверт получен от удалённой стороны, а не построен локально.
type ServiceError struct {
	Kind     ErrorKind
	Message  string
	Envelope *ErrorEnvelope
	Remote   bool
	Cause    error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

// Is сопоставляет ошибку с sentinel её категории. Ненайденный заказ и
// недопустимый переход также считаются ErrInvalidOrder.
func (e *ServiceError) Is(target error) bool {
	if sentinel, ok := kindSentinels[e.Kind]; ok && sentinel == target {
		return true
	}
	if target == ErrInvalidOrder {
		return e.Kind == KindOrderNotFound || e.Kind == KindOrderConflict
	}
	return false
}

// StatusCode возвращает HTTP-подобный статус категории.
func (e *ServiceError) StatusCode() int {
	if e.Envelope != nil && e.Envelope.Status != 0 {
		return e.Envelope.Status
	}
	switch e.Kind {
	case KindOrderNotFound, KindProductNotFound:
		return http.StatusNotFound
	case KindOrderConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindRemoteResource:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// NewInvalidOrder создаёт ошибку INVALID_ORDER.
func NewInvalidOrder(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidOrder, Message: message}
}

// NewOrderNotFound создаёт ошибку отсутствующего заказа.
func NewOrderNotFound(cause error) *ServiceError {
	return &ServiceError{Kind: KindOrderNotFound, Message: MsgOrderNotFound, Cause: cause}
}

// NewOrderConflict создаёт ошибку недопустимого перехода статуса.
func NewOrderConflict(message string) *ServiceError {
	return &ServiceError{Kind: KindOrderConflict, Message: message}
}

// NewProductIDNotFound создаёт ошибку неизвестного товара.
func NewProductIDNotFound(productID string, cause error) *ServiceError {
	return &ServiceError{
		Kind:    KindProductIDNotFound,
		Message: "Product not found! ID: " + productID,
		Cause:   cause,
	}
}

// NewInvalidQuantity создаёт ошибку неверного количества.
func NewInvalidQuantity(quantity int) *ServiceError {
	return &ServiceError{
		Kind:    KindInvalidQuantity,
		Message: fmt.Sprintf("Product Quantity Invalid, Quantity: %d", quantity),
	}
}

// NewInsufficientStock создаёт ошибку нехватки остатка.
func NewInsufficientStock(productName string) *ServiceError {
	return &ServiceError{
		Kind:    KindInsufficientStock,
		Message: "Insufficient stock for product: " + productName,
	}
}

// NewRemoteError оборачивает структурированный ответ каталога.
// Статус 404 даёт PRODUCT_NOT_FOUND, прочие — REMOTE_RESOURCE_ERROR.
func NewRemoteError(envelope ErrorEnvelope, cause error) *ServiceError {
	kind := KindRemoteResource
	if envelope.Status == http.StatusNotFound {
		kind = KindProductNotFound
	}
	env := envelope
	return &ServiceError{
		Kind:     kind,
		Message:  envelope.Message,
		Envelope: &env,
		Remote:   true,
		Cause:    cause,
	}
}

// NewServiceUnavailable создаёт ошибку недоступности с готовым конвертом.
func NewServiceUnavailable(envelope ErrorEnvelope, cause error) *ServiceError {
	env := envelope
	return &ServiceError{
		Kind:     KindServiceUnavailable,
		Message:  envelope.Message,
		Envelope: &env,
		Cause:    cause,
	}
}

// NewOrderServiceUnavailable — общая ошибка недоступности сервиса заказов.
// Конверт строится на границе по категории.
func NewOrderServiceUnavailable(cause error) *ServiceError {
	return &ServiceError{Kind: KindServiceUnavailable, Message: MsgOrderServiceUnavailable, Cause: cause}
}

// AsServiceError извлекает ServiceError из цепочки.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}
