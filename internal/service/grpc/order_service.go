package grpcsvc

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	"github.com/vladislavdragonenkov/ordertracking/internal/service/orders"
	ordersv1 "github.com/vladislavdragonenkov/ordertracking/proto/orders/v1"
)

// ErrorInfoDomain — значение ErrorInfo.Domain в деталях статуса.
const ErrorInfoDomain = "orders.v1"

const reasonInternal = "INTERNAL"

// OrderService реализует gRPC API поверх оркестратора заказов.
type OrderService struct {
	ordersv1.UnimplementedOrderServiceServer

	orders orders.Service
	logger *log.Entry
	now    func() time.Time
}

// NewOrderService конструирует сервис с зависимостями.
func NewOrderService(service orders.Service, logger *log.Entry) *OrderService {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &OrderService{
		orders: service,
		logger: logger,
		now:    time.Now,
	}
}

// PlaceOrder размещает заказ.
func (s *OrderService) PlaceOrder(ctx context.Context, req *ordersv1.PlaceOrderRequest) (*ordersv1.PlaceOrderResponse, error) {
	const method = ordersv1.OrderService_PlaceOrder_FullMethodName

	items := make([]domain.ItemRequest, 0, len(req.GetItems()))
	for idx, item := range req.GetItems() {
		if item == nil {
			return nil, s.toStatus(method, domain.NewInvalidOrder(fmt.Sprintf("item[%d] is nil", idx)))
		}
		items = append(items, domain.ItemRequest{
			ProductID: item.GetProductId(),
			Quantity:  int(item.GetQuantity()),
		})
	}

	summary, err := s.orders.PlaceOrder(ctx, req.GetCustomerId(), items)
	if err != nil {
		return nil, s.toStatus(method, err)
	}
	return &ordersv1.PlaceOrderResponse{Order: toProtoOrder(summary)}, nil
}

// GetOrder возвращает заказ и таймлайн событий.
func (s *OrderService) GetOrder(ctx context.Context, req *ordersv1.GetOrderRequest) (*ordersv1.GetOrderResponse, error) {
	const method = ordersv1.OrderService_GetOrder_FullMethodName

	summary, err := s.orders.GetOrder(ctx, req.GetOrderId())
	if err != nil {
		return nil, s.toStatus(method, err)
	}

	return &ordersv1.GetOrderResponse{
		Order:    toProtoOrder(summary),
		Timeline: s.buildTimeline(ctx, summary.OrderID),
	}, nil
}

// ListOrders возвращает заказы клиента.
func (s *OrderService) ListOrders(ctx context.Context, req *ordersv1.ListOrdersRequest) (*ordersv1.ListOrdersResponse, error) {
	const method = ordersv1.OrderService_ListOrders_FullMethodName

	summaries, err := s.orders.ListCustomerOrders(ctx, req.GetCustomerId(), int(req.GetPageSize()))
	if err != nil {
		return nil, s.toStatus(method, err)
	}

	result := make([]*ordersv1.Order, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, toProtoOrder(summary))
	}
	return &ordersv1.ListOrdersResponse{Orders: result}, nil
}

// CancelOrder отменяет заказ и возвращает резервы.
func (s *OrderService) CancelOrder(ctx context.Context, req *ordersv1.CancelOrderRequest) (*ordersv1.CancelOrderResponse, error) {
	summary, err := s.orders.CancelOrder(ctx, req.GetOrderId())
	if err != nil {
		return nil, s.toStatus(ordersv1.OrderService_CancelOrder_FullMethodName, err)
	}
	return &ordersv1.CancelOrderResponse{Order: toProtoOrder(summary)}, nil
}

// CompleteOrder завершает заказ.
func (s *OrderService) CompleteOrder(ctx context.Context, req *ordersv1.CompleteOrderRequest) (*ordersv1.CompleteOrderResponse, error) {
	summary, err := s.orders.CompleteOrder(ctx, req.GetOrderId())
	if err != nil {
		return nil, s.toStatus(ordersv1.OrderService_CompleteOrder_FullMethodName, err)
	}
	return &ordersv1.CompleteOrderResponse{Order: toProtoOrder(summary)}, nil
}

func (s *OrderService) buildTimeline(ctx context.Context, orderID string) []*ordersv1.TimelineEvent {
	events, err := s.orders.GetOrderTimeline(ctx, orderID)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to list timeline events")
		return nil
	}
	result := make([]*ordersv1.TimelineEvent, 0, len(events))
	for _, event := range events {
		result = append(result, &ordersv1.TimelineEvent{
			Type:     event.Type,
			Reason:   event.Reason,
			UnixTime: event.Occurred.Unix(),
		})
	}
	return result
}

// toStatus рендерит ошибку в конверт и упаковывает его в gRPC-статус.
func (s *OrderService) toStatus(method string, err error) error {
	env := domain.EnvelopeFor(err, method, s.now().UTC())
	reason := reasonInternal
	if se, ok := domain.AsServiceError(err); ok {
		reason = string(se.Kind)
	}

	entry := s.logger.WithFields(log.Fields{
		"method": method,
		"status": env.Status,
		"reason": reason,
	})
	if env.Status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Info("request rejected")
	}

	st := status.New(codeForStatus(env.Status), env.Message)
	detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: ErrorInfoDomain,
		Metadata: map[string]string{
			"timestamp": env.Timestamp.Format(time.RFC3339Nano),
			"status":    strconv.Itoa(env.Status),
			"error":     env.Error,
			"message":   env.Message,
			"path":      env.Path,
		},
	})
	if detailErr != nil {
		s.logger.WithError(detailErr).Warn("failed to attach error details")
		return st.Err()
	}
	return detailed.Err()
}

// codeForStatus переводит HTTP-статус конверта в код gRPC.
func codeForStatus(httpStatus int) codes.Code {
	switch {
	case httpStatus == http.StatusBadRequest:
		return codes.InvalidArgument
	case httpStatus == http.StatusNotFound:
		return codes.NotFound
	case httpStatus == http.StatusConflict:
		return codes.FailedPrecondition
	case httpStatus == http.StatusServiceUnavailable:
		return codes.Unavailable
	case httpStatus >= 400 && httpStatus < 500:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// EnvelopeFromError восстанавливает конверт и причину из деталей gRPC-статуса.
func EnvelopeFromError(err error) (domain.ErrorEnvelope, string, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return domain.ErrorEnvelope{}, "", false
	}
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorInfoDomain {
			continue
		}
		meta := info.GetMetadata()
		env := domain.ErrorEnvelope{
			Error:   meta["error"],
			Message: meta["message"],
			Path:    meta["path"],
		}
		if code, err := strconv.Atoi(meta["status"]); err == nil {
			env.Status = code
		}
		if ts, err := domain.ParseEnvelopeTime(meta["timestamp"]); err == nil {
			env.Timestamp = ts
		}
		return env, info.GetReason(), true
	}
	return domain.ErrorEnvelope{}, "", false
}

func toProtoOrder(summary domain.OrderSummary) *ordersv1.Order {
	var createdAt string
	if !summary.CreatedAt.IsZero() {
		createdAt = summary.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return &ordersv1.Order{
		OrderId:        summary.OrderID,
		CustomerId:     summary.CustomerID,
		Status:         string(summary.Status),
		TotalAmount:    summary.TotalAmount.String(),
		TotalItems:     int32(summary.TotalItems), //nolint:gosec // total items are bounded by stock quantities.
		ProductSummary: summary.ProductSummary,
		CreatedAt:      createdAt,
	}
}
