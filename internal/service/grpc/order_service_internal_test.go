package grpcsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	ordersv1 "github.com/vladislavdragonenkov/ordertracking/proto/orders/v1"
)

type stubOrders struct {
	placeFn    func(string, []domain.ItemRequest) (domain.OrderSummary, error)
	getFn      func(string) (domain.OrderSummary, error)
	timelineFn func(string) ([]domain.TimelineEvent, error)
}

func (s *stubOrders) PlaceOrder(_ context.Context, customerID string, items []domain.ItemRequest) (domain.OrderSummary, error) {
	if s.placeFn != nil {
		return s.placeFn(customerID, items)
	}
	return domain.OrderSummary{}, errors.New("not implemented")
}

func (s *stubOrders) GetOrder(_ context.Context, orderID string) (domain.OrderSummary, error) {
	if s.getFn != nil {
		return s.getFn(orderID)
	}
	return domain.OrderSummary{}, domain.NewOrderNotFound(nil)
}

func (s *stubOrders) ListCustomerOrders(context.Context, string, int) ([]domain.OrderSummary, error) {
	return nil, nil
}

func (s *stubOrders) CancelOrder(context.Context, string) (domain.OrderSummary, error) {
	return domain.OrderSummary{}, errors.New("not implemented")
}

func (s *stubOrders) CompleteOrder(context.Context, string) (domain.OrderSummary, error) {
	return domain.OrderSummary{}, errors.New("not implemented")
}

func (s *stubOrders) GetOrderTimeline(_ context.Context, orderID string) ([]domain.TimelineEvent, error) {
	if s.timelineFn != nil {
		return s.timelineFn(orderID)
	}
	return nil, nil
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   codes.Code
	}{
		{400, codes.InvalidArgument},
		{404, codes.NotFound},
		{409, codes.FailedPrecondition},
		{422, codes.FailedPrecondition},
		{503, codes.Unavailable},
		{500, codes.Internal},
		{502, codes.Internal},
		{0, codes.Internal},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, codeForStatus(tt.status), "status %d", tt.status)
	}
}

func TestToStatus_UnknownErrorHidesDetails(t *testing.T) {
	svc := NewOrderService(&stubOrders{}, nil)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	err := svc.toStatus(ordersv1.OrderService_GetOrder_FullMethodName, errors.New("pq: password authentication failed"))
	require.Equal(t, codes.Internal, status.Code(err))

	st, _ := status.FromError(err)
	require.Equal(t, domain.MsgInternalError, st.Message())
	require.Len(t, st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok)
	require.Equal(t, reasonInternal, info.GetReason())
	require.Equal(t, ErrorInfoDomain, info.GetDomain())
	require.Equal(t, map[string]string{
		"timestamp": "2024-05-01T10:00:00Z",
		"status":    "500",
		"error":     "Internal Server Error",
		"message":   domain.MsgInternalError,
		"path":      ordersv1.OrderService_GetOrder_FullMethodName,
	}, info.GetMetadata())

	env, reason, ok := EnvelopeFromError(err)
	require.True(t, ok)
	require.Equal(t, reasonInternal, reason)
	require.True(t, env.Timestamp.Equal(fixed))
}

func TestToStatus_RemoteEnvelopePassesThrough(t *testing.T) {
	svc := NewOrderService(&stubOrders{}, nil)
	remote := domain.NewRemoteError(domain.ErrorEnvelope{
		Timestamp: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Status:    422,
		Error:     "Unprocessable Entity",
		Message:   "Stock locked",
		Path:      "/products/reduceStock",
	}, nil)

	err := svc.toStatus(ordersv1.OrderService_PlaceOrder_FullMethodName, remote)
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	env, reason, ok := EnvelopeFromError(err)
	require.True(t, ok)
	require.Equal(t, string(domain.KindRemoteResource), reason)
	require.Equal(t, 422, env.Status)
	require.Equal(t, "Stock locked", env.Message)
	require.Equal(t, "/products/reduceStock", env.Path)
}

func TestEnvelopeFromError_WithoutDetails(t *testing.T) {
	_, _, ok := EnvelopeFromError(status.Error(codes.Internal, "boom"))
	require.False(t, ok)

	_, _, ok = EnvelopeFromError(errors.New("plain"))
	require.False(t, ok)
}

func TestGetOrder_TimelineFailureIsNotFatal(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := NewOrderService(&stubOrders{
		getFn: func(id string) (domain.OrderSummary, error) {
			return domain.OrderSummary{
				OrderID:     id,
				CustomerID:  "customer-1",
				Status:      domain.OrderStatusCreated,
				TotalAmount: decimal.RequireFromString("10.50"),
				TotalItems:  1,
				CreatedAt:   created,
			}, nil
		},
		timelineFn: func(string) ([]domain.TimelineEvent, error) {
			return nil, errors.New("timeline down")
		},
	}, nil)

	resp, err := svc.GetOrder(context.Background(), &ordersv1.GetOrderRequest{OrderId: "order-1"})
	require.NoError(t, err)
	require.Equal(t, "order-1", resp.GetOrder().GetOrderId())
	require.Equal(t, "10.5", resp.GetOrder().GetTotalAmount())
	require.Equal(t, "2024-05-01T10:00:00Z", resp.GetOrder().CreatedAt)
	require.Empty(t, resp.GetTimeline())
}

func TestPlaceOrder_MapsItems(t *testing.T) {
	var gotItems []domain.ItemRequest
	svc := NewOrderService(&stubOrders{
		placeFn: func(customerID string, items []domain.ItemRequest) (domain.OrderSummary, error) {
			gotItems = items
			return domain.OrderSummary{OrderID: "order-1", CustomerID: customerID, Status: domain.OrderStatusCreated}, nil
		},
	}, nil)

	_, err := svc.PlaceOrder(context.Background(), &ordersv1.PlaceOrderRequest{
		CustomerId: "customer-1",
		Items: []*ordersv1.OrderItem{
			{ProductId: "1", Quantity: 2},
			{ProductId: "sku-2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []domain.ItemRequest{{ProductID: "1", Quantity: 2}, {ProductID: "sku-2", Quantity: 1}}, gotItems)
}

func TestPlaceOrder_NilItemRejectedBeforeOrchestrator(t *testing.T) {
	called := false
	svc := NewOrderService(&stubOrders{
		placeFn: func(string, []domain.ItemRequest) (domain.OrderSummary, error) {
			called = true
			return domain.OrderSummary{}, nil
		},
	}, nil)

	_, err := svc.PlaceOrder(context.Background(), &ordersv1.PlaceOrderRequest{
		CustomerId: "customer-1",
		Items:      []*ordersv1.OrderItem{{ProductId: "1", Quantity: 1}, nil},
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	require.False(t, called)

	env, _, ok := EnvelopeFromError(err)
	require.True(t, ok)
	require.Equal(t, "item[1] is nil", env.Message)
}
