package ordersv1

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeClientConn struct {
	invoke func(context.Context, string, any, any, ...grpc.CallOption) error
}

func (f *fakeClientConn) Invoke(ctx context.Context, method string, args any, reply any, opts ...grpc.CallOption) error {
	if f.invoke == nil {
		return errors.New("unexpected Invoke call")
	}
	return f.invoke(ctx, method, args, reply, opts...)
}

func (f *fakeClientConn) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("not implemented")
}

type grpcTestOrderService struct {
	UnimplementedOrderServiceServer
}

func (s *grpcTestOrderService) PlaceOrder(_ context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	return &PlaceOrderResponse{Order: &Order{OrderId: "order-" + req.GetCustomerId()}}, nil
}

func (s *grpcTestOrderService) GetOrder(_ context.Context, req *GetOrderRequest) (*GetOrderResponse, error) {
	return &GetOrderResponse{Order: &Order{OrderId: req.GetOrderId()}}, nil
}

func (s *grpcTestOrderService) ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error) {
	return &ListOrdersResponse{Orders: []*Order{{OrderId: "order-1"}}}, nil
}

func (s *grpcTestOrderService) CancelOrder(_ context.Context, req *CancelOrderRequest) (*CancelOrderResponse, error) {
	return &CancelOrderResponse{Order: &Order{OrderId: req.GetOrderId(), Status: "CANCELLED"}}, nil
}

func (s *grpcTestOrderService) CompleteOrder(_ context.Context, req *CompleteOrderRequest) (*CompleteOrderResponse, error) {
	return &CompleteOrderResponse{Order: &Order{OrderId: req.GetOrderId(), Status: "COMPLETED"}}, nil
}

func TestOrderServiceClientMethods(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		methods := map[string]int{}
		conn := &fakeClientConn{
			invoke: func(_ context.Context, method string, _ any, reply any, opts ...grpc.CallOption) error {
				methods[method]++
				for _, opt := range opts {
					if _, ok := opt.(grpc.ContentSubtypeCallOption); ok {
						t.Fatalf("client must use the default proto codec, got %#v", opt)
					}
				}
				switch out := reply.(type) {
				case *PlaceOrderResponse:
					out.Order = &Order{OrderId: "order-1"}
				case *GetOrderResponse:
					out.Order = &Order{OrderId: "order-1"}
				case *ListOrdersResponse:
					out.Orders = []*Order{{OrderId: "order-1"}}
				case *CancelOrderResponse:
					out.Order = &Order{Status: "CANCELLED"}
				case *CompleteOrderResponse:
					out.Order = &Order{Status: "COMPLETED"}
				default:
					t.Fatalf("unexpected reply type: %T", out)
				}
				return nil
			},
		}

		client := NewOrderServiceClient(conn)
		ctx := context.Background()
		if _, err := client.PlaceOrder(ctx, &PlaceOrderRequest{}); err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}
		if _, err := client.GetOrder(ctx, &GetOrderRequest{}); err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if _, err := client.ListOrders(ctx, &ListOrdersRequest{}); err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if _, err := client.CancelOrder(ctx, &CancelOrderRequest{}); err != nil {
			t.Fatalf("CancelOrder failed: %v", err)
		}
		resp, err := client.CompleteOrder(ctx, &CompleteOrderRequest{})
		if err != nil {
			t.Fatalf("CompleteOrder failed: %v", err)
		}
		if resp.GetOrder().GetStatus() != "COMPLETED" {
			t.Fatalf("unexpected status: %s", resp.GetOrder().GetStatus())
		}

		for _, method := range []string{
			OrderService_PlaceOrder_FullMethodName,
			OrderService_GetOrder_FullMethodName,
			OrderService_ListOrders_FullMethodName,
			OrderService_CancelOrder_FullMethodName,
			OrderService_CompleteOrder_FullMethodName,
		} {
			if methods[method] != 1 {
				t.Fatalf("expected method %s called exactly once, got %d", method, methods[method])
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		conn := &fakeClientConn{
			invoke: func(context.Context, string, any, any, ...grpc.CallOption) error {
				return status.Error(codes.Internal, "boom")
			},
		}
		client := NewOrderServiceClient(conn)
		ctx := context.Background()

		for name, call := range map[string]func() error{
			"PlaceOrder":    func() error { _, err := client.PlaceOrder(ctx, &PlaceOrderRequest{}); return err },
			"GetOrder":      func() error { _, err := client.GetOrder(ctx, &GetOrderRequest{}); return err },
			"ListOrders":    func() error { _, err := client.ListOrders(ctx, &ListOrdersRequest{}); return err },
			"CancelOrder":   func() error { _, err := client.CancelOrder(ctx, &CancelOrderRequest{}); return err },
			"CompleteOrder": func() error { _, err := client.CompleteOrder(ctx, &CompleteOrderRequest{}); return err },
		} {
			if err := call(); status.Code(err) != codes.Internal {
				t.Fatalf("%s expected Internal error, got %v", name, err)
			}
		}
	})
}

func TestUnimplementedOrderServiceServer(t *testing.T) {
	var srv UnimplementedOrderServiceServer
	ctx := context.Background()

	for name, call := range map[string]func() error{
		"PlaceOrder":    func() error { _, err := srv.PlaceOrder(ctx, &PlaceOrderRequest{}); return err },
		"GetOrder":      func() error { _, err := srv.GetOrder(ctx, &GetOrderRequest{}); return err },
		"ListOrders":    func() error { _, err := srv.ListOrders(ctx, &ListOrdersRequest{}); return err },
		"CancelOrder":   func() error { _, err := srv.CancelOrder(ctx, &CancelOrderRequest{}); return err },
		"CompleteOrder": func() error { _, err := srv.CompleteOrder(ctx, &CompleteOrderRequest{}); return err },
	} {
		if err := call(); status.Code(err) != codes.Unimplemented {
			t.Fatalf("%s expected Unimplemented error, got %v", name, err)
		}
	}

	srv.mustEmbedUnimplementedOrderServiceServer()
}

type handlerCase struct {
	name   string
	method string
	call   func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error)
}

func TestServiceHandlers(t *testing.T) {
	srv := &grpcTestOrderService{}
	ctx := context.Background()

	cases := []handlerCase{
		{name: "PlaceOrder", method: OrderService_PlaceOrder_FullMethodName, call: _OrderService_PlaceOrder_Handler},
		{name: "GetOrder", method: OrderService_GetOrder_FullMethodName, call: _OrderService_GetOrder_Handler},
		{name: "ListOrders", method: OrderService_ListOrders_FullMethodName, call: _OrderService_ListOrders_Handler},
		{name: "CancelOrder", method: OrderService_CancelOrder_FullMethodName, call: _OrderService_CancelOrder_Handler},
		{name: "CompleteOrder", method: OrderService_CompleteOrder_FullMethodName, call: _OrderService_CompleteOrder_Handler},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.call(srv, ctx, func(interface{}) error { return errors.New("decode failed") }, nil); err == nil {
				t.Fatalf("expected decode error")
			}

			resp, err := tc.call(srv, ctx, decodeFor(tc.name), nil)
			if err != nil {
				t.Fatalf("handler without interceptor failed: %v", err)
			}
			if resp == nil {
				t.Fatalf("expected non-nil response")
			}

			interceptorCalled := false
			resp, err = tc.call(srv, ctx, decodeFor(tc.name), func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
				interceptorCalled = true
				if info.FullMethod != tc.method {
					t.Fatalf("unexpected full method: got %s want %s", info.FullMethod, tc.method)
				}
				return handler(ctx, req)
			})
			if err != nil {
				t.Fatalf("handler with interceptor failed: %v", err)
			}
			if !interceptorCalled {
				t.Fatalf("interceptor was not called")
			}
			if resp == nil {
				t.Fatalf("expected non-nil response")
			}
		})
	}
}

func TestRegisterAndServiceDescriptor(t *testing.T) {
	g := grpc.NewServer()
	RegisterOrderServiceServer(g, &grpcTestOrderService{})

	if got, want := OrderService_ServiceDesc.ServiceName, "orders.v1.OrderService"; got != want {
		t.Fatalf("unexpected service name: got %s want %s", got, want)
	}
	if len(OrderService_ServiceDesc.Methods) != 5 {
		t.Fatalf("expected 5 method descriptors, got %d", len(OrderService_ServiceDesc.Methods))
	}
	if _, ok := g.GetServiceInfo()["orders.v1.OrderService"]; !ok {
		t.Fatalf("service is not registered")
	}
}

func TestNilGetters(t *testing.T) {
	var order *Order
	if order.GetOrderId() != "" || order.GetTotalItems() != 0 || order.GetProductSummary() != nil {
		t.Fatalf("nil Order getters must return zero values")
	}
	var resp *GetOrderResponse
	if resp.GetOrder() != nil || resp.GetTimeline() != nil {
		t.Fatalf("nil GetOrderResponse getters must return zero values")
	}
	var req *PlaceOrderRequest
	if req.GetCustomerId() != "" || req.GetItems() != nil {
		t.Fatalf("nil PlaceOrderRequest getters must return zero values")
	}
}

func decodeFor(name string) func(interface{}) error {
	return func(v interface{}) error {
		switch req := v.(type) {
		case *PlaceOrderRequest:
			req.CustomerId = "cust-1"
			req.Items = []*OrderItem{{ProductId: "1", Quantity: 2}}
		case *GetOrderRequest:
			req.OrderId = "order-1"
		case *ListOrdersRequest:
			req.CustomerId = "cust-1"
		case *CancelOrderRequest:
			req.OrderId = "order-1"
		case *CompleteOrderRequest:
			req.OrderId = "order-1"
		default:
			return status.Errorf(codes.Internal, "unexpected request type for %s: %T", name, req)
		}
		return nil
	}
}
