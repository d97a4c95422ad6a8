package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

// helper для создания базового заказа с двумя позициями.
func makeOrder() domain.Order {
	order := domain.NewOrder("customer-1", []domain.OrderLine{
		{ProductID: "1", ProductName: "Laptop", Price: decimal.NewFromInt(50000), Quantity: 2},
		{ProductID: "2", ProductName: "Mouse", Price: decimal.RequireFromString("19.99"), Quantity: 3},
	})
	order.ID = "order-1"
	order.CreatedAt = time.Now().UTC()
	return order
}

func TestNewOrder_TotalsAndStatus(t *testing.T) {
	order := makeOrder()

	if order.Status != domain.OrderStatusCreated {
		t.Fatalf("expected CREATED, got %s", order.Status)
	}
	want := decimal.RequireFromString("100059.97")
	if !order.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, order.TotalAmount)
	}
	if order.TotalItems() != 5 {
		t.Fatalf("expected 5 items, got %d", order.TotalItems())
	}
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestNewOrder_CopiesLines(t *testing.T) {
	lines := []domain.OrderLine{{ProductID: "1", ProductName: "Laptop", Price: decimal.NewFromInt(10), Quantity: 1}}
	order := domain.NewOrder("customer-1", lines)

	lines[0].Quantity = 99
	if order.Items[0].Quantity != 1 {
		t.Fatalf("order must own its lines, got quantity %d", order.Items[0].Quantity)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
		want error
	}{
		{
			name: "no customer",
			mut:  func(o *domain.Order) { o.CustomerID = "" },
			want: domain.ErrCustomerRequired,
		},
		{
			name: "no items",
			mut:  func(o *domain.Order) { o.Items = nil },
			want: domain.ErrItemsRequired,
		},
		{
			name: "qty invalid",
			mut:  func(o *domain.Order) { o.Items[0].Quantity = 0 },
			want: domain.ErrItemQtyInvalid,
		},
		{
			name: "price invalid",
			mut:  func(o *domain.Order) { o.Items[0].Price = decimal.NewFromInt(-5) },
			want: domain.ErrItemPriceInvalid,
		},
		{
			name: "amount mismatch",
			mut:  func(o *domain.Order) { o.TotalAmount = decimal.NewFromInt(999) },
			want: domain.ErrAmountMismatch,
		},
		{
			name: "unknown status",
			mut:  func(o *domain.Order) { o.Status = "PAID" },
			want: domain.ErrStatusUnknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			errs := order.ValidateInvariants()
			found := false
			for _, err := range errs {
				if errors.Is(err, tc.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %v among %v", tc.want, errs)
			}
		})
	}
}

func TestOrderTransitions(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	cases := []struct {
		name    string
		from    domain.OrderStatus
		apply   func(o *domain.Order) error
		want    domain.OrderStatus
		wantMsg string
	}{
		{name: "cancel created", from: domain.OrderStatusCreated, apply: func(o *domain.Order) error { return o.Cancel(now) }, want: domain.OrderStatusCancelled},
		{name: "complete created", from: domain.OrderStatusCreated, apply: func(o *domain.Order) error { return o.Complete(now) }, want: domain.OrderStatusCompleted},
		{name: "cancel cancelled", from: domain.OrderStatusCancelled, apply: func(o *domain.Order) error { return o.Cancel(now) }, wantMsg: domain.MsgOrderAlreadyCancelled},
		{name: "cancel completed", from: domain.OrderStatusCompleted, apply: func(o *domain.Order) error { return o.Cancel(now) }, wantMsg: domain.MsgCompletedNotCancellable},
		{name: "complete cancelled", from: domain.OrderStatusCancelled, apply: func(o *domain.Order) error { return o.Complete(now) }, wantMsg: domain.MsgCancelledNotCompletable},
		{name: "complete completed", from: domain.OrderStatusCompleted, apply: func(o *domain.Order) error { return o.Complete(now) }, wantMsg: domain.MsgOrderAlreadyCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			order.Status = tc.from

			err := tc.apply(&order)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if order.Status != tc.want || !order.UpdatedAt.Equal(now) {
					t.Fatalf("unexpected state: %s at %s", order.Status, order.UpdatedAt)
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidOrder) || !errors.Is(err, domain.ErrOrderConflict) {
				t.Fatalf("expected invalid-order conflict, got %v", err)
			}
			se, _ := domain.AsServiceError(err)
			if se.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, se.Message)
			}
			if order.Status != tc.from {
				t.Fatalf("status must not change on rejected transition, got %s", order.Status)
			}
		})
	}
}

func TestOrderSummary(t *testing.T) {
	order := makeOrder()
	summary := order.Summary()

	if summary.OrderID != "order-1" || summary.Status != domain.OrderStatusCreated {
		t.Fatalf("unexpected summary header: %+v", summary)
	}
	if summary.TotalItems != 5 {
		t.Fatalf("expected total items 5, got %d", summary.TotalItems)
	}
	want := []string{"Laptop x 2", "Mouse x 3"}
	if len(summary.ProductSummary) != len(want) {
		t.Fatalf("unexpected product summary: %v", summary.ProductSummary)
	}
	for i := range want {
		if summary.ProductSummary[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], summary.ProductSummary[i])
		}
	}
}
