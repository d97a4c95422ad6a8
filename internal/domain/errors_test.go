package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestIsVersionConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "version conflict error", err: ErrOrderVersionConflict, want: true},
		{name: "wrapped version conflict error", err: errors.Join(ErrOrderVersionConflict, errors.New("additional context")), want: true},
		{name: "other error", err: ErrOrderNotFound, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVersionConflict(tt.err); got != tt.want {
				t.Errorf("IsVersionConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServiceErrorIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		matches  []error
		excludes []error
	}{
		{
			name:     "invalid order",
			err:      NewInvalidOrder(MsgOrderItemsRequired),
			matches:  []error{ErrInvalidOrder},
			excludes: []error{ErrOrderNotFound, ErrOrderConflict},
		},
		{
			name:    "order not found is also invalid order",
			err:     NewOrderNotFound(ErrOrderNotFound),
			matches: []error{ErrInvalidOrder, ErrOrderNotFound},
		},
		{
			name:     "conflict is also invalid order",
			err:      NewOrderConflict(MsgOrderAlreadyCancelled),
			matches:  []error{ErrInvalidOrder, ErrOrderConflict},
			excludes: []error{ErrOrderNotFound},
		},
		{
			name:     "wrapped stock error",
			err:      fmt.Errorf("reserve: %w", NewInsufficientStock("Laptop")),
			matches:  []error{ErrInsufficientStock},
			excludes: []error{ErrInvalidOrder},
		},
		{
			name:    "remote 404",
			err:     NewRemoteError(ErrorEnvelope{Status: http.StatusNotFound, Message: "nope"}, nil),
			matches: []error{ErrProductNotFound},
		},
		{
			name:     "remote 409",
			err:      NewRemoteError(ErrorEnvelope{Status: http.StatusConflict, Message: "stock"}, nil),
			matches:  []error{ErrRemoteResource},
			excludes: []error{ErrProductNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, target := range tt.matches {
				if !errors.Is(tt.err, target) {
					t.Errorf("expected %v to match %v", tt.err, target)
				}
			}
			for _, target := range tt.excludes {
				if errors.Is(tt.err, target) {
					t.Errorf("expected %v not to match %v", tt.err, target)
				}
			}
		})
	}
}

func TestEnvelopeFor(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	remoteTS := time.Date(2025, 2, 28, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		err  error
		want ErrorEnvelope
	}{
		{
			name: "synthesized client error",
			err:  NewInvalidQuantity(0),
			want: ErrorEnvelope{Timestamp: now, Status: 400, Error: "Bad Request", Message: "Product Quantity Invalid, Quantity: 0", Path: "/orders"},
		},
		{
			name: "order not found",
			err:  NewOrderNotFound(nil),
			want: ErrorEnvelope{Timestamp: now, Status: 404, Error: "Not Found", Message: MsgOrderNotFound, Path: "/orders"},
		},
		{
			name: "conflict",
			err:  NewOrderConflict(MsgOrderAlreadyCompleted),
			want: ErrorEnvelope{Timestamp: now, Status: 409, Error: "Conflict", Message: MsgOrderAlreadyCompleted, Path: "/orders"},
		},
		{
			name: "remote envelope passes through",
			err:  NewRemoteError(ErrorEnvelope{Timestamp: remoteTS, Status: 404, Error: "NOT_FOUND", Message: "Product not found with id: 7", Path: "/products/7"}, nil),
			want: ErrorEnvelope{Timestamp: remoteTS, Status: 404, Error: "NOT_FOUND", Message: "Product not found with id: 7", Path: "/products/7"},
		},
		{
			name: "remote envelope without path gets caller path",
			err:  NewRemoteError(ErrorEnvelope{Timestamp: remoteTS, Status: 422, Error: "Unprocessable", Message: "bad"}, nil),
			want: ErrorEnvelope{Timestamp: remoteTS, Status: 422, Error: "Unprocessable", Message: "bad", Path: "/orders"},
		},
		{
			name: "unknown error hides details",
			err:  errors.New("pq: connection reset"),
			want: ErrorEnvelope{Timestamp: now, Status: 500, Error: "Internal Server Error", Message: MsgInternalError, Path: "/orders"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnvelopeFor(tt.err, "/orders", now)
			if got != tt.want {
				t.Fatalf("EnvelopeFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestErrorEnvelopeJSON(t *testing.T) {
	t.Run("local date time without zone", func(t *testing.T) {
		raw := `{"timestamp":"2025-02-28T09:30:00.1234567","status":404,"error":"NOT_FOUND","message":"missing","path":"/products/7"}`
		var env ErrorEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		want := time.Date(2025, 2, 28, 9, 30, 0, 123456700, time.UTC)
		if !env.Timestamp.Equal(want) {
			t.Fatalf("expected %s, got %s", want, env.Timestamp)
		}
		if env.Status != 404 || env.Path != "/products/7" {
			t.Fatalf("unexpected envelope: %+v", env)
		}
	})

	t.Run("rfc3339 round trip", func(t *testing.T) {
		in := ErrorEnvelope{Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Status: 503, Error: "Service Unavailable", Message: "down", Path: "/x"}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out ErrorEnvelope
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out != in {
			t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
		}
	})

	t.Run("bad timestamp", func(t *testing.T) {
		var env ErrorEnvelope
		if err := json.Unmarshal([]byte(`{"timestamp":"yesterday"}`), &env); err == nil {
			t.Fatal("expected error for unsupported timestamp")
		}
	})
}
