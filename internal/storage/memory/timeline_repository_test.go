package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	"github.com/vladislavdragonenkov/ordertracking/internal/storage/memory"
)

func TestTimelineRepository_AppendList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTimelineRepository()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	events := []domain.TimelineEvent{
		domain.NewTimelineEvent("order-1", domain.EventOrderCancelled, "", base.Add(2*time.Second)),
		domain.NewTimelineEvent("order-1", domain.EventOrderPlaced, "", base),
		domain.NewTimelineEvent("order-2", domain.EventOrderPlaced, "", base),
	}
	for _, e := range events {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	list, err := repo.List(ctx, "order-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 events, got %d", len(list))
	}
	if list[0].Type != domain.EventOrderPlaced || list[1].Type != domain.EventOrderCancelled {
		t.Fatalf("expected chronological order, got %+v", list)
	}

	empty, _ := repo.List(ctx, "missing")
	if len(empty) != 0 {
		t.Fatalf("expected no events, got %d", len(empty))
	}
}

func TestTimelineRepository_SameInstantKeepsAppendOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTimelineRepository()
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, eventType := range []string{domain.EventOrderCancelled, domain.EventStockReleaseFailed, domain.EventPlacementCompensated} {
		if err := repo.Append(ctx, domain.NewTimelineEvent("order-1", eventType, "", at)); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	list, _ := repo.List(ctx, "order-1")
	if len(list) != 3 || list[0].Type != domain.EventOrderCancelled || list[2].Type != domain.EventPlacementCompensated {
		t.Fatalf("events with equal time must keep append order: %+v", list)
	}

	list[0].Reason = "mutated"
	again, _ := repo.List(ctx, "order-1")
	if again[0].Reason != "" {
		t.Fatal("List must return a copy")
	}
}
