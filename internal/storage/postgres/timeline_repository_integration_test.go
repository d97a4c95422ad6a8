package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

func TestTimelineRepository_PostgresAppendList(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewTimelineRepository(store)
	ctx := context.Background()

	base := time.Now().UTC().Round(time.Microsecond)
	events := []domain.TimelineEvent{
		domain.NewTimelineEvent("order-1", domain.EventOrderPlaced, "", base),
		domain.NewTimelineEvent("order-1", domain.EventStockReleaseFailed, "product 1 x 2: catalog down", base.Add(time.Second)),
		domain.NewTimelineEvent("order-1", domain.EventOrderCancelled, "", base.Add(2*time.Second)),
		domain.NewTimelineEvent("order-2", domain.EventOrderPlaced, "", base),
	}
	for _, event := range events {
		if err := repo.Append(ctx, event); err != nil {
			t.Fatalf("append %s: %v", event.Type, err)
		}
	}

	got, err := repo.List(ctx, "order-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Type != domain.EventOrderPlaced || got[2].Type != domain.EventOrderCancelled {
		t.Fatalf("events must be ordered by occurrence: %+v", got)
	}
	if got[1].Reason == "" {
		t.Fatal("reason must be stored")
	}

	if err := repo.Append(ctx, domain.TimelineEvent{OrderID: "order-3", Type: domain.EventOrderPlaced}); err != nil {
		t.Fatalf("append without timestamp: %v", err)
	}
	got, err = repo.List(ctx, "order-3")
	if err != nil {
		t.Fatalf("list order-3: %v", err)
	}
	if len(got) != 1 || got[0].Occurred.IsZero() {
		t.Fatalf("missing timestamp must be filled: %+v", got)
	}
}
