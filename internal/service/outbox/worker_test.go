package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	"github.com/vladislavdragonenkov/ordertracking/internal/metrics"
	"github.com/vladislavdragonenkov/ordertracking/internal/storage/memory"
)

// recordingPublisher отдаёт ошибки из script по очереди, затем fallback.
type recordingPublisher struct {
	mu       sync.Mutex
	script   []error
	fallback error
	attempts int
	sent     []domain.OutboxMessage
}

func (p *recordingPublisher) Publish(msg domain.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.attempts++
	err := p.fallback
	if len(p.script) > 0 {
		err, p.script = p.script[0], p.script[1:]
	}
	if err == nil {
		p.sent = append(p.sent, msg)
	}
	return err
}

func (p *recordingPublisher) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}

func (p *recordingPublisher) delivered() []domain.OutboxMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.OutboxMessage(nil), p.sent...)
}

func seedOutbox(t *testing.T, repo domain.OutboxRepository, eventType string, orderIDs ...string) []domain.OutboxMessage {
	t.Helper()
	out := make([]domain.OutboxMessage, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		msg, err := repo.Enqueue(context.Background(), domain.OutboxMessage{
			AggregateType: "order",
			AggregateID:   orderID,
			EventType:     eventType,
			Payload:       []byte(`{"order_id":"` + orderID + `"}`),
		})
		require.NoError(t, err)
		out = append(out, msg)
	}
	return out
}

func TestWorker_DeliversAndRecordsMetrics(t *testing.T) {
	t.Parallel()

	repo := memory.NewOutboxRepository()
	seeded := seedOutbox(t, repo, domain.EventOrderPlaced, "order-1", "order-2")
	publisher := &recordingPublisher{}
	registry := prometheus.NewRegistry()

	worker := NewWorker(repo, publisher,
		WithRetryBaseDelay(0),
		WithMetrics(metrics.NewOutboxMetricsWithRegisterer(registry)),
	)

	require.Equal(t, 2, worker.ProcessOnce(context.Background()))
	require.Empty(t, repo.AllPending())

	sent := publisher.delivered()
	require.Len(t, sent, 2)
	require.ElementsMatch(t, []string{seeded[0].ID, seeded[1].ID}, []string{sent[0].ID, sent[1].ID})

	count, err := testutil.GatherAndCount(registry, "orders_outbox_publish_attempts_total")
	require.NoError(t, err)
	require.Equal(t, 1, count, "only the sent series must exist")
}

func TestWorker_RetriesThenDelivers(t *testing.T) {
	t.Parallel()

	repo := memory.NewOutboxRepository()
	seedOutbox(t, repo, domain.EventOrderCompleted, "order-3")
	publisher := &recordingPublisher{script: []error{errors.New("leader not available"), errors.New("timeout")}}

	worker := NewWorker(repo, publisher, WithRetryBaseDelay(time.Millisecond), WithMaxAttempts(3))

	require.Equal(t, 1, worker.ProcessOnce(context.Background()))
	require.Equal(t, 3, publisher.calls())
	require.Empty(t, repo.AllPending())
}

func TestWorker_ExhaustedRecordGoesToDeadLetters(t *testing.T) {
	t.Parallel()

	repo := memory.NewOutboxRepository()
	msg := seedOutbox(t, repo, domain.EventOrderCancelled, "order-4")[0]
	publisher := &recordingPublisher{fallback: errors.New("broker down")}
	deadLetters := &recordingPublisher{}
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	worker := NewWorker(repo, publisher,
		WithDLQPublisher(deadLetters),
		WithRetryBaseDelay(0),
		WithMaxAttempts(2),
		WithClock(func() time.Time { return at }),
	)

	require.Zero(t, worker.ProcessOnce(context.Background()))
	require.Equal(t, 2, publisher.calls())
	require.Empty(t, repo.AllPending(), "failed record must leave the backlog")

	letters := deadLetters.delivered()
	require.Len(t, letters, 1)
	require.Equal(t, msg.ID, letters[0].ID)
	require.Equal(t, "order-4", letters[0].AggregateID)
	require.Equal(t, domain.EventOrderCancelled, letters[0].EventType)

	var letter domain.DeadLetter
	require.NoError(t, json.Unmarshal(letters[0].Payload, &letter))
	require.Equal(t, msg.ID, letter.OutboxID)
	require.Contains(t, letter.PublishError, "after 2 attempts")
	require.Contains(t, letter.PublishError, "broker down")
	require.JSONEq(t, `{"order_id":"order-4"}`, string(letter.Payload))
	require.True(t, letter.DLQPublishedAt.Equal(at))
}

func TestWorker_DeadLetterFailureStillMarksFailed(t *testing.T) {
	t.Parallel()

	repo := memory.NewOutboxRepository()
	seedOutbox(t, repo, domain.EventOrderPlaced, "order-5")
	worker := NewWorker(repo, &recordingPublisher{fallback: errors.New("down")},
		WithDLQPublisher(&recordingPublisher{fallback: errors.New("dlq down")}),
		WithRetryBaseDelay(0),
		WithMaxAttempts(1),
	)

	require.Zero(t, worker.ProcessOnce(context.Background()))
	require.Empty(t, repo.AllPending())

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.PendingCount)
}

func TestWorker_BatchSizeBoundsOneCycle(t *testing.T) {
	t.Parallel()

	repo := memory.NewOutboxRepository()
	seedOutbox(t, repo, domain.EventOrderPlaced, "a", "b", "c")
	worker := NewWorker(repo, &recordingPublisher{}, WithBatchSize(2))

	require.Equal(t, 2, worker.ProcessOnce(context.Background()))
	require.Len(t, repo.AllPending(), 1)
	require.Equal(t, 1, worker.ProcessOnce(context.Background()))
	require.Empty(t, repo.AllPending())
}

func TestWorker_CancelledContextLeavesRecordsPending(t *testing.T) {
	t.Parallel()

	repo := memory.NewOutboxRepository()
	seedOutbox(t, repo, domain.EventOrderPlaced, "order-6")
	publisher := &recordingPublisher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Zero(t, NewWorker(repo, publisher).ProcessOnce(ctx))
	require.Zero(t, publisher.calls())
	require.Len(t, repo.AllPending(), 1)
}

func TestWorker_CancelDuringBackoffKeepsRecordPending(t *testing.T) {
	t.Parallel()

	repo := memory.NewOutboxRepository()
	seedOutbox(t, repo, domain.EventOrderPlaced, "order-7")
	deadLetters := &recordingPublisher{}
	worker := NewWorker(repo, &recordingPublisher{fallback: errors.New("down")},
		WithDLQPublisher(deadLetters),
		WithRetryBaseDelay(time.Hour),
		WithMaxAttempts(5),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.Zero(t, worker.ProcessOnce(ctx))
	require.Len(t, repo.AllPending(), 1)
	require.Zero(t, deadLetters.calls())
}

func TestWorker_RetryBackoff(t *testing.T) {
	t.Parallel()

	worker := NewWorker(nil, nil, WithRetryBaseDelay(10*time.Millisecond))
	for attempt, want := range map[int]time.Duration{
		1: 10 * time.Millisecond,
		2: 20 * time.Millisecond,
		3: 40 * time.Millisecond,
	} {
		require.Equal(t, want, worker.retryBackoff(attempt), "attempt %d", attempt)
	}
	require.Equal(t, maxRetryDelay, worker.retryBackoff(64))
	require.Zero(t, NewWorker(nil, nil, WithRetryBaseDelay(0)).retryBackoff(5))
}

func TestWorker_RunPollsUntilCancelled(t *testing.T) {
	t.Parallel()

	repo := memory.NewOutboxRepository()
	publisher := &recordingPublisher{}
	worker := NewWorker(repo, publisher, WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()

	seedOutbox(t, repo, domain.EventOrderPlaced, "order-8")
	require.Eventually(t, func() bool { return publisher.calls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func TestWorker_RunWithoutPublisherReturns(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewWorker(memory.NewOutboxRepository(), nil).Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker without publisher must return immediately")
	}
}

var _ domain.OutboxPublisher = (*recordingPublisher)(nil)
