// Package outbox доставляет записи outbox в брокер сообщений.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	"github.com/vladislavdragonenkov/ordertracking/internal/metrics"
)

const (
	defaultPollInterval   = time.Second
	defaultBatchSize      = 100
	defaultMaxAttempts    = 3
	defaultRetryBaseDelay = 50 * time.Millisecond
	maxRetryDelay         = 30 * time.Second
)

type config struct {
	logger         *log.Entry
	metrics        *metrics.OutboxMetrics
	deadLetters    domain.OutboxPublisher
	pollInterval   time.Duration
	batchSize      int
	maxAttempts    int
	retryBaseDelay time.Duration
	now            func() time.Time
}

func (c *config) normalize() {
	if c.logger == nil {
		c.logger = log.New().WithField("component", "outbox-worker")
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.batchSize <= 0 {
		c.batchSize = defaultBatchSize
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.retryBaseDelay < 0 {
		c.retryBaseDelay = 0
	}
}

// Option настраивает Worker.
type Option func(*config)

func WithLogger(logger *log.Entry) Option {
	return func(c *config) { c.logger = logger }
}

func WithMetrics(m *metrics.OutboxMetrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithDLQPublisher задаёт получателя записей, исчерпавших попытки.
func WithDLQPublisher(publisher domain.OutboxPublisher) Option {
	return func(c *config) { c.deadLetters = publisher }
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *config) { c.pollInterval = interval }
}

func WithBatchSize(size int) Option {
	return func(c *config) { c.batchSize = size }
}

// WithMaxAttempts задаёт число попыток публикации одной записи за цикл.
func WithMaxAttempts(attempts int) Option {
	return func(c *config) { c.maxAttempts = attempts }
}

// WithRetryBaseDelay задаёт первую паузу между попытками; далее она удваивается.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(c *config) { c.retryBaseDelay = delay }
}

func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// Worker забирает pending-записи outbox и публикует их.
type Worker struct {
	repo      domain.OutboxRepository
	publisher domain.OutboxPublisher
	cfg       config
}

func NewWorker(repo domain.OutboxRepository, publisher domain.OutboxPublisher, opts ...Option) *Worker {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.normalize()
	return &Worker{repo: repo, publisher: publisher, cfg: cfg}
}

// Run опрашивает outbox до отмены ctx. Первый цикл выполняется сразу.
func (w *Worker) Run(ctx context.Context) {
	if w.repo == nil || w.publisher == nil {
		w.cfg.logger.Warn("outbox worker is disabled: repo or publisher is nil")
		return
	}

	ticker := time.NewTicker(w.cfg.pollInterval)
	defer ticker.Stop()

	for {
		w.ProcessOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ProcessOnce обрабатывает один батч и возвращает число доставленных записей.
func (w *Worker) ProcessOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	defer w.observeBacklog(ctx)

	batch, err := w.repo.PullPending(ctx, w.cfg.batchSize)
	if err != nil {
		w.cfg.logger.WithError(err).Warn("failed to pull pending outbox messages")
		return 0
	}

	delivered := 0
	for _, msg := range batch {
		if ctx.Err() != nil {
			break
		}
		if w.deliver(ctx, msg) {
			delivered++
		}
	}
	return delivered
}

// deliver публикует запись с повторами. Неудачная запись уходит в DLQ
// и помечается failed, чтобы не блокировать очередь.
func (w *Worker) deliver(ctx context.Context, msg domain.OutboxMessage) bool {
	entry := w.cfg.logger.WithFields(log.Fields{
		"outbox_id":  msg.ID,
		"order_id":   msg.AggregateID,
		"event_type": msg.EventType,
	})

	publishErr := w.publish(ctx, msg)
	if publishErr == nil {
		if err := w.repo.MarkSent(ctx, msg.ID); err != nil {
			entry.WithError(err).Warn("failed to mark outbox as sent")
			return false
		}
		return true
	}
	if ctx.Err() != nil {
		// запись остаётся pending до следующего запуска
		return false
	}

	entry.WithError(publishErr).Error("outbox publish failed after retries")
	w.cfg.metrics.RecordAttempt(metrics.OutboxResultFailed)

	if err := w.sendDeadLetter(msg, publishErr); err != nil {
		entry.WithError(err).Warn("failed to publish to DLQ")
		w.cfg.metrics.RecordAttempt(metrics.OutboxResultDLQFailed)
	}
	if err := w.repo.MarkFailed(ctx, msg.ID); err != nil {
		entry.WithError(err).Warn("failed to mark outbox as failed")
	}
	return false
}

func (w *Worker) publish(ctx context.Context, msg domain.OutboxMessage) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = w.publisher.Publish(msg); err == nil {
			w.cfg.metrics.RecordAttempt(metrics.OutboxResultSent)
			return nil
		}
		w.cfg.metrics.RecordAttempt(metrics.OutboxResultRetryError)

		if attempt == w.cfg.maxAttempts {
			return fmt.Errorf("publish failed after %d attempts: %w", attempt, err)
		}
		if delay := w.retryBackoff(attempt); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}

// retryBackoff возвращает паузу после attempt-й неудачи: base * 2^(attempt-1),
// но не больше maxRetryDelay.
func (w *Worker) retryBackoff(attempt int) time.Duration {
	base := w.cfg.retryBaseDelay
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 1; i < attempt && delay < maxRetryDelay; i++ {
		delay *= 2
	}
	return min(delay, maxRetryDelay)
}

func (w *Worker) sendDeadLetter(msg domain.OutboxMessage, cause error) error {
	if w.cfg.deadLetters == nil {
		return nil
	}

	letter, err := json.Marshal(domain.DeadLetter{
		OutboxID:       msg.ID,
		AggregateType:  msg.AggregateType,
		AggregateID:    msg.AggregateID,
		EventType:      msg.EventType,
		Payload:        json.RawMessage(msg.Payload),
		PublishError:   cause.Error(),
		DLQPublishedAt: w.cfg.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal dead letter: %w", err)
	}

	wrapped := msg
	wrapped.Payload = letter
	if err := w.cfg.deadLetters.Publish(wrapped); err != nil {
		return fmt.Errorf("publish to dlq: %w", err)
	}
	return nil
}

func (w *Worker) observeBacklog(ctx context.Context) {
	if w.cfg.metrics == nil {
		return
	}
	stats, err := w.repo.Stats(ctx)
	if err != nil {
		w.cfg.logger.WithError(err).Warn("failed to collect outbox backlog stats")
		return
	}

	var age time.Duration
	if stats.PendingCount > 0 && !stats.OldestPendingAt.IsZero() {
		age = w.cfg.now().Sub(stats.OldestPendingAt)
	}
	w.cfg.metrics.SetBacklog(stats.PendingCount, age)
}
