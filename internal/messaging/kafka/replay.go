package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

const (
	DefaultReplayLimit       = 100
	DefaultReplayIdleTimeout = 2 * time.Second
)

// PartitionSource — часть sarama.Consumer, нужная для чтения DLQ.
type PartitionSource interface {
	Partitions(topic string) ([]int32, error)
	ConsumePartition(topic string, partition int32, offset int64) (sarama.PartitionConsumer, error)
}

// ReplayConfig описывает один проход по DLQ.
type ReplayConfig struct {
	SourceTopic string
	TargetTopic string
	Limit       int
	IdleTimeout time.Duration
	// Execute=false — dry-run: кандидаты только логируются.
	Execute bool
}

// ReplayStats — итоги прохода.
type ReplayStats struct {
	Processed int
	Replayed  int
	Skipped   int
}

// ReplayCandidate — событие, восстановленное из DLQ.
type ReplayCandidate struct {
	Key      string
	Envelope Envelope
}

// Replayer перечитывает DLQ и возвращает события в основной топик.
type Replayer struct {
	source   PartitionSource
	producer *Producer
	logger   *log.Entry
	now      func() time.Time
}

// ReplayerOption настраивает Replayer.
type ReplayerOption func(*Replayer)

// WithReplayLogger задаёт logger.
func WithReplayLogger(logger *log.Entry) ReplayerOption {
	return func(r *Replayer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReplayer создаёт Replayer. producer может быть nil для dry-run.
func NewReplayer(source PartitionSource, producer *Producer, opts ...ReplayerOption) *Replayer {
	r := &Replayer{
		source:   source,
		producer: producer,
		logger:   log.New().WithField("component", "dlq-replay"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validate проверяет параметры прохода.
func (c ReplayConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.SourceTopic) == "" {
		errs = append(errs, errors.New("source topic is required"))
	}
	if strings.TrimSpace(c.TargetTopic) == "" {
		errs = append(errs, errors.New("target topic is required"))
	}
	if c.SourceTopic != "" && c.SourceTopic == c.TargetTopic {
		errs = append(errs, errors.New("source and target topics must differ"))
	}
	if c.Limit <= 0 {
		errs = append(errs, errors.New("limit must be > 0"))
	}
	if c.IdleTimeout <= 0 {
		errs = append(errs, errors.New("idle timeout must be > 0"))
	}
	return errors.Join(errs...)
}

// Replay читает партиции SourceTopic с самого старого смещения, пока не
// наберёт Limit сообщений или партиция не замолчит на IdleTimeout.
func (r *Replayer) Replay(ctx context.Context, cfg ReplayConfig) (ReplayStats, error) {
	var stats ReplayStats
	if err := cfg.Validate(); err != nil {
		return stats, err
	}
	if r.source == nil {
		return stats, errors.New("kafka consumer is required")
	}
	if cfg.Execute && r.producer == nil {
		return stats, errors.New("producer is required in execute mode")
	}

	partitions, err := r.source.Partitions(cfg.SourceTopic)
	if err != nil {
		return stats, fmt.Errorf("get partitions for topic %s: %w", cfg.SourceTopic, err)
	}
	sort.Slice(partitions, func(i, j int) bool { return partitions[i] < partitions[j] })

	for _, partition := range partitions {
		if stats.Processed >= cfg.Limit {
			break
		}
		if err := r.replayPartition(ctx, cfg, partition, &stats); err != nil {
			return stats, err
		}
	}

	mode := "dry-run"
	if cfg.Execute {
		mode = "execute"
	}
	r.logger.WithFields(log.Fields{
		"mode":      mode,
		"processed": stats.Processed,
		"replayed":  stats.Replayed,
		"skipped":   stats.Skipped,
	}).Info("dlq replay finished")

	return stats, nil
}

func (r *Replayer) replayPartition(ctx context.Context, cfg ReplayConfig, partition int32, stats *ReplayStats) error {
	pc, err := r.source.ConsumePartition(cfg.SourceTopic, partition, sarama.OffsetOldest)
	if err != nil {
		return fmt.Errorf("consume partition %d: %w", partition, err)
	}
	defer func() { _ = pc.Close() }()

	idle := time.NewTimer(cfg.IdleTimeout)
	defer idle.Stop()

	for stats.Processed < cfg.Limit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-idle.C:
			return nil
		case consumerErr, ok := <-pc.Errors():
			if !ok {
				return nil
			}
			if consumerErr != nil {
				return fmt.Errorf("partition %d consumer error: %w", partition, consumerErr)
			}
		case msg, ok := <-pc.Messages():
			if !ok || msg == nil {
				return nil
			}
			idle.Reset(cfg.IdleTimeout)

			stats.Processed++
			entry := r.logger.WithFields(log.Fields{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			})

			candidate, err := r.Restore(msg)
			if err != nil {
				stats.Skipped++
				entry.WithError(err).Warn("skip unsupported dlq message")
				continue
			}

			if !cfg.Execute {
				stats.Replayed++
				entry.WithFields(log.Fields{
					"target_topic": cfg.TargetTopic,
					"key":          candidate.Key,
					"event_type":   candidate.Envelope.EventType,
				}).Info("dlq replay candidate")
				continue
			}

			if err := r.producer.PublishEnvelope(cfg.TargetTopic, candidate.Envelope); err != nil {
				return fmt.Errorf("publish replay message: %w", err)
			}
			stats.Replayed++
		}
	}
	return nil
}

// Restore восстанавливает исходный конверт события из сообщения DLQ.
func (r *Replayer) Restore(msg *sarama.ConsumerMessage) (ReplayCandidate, error) {
	envelope, err := ParseEnvelope(msg)
	if err != nil {
		return ReplayCandidate{}, err
	}
	if len(envelope.Payload) == 0 {
		return ReplayCandidate{}, errors.New("dlq envelope has no payload")
	}

	var letter domain.DeadLetter
	if err := json.Unmarshal(envelope.Payload, &letter); err != nil {
		return ReplayCandidate{}, fmt.Errorf("decode dead letter: %w", err)
	}
	if len(letter.Payload) == 0 {
		return ReplayCandidate{}, errors.New("dead letter does not contain original event payload")
	}

	restored := Envelope{
		ID:            firstNonEmpty(letter.OutboxID, envelope.ID),
		AggregateType: firstNonEmpty(letter.AggregateType, envelope.AggregateType),
		AggregateID:   firstNonEmpty(letter.AggregateID, envelope.AggregateID),
		EventType:     firstNonEmpty(letter.EventType, envelope.EventType),
		Payload:       letter.Payload,
		PublishedAt:   r.now().UTC(),
	}
	return ReplayCandidate{Key: restored.Key(), Envelope: restored}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
