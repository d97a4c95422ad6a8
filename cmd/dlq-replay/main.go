package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordertracking/internal/app"
	"github.com/vladislavdragonenkov/ordertracking/internal/messaging/kafka"
)

const (
	envKafkaBrokers = "KAFKA_BROKERS"
	envKafkaTopic   = "KAFKA_TOPIC"
)

type config struct {
	brokers []string
	replay  kafka.ReplayConfig
}

// newDependencies создаёт consumer и, в режиме execute, producer.
var newDependencies = func(cfg config, logger *log.Entry) (sarama.Consumer, *kafka.Producer, error) {
	consumerConfig := sarama.NewConfig()
	consumerConfig.ClientID = "order-dlq-replay"
	consumerConfig.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(cfg.brokers, consumerConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	if !cfg.replay.Execute {
		return consumer, nil, nil
	}

	producer, err := kafka.NewProducer(cfg.brokers, kafka.WithProducerLogger(logger.WithField("component", "kafka-producer")))
	if err != nil {
		_ = consumer.Close()
		return nil, nil, err
	}
	return consumer, producer, nil
}

// parseConfig разбирает флаги; брокеры и топик берутся из окружения, если флаги не заданы.
func parseConfig(args []string, lookup func(string) (string, bool), output io.Writer) (config, error) {
	fs := flag.NewFlagSet("dlq-replay", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		brokersRaw string
		cfg        config
	)
	fs.StringVar(&brokersRaw, "brokers", "", "comma-separated Kafka brokers (fallback: "+envKafkaBrokers+")")
	fs.StringVar(&cfg.replay.TargetTopic, "target-topic", "", "topic to replay into (fallback: "+envKafkaTopic+", then "+kafka.TopicOrderEvents+")")
	fs.StringVar(&cfg.replay.SourceTopic, "source-topic", "", "DLQ topic (default: <target-topic>.dlq)")
	fs.IntVar(&cfg.replay.Limit, "limit", kafka.DefaultReplayLimit, "max number of messages to scan")
	fs.DurationVar(&cfg.replay.IdleTimeout, "idle-timeout", kafka.DefaultReplayIdleTimeout, "stop reading a partition after this much silence")
	fs.BoolVar(&cfg.replay.Execute, "execute", false, "publish restored events; default is dry-run")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if strings.TrimSpace(brokersRaw) == "" {
		brokersRaw, _ = lookup(envKafkaBrokers)
	}
	cfg.brokers = app.ParseBrokers(brokersRaw)
	if len(cfg.brokers) == 0 {
		return config{}, fmt.Errorf("kafka brokers are required (-brokers or %s)", envKafkaBrokers)
	}

	if strings.TrimSpace(cfg.replay.TargetTopic) == "" {
		topic, _ := lookup(envKafkaTopic)
		cfg.replay.TargetTopic = strings.TrimSpace(topic)
	}
	if cfg.replay.TargetTopic == "" {
		cfg.replay.TargetTopic = kafka.TopicOrderEvents
	}
	if strings.TrimSpace(cfg.replay.SourceTopic) == "" {
		cfg.replay.SourceTopic = kafka.DeadLetterTopic(cfg.replay.TargetTopic)
	}

	if err := cfg.replay.Validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config, logger *log.Entry) (kafka.ReplayStats, error) {
	logger.WithFields(log.Fields{
		"source_topic": cfg.replay.SourceTopic,
		"target_topic": cfg.replay.TargetTopic,
		"limit":        cfg.replay.Limit,
		"execute":      cfg.replay.Execute,
	}).Info("starting dlq replay")

	consumer, producer, err := newDependencies(cfg, logger)
	if err != nil {
		return kafka.ReplayStats{}, err
	}
	defer func() {
		if err := producer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close kafka producer")
		}
		if err := consumer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close kafka consumer")
		}
	}()

	replayer := kafka.NewReplayer(consumer, producer, kafka.WithReplayLogger(logger))
	return replayer.Replay(ctx, cfg.replay)
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	logger := log.WithField("component", "dlq-replay")

	cfg, err := parseConfig(os.Args[1:], os.LookupEnv, os.Stderr)
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := run(ctx, cfg, logger); err != nil {
		fail("dlq replay failed: %v", err)
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
