package app

import (
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/ordertracking/internal/catalog"
	"github.com/vladislavdragonenkov/ordertracking/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ordertracking/internal/service/reservation"
)

// Драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	GRPCAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// CatalogURL — адрес каталога товаров; пустой означает каталог в памяти.
	CatalogURL     string
	CatalogTimeout time.Duration
	CatalogBreaker catalog.BreakerConfig

	CompensationPolicy reservation.CompensationPolicy

	KafkaBrokers []string
	KafkaTopic   string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration

	ShutdownTimeout time.Duration
}

// DefaultConfig возвращает конфигурацию для локального запуска.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:            ":50051",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		CatalogTimeout:      catalog.DefaultCallTimeout,
		CatalogBreaker:      catalog.DefaultBreakerConfig(),
		CompensationPolicy:  reservation.CompensateReservations,
		KafkaTopic:          kafka.TopicOrderEvents,
		OutboxPollInterval:  time.Second,
		OutboxBatchSize:     100,
		OutboxMaxAttempts:   3,
		OutboxRetryDelay:    50 * time.Millisecond,
		ShutdownTimeout:     5 * time.Second,
	}
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres storage requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	if c.GRPCAddr == "" {
		return fmt.Errorf("grpc address is empty")
	}
	if _, err := reservation.ParseCompensationPolicy(string(c.CompensationPolicy)); err != nil {
		return err
	}
	return nil
}

// dlqTopic возвращает топик для сообщений, исчерпавших попытки публикации.
func (c Config) dlqTopic() string {
	return kafka.DeadLetterTopic(c.KafkaTopic)
}
