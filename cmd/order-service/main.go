package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordertracking/internal/app"
	"github.com/vladislavdragonenkov/ordertracking/internal/service/reservation"
)

const (
	envGRPCAddr                  = "GRPC_ADDR"
	envMetricsAddr               = "METRICS_ADDR"
	envStorageDriver             = "STORAGE_DRIVER"
	envPostgresDSN               = "POSTGRES_DSN"
	envPostgresAutoMigrate       = "POSTGRES_AUTO_MIGRATE"
	envCatalogURL                = "CATALOG_URL"
	envCatalogTimeout            = "CATALOG_TIMEOUT"
	envCatalogBreakerWindow      = "CATALOG_BREAKER_WINDOW"
	envCatalogBreakerMinCalls    = "CATALOG_BREAKER_MIN_CALLS"
	envCatalogBreakerFailureRate = "CATALOG_BREAKER_FAILURE_RATE"
	envCatalogBreakerSlowRate    = "CATALOG_BREAKER_SLOW_RATE"
	envCatalogBreakerSlowCall    = "CATALOG_BREAKER_SLOW_CALL"
	envCatalogBreakerOpenTimeout = "CATALOG_BREAKER_OPEN_TIMEOUT"
	envPlacementCompensation     = "PLACEMENT_COMPENSATION"
	envKafkaBrokers              = "KAFKA_BROKERS"
	envKafkaTopic                = "KAFKA_TOPIC"
	envOutboxPollInterval        = "OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize           = "OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts         = "OUTBOX_MAX_ATTEMPTS"
	envShutdownTimeout           = "SHUTDOWN_TIMEOUT"
	envLogLevel                  = "LOG_LEVEL"
)

type envLookup func(key string) (string, bool)

// setupLogger настраивает JSON-формат и уровень логирования.
func setupLogger(lookup envLookup) error {
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	raw, ok := lookupTrimmed(lookup, envLogLevel)
	if !ok {
		return nil
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", envLogLevel, err)
	}
	log.SetLevel(level)
	return nil
}

// readConfigFromEnv собирает конфигурацию из окружения. Некорректные значения
// не прерывают запуск: остаётся значение по умолчанию, а причина попадает в warnings.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string
	warn := func(key, raw string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s=%q ignored: %v", key, raw, err))
	}

	if v, ok := lookupTrimmed(lookup, envGRPCAddr); ok {
		cfg.GRPCAddr = v
	}
	if v, ok := lookupTrimmed(lookup, envMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookupTrimmed(lookup, envStorageDriver); ok {
		cfg.StorageDriver = strings.ToLower(v)
	}
	if v, ok := lookupTrimmed(lookup, envPostgresDSN); ok {
		cfg.PostgresDSN = v
	}
	if v, ok := lookupTrimmed(lookup, envPostgresAutoMigrate); ok {
		if parsed, err := parseBool(v); err != nil {
			warn(envPostgresAutoMigrate, v, err)
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}

	if v, ok := lookupTrimmed(lookup, envCatalogURL); ok {
		cfg.CatalogURL = v
	}
	positiveDuration := func(key string, target *time.Duration) {
		if v, ok := lookupTrimmed(lookup, key); ok {
			if parsed, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0"); err != nil {
				warn(key, v, err)
			} else {
				*target = parsed
			}
		}
	}
	positiveInt := func(key string, target *int) {
		if v, ok := lookupTrimmed(lookup, key); ok {
			if parsed, err := parseInt(v, func(n int) bool { return n > 0 }, "must be > 0"); err != nil {
				warn(key, v, err)
			} else {
				*target = parsed
			}
		}
	}
	percent := func(key string, target *float64) {
		if v, ok := lookupTrimmed(lookup, key); ok {
			if parsed, err := parseFloat(v, func(f float64) bool { return f > 0 && f <= 100 }, "must be in (0, 100]"); err != nil {
				warn(key, v, err)
			} else {
				*target = parsed
			}
		}
	}

	positiveDuration(envCatalogTimeout, &cfg.CatalogTimeout)
	positiveInt(envCatalogBreakerWindow, &cfg.CatalogBreaker.WindowSize)
	positiveInt(envCatalogBreakerMinCalls, &cfg.CatalogBreaker.MinimumCalls)
	percent(envCatalogBreakerFailureRate, &cfg.CatalogBreaker.FailureRateThreshold)
	percent(envCatalogBreakerSlowRate, &cfg.CatalogBreaker.SlowCallRateThreshold)
	positiveDuration(envCatalogBreakerSlowCall, &cfg.CatalogBreaker.SlowCallDuration)
	positiveDuration(envCatalogBreakerOpenTimeout, &cfg.CatalogBreaker.OpenTimeout)

	if v, ok := lookupTrimmed(lookup, envPlacementCompensation); ok {
		if policy, err := reservation.ParseCompensationPolicy(v); err != nil {
			warn(envPlacementCompensation, v, err)
		} else {
			cfg.CompensationPolicy = policy
		}
	}

	if v, ok := lookupTrimmed(lookup, envKafkaBrokers); ok {
		cfg.KafkaBrokers = app.ParseBrokers(v)
	}
	if v, ok := lookupTrimmed(lookup, envKafkaTopic); ok {
		cfg.KafkaTopic = v
	}

	positiveDuration(envOutboxPollInterval, &cfg.OutboxPollInterval)
	positiveInt(envOutboxBatchSize, &cfg.OutboxBatchSize)
	positiveInt(envOutboxMaxAttempts, &cfg.OutboxMaxAttempts)
	positiveDuration(envShutdownTimeout, &cfg.ShutdownTimeout)

	return cfg, warnings
}

func lookupTrimmed(lookup envLookup, key string) (string, bool) {
	raw, ok := lookup(key)
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(raw)
	return value, value != ""
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseInt(raw string, valid func(int) bool, rule string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	if !valid(value) {
		return 0, errors.New(rule)
	}
	return value, nil
}

func parseFloat(raw string, valid func(float64) bool, rule string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	if !valid(value) {
		return 0, errors.New(rule)
	}
	return value, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %w", err)
	}
	if !valid(value) {
		return 0, errors.New(rule)
	}
	return value, nil
}

func main() {
	if err := setupLogger(os.LookupEnv); err != nil {
		log.WithError(err).Warn("invalid log level, using info")
	}

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"grpc_addr":      cfg.GRPCAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"catalog_url":    cfg.CatalogURL,
		"compensation":   cfg.CompensationPolicy,
		"kafka_brokers":  cfg.KafkaBrokers,
	}).Info("запускаем OrderService")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("OrderService остановлен")
}
