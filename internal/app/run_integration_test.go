package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/ordertracking/internal/health"
	"github.com/vladislavdragonenkov/ordertracking/internal/service/outbox"
	"github.com/vladislavdragonenkov/ordertracking/internal/storage/memory"
)

func TestRun_MemoryGracefulShutdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"
	cfg.StorageDriver = StorageDriverMemory
	cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	err := Run(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_InvalidStorageDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "invalid-driver"
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"

	err := Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "unsupported storage driver") {
		t.Fatalf("expected unsupported storage driver error, got %v", err)
	}
}

func TestNewApplication_MemoryStackPlacesOrders(t *testing.T) {
	logger := log.WithField("test", "application")
	a, err := newApplication(context.Background(), DefaultConfig(), logger)
	require.NoError(t, err)
	defer a.close(logger)

	require.Nil(t, a.worker, "worker must stay disabled without kafka")
	require.ElementsMatch(t, []string{"catalog", "storage"}, a.health.Names())

	summary, err := a.orchestrator.PlaceOrder(context.Background(), "customer-1", []domain.ItemRequest{
		{ProductID: "1", Quantity: 1},
		{ProductID: "2", Quantity: 2},
	})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCreated, summary.Status)
	require.Equal(t, 3, summary.TotalItems)
	require.Equal(t, "1038.99", summary.TotalAmount.StringFixed(2))

	_, err = a.orchestrator.PlaceOrder(context.Background(), "customer-1", []domain.ItemRequest{{ProductID: "4", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrInvalidOrder)

	status, checks := a.health.Evaluate(context.Background())
	require.Equal(t, healthcheck.StatusHealthy, status, "checks: %+v", checks)
}

func TestNewApplication_RegistersKafkaCheckerWhenConfigured(t *testing.T) {
	logger := log.WithField("test", "application-kafka")
	cfg := DefaultConfig()
	cfg.KafkaBrokers = []string{"127.0.0.1:1"}

	a, err := newApplication(context.Background(), cfg, logger)
	require.NoError(t, err, "unreachable kafka must not block startup")
	defer a.close(logger)

	require.Nil(t, a.producer)
	require.Contains(t, a.health.Names(), "kafka")
}

func TestShutdownHelpers(t *testing.T) {
	logger := log.WithField("test", "shutdown")

	cancelCalled := false
	done := make(chan struct{})
	close(done)
	shutdownOutboxWorker(func() { cancelCalled = true }, done, logger)
	if !cancelCalled {
		t.Fatal("expected outbox cancel func to be called")
	}

	shutdownOutboxWorker(nil, nil, logger)
	closeKafka(nil, logger)
}

func TestStartOutboxWorker(t *testing.T) {
	if done := startOutboxWorker(context.Background(), nil); done != nil {
		t.Fatal("nil worker must not be started")
	}

	worker := outbox.NewWorker(memory.NewOutboxRepository(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := startOutboxWorker(ctx, worker)
	shutdownOutboxWorker(cancel, done, log.WithField("test", "outbox"))

	select {
	case <-done:
	default:
		t.Fatal("worker goroutine must be finished after shutdown")
	}
}
