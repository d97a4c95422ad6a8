package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vladislavdragonenkov/ordertracking/internal/catalog"
	healthcheck "github.com/vladislavdragonenkov/ordertracking/internal/health"
	"github.com/vladislavdragonenkov/ordertracking/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ordertracking/internal/metrics"
	grpcsvc "github.com/vladislavdragonenkov/ordertracking/internal/service/grpc"
	"github.com/vladislavdragonenkov/ordertracking/internal/service/orders"
	"github.com/vladislavdragonenkov/ordertracking/internal/service/outbox"
	"github.com/vladislavdragonenkov/ordertracking/internal/service/reservation"
	"github.com/vladislavdragonenkov/ordertracking/internal/version"
	ordersv1 "github.com/vladislavdragonenkov/ordertracking/proto/orders/v1"
)

const kafkaHealthTimeout = 2 * time.Second

// application — собранный граф зависимостей сервиса.
type application struct {
	deps         *runtimeDependencies
	gateway      *catalog.Gateway
	orchestrator *orders.Orchestrator
	producer     *kafka.Producer
	worker       *outbox.Worker
	health       *healthcheck.Handler
}

// newApplication собирает хранилище, шлюз каталога, оркестратор и outbox worker.
func newApplication(ctx context.Context, cfg Config, logger *log.Entry) (*application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	orderMetrics := metrics.NewOrderMetrics()
	gateway := initCatalogGateway(cfg, metrics.NewCatalogMetrics(), logger)
	coordinator := reservation.NewCoordinator(gateway,
		reservation.WithPolicy(cfg.CompensationPolicy),
		reservation.WithMetrics(orderMetrics),
		reservation.WithLogger(logger.WithField("component", "reservation")),
	)
	orchestrator := orders.NewOrchestrator(deps.repo, coordinator,
		orders.WithOutbox(deps.outboxRepo),
		orders.WithTimeline(deps.timelineRepo),
		orders.WithMetrics(orderMetrics),
		orders.WithLogger(logger.WithField("component", "orders")),
	)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("storage", deps.storageChecker)
	healthHandler.RegisterChecker("catalog", healthcheck.NewBreakerChecker(gateway.Breaker()))

	a := &application{
		deps:         deps,
		gateway:      gateway,
		orchestrator: orchestrator,
		health:       healthHandler,
	}

	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		logger.WithError(err).Warn("outbox events will stay pending until kafka is reachable")
	}
	if producer != nil {
		a.producer = producer
		a.worker = outbox.NewWorker(deps.outboxRepo, kafka.NewOutboxPublisher(producer, cfg.KafkaTopic),
			outbox.WithDLQPublisher(kafka.NewOutboxPublisher(producer, cfg.dlqTopic())),
			outbox.WithPollInterval(cfg.OutboxPollInterval),
			outbox.WithBatchSize(cfg.OutboxBatchSize),
			outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
			outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
			outbox.WithMetrics(metrics.NewOutboxMetrics()),
			outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		)
	}
	if len(cfg.KafkaBrokers) > 0 {
		healthHandler.RegisterChecker("kafka", healthcheck.NewKafkaChecker(cfg.KafkaBrokers, kafkaHealthTimeout, kafka.CheckBrokers))
	}

	return a, nil
}

func (a *application) close(logger *log.Entry) {
	closeKafka(a.producer, logger)
	a.deps.close(logger)
}

// Run поднимает gRPC-сервер, HTTP-метрики и outbox worker и блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	logger.WithFields(version.Fields()).Info("starting order service")

	a, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	orderService := grpcsvc.NewOrderService(a.orchestrator, logger.WithField("layer", "grpc"))
	grpcMetrics := promgrpc.NewServerMetrics()
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	ordersv1.RegisterOrderServiceServer(grpcServer, orderService)
	grpcMetrics.InitializeMetrics(grpcServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ordersv1.OrderService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, a.health)

	workerCtx, stopWorker := context.WithCancel(context.WithoutCancel(ctx))
	workerDone := startOutboxWorker(workerCtx, a.worker)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("gRPC сервер слушает %s", lis.Addr())
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем gRPC сервер")
		healthServer.Shutdown()
		stopGRPC(grpcServer, cfg.ShutdownTimeout, logger)
		shutdownOutboxWorker(stopWorker, workerDone, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		healthServer.Shutdown()
		shutdownOutboxWorker(stopWorker, workerDone, logger)
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// stopGRPC ждёт завершения активных вызовов не дольше timeout.
func stopGRPC(server *grpc.Server, timeout time.Duration, logger *log.Entry) {
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	stoppedCh := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stoppedCh)
	}()
	select {
	case <-stoppedCh:
	case <-time.After(timeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		server.Stop()
	}
}

// startOutboxWorker запускает worker в отдельной горутине; nil worker не запускается.
func startOutboxWorker(ctx context.Context, worker *outbox.Worker) <-chan struct{} {
	if worker == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()
	return done
}

// shutdownOutboxWorker останавливает worker и дожидается выхода из цикла.
func shutdownOutboxWorker(cancel context.CancelFunc, done <-chan struct{}, logger *log.Entry) {
	if cancel != nil {
		cancel()
	}
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info("outbox worker stopped")
	case <-time.After(5 * time.Second):
		logger.Warn("outbox worker did not stop in time")
	}
}

// startMetricsServer запускает HTTP-обработчики /metrics и health-проверок.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
