package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordertracking/internal/catalog"
	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/ordertracking/internal/health"
	"github.com/vladislavdragonenkov/ordertracking/internal/metrics"
	"github.com/vladislavdragonenkov/ordertracking/internal/storage/memory"
	"github.com/vladislavdragonenkov/ordertracking/internal/storage/postgres"
)

// runtimeDependencies содержит хранилища, выбранные конфигурацией.
type runtimeDependencies struct {
	repo           domain.OrderRepository
	outboxRepo     domain.OutboxRepository
	timelineRepo   domain.TimelineRepository
	storageChecker healthcheck.Checker
	closeFn        func() error
}

func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil || d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}

// initRuntimeDependencies поднимает хранилище по cfg.StorageDriver.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case "", StorageDriverMemory:
		logger.Info("using in-memory storage")
		return &runtimeDependencies{
			repo:         memory.NewOrderRepository(),
			outboxRepo:   memory.NewOutboxRepository(),
			timelineRepo: memory.NewTimelineRepository(),
			storageChecker: healthcheck.NewSimpleChecker("storage", func(context.Context) error {
				return nil
			}),
		}, nil
	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires POSTGRES_DSN")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			applied, err := store.Migrate(ctx, postgres.DirectionUp, 0)
			if err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
			for _, m := range applied {
				logger.WithFields(log.Fields{
					"version": m.Version,
					"name":    m.Name,
				}).Info("migration applied")
			}
		}
		logger.Info("using postgres storage")
		return &runtimeDependencies{
			repo:           postgres.NewOrderRepository(store),
			outboxRepo:     postgres.NewOutboxRepository(store),
			timelineRepo:   postgres.NewTimelineRepository(store),
			storageChecker: healthcheck.NewStorageChecker("storage", store),
			closeFn:        store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// initCatalogGateway создаёт шлюз каталога: HTTP при заданном CatalogURL,
// иначе каталог в памяти с демонстрационными товарами.
func initCatalogGateway(cfg Config, m *metrics.CatalogMetrics, logger *log.Entry) *catalog.Gateway {
	gatewayLogger := logger.WithField("component", "catalog-gateway")

	var transport catalog.Transport
	if cfg.CatalogURL != "" {
		transport = catalog.NewHTTPClient(cfg.CatalogURL)
		gatewayLogger.WithField("url", cfg.CatalogURL).Info("using remote product catalog")
	} else {
		transport = catalog.NewMemoryCatalog(demoProducts()...)
		gatewayLogger.Warn("CATALOG_URL is empty, using in-memory product catalog")
	}

	breaker := catalog.NewCatalogBreaker(cfg.CatalogBreaker, m, catalog.WithBreakerLogger(gatewayLogger))
	return catalog.NewGateway(transport, breaker,
		catalog.WithCallTimeout(cfg.CatalogTimeout),
		catalog.WithGatewayMetrics(m),
		catalog.WithGatewayLogger(gatewayLogger),
	)
}

func demoProducts() []domain.ProductView {
	return []domain.ProductView{
		{ID: "1", Name: "Laptop", Price: decimal.RequireFromString("999.99"), StockQuantity: 50, Active: true},
		{ID: "2", Name: "Mouse", Price: decimal.RequireFromString("19.50"), StockQuantity: 500, Active: true},
		{ID: "3", Name: "Keyboard", Price: decimal.RequireFromString("49.90"), StockQuantity: 200, Active: true},
		{ID: "4", Name: "Discontinued Monitor", Price: decimal.RequireFromString("149.00"), StockQuantity: 10, Active: false},
	}
}
