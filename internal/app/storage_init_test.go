package app

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	healthcheck "github.com/vladislavdragonenkov/ordertracking/internal/health"
)

func discardEntry() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("test", "storage-init")
}

func TestInitRuntimeDependencies_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg     Config
		wantErr string
	}{
		"postgres without dsn": {cfg: Config{StorageDriver: StorageDriverPostgres}, wantErr: "dsn"},
		"unknown driver":       {cfg: Config{StorageDriver: "sqlite"}, wantErr: "sqlite"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := initRuntimeDependencies(context.Background(), tt.cfg, discardEntry())
			require.Error(t, err)
			require.Contains(t, strings.ToLower(err.Error()), tt.wantErr)
		})
	}
}

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{StorageDriver: StorageDriverMemory}, discardEntry())
	require.NoError(t, err)
	defer deps.close(discardEntry())

	require.NotNil(t, deps.repo)
	require.NotNil(t, deps.outboxRepo)
	require.NotNil(t, deps.timelineRepo)
	require.Equal(t, healthcheck.StatusHealthy, deps.storageChecker.Check(context.Background()).Status)
}

func TestInitRuntimeDependencies_Postgres(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN is not set")
	}

	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = dsn
	cfg.PostgresAutoMigrate = true

	deps, err := initRuntimeDependencies(context.Background(), cfg, discardEntry())
	if err != nil {
		t.Skipf("postgres is not available: %v", err)
	}
	defer deps.close(discardEntry())

	require.NotNil(t, deps.repo)
	require.NotNil(t, deps.outboxRepo)
	require.NotNil(t, deps.timelineRepo)
	require.Equal(t, healthcheck.StatusHealthy, deps.storageChecker.Check(context.Background()).Status)
}
