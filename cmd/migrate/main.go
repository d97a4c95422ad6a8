package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/ordertracking/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
	envDSN         = "POSTGRES_DSN"
	statusCommand  = "status"
)

type config struct {
	dsn string
	// direction пустой для status.
	direction postgres.Direction
	steps     int
}

func (c config) statusOnly() bool { return c.direction == "" }

// parseConfig разбирает флаги; DSN берётся из окружения, если -dsn не задан.
func parseConfig(args []string, lookup func(string) (string, bool), output io.Writer) (config, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		cfg       config
		direction string
	)
	fs.StringVar(&direction, "direction", "up", "migration direction: up|down|status")
	fs.IntVar(&cfg.steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	fs.StringVar(&cfg.dsn, "dsn", "", "PostgreSQL DSN (fallback: "+envDSN+")")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg.dsn = strings.TrimSpace(cfg.dsn)
	if cfg.dsn == "" {
		env, _ := lookup(envDSN)
		cfg.dsn = strings.TrimSpace(env)
	}
	if cfg.dsn == "" {
		return config{}, fmt.Errorf("%s (or -dsn) is required", envDSN)
	}
	if cfg.steps < 0 {
		return config{}, errors.New("steps must be >= 0")
	}

	if strings.EqualFold(strings.TrimSpace(direction), statusCommand) {
		return cfg, nil
	}
	dir, err := postgres.ParseDirection(direction)
	if err != nil {
		return config{}, fmt.Errorf("%w (use up|down|status)", err)
	}
	cfg.direction = dir
	return cfg, nil
}

// migrator — часть postgres.Store, нужная утилите.
type migrator interface {
	Migrate(ctx context.Context, direction postgres.Direction, steps int) ([]postgres.AppliedMigration, error)
	MigrationStatus(ctx context.Context) (int64, int, error)
}

func run(ctx context.Context, cfg config, store migrator, out io.Writer) error {
	if cfg.statusOnly() {
		return printStatus(ctx, store, out, "migration status")
	}

	applied, err := store.Migrate(ctx, cfg.direction, cfg.steps)
	for _, m := range applied {
		_, _ = fmt.Fprintf(out, "%s %04d_%s\n", m.Direction, m.Version, m.Name)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", cfg.direction, err)
	}
	return printStatus(ctx, store, out, fmt.Sprintf("migrate %s ok", cfg.direction))
}

func printStatus(ctx context.Context, store migrator, out io.Writer, prefix string) error {
	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	_, _ = fmt.Fprintf(out, "%s: version=%d applied=%d\n", prefix, version, count)
	return nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.LookupEnv, os.Stderr)
	if err != nil {
		fail("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, cfg.dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	if err := run(ctx, cfg, store, os.Stdout); err != nil {
		fail("%v", err)
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
