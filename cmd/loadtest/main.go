package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	ordersv1 "github.com/vladislavdragonenkov/ordertracking/proto/orders/v1"
)

type loadMode string

const (
	modePlace         loadMode = "place"
	modePlaceCancel   loadMode = "place-cancel"
	modePlaceComplete loadMode = "place-complete"
)

type config struct {
	addr        string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	connections int
	timeout     time.Duration
	mode        loadMode
	cancelRate  int
	items       []*ordersv1.OrderItem
	customerTag string
	outputPath  string
}

func parseConfig(args []string, output io.Writer) (config, error) {
	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		cfg       config
		modeValue string
		itemsRaw  string
	)
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	fs.IntVar(&cfg.total, "total", 400, "total scenarios in count mode; with -duration only used when explicitly set")
	fs.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 10m)")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 20, "number of gRPC client connections")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	fs.StringVar(&modeValue, "mode", string(modePlace), "load mode: place | place-cancel | place-complete")
	fs.IntVar(&cfg.cancelRate, "cancel-rate", 0, "percent of place-complete scenarios cancelled instead (0..100)")
	fs.StringVar(&itemsRaw, "items", "2:1", "order items as product:quantity pairs separated by commas")
	fs.StringVar(&cfg.customerTag, "customer-tag", "load", "customer id prefix")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	mode, err := parseMode(modeValue)
	if err != nil {
		return cfg, err
	}
	cfg.mode = mode

	items, err := parseItems(itemsRaw)
	if err != nil {
		return cfg, err
	}
	cfg.items = items

	switch {
	case cfg.duration < 0:
		return cfg, errors.New("duration must be >= 0")
	case cfg.duration == 0 && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when duration is not set")
	case cfg.duration > 0 && cfg.totalSet && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when explicitly set with duration")
	case cfg.concurrency <= 0:
		return cfg, errors.New("concurrency must be > 0")
	case cfg.connections <= 0:
		return cfg, errors.New("connections must be > 0")
	case cfg.timeout <= 0:
		return cfg, errors.New("timeout must be > 0")
	case cfg.cancelRate < 0 || cfg.cancelRate > 100:
		return cfg, errors.New("cancel-rate must be between 0 and 100")
	case strings.TrimSpace(cfg.customerTag) == "":
		return cfg, errors.New("customer-tag is required")
	}
	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch mode := loadMode(strings.TrimSpace(value)); mode {
	case modePlace, modePlaceCancel, modePlaceComplete:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

// parseItems разбирает "1:2,2:1" в позиции заказа.
func parseItems(raw string) ([]*ordersv1.OrderItem, error) {
	var items []*ordersv1.OrderItem
	for _, chunk := range strings.Split(raw, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		productID, qtyRaw, ok := strings.Cut(chunk, ":")
		productID = strings.TrimSpace(productID)
		if !ok || productID == "" {
			return nil, fmt.Errorf("invalid item %q: expected product:quantity", chunk)
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(qtyRaw), 10, 32)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in item %q", chunk)
		}
		items = append(items, &ordersv1.OrderItem{ProductId: productID, Quantity: int32(qty)})
	}
	if len(items) == 0 {
		return nil, errors.New("at least one item is required")
	}
	return items, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	clients := make([]ordersv1.OrderServiceClient, 0, cfg.connections)
	for i := 0; i < cfg.connections; i++ {
		conn, dialErr := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if dialErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to create grpc client connection: %v\n", dialErr)
			os.Exit(1)
		}
		conns = append(conns, conn)
		clients = append(clients, ordersv1.NewOrderServiceClient(conn))
	}

	result := runLoad(cfg, clients)
	for _, conn := range conns {
		_ = conn.Close()
	}

	printReport(os.Stdout, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}
	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

// runLoad раздаёт сценарии воркерам по кругу клиентов и собирает отчёт.
func runLoad(cfg config, clients []ordersv1.OrderServiceClient) report {
	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()

	jobs := make(chan int, cfg.concurrency*2)
	var wg sync.WaitGroup
	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func(client ordersv1.OrderServiceClient) {
			defer wg.Done()
			for index := range jobs {
				_ = runScenario(client, cfg, index, runID, col)
			}
		}(clients[workerID%len(clients)])
	}

	dispatchJobs(jobs, cfg)
	wg.Wait()

	return col.buildReport(startedAt, time.Since(startedAt))
}

func dispatchJobs(jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			jobs <- i
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()
	for i := 0; ; i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}
		select {
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

// runScenario размещает заказ, читает его и, в зависимости от режима,
// отменяет или завершает.
func runScenario(client ordersv1.OrderServiceClient, cfg config, index int, runID string, col *collector) (err error) {
	start := time.Now()
	defer func() {
		col.record(scenarioMethod, time.Since(start), grpcCode(err))
	}()

	customerID := fmt.Sprintf("%s-%s-%d", cfg.customerTag, runID, index)
	placed, err := timed(col, "PlaceOrder", cfg.timeout, func(ctx context.Context) (*ordersv1.PlaceOrderResponse, error) {
		return client.PlaceOrder(ctx, &ordersv1.PlaceOrderRequest{CustomerId: customerID, Items: cfg.items})
	})
	if err != nil {
		return err
	}
	orderID := placed.GetOrder().GetOrderId()
	if orderID == "" {
		return status.Error(codes.Internal, "place response returned empty order id")
	}

	if _, err = timed(col, "GetOrder", cfg.timeout, func(ctx context.Context) (*ordersv1.GetOrderResponse, error) {
		return client.GetOrder(ctx, &ordersv1.GetOrderRequest{OrderId: orderID})
	}); err != nil {
		return err
	}

	switch {
	case cfg.mode == modePlaceCancel || (cfg.mode == modePlaceComplete && shouldCancelScenario(index, cfg.cancelRate)):
		_, err = timed(col, "CancelOrder", cfg.timeout, func(ctx context.Context) (*ordersv1.CancelOrderResponse, error) {
			return client.CancelOrder(ctx, &ordersv1.CancelOrderRequest{OrderId: orderID})
		})
	case cfg.mode == modePlaceComplete:
		_, err = timed(col, "CompleteOrder", cfg.timeout, func(ctx context.Context) (*ordersv1.CompleteOrderResponse, error) {
			return client.CompleteOrder(ctx, &ordersv1.CompleteOrderRequest{OrderId: orderID})
		})
	}
	return err
}

// timed выполняет один RPC с таймаутом и записывает его задержку и код.
func timed[T any](col *collector, method string, timeout time.Duration, call func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := call(ctx)
	col.record(method, time.Since(start), grpcCode(err))
	return resp, err
}

func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	return status.Code(err)
}

func shouldCancelScenario(index, cancelRate int) bool {
	switch {
	case cancelRate <= 0:
		return false
	case cancelRate >= 100:
		return true
	default:
		return index%100 < cancelRate
	}
}
