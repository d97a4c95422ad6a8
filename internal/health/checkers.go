package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/ordertracking/internal/catalog"
)

// SimpleChecker превращает функцию, возвращающую ошибку, в Checker.
type SimpleChecker struct {
	name  string
	probe func(ctx context.Context) error
}

func NewSimpleChecker(name string, probe func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{name: name, probe: probe}
}

// Check замеряет длительность probe; ошибка делает зависимость unhealthy.
func (c *SimpleChecker) Check(ctx context.Context) Check {
	started := time.Now()
	err := c.probe(ctx)

	check := Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}
	return check
}

// Pinger — хранилище, умеющее проверять соединение.
type Pinger interface {
	Ping(ctx context.Context) error
}

var errStorageNotConfigured = errors.New("storage is not configured")

// NewStorageChecker проверяет доступность хранилища.
func NewStorageChecker(name string, pinger Pinger) *SimpleChecker {
	return NewSimpleChecker(name, func(ctx context.Context) error {
		if pinger == nil {
			return errStorageNotConfigured
		}
		return pinger.Ping(ctx)
	})
}

// BreakerState — источник состояния circuit breaker.
type BreakerState interface {
	Name() string
	State() catalog.CircuitState
}

// BreakerChecker отражает состояние circuit breaker каталога:
// OPEN — не готов, HALF_OPEN — деградация.
type BreakerChecker struct {
	breaker BreakerState
}

func NewBreakerChecker(breaker BreakerState) *BreakerChecker {
	return &BreakerChecker{breaker: breaker}
}

func (c *BreakerChecker) Check(context.Context) Check {
	if c.breaker == nil {
		return Check{Name: "catalog", Status: StatusHealthy}
	}

	state := c.breaker.State()
	check := Check{Name: c.breaker.Name(), Status: breakerStatus(state)}
	if check.Status != StatusHealthy {
		check.Message = fmt.Sprintf("circuit breaker is %s", state)
	}
	return check
}

func breakerStatus(state catalog.CircuitState) Status {
	switch state {
	case catalog.CircuitOpen:
		return StatusUnhealthy
	case catalog.CircuitHalfOpen:
		return StatusDegraded
	default:
		return StatusHealthy
	}
}

// NewKafkaChecker проверяет доступность брокеров через probe.
func NewKafkaChecker(brokers []string, timeout time.Duration, probe func(brokers []string, timeout time.Duration) error) *SimpleChecker {
	return NewSimpleChecker("kafka", func(context.Context) error {
		return probe(brokers, timeout)
	})
}
