package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrCircuitOpen возвращается без обращения к сети, пока breaker открыт.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState — состояние circuit breaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// BreakerConfig задаёт пороги breaker. Доли указываются в процентах.
type BreakerConfig struct {
	// WindowSize — число последних вызовов в скользящем окне.
	WindowSize int
	// MinimumCalls — минимум вызовов в окне до оценки порогов.
	MinimumCalls int
	// FailureRateThreshold — доля ошибок, при достижении которой breaker открывается.
	FailureRateThreshold float64
	// SlowCallRateThreshold — доля медленных вызовов для открытия.
	SlowCallRateThreshold float64
	// SlowCallDuration — вызов дольше этого считается медленным.
	SlowCallDuration time.Duration
	// OpenTimeout — пауза перед пробным вызовом в HALF_OPEN.
	OpenTimeout time.Duration
}

// DefaultBreakerConfig возвращает конфигурацию по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		WindowSize:            20,
		MinimumCalls:          10,
		FailureRateThreshold:  50,
		SlowCallRateThreshold: 100,
		SlowCallDuration:      2 * time.Second,
		OpenTimeout:           10 * time.Second,
	}
}

func (c BreakerConfig) normalized() BreakerConfig {
	def := DefaultBreakerConfig()
	if c.WindowSize <= 0 {
		c.WindowSize = def.WindowSize
	}
	if c.MinimumCalls <= 0 {
		c.MinimumCalls = 1
	}
	if c.MinimumCalls > c.WindowSize {
		c.MinimumCalls = c.WindowSize
	}
	if c.FailureRateThreshold <= 0 || c.FailureRateThreshold > 100 {
		c.FailureRateThreshold = def.FailureRateThreshold
	}
	if c.SlowCallRateThreshold <= 0 || c.SlowCallRateThreshold > 100 {
		c.SlowCallRateThreshold = def.SlowCallRateThreshold
	}
	if c.SlowCallDuration <= 0 {
		c.SlowCallDuration = def.SlowCallDuration
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = def.OpenTimeout
	}
	return c
}

// Clock возвращает текущее время; подменяется в тестах.
type Clock func() time.Time

// StateListener вызывается при каждой смене состояния (вне блокировки).
type StateListener func(name string, from, to CircuitState)

// BreakerOption настраивает CircuitBreaker.
type BreakerOption func(*CircuitBreaker)

// WithClock подменяет источник времени.
func WithClock(clock Clock) BreakerOption {
	return func(cb *CircuitBreaker) {
		if clock != nil {
			cb.now = clock
		}
	}
}

// WithBreakerLogger задаёт логгер.
func WithBreakerLogger(logger *log.Entry) BreakerOption {
	return func(cb *CircuitBreaker) {
		if logger != nil {
			cb.logger = logger
		}
	}
}

// WithStateListener подписывает на смену состояния.
func WithStateListener(listener StateListener) BreakerOption {
	return func(cb *CircuitBreaker) {
		if listener != nil {
			cb.listeners = append(cb.listeners, listener)
		}
	}
}

// WithFailurePredicate определяет, какие ошибки считаются отказом зависимости.
// По умолчанию отказом считается любая ошибка.
func WithFailurePredicate(isFailure func(error) bool) BreakerOption {
	return func(cb *CircuitBreaker) {
		if isFailure != nil {
			cb.isFailure = isFailure
		}
	}
}

type outcome struct {
	failed bool
	slow   bool
}

// CircuitBreaker — circuit breaker со скользящим окном по числу вызовов.
//
// Состояние и окно защищены мьютексом: конкурентные вызовы одного шлюза
// разделяют счётчики. В HALF_OPEN пропускается ровно один пробный вызов.
type CircuitBreaker struct {
	name      string
	cfg       BreakerConfig
	now       Clock
	isFailure func(error) bool
	logger    *log.Entry
	listeners []StateListener

	mu       sync.Mutex
	state    CircuitState
	openedAt time.Time
	probing  bool

	window   []outcome
	next     int
	count    int
	failures int
	slow     int
}

// NewCircuitBreaker создаёт breaker в состоянии CLOSED.
func NewCircuitBreaker(name string, cfg BreakerConfig, opts ...BreakerOption) *CircuitBreaker {
	cfg = cfg.normalized()
	cb := &CircuitBreaker{
		name:      name,
		cfg:       cfg,
		now:       time.Now,
		isFailure: func(err error) bool { return err != nil },
		logger:    log.New().WithField("component", "circuit-breaker"),
		state:     CircuitClosed,
		window:    make([]outcome, cfg.WindowSize),
	}
	for _, opt := range opts {
		opt(cb)
	}
	cb.logger = cb.logger.WithField("breaker", name)
	return cb
}

// Name возвращает имя breaker.
func (cb *CircuitBreaker) Name() string { return cb.name }

// State возвращает текущее состояние с учётом истёкшего OpenTimeout.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	state := cb.state
	if state == CircuitOpen && !cb.now().Before(cb.openedAt.Add(cb.cfg.OpenTimeout)) {
		state = CircuitHalfOpen
	}
	cb.mu.Unlock()
	return state
}

// Execute выполняет fn через breaker. В OPEN возвращает ErrCircuitOpen, не вызывая fn.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	probe, err := cb.acquire()
	if err != nil {
		return err
	}

	started := cb.now()
	finished := false
	defer func() {
		if !finished {
			// Паника в fn засчитывается как отказ, слот пробы освобождается.
			cb.record(probe, true, cb.now().Sub(started))
		}
	}()

	callErr := fn(ctx)
	finished = true

	cb.record(probe, callErr != nil && cb.isFailure(callErr), cb.now().Sub(started))
	return callErr
}

// acquire решает, пропускать ли вызов. probe=true для пробного вызова в HALF_OPEN.
func (cb *CircuitBreaker) acquire() (probe bool, err error) {
	cb.mu.Lock()
	var change *transition

	switch cb.state {
	case CircuitOpen:
		if cb.now().Before(cb.openedAt.Add(cb.cfg.OpenTimeout)) {
			cb.mu.Unlock()
			return false, ErrCircuitOpen
		}
		change = cb.transitionLocked(CircuitHalfOpen)
		cb.probing = true
		probe = true
	case CircuitHalfOpen:
		if cb.probing {
			cb.mu.Unlock()
			return false, ErrCircuitOpen
		}
		cb.probing = true
		probe = true
	}

	cb.mu.Unlock()
	cb.notify(change)
	return probe, nil
}

func (cb *CircuitBreaker) record(probe, failed bool, elapsed time.Duration) {
	slow := elapsed > cb.cfg.SlowCallDuration

	cb.mu.Lock()
	var change *transition

	if probe {
		cb.probing = false
		if cb.state == CircuitHalfOpen {
			if failed || slow {
				change = cb.transitionLocked(CircuitOpen)
			} else {
				change = cb.transitionLocked(CircuitClosed)
			}
		}
		cb.mu.Unlock()
		cb.notify(change)
		return
	}

	if cb.state != CircuitClosed {
		// Вызов стартовал до открытия breaker: его исход уже не влияет на решение.
		cb.mu.Unlock()
		return
	}

	cb.pushLocked(outcome{failed: failed, slow: slow})
	if cb.count >= cb.cfg.MinimumCalls {
		failureRate := float64(cb.failures) * 100 / float64(cb.count)
		slowRate := float64(cb.slow) * 100 / float64(cb.count)
		if failureRate >= cb.cfg.FailureRateThreshold || slowRate >= cb.cfg.SlowCallRateThreshold {
			change = cb.transitionLocked(CircuitOpen)
			change.failureRate = failureRate
			change.slowRate = slowRate
		}
	}

	cb.mu.Unlock()
	cb.notify(change)
}

func (cb *CircuitBreaker) pushLocked(o outcome) {
	if cb.count == len(cb.window) {
		old := cb.window[cb.next]
		if old.failed {
			cb.failures--
		}
		if old.slow {
			cb.slow--
		}
	} else {
		cb.count++
	}
	cb.window[cb.next] = o
	cb.next = (cb.next + 1) % len(cb.window)
	if o.failed {
		cb.failures++
	}
	if o.slow {
		cb.slow++
	}
}

func (cb *CircuitBreaker) resetWindowLocked() {
	for i := range cb.window {
		cb.window[i] = outcome{}
	}
	cb.next, cb.count, cb.failures, cb.slow = 0, 0, 0, 0
}

type transition struct {
	from, to    CircuitState
	failureRate float64
	slowRate    float64
}

func (cb *CircuitBreaker) transitionLocked(to CircuitState) *transition {
	from := cb.state
	cb.state = to
	switch to {
	case CircuitOpen:
		cb.openedAt = cb.now()
	case CircuitClosed:
		cb.resetWindowLocked()
	}
	return &transition{from: from, to: to}
}

func (cb *CircuitBreaker) notify(change *transition) {
	if change == nil || change.from == change.to {
		return
	}
	entry := cb.logger.WithFields(log.Fields{
		"from": change.from.String(),
		"to":   change.to.String(),
	})
	if change.to == CircuitOpen {
		entry.WithFields(log.Fields{
			"failure_rate": change.failureRate,
			"slow_rate":    change.slowRate,
		}).Warn("Circuit breaker opened")
	} else {
		entry.Info("Circuit breaker state changed")
	}
	for _, listener := range cb.listeners {
		listener(cb.name, change.from, change.to)
	}
}
