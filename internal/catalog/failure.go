package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

// RemoteFailure — сбой вызова каталога: либо структурированный ответ
// с конвертом (*StructuredFailure), либо его отсутствие (*UnavailableFailure).
type RemoteFailure interface {
	error
	remoteFailure()
}

// StructuredFailure — каталог вернул статус ошибки с разобранным телом.
type StructuredFailure struct {
	Operation  string
	StatusCode int
	Envelope   domain.ErrorEnvelope
}

func (f *StructuredFailure) Error() string {
	return fmt.Sprintf("catalog %s: status %d: %s", f.Operation, f.StatusCode, f.Envelope.Message)
}

func (*StructuredFailure) remoteFailure() {}

// UnavailableFailure — ответа с телом ошибки нет: сеть, таймаут, битый ответ.
type UnavailableFailure struct {
	Operation string
	Path      string
	Cause     error
}

func (f *UnavailableFailure) Error() string {
	return fmt.Sprintf("catalog %s unavailable: %v", f.Operation, f.Cause)
}

func (f *UnavailableFailure) Unwrap() error { return f.Cause }

func (*UnavailableFailure) remoteFailure() {}

// isBreakerFailure решает, считать ли ошибку отказом зависимости.
// Структурированные 4xx — штатные ответы каталога.
func isBreakerFailure(err error) bool {
	if err == nil {
		return false
	}
	var structured *StructuredFailure
	if errors.As(err, &structured) {
		return structured.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// translateFailure переводит любой сбой вызова в одну из трёх доменных ошибок:
// PRODUCT_NOT_FOUND, REMOTE_RESOURCE_ERROR или SERVICE_UNAVAILABLE.
func translateFailure(err error, path string, now time.Time) error {
	var structured *StructuredFailure
	if errors.As(err, &structured) {
		env := structured.Envelope
		if env.Status == 0 {
			env.Status = structured.StatusCode
		}
		if env.Error == "" {
			env.Error = http.StatusText(env.Status)
		}
		if env.Timestamp.IsZero() {
			env.Timestamp = now
		}
		if env.Path == "" {
			env.Path = path
		}
		return domain.NewRemoteError(env, err)
	}

	cause := err
	var unavailable *UnavailableFailure
	if errors.As(err, &unavailable) && unavailable.Path != "" {
		path = unavailable.Path
	}
	if errors.Is(err, context.DeadlineExceeded) {
		cause = fmt.Errorf("catalog call timed out: %w", err)
	}
	return domain.NewServiceUnavailable(domain.ErrorEnvelope{
		Timestamp: now,
		Status:    http.StatusServiceUnavailable,
		Error:     http.StatusText(http.StatusServiceUnavailable),
		Message:   domain.MsgProductServiceUnavailable,
		Path:      path,
	}, cause)
}
