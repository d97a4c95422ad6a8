package domain

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// localDateTimeLayout — формат времени без зоны, который отдаёт каталог.
const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

// ErrorEnvelope — единый формат ошибки на границах сервиса.
type ErrorEnvelope struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

type envelopeWire struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// MarshalJSON пишет timestamp в RFC 3339 с наносекундами.
func (e ErrorEnvelope) MarshalJSON() ([]byte, error) {
	wire := envelopeWire{
		Status:  e.Status,
		Error:   e.Error,
		Message: e.Message,
		Path:    e.Path,
	}
	if !e.Timestamp.IsZero() {
		wire.Timestamp = e.Timestamp.Format(time.RFC3339Nano)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON принимает timestamp как в RFC 3339, так и без зоны (считается UTC).
func (e *ErrorEnvelope) UnmarshalJSON(data []byte) error {
	var wire envelopeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	ts, err := ParseEnvelopeTime(wire.Timestamp)
	if err != nil {
		return err
	}
	*e = ErrorEnvelope{
		Timestamp: ts,
		Status:    wire.Status,
		Error:     wire.Error,
		Message:   wire.Message,
		Path:      wire.Path,
	}
	return nil
}

// ParseEnvelopeTime разбирает timestamp конверта. Пустая строка даёт нулевое время.
func ParseEnvelopeTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(localDateTimeLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, errors.New("envelope timestamp: unsupported format " + raw)
	}
	return ts, nil
}

// IsZero сообщает, что конверт не содержит ни статуса, ни сообщения.
func (e ErrorEnvelope) IsZero() bool {
	return e.Status == 0 && e.Error == "" && e.Message == ""
}

// EnvelopeFor переводит ошибку в конверт для ответа по пути path.
//
// Конверт, уже привязанный к ServiceError, возвращается как есть (заполняется
// только пустой path). Для остальных доменных ошибок конверт строится по
// категории, для неизвестных — 500 без внутренних подробностей.
func EnvelopeFor(err error, path string, now time.Time) ErrorEnvelope {
	se, ok := AsServiceError(err)
	if !ok {
		return ErrorEnvelope{
			Timestamp: now,
			Status:    http.StatusInternalServerError,
			Error:     http.StatusText(http.StatusInternalServerError),
			Message:   MsgInternalError,
			Path:      path,
		}
	}
	if se.Envelope != nil {
		env := *se.Envelope
		if env.Path == "" {
			env.Path = path
		}
		if env.Timestamp.IsZero() {
			env.Timestamp = now
		}
		if env.Status == 0 {
			env.Status = se.StatusCode()
		}
		if env.Error == "" {
			env.Error = http.StatusText(env.Status)
		}
		return env
	}
	status := se.StatusCode()
	return ErrorEnvelope{
		Timestamp: now,
		Status:    status,
		Error:     http.StatusText(status),
		Message:   se.Message,
		Path:      path,
	}
}
