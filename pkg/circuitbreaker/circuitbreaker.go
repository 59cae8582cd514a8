package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// Logger интерфейс для логирования смены состояния
type Logger interface {
	Warn(format string, v ...interface{})
}

// Options параметры предохранителя
type Options struct {
	// ConsecutiveFailures число подряд идущих ошибок до размыкания
	ConsecutiveFailures uint32
	// OpenTimeout время в разомкнутом состоянии до пробного запроса
	OpenTimeout time.Duration
	// IsSuccessful ошибки, которые не считаются сбоем (например, ошибки валидации от вендора)
	IsSuccessful func(err error) bool
}

// DefaultOptions 5 ошибок подряд, 30 секунд в разомкнутом состоянии
var DefaultOptions = Options{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second}

// New создает предохранитель для вызовов внешнего сервиса name
func New[T any](name string, opts Options, log Logger) *gobreaker.CircuitBreaker[T] {
	if opts.ConsecutiveFailures == 0 {
		opts.ConsecutiveFailures = DefaultOptions.ConsecutiveFailures
	}
	if opts.OpenTimeout == 0 {
		opts.OpenTimeout = DefaultOptions.OpenTimeout
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.ConsecutiveFailures
		},
		IsSuccessful: opts.IsSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn("CircuitBreaker: %s state changed %s -> %s", name, from, to)
			}
		},
	})
}
