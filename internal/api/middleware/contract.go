package middleware

import (
	"context"
	"time"
)

// Authenticator проверяет ID токен и возвращает uid пользователя
type Authenticator interface {
	Authenticate(ctx context.Context, idToken string) (string, error)
}

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
