package get_available_slots

import (
	"context"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetDomain(ctx context.Context, id string) (*domain.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
