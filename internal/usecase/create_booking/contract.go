package create_booking

import (
	"context"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetDomain(ctx context.Context, id string) (*domain.Service, error)
}

// AddressBook интерфейс адресов профиля пользователя
type AddressBook interface {
	Address(ctx context.Context, userID, addressID string) (domain.Address, error)
}

// EventPublisher публикует события бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Metrics счетчик созданных бронирований
type Metrics interface {
	IncBookingCreated(priceUnit string)
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
