package reconcile_payment

import (
	"context"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// IntentRepository интерфейс репозитория платежных намерений
type IntentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PaymentIntent, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.PaymentIntent, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IntentStatus) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, status domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Metrics счетчик сверок
type Metrics interface {
	IncPaymentReconciled(status string)
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
