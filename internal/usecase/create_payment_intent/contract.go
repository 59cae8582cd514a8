package create_payment_intent

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// IntentRepository интерфейс репозитория платежных намерений
type IntentRepository interface {
	Create(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error)
	FindOpenByBooking(ctx context.Context, bookingID int64) (*domain.PaymentIntent, error)
	AttachExternal(ctx context.Context, id int64, externalID, clientSecret string) error
	UpdateStatus(ctx context.Context, id int64, status domain.IntentStatus) error
}

// PaymentProvider интерфейс платежной системы
type PaymentProvider interface {
	CreateIntent(ctx context.Context, req stripe.CreateIntentRequest) (*stripe.Intent, error)
}

// ProfileService интерфейс профиля пользователя (ID клиента в платежной системе)
type ProfileService interface {
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
