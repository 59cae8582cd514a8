package confirm_payment

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
	"github.com/vgcman16/CleanMate/internal/usecase/reconcile_payment"
)

// IntentRepository интерфейс репозитория платежных намерений
type IntentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PaymentIntent, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// PaymentProvider интерфейс платежной системы
type PaymentProvider interface {
	ConfirmIntent(ctx context.Context, id, paymentMethodID string) (*stripe.ConfirmResult, error)
	GetIntent(ctx context.Context, id string) (*stripe.Intent, error)
}

// Reconciler сверка намерения со статусом платежной системы
type Reconciler interface {
	Execute(ctx context.Context, req *reconcile_payment.Request) (*reconcile_payment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
