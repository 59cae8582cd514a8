package payments

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// PaymentProvider интерфейс платежного провайдера (сохраненные способы оплаты)
type PaymentProvider interface {
	CreateCustomer(ctx context.Context, userID, email, name string) (string, error)
	ListCardMethods(ctx context.Context, customerID string) ([]domain.SavedPaymentMethod, error)
	AttachMethod(ctx context.Context, paymentMethodID, customerID string) (*domain.SavedPaymentMethod, error)
}

// ProfileService интерфейс состояния профиля
type ProfileService interface {
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)
	SetStripeCustomerID(ctx context.Context, userID, customerID string) error
	SetPreferredPaymentMethod(ctx context.Context, userID, paymentMethodID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
