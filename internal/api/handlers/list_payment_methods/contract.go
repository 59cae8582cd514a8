package list_payment_methods

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/payments/models"
)

type PaymentService interface {
	ListSavedMethods(ctx context.Context, userID string) (*models.PaymentMethodListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
