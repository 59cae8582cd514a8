package add_payment_method

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/payments/models"
)

type PaymentService interface {
	AddMethod(ctx context.Context, userID string, req *models.AddMethodRequest) (*models.PaymentMethodResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
