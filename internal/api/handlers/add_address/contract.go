package add_address

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

type SessionService interface {
	AddAddress(ctx context.Context, userID string, req *models.AddAddressRequest) (*models.AddressResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
