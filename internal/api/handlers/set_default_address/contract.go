package set_default_address

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

type SessionService interface {
	SetDefaultAddress(ctx context.Context, userID, addressID string) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
