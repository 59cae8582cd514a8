package get_profile

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

type SessionService interface {
	GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
