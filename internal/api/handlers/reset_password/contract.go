package reset_password

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

type SessionService interface {
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
