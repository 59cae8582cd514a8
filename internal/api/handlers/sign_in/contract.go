package sign_in

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

type SessionService interface {
	SignIn(ctx context.Context, req *models.SignInRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
