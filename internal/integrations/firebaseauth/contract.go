package firebaseauth

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminClient часть Firebase Admin SDK (*auth.Client), используемая клиентом
type AdminClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// Metrics счетчик отказов внешних вызовов
type Metrics interface {
	IncExternalCallError(collaborator, operation string)
}
