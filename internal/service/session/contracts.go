package session

import (
	"context"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/infra/docstore/profile"
)

// AuthProvider интерфейс провайдера аутентификации
type AuthProvider interface {
	SignUp(ctx context.Context, email, password, displayName, phone string) (string, error)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	ResetPassword(ctx context.Context, email string) error
	SignOut(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// ProfileStore интерфейс хранилища профилей
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Create(ctx context.Context, p *domain.UserProfile) error
	Update(ctx context.Context, userID string, patch profile.Patch, now time.Time) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
