package catalog

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/domain"
	catalogStore "github.com/vgcman16/CleanMate/internal/infra/docstore/catalog"
)

// Store интерфейс хранилища каталога
type Store interface {
	Get(ctx context.Context, id string) (*domain.Service, error)
	Query(ctx context.Context, q catalogStore.Query) ([]*domain.Service, error)
	Create(ctx context.Context, svc *domain.Service) (string, error)
	Watch(ctx context.Context, onChange func()) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
