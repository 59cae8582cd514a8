package list_services

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, category *string, popularOnly bool) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
