package catalog

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("%w: catalog.store: service not found", domain.ErrNotFound)

	ErrQuery  = errors.New("catalog.store: failed to query services")
	ErrDecode = errors.New("catalog.store: failed to decode service document")
	ErrInsert = errors.New("catalog.store: failed to insert service")
	ErrWatch  = errors.New("catalog.store: change stream failed")
)
