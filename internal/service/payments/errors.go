package payments

import (
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrProviderFailure возвращается, когда провайдер недоступен или вернул ошибку
	ErrProviderFailure = fmt.Errorf("%w: payment provider error", domain.ErrExternalService)
)
