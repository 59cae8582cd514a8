package domain

import "errors"

// Виды ошибок. Ошибки пакетов оборачивают один из них,
// чтобы на границе (HTTP) можно было классифицировать ошибку через errors.Is
var (
	ErrValidation        = errors.New("validation error")
	ErrAuth              = errors.New("authentication error")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrExternalService   = errors.New("external service error")
	ErrAccessDenied      = errors.New("access denied")
)
