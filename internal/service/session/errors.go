package session

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	ErrNameRequired    = fmt.Errorf("%w: Please enter your full name.", domain.ErrValidation)
	ErrInvalidEmail    = fmt.Errorf("%w: Please enter a valid email address.", domain.ErrValidation)
	ErrInvalidPhone    = fmt.Errorf("%w: Please enter a valid phone number.", domain.ErrValidation)
	ErrWeakPassword    = fmt.Errorf("%w: Password must be at least 6 characters long.", domain.ErrValidation)
	ErrInvalidInput    = fmt.Errorf("%w: invalid input data", domain.ErrValidation)
	ErrMissingToken    = fmt.Errorf("%w: Please sign in to continue.", domain.ErrAuth)
	ErrProfileNotFound = fmt.Errorf("%w: profile not found", domain.ErrNotFound)

	// ErrAddressNotFound возвращается, когда адреса нет в профиле
	ErrAddressNotFound = fmt.Errorf("%w: address not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("session service: internal error")
)
