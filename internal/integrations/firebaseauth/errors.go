package firebaseauth

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: Invalid email or password.", domain.ErrAuth)
	ErrUserNotFound       = fmt.Errorf("%w: No user found with this email.", domain.ErrAuth)
	ErrUserDisabled       = fmt.Errorf("%w: This account has been disabled.", domain.ErrAuth)
	ErrEmailAlreadyInUse  = fmt.Errorf("%w: An account with this email already exists.", domain.ErrAuth)
	ErrWeakPassword       = fmt.Errorf("%w: Password must be at least 6 characters long.", domain.ErrAuth)
	ErrInvalidEmail       = fmt.Errorf("%w: Please enter a valid email address.", domain.ErrAuth)
	ErrInvalidToken       = fmt.Errorf("%w: Session is invalid or expired.", domain.ErrAuth)
	ErrTooManyAttempts    = fmt.Errorf("%w: Too many attempts. Please try again later.", domain.ErrAuth)

	// ErrUnavailable сеть, таймаут или 5xx от провайдера
	ErrUnavailable = fmt.Errorf("%w: firebaseauth: provider unavailable", domain.ErrExternalService)

	// ErrInvalidResponse провайдер вернул неожиданный ответ
	ErrInvalidResponse = fmt.Errorf("%w: firebaseauth: invalid response", domain.ErrExternalService)

	ErrInit = errors.New("firebaseauth: failed to initialize firebase app")
)

// restErrors коды ошибок Identity Toolkit REST API
var restErrors = map[string]error{
	"EMAIL_NOT_FOUND":             ErrUserNotFound,
	"INVALID_PASSWORD":            ErrInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS":   ErrInvalidCredentials,
	"USER_DISABLED":               ErrUserDisabled,
	"INVALID_EMAIL":               ErrInvalidEmail,
	"MISSING_EMAIL":               ErrInvalidEmail,
	"MISSING_PASSWORD":            ErrInvalidCredentials,
	"EMAIL_EXISTS":                ErrEmailAlreadyInUse,
	"WEAK_PASSWORD":               ErrWeakPassword,
	"TOO_MANY_ATTEMPTS_TRY_LATER": ErrTooManyAttempts,
}
