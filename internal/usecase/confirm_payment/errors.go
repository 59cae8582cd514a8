package confirm_payment

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrIntentNotFound возвращается, когда намерение не найдено
	ErrIntentNotFound = fmt.Errorf("%w: confirm_payment: payment intent not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда намерение относится к чужому бронированию
	ErrAccessDenied = fmt.Errorf("%w: confirm_payment: intent belongs to another user", domain.ErrAccessDenied)

	// ErrIntentClosed возвращается для неуспешно завершенного намерения
	ErrIntentClosed = fmt.Errorf("%w: confirm_payment: payment intent is closed", domain.ErrInvalidTransition)

	// ErrIntentNotReady возвращается, когда намерение еще не создано в платежной системе
	ErrIntentNotReady = fmt.Errorf("%w: confirm_payment: payment intent has no external reference", domain.ErrInvalidTransition)

	// ErrPaymentProvider возвращается, когда платежная система недоступна
	ErrPaymentProvider = fmt.Errorf("%w: confirm_payment: payment provider error", domain.ErrExternalService)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: confirm_payment: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
