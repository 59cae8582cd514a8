package reconcile_payment

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrIntentNotFound возвращается, когда намерение не найдено
	ErrIntentNotFound = fmt.Errorf("%w: reconcile_payment: payment intent not found", domain.ErrNotFound)

	// ErrBookingNotFound возвращается, когда бронирование намерения не найдено
	ErrBookingNotFound = fmt.Errorf("%w: reconcile_payment: booking not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: reconcile_payment: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reconcile_payment: internal error")
)
