package create_payment_intent

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: create_payment_intent: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = fmt.Errorf("%w: create_payment_intent: booking belongs to another user", domain.ErrAccessDenied)

	// ErrBookingCancelled возвращается при оплате отмененного бронирования
	ErrBookingCancelled = fmt.Errorf("%w: create_payment_intent: booking is cancelled", domain.ErrInvalidTransition)

	// ErrAlreadyPaid возвращается при повторной оплате
	ErrAlreadyPaid = fmt.Errorf("%w: create_payment_intent: booking is already paid", domain.ErrInvalidTransition)

	// ErrInvalidAmount возвращается, когда сумма к оплате не положительная
	ErrInvalidAmount = fmt.Errorf("%w: create_payment_intent: amount must be positive", domain.ErrValidation)

	// ErrPaymentProvider возвращается, когда платежная система недоступна
	ErrPaymentProvider = fmt.Errorf("%w: create_payment_intent: payment provider error", domain.ErrExternalService)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_payment_intent: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payment_intent: internal error")
)
