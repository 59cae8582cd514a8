package bookings

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = fmt.Errorf("%w: booking belongs to another user", domain.ErrAccessDenied)

	// ErrCannotCancel возвращается при отмене завершенного или уже отмененного бронирования
	ErrCannotCancel = fmt.Errorf("%w: booking cannot be cancelled", domain.ErrInvalidTransition)

	// ErrInvalidTransition возвращается, когда переход статуса запрещен
	ErrInvalidTransition = fmt.Errorf("%w: booking status cannot be changed", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
