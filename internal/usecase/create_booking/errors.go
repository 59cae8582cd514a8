package create_booking

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: create_booking: service not found", domain.ErrNotFound)

	// ErrServiceUnavailable возвращается, когда услуга снята с продажи
	ErrServiceUnavailable = fmt.Errorf("%w: create_booking: service is not available", domain.ErrValidation)

	// ErrAddressRequired возвращается, когда адрес не выбран или не найден в профиле
	ErrAddressRequired = fmt.Errorf("%w: create_booking: address is required", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда выбранного слота нет в сетке дня
	ErrSlotNotAvailable = fmt.Errorf("%w: create_booking: no time slot available", domain.ErrValidation)

	// ErrSlotInPast возвращается, когда начало слота уже прошло
	ErrSlotInPast = fmt.Errorf("%w: create_booking: selected time is in the past", domain.ErrValidation)

	// ErrTooFewRooms возвращается, когда комнат меньше минимума услуги
	ErrTooFewRooms = fmt.Errorf("%w: create_booking: room count is below the service minimum", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
