package stripe

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrUnavailable сеть, таймаут, 5xx или разомкнутый предохранитель
	ErrUnavailable = fmt.Errorf("%w: stripe: processor unavailable", domain.ErrExternalService)

	// ErrRejected запрос отклонен платежной системой (неверные параметры)
	ErrRejected = fmt.Errorf("%w: stripe: request rejected", domain.ErrValidation)

	// ErrResourceMissing объект не найден в платежной системе
	ErrResourceMissing = fmt.Errorf("%w: stripe: resource missing", domain.ErrNotFound)

	// ErrInvalidSignature подпись webhook не прошла проверку
	ErrInvalidSignature = errors.New("stripe: invalid webhook signature")

	// ErrInvalidPayload webhook содержит неожиданные данные
	ErrInvalidPayload = errors.New("stripe: invalid webhook payload")
)
