package paymentintent

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrIntentNotFound возвращается, когда платежное намерение не найдено
	ErrIntentNotFound = fmt.Errorf("%w: paymentintent.repository: payment intent not found", domain.ErrNotFound)

	ErrBuildQuery = errors.New("paymentintent.repository: failed to build query")
	ErrExecQuery  = errors.New("paymentintent.repository: failed to execute query")
	ErrScanRow    = errors.New("paymentintent.repository: failed to scan row")
)
