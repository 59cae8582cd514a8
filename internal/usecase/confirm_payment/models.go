package confirm_payment

import (
	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
)

// Request модель запроса на подтверждение оплаты сохраненным методом
type Request struct {
	IntentID        int64
	UserID          string
	PaymentMethodID string
}

// Response итог подтверждения
type Response struct {
	IntentID      int64
	Outcome       stripe.ConfirmOutcome
	FailureReason string
	IntentStatus  domain.IntentStatus
	BookingID     int64
	BookingStatus domain.BookingStatus
	PaymentStatus domain.PaymentStatus
}
