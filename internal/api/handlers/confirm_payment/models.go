package confirm_payment

import confirmPayment "github.com/vgcman16/CleanMate/internal/usecase/confirm_payment"

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	IntentID      int64  `json:"intentId"`
	Outcome       string `json:"outcome"` // completed | failed | canceled | pending
	FailureReason string `json:"failureReason,omitempty"`
	IntentStatus  string `json:"intentStatus"`
	BookingID     int64  `json:"bookingId"`
	BookingStatus string `json:"bookingStatus"`
	PaymentStatus string `json:"paymentStatus"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		IntentID:      resp.IntentID,
		Outcome:       string(resp.Outcome),
		FailureReason: resp.FailureReason,
		IntentStatus:  string(resp.IntentStatus),
		BookingID:     resp.BookingID,
		BookingStatus: string(resp.BookingStatus),
		PaymentStatus: string(resp.PaymentStatus),
	}
}
