package create_payment_intent

import createPaymentIntent "github.com/vgcman16/CleanMate/internal/usecase/create_payment_intent"

// PaymentIntentResponse HTTP response model
type PaymentIntentResponse struct {
	IntentID        int64  `json:"intentId"`
	BookingID       int64  `json:"bookingId"`
	Amount          int64  `json:"amount"` // в центах
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPaymentIntent.Response) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		IntentID:        resp.IntentID,
		BookingID:       resp.BookingID,
		Amount:          resp.Amount,
		Currency:        resp.Currency,
		Status:          string(resp.Status),
		PaymentIntentID: resp.ExternalID,
		ClientSecret:    resp.ClientSecret,
	}
}
