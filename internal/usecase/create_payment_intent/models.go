package create_payment_intent

import "github.com/vgcman16/CleanMate/internal/domain"

// Request модель запроса на создание намерения
type Request struct {
	BookingID int64
	UserID    string
}

// Response намерение, готовое к оплате на клиенте
type Response struct {
	IntentID     int64
	BookingID    int64
	Amount       int64
	Currency     string
	Status       domain.IntentStatus
	ExternalID   string
	ClientSecret string
}

func fromDomain(i *domain.PaymentIntent) *Response {
	resp := &Response{
		IntentID:  i.ID,
		BookingID: i.BookingID,
		Amount:    i.Amount,
		Currency:  i.Currency,
		Status:    i.Status,
	}
	if i.ExternalID != nil {
		resp.ExternalID = *i.ExternalID
	}
	if i.ClientSecret != nil {
		resp.ClientSecret = *i.ClientSecret
	}
	return resp
}
