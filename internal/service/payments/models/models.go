package models

import "github.com/vgcman16/CleanMate/internal/domain"

// Request модели

// AddMethodRequest запрос на сохранение способа оплаты
type AddMethodRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
	MakeDefault     bool   `json:"makeDefault"`
}

// Response модели

// PaymentMethodResponse сохраненный способ оплаты
type PaymentMethodResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Last4       string  `json:"last4"`
	ExpiryMonth *int    `json:"expiryMonth,omitempty"`
	ExpiryYear  *int    `json:"expiryYear,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	IsDefault   bool    `json:"isDefault"`
	DisplayName string  `json:"displayName"`
}

// PaymentMethodListResponse список способов оплаты
type PaymentMethodListResponse struct {
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
}

// FromDomainMethod конвертирует domain модель в DTO
func FromDomainMethod(m domain.SavedPaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:          m.ID,
		Type:        string(m.Type),
		Last4:       m.Last4,
		ExpiryMonth: m.ExpiryMonth,
		ExpiryYear:  m.ExpiryYear,
		Brand:       m.Brand,
		IsDefault:   m.IsDefault,
		DisplayName: m.DisplayName(),
	}
}

// FromDomainMethodList конвертирует список domain моделей в DTO
func FromDomainMethodList(methods []domain.SavedPaymentMethod) *PaymentMethodListResponse {
	resp := &PaymentMethodListResponse{PaymentMethods: make([]PaymentMethodResponse, 0, len(methods))}
	for _, m := range methods {
		resp.PaymentMethods = append(resp.PaymentMethods, FromDomainMethod(m))
	}
	return resp
}
