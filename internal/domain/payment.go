package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// IntentStatus represents the status of a payment intent
type IntentStatus string

const (
	IntentPending    IntentStatus = "pending"
	IntentProcessing IntentStatus = "processing"
	IntentSucceeded  IntentStatus = "succeeded"
	IntentFailed     IntentStatus = "failed"
	IntentCanceled   IntentStatus = "canceled"
)

// IsOpen returns true while the intent may still be paid
func (s IntentStatus) IsOpen() bool {
	return s == IntentPending || s == IntentProcessing
}

// PaymentIntent is a tracked attempt to charge a user for a booking
type PaymentIntent struct {
	ID        int64
	BookingID int64
	// Amount в минимальных единицах валюты (центах)
	Amount       int64
	Currency     string
	Status       IntentStatus
	ExternalID   *string
	ClientSecret *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AmountFromPrice converts a decimal price into minor currency units, rounding half away from zero
func AmountFromPrice(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// PaymentMethodType type of a saved payment method
type PaymentMethodType string

const (
	MethodCard     PaymentMethodType = "card"
	MethodApplePay PaymentMethodType = "applePay"
)

// SavedPaymentMethod is a payment method stored at the processor
type SavedPaymentMethod struct {
	ID          string
	Type        PaymentMethodType
	Last4       string
	ExpiryMonth *int
	ExpiryYear  *int
	Brand       *string
	IsDefault   bool
}

// DisplayName returns e.g. "Visa •••• 4242"
func (m SavedPaymentMethod) DisplayName() string {
	if m.Type == MethodApplePay {
		return "Apple Pay"
	}
	brand := "Card"
	if m.Brand != nil && *m.Brand != "" {
		brand = *m.Brand
	}
	return fmt.Sprintf("%s •••• %s", brand, m.Last4)
}
