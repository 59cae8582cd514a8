package reconcile_payment

import "github.com/vgcman16/CleanMate/internal/domain"

// Request модель запроса на сверку
type Request struct {
	IntentID       int64  // Локальный ID намерения
	ExternalStatus string // Статус намерения в платежной системе
}

// Response итог сверки
type Response struct {
	IntentID      int64
	IntentStatus  domain.IntentStatus
	BookingID     int64
	BookingStatus domain.BookingStatus
	PaymentStatus domain.PaymentStatus
}
