package reconcile_payment

import "github.com/vgcman16/CleanMate/internal/domain"

// MapExternalStatus переводит статус платежной системы в статус намерения.
// Неизвестные статусы считаются неуспешными
func MapExternalStatus(external string) domain.IntentStatus {
	switch external {
	case "succeeded":
		return domain.IntentSucceeded
	case "processing":
		return domain.IntentProcessing
	case "requires_payment_method", "requires_confirmation", "requires_action", "requires_capture":
		return domain.IntentPending
	case "canceled":
		return domain.IntentCanceled
	default:
		return domain.IntentFailed
	}
}

// nextIntentStatus не допускает понижения успешного намерения
func nextIntentStatus(current, mapped domain.IntentStatus) domain.IntentStatus {
	if current == domain.IntentSucceeded {
		return domain.IntentSucceeded
	}
	return mapped
}

// bookingAfter возвращает статусы бронирования после сверки намерения в статусе intent.
// changed=false, если бронирование менять не нужно
func bookingAfter(b *domain.Booking, intent domain.IntentStatus) (domain.PaymentStatus, domain.BookingStatus, bool) {
	switch intent {
	case domain.IntentSucceeded:
		status := b.Status
		if status == domain.StatusPending {
			status = domain.StatusConfirmed
		}
		if b.PaymentStatus == domain.PaymentPaid && status == b.Status {
			return b.PaymentStatus, b.Status, false
		}
		return domain.PaymentPaid, status, true
	case domain.IntentFailed:
		if b.PaymentStatus == domain.PaymentPaid || b.PaymentStatus == domain.PaymentFailed {
			return b.PaymentStatus, b.Status, false
		}
		return domain.PaymentFailed, b.Status, true
	default:
		return b.PaymentStatus, b.Status, false
	}
}
