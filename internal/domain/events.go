package domain

import "time"

// BookingEventType type of a booking notification
type BookingEventType string

const (
	EventBookingCreated        BookingEventType = "booking.created"
	EventBookingStatusChanged  BookingEventType = "booking.status_changed"
	EventBookingPaymentUpdated BookingEventType = "booking.payment_updated"
)

// BookingEvent is published after a booking changes
type BookingEvent struct {
	Type          BookingEventType `json:"type"`
	BookingID     int64            `json:"bookingId"`
	UserID        string           `json:"userId"`
	Status        BookingStatus    `json:"status"`
	PaymentStatus PaymentStatus    `json:"paymentStatus"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// NewBookingEvent builds an event from the current booking state
func NewBookingEvent(t BookingEventType, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          t,
		BookingID:     b.ID,
		UserID:        b.UserID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		OccurredAt:    at,
	}
}
