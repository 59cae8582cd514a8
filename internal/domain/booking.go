package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// bookingTransitions допустимые переходы статусов бронирования
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseBookingStatus parses a status value received from clients or storage
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if _, ok := bookingTransitions[status]; !ok {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrValidation, s)
	}
	return status, nil
}

// CanTransitionTo returns true if the state machine allows moving to target
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true for completed and cancelled bookings
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentPaid       PaymentStatus = "paid"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

// Booking represents a scheduled cleaning
type Booking struct {
	ID        int64
	UserID    string
	ServiceID string

	// Снимок данных на момент бронирования
	ServiceName string
	Address     Address

	ScheduledDate       time.Time
	Slot                TimeSlot
	RoomCount           int
	SpecialInstructions *string
	TotalPrice          decimal.Decimal

	Status        BookingStatus
	PaymentStatus PaymentStatus

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// CanBeCancelled returns true if the booking is not in a terminal state
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// IsPaid returns true once a succeeded payment has been reconciled
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// BookingFilter фильтр списка бронирований пользователя
type BookingFilter struct {
	UserID string
	Status *BookingStatus
	// UpcomingAfter оставляет только неотмененные визиты, начинающиеся позже момента,
	// ближайшие первыми
	UpcomingAfter *time.Time
	Limit         int
}
