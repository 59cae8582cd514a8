package create_booking

import (
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
	createBooking "github.com/vgcman16/CleanMate/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID           string  `json:"serviceId"`
	AddressID           string  `json:"addressId"`
	ScheduledDate       string  `json:"scheduledDate"` // "2025-10-15"
	SlotStart           string  `json:"slotStart"`     // "10:00"
	RoomCount           int     `json:"roomCount"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case. Дата читается в часовом поясе loc
func (r *CreateBookingRequest) ToUseCaseRequest(userID string, loc *time.Location) (*createBooking.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.ScheduledDate, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:              userID,
		ServiceID:           r.ServiceID,
		AddressID:           r.AddressID,
		Date:                date,
		SlotStart:           r.SlotStart,
		RoomCount:           r.RoomCount,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}
