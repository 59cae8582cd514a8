package models

import (
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса (внутренний API)
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest параметры списка бронирований пользователя
type ListBookingsRequest struct {
	Status   *string
	Upcoming bool
	Limit    int
}

// Response модели

// SlotResponse временной слот бронирования
type SlotResponse struct {
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "12:00"
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64        `json:"id"`
	UserID        string       `json:"userId"`
	ServiceID     string       `json:"serviceId"`
	ScheduledDate string       `json:"scheduledDate"` // "2025-10-15"
	Slot          SlotResponse `json:"slot"`
	RoomCount     int          `json:"roomCount"`
	TotalPrice    string       `json:"totalPrice"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"paymentStatus"`

	// Снимок данных на момент бронирования
	ServiceName         string         `json:"serviceName"`
	Address             domain.Address `json:"address"`
	FullAddress         string         `json:"fullAddress"`
	SpecialInstructions *string        `json:"specialInstructions,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ServiceID:     b.ServiceID,
		ScheduledDate: b.ScheduledDate.Format(domain.DateFormat),
		Slot: SlotResponse{
			Start: b.Slot.Start.Format(domain.TimeFormat),
			End:   b.Slot.End.Format(domain.TimeFormat),
		},
		RoomCount:           b.RoomCount,
		TotalPrice:          b.TotalPrice.StringFixed(2),
		Status:              string(b.Status),
		PaymentStatus:       string(b.PaymentStatus),
		ServiceName:         b.ServiceName,
		Address:             b.Address,
		FullAddress:         b.Address.FullAddress(),
		SpecialInstructions: b.SpecialInstructions,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
