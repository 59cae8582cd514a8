package get_user_bookings

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/service/bookings/models"
)

type BookingService interface {
	ListUserBookings(ctx context.Context, userID string, req models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
