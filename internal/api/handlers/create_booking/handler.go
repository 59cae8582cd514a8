package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/service/bookings/models"
	createBooking "github.com/vgcman16/CleanMate/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgSlotInPast          = "выберите время в будущем"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceUnavailable  = "услуга временно недоступна"
	msgAddressRequired     = "выберите адрес уборки"
	msgTooFewRooms         = "количество комнат меньше минимального для услуги"
	msgInvalidBookingInput = "некорректные данные бронирования"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%s, slot=%s", userID, req.SlotStart)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: user_id=%s, date=%s, slot=%s", userID, req.ScheduledDate, req.SlotStart)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceUnavailable):
			h.logger.Warn("POST /bookings - Service unavailable: service_id=%s", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceUnavailable)

		case errors.Is(err, createBooking.ErrAddressRequired):
			h.logger.Warn("POST /bookings - Address required: user_id=%s, address_id=%s", userID, req.AddressID)
			handlers.RespondBadRequest(w, msgAddressRequired)

		case errors.Is(err, createBooking.ErrTooFewRooms):
			h.logger.Warn("POST /bookings - Too few rooms: service_id=%s, rooms=%d", req.ServiceID, req.RoomCount)
			handlers.RespondBadRequest(w, msgTooFewRooms)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, service_id=%s, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%s, total=%s",
		booking.ID, userID, booking.TotalPrice.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(booking))
}
