package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/service/bookings"
	"github.com/vgcman16/CleanMate/internal/service/bookings/models"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidStatus   = "некорректный статус бронирования"
	msgInvalidUpcoming = "параметр upcoming должен быть true или false"
	msgInvalidLimit    = "некорректный параметр limit"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: status, upcoming, limit (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	var req models.ListBookingsRequest
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if raw := query.Get("upcoming"); raw != "" {
		upcoming, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid upcoming: user_id=%s, value=%s", userID, raw)
			handlers.RespondBadRequest(w, msgInvalidUpcoming)
			return
		}
		req.Upcoming = upcoming
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > bookings.MaxListLimit {
			h.logger.Warn("GET /bookings - Invalid limit: user_id=%s, value=%s", userID, raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.ListUserBookings(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /bookings - Failed to get bookings: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%s, count=%d", userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
