package create_payment_intent

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/domain"
	createPaymentIntent "github.com/vgcman16/CleanMate/internal/usecase/create_payment_intent"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgBookingCancelled   = "бронирование отменено"
	msgAlreadyPaid        = "бронирование уже оплачено"
	msgInvalidAmount      = "сумма к оплате должна быть больше нуля"
	msgPaymentUnavailable = "платежная система недоступна, попробуйте позже"
	msgPaymentRejected    = "платеж отклонен платежной системой"
)

type Handler struct {
	useCase CreatePaymentIntentUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentIntentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment-intent
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment-intent - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payment-intent - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createPaymentIntent.Request{BookingID: bookingID, UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, createPaymentIntent.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment-intent - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createPaymentIntent.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payment-intent - Access denied: booking_id=%d, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createPaymentIntent.ErrBookingCancelled):
			handlers.RespondConflict(w, msgBookingCancelled)

		case errors.Is(err, createPaymentIntent.ErrAlreadyPaid):
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, createPaymentIntent.ErrInvalidAmount):
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, domain.ErrExternalService):
			h.logger.Error("POST /bookings/{id}/payment-intent - Payment provider failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings/{id}/payment-intent - Rejected by provider: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgPaymentRejected)

		default:
			h.logger.Error("POST /bookings/{id}/payment-intent - Failed to create intent: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment-intent - Intent ready: booking_id=%d, intent_id=%d, amount=%d %s",
		bookingID, result.IntentID, result.Amount, result.Currency)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
