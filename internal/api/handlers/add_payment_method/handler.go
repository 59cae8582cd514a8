package add_payment_method

import (
	"errors"
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidMethod      = "некорректный способ оплаты"
	msgPaymentUnavailable = "платежная система недоступна, попробуйте позже"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payment-methods
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payment-methods - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddMethodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payment-methods - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddMethod(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /payment-methods - Invalid method: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidMethod)

		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, handlers.PublicMessage(err, msgInvalidMethod))

		case errors.Is(err, domain.ErrExternalService):
			h.logger.Error("POST /payment-methods - Payment provider failed: user_id=%s, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /payment-methods - Failed to add method: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payment-methods - Saved: user_id=%s, method_id=%s, default=%t", userID, result.ID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
