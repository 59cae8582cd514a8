package list_payment_methods

import (
	"errors"
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/domain"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle GET /api/v1/payment-methods
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /payment-methods - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListSavedMethods(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrExternalService) {
			h.logger.Error("GET /payment-methods - Payment provider failed: user_id=%s, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)
			return
		}
		h.logger.Error("GET /payment-methods - Failed to list methods: user_id=%s, error=%v", userID, err)
		handlers.RespondDomainError(w, err, handlers.PublicMessage(err, msgPaymentUnavailable))
		return
	}

	h.logger.Info("GET /payment-methods - Success: user_id=%s, count=%d", userID, len(result.PaymentMethods))
	handlers.RespondJSON(w, http.StatusOK, result)
}
