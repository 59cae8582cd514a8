package confirm_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/domain"
	confirmPayment "github.com/vgcman16/CleanMate/internal/usecase/confirm_payment"
)

const (
	msgInvalidIntentID    = "некорректный ID платежа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMissingMethod      = "выберите способ оплаты"
	msgNotFound           = "платеж не найден"
	msgForbidden          = "доступ запрещен"
	msgIntentClosed       = "платеж уже завершен, создайте новый"
	msgPaymentUnavailable = "платежная система недоступна, попробуйте позже"
	msgPaymentRejected    = "платеж отклонен платежной системой"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payment-intents/{intentId}/confirm
// Отказ по карте возвращается с кодом 200 и outcome=failed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	intentID, err := strconv.ParseInt(mux.Vars(r)["intentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /payment-intents/{id}/confirm - Invalid intent ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIntentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payment-intents/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payment-intents/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		IntentID:        intentID,
		UserID:          userID,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingMethod)

		case errors.Is(err, confirmPayment.ErrIntentNotFound):
			h.logger.Warn("POST /payment-intents/{id}/confirm - Intent not found: intent_id=%d", intentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrAccessDenied):
			h.logger.Warn("POST /payment-intents/{id}/confirm - Access denied: intent_id=%d, user_id=%s", intentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /payment-intents/{id}/confirm - Intent not confirmable: intent_id=%d, error=%v", intentID, err)
			handlers.RespondConflict(w, msgIntentClosed)

		case errors.Is(err, domain.ErrExternalService):
			h.logger.Error("POST /payment-intents/{id}/confirm - Payment provider failed: intent_id=%d, error=%v", intentID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /payment-intents/{id}/confirm - Rejected by provider: intent_id=%d, error=%v", intentID, err)
			handlers.RespondBadRequest(w, msgPaymentRejected)

		default:
			h.logger.Error("POST /payment-intents/{id}/confirm - Failed to confirm: intent_id=%d, error=%v", intentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payment-intents/{id}/confirm - Confirmed: intent_id=%d, outcome=%s, payment_status=%s",
		intentID, result.Outcome, result.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
