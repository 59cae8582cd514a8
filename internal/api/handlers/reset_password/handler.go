package reset_password

import (
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgResetFailed        = "не удалось отправить письмо для сброса пароля"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/reset-password
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/reset-password - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		h.logger.Warn("POST /auth/reset-password - Reset failed: email=%s, error=%v", req.Email, err)
		handlers.RespondDomainError(w, err, handlers.PublicMessage(err, msgResetFailed))
		return
	}

	h.logger.Info("POST /auth/reset-password - Reset email sent: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusAccepted, nil)
}
