package sign_in

import (
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSignInFailed       = "не удалось войти"
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

// Handle POST /api/v1/auth/sign-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/sign-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SignIn(r.Context(), &req)
	if err != nil {
		h.logger.Warn("POST /auth/sign-in - Sign in failed: email=%s, error=%v", req.Email, err)
		handlers.RespondDomainError(w, err, handlers.PublicMessage(err, msgSignInFailed))
		return
	}

	h.logger.Info("POST /auth/sign-in - User signed in: user_id=%s", session.UserID)
	handlers.RespondJSON(w, http.StatusOK, session)
}
