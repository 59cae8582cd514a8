package sign_up

import (
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSignUpFailed       = "не удалось зарегистрироваться"
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

// Handle POST /api/v1/auth/sign-up
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/sign-up - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		h.logger.Warn("POST /auth/sign-up - Sign up failed: email=%s, error=%v", req.Email, err)
		handlers.RespondDomainError(w, err, handlers.PublicMessage(err, msgSignUpFailed))
		return
	}

	h.logger.Info("POST /auth/sign-up - User registered: user_id=%s", session.UserID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
