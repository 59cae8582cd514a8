package sign_out

import (
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgSignOutFailed = "не удалось выйти"
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

// Handle POST /api/v1/auth/sign-out
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /auth/sign-out - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.SignOut(r.Context(), userID); err != nil {
		h.logger.Error("POST /auth/sign-out - Sign out failed: user_id=%s, error=%v", userID, err)
		handlers.RespondDomainError(w, err, handlers.PublicMessage(err, msgSignOutFailed))
		return
	}

	h.logger.Info("POST /auth/sign-out - User signed out: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
