package get_profile

import (
	"errors"
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/service/session"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgProfileNotFound = "профиль не найден"
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

// Handle GET /api/v1/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /profile - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, session.ErrProfileNotFound) {
			h.logger.Warn("GET /profile - Profile not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)
			return
		}
		h.logger.Error("GET /profile - Failed to get profile: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /profile - Profile retrieved: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusOK, profile)
}
