package set_default_address

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/service/session"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgAddressNotFound = "адрес не найден"
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

// Handle PUT /api/v1/profile/addresses/{addressId}/default
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	addressID := mux.Vars(r)["addressId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /profile/addresses/{id}/default - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	profile, err := h.service.SetDefaultAddress(r.Context(), userID, addressID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrAddressNotFound):
			h.logger.Warn("PUT /profile/addresses/{id}/default - Address not found: user_id=%s, address_id=%s", userID, addressID)
			handlers.RespondNotFound(w, msgAddressNotFound)

		case errors.Is(err, session.ErrProfileNotFound):
			h.logger.Warn("PUT /profile/addresses/{id}/default - Profile not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("PUT /profile/addresses/{id}/default - Failed to set default: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /profile/addresses/{id}/default - Default address set: user_id=%s, address_id=%s", userID, addressID)
	handlers.RespondJSON(w, http.StatusOK, profile)
}
