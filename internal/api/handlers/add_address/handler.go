package add_address

import (
	"errors"
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/service/session"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAddress     = "некорректный адрес"
	msgProfileNotFound    = "профиль не найден"
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

// Handle POST /api/v1/profile/addresses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /profile/addresses - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddAddressRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /profile/addresses - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	address, err := h.service.AddAddress(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("POST /profile/addresses - Invalid address: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidAddress)

		case errors.Is(err, session.ErrProfileNotFound):
			h.logger.Warn("POST /profile/addresses - Profile not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("POST /profile/addresses - Failed to add address: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /profile/addresses - Address added: user_id=%s, address_id=%s, default=%t", userID, address.ID, address.IsDefault)
	handlers.RespondJSON(w, http.StatusCreated, address)
}
