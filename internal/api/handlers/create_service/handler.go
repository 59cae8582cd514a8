package create_service

import (
	"errors"
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/service/catalog"
	"github.com/vgcman16/CleanMate/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidService     = "некорректные данные услуги"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	svc, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("POST /internal/services - Invalid service: name=%q, error=%v", req.Name, err)
			handlers.RespondBadRequest(w, handlers.PublicMessage(err, msgInvalidService))
			return
		}
		h.logger.Error("POST /internal/services - Failed to create service: name=%q, error=%v", req.Name, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/services - Service created: service_id=%s", svc.ID)
	handlers.RespondJSON(w, http.StatusCreated, svc)
}
