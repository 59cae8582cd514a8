package list_services

import (
	"net/http"
	"strconv"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
)

const msgInvalidPopular = "параметр popular должен быть true или false"

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

// Handle GET /api/v1/services
// Query params: category (optional), popular (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var category *string
	if c := query.Get("category"); c != "" {
		category = &c
	}

	popularOnly := false
	if p := query.Get("popular"); p != "" {
		parsed, err := strconv.ParseBool(p)
		if err != nil {
			h.logger.Warn("GET /services - Invalid popular flag: %q", p)
			handlers.RespondBadRequest(w, msgInvalidPopular)
			return
		}
		popularOnly = parsed
	}

	result, err := h.service.List(r.Context(), category, popularOnly)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondDomainError(w, err, handlers.PublicMessage(err, "каталог недоступен"))
		return
	}

	h.logger.Info("GET /services - Services listed: count=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
