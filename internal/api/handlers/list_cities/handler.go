package list_cities

import (
	"net/http"

	"github.com/m04kA/Turf-BookingService/internal/api/handlers"
)

type Handler struct {
	service TurfService
	logger  Logger
}

func NewHandler(service TurfService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Cities(r.Context())
	if err != nil {
		h.logger.Error("GET /cities - Failed to list cities: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /cities - Cities retrieved successfully: count=%d", len(result.Cities))
	handlers.RespondJSON(w, http.StatusOK, result)
}
