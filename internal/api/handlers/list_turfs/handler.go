package list_turfs

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

// Handle GET /api/v1/turfs
// Query params: city (опционально), sport (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем фильтры из query параметров
	var city, sport *string
	if v := r.URL.Query().Get("city"); v != "" {
		city = &v
	}
	if v := r.URL.Query().Get("sport"); v != "" {
		sport = &v
	}

	// Получаем список турфов
	result, err := h.service.List(r.Context(), city, sport)
	if err != nil {
		h.logger.Error("GET /turfs - Failed to list turfs: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /turfs - Turfs retrieved successfully: count=%d", len(result.Turfs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
