package toggle_turf

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Turf-BookingService/internal/api/handlers"
	"github.com/m04kA/Turf-BookingService/internal/api/middleware"
	"github.com/m04kA/Turf-BookingService/internal/service/turfs"
)

const (
	msgInvalidTurfID      = "некорректный ID турфа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "турф не найден"
	msgForbidden          = "доступ запрещен"
)

// ToggleTurfRequest HTTP request model
type ToggleTurfRequest struct {
	IsActive *bool `json:"isActive"`
}

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

// Handle PATCH /api/v1/turfs/{turfId}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем turfId из URL
	vars := mux.Vars(r)
	turfIDStr := vars["turfId"]

	turfID, err := strconv.ParseInt(turfIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turfs/{id}/active - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /turfs/{id}/active - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ToggleTurfRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.IsActive == nil {
		h.logger.Warn("PATCH /turfs/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Переключаем активность турфа
	result, err := h.service.SetActive(r.Context(), turfID, userID, *req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, turfs.ErrTurfNotFound):
			h.logger.Warn("PATCH /turfs/{id}/active - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, turfs.ErrAccessDenied):
			h.logger.Warn("PATCH /turfs/{id}/active - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /turfs/{id}/active - Failed to toggle turf: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turfs/{id}/active - Turf toggled successfully: turf_id=%d, active=%t", turfID, *req.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}
