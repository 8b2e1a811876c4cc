package toggle_sport

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
	msgTurfNotFound       = "турф не найден"
	msgSportNotFound      = "вид спорта не найден"
	msgForbidden          = "доступ запрещен"
)

// ToggleSportRequest HTTP request model
type ToggleSportRequest struct {
	Available *bool `json:"available"`
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

// Handle PATCH /api/v1/turfs/{turfId}/sports/{sportName}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем turfId и sportName из URL
	vars := mux.Vars(r)
	turfIDStr := vars["turfId"]
	sportName := vars["sportName"]

	turfID, err := strconv.ParseInt(turfIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/availability - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ToggleSportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Available == nil {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Переключаем доступность вида спорта
	result, err := h.service.SetSportAvailability(r.Context(), turfID, sportName, userID, *req.Available)
	if err != nil {
		switch {
		case errors.Is(err, turfs.ErrTurfNotFound):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/availability - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, turfs.ErrSportNotFound):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/availability - Sport not found: turf_id=%d, sport=%s", turfID, sportName)
			handlers.RespondNotFound(w, msgSportNotFound)

		case errors.Is(err, turfs.ErrAccessDenied):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/availability - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /turfs/{id}/sports/{sport}/availability - Failed to toggle sport: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turfs/{id}/sports/{sport}/availability - Sport toggled successfully: turf_id=%d, sport=%s, available=%t",
		turfID, sportName, *req.Available)
	handlers.RespondJSON(w, http.StatusOK, result)
}
