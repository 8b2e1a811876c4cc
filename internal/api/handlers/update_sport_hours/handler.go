package update_sport_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Turf-BookingService/internal/api/handlers"
	"github.com/m04kA/Turf-BookingService/internal/api/middleware"
	"github.com/m04kA/Turf-BookingService/internal/service/turfs"
	"github.com/m04kA/Turf-BookingService/internal/service/turfs/models"
)

const (
	msgInvalidTurfID      = "некорректный ID турфа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTurfNotFound       = "турф не найден"
	msgSportNotFound      = "вид спорта не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidTimeRange   = "время открытия должно быть раньше времени закрытия"
)

// UpdateSportHoursRequest HTTP request model
type UpdateSportHoursRequest struct {
	OpenTime  string `json:"openTime"`  // "08:00"
	CloseTime string `json:"closeTime"` // "20:00"
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

// Handle PATCH /api/v1/turfs/{turfId}/sports/{sportName}/hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем turfId и sportName из URL
	vars := mux.Vars(r)
	turfIDStr := vars["turfId"]
	sportName := vars["sportName"]

	turfID, err := strconv.ParseInt(turfIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/hours - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSportHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateSportHoursRequest{
		UserID:    userID,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
	}

	// Обновляем часы работы вида спорта
	result, err := h.service.SetSportHours(r.Context(), turfID, sportName, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, turfs.ErrTurfNotFound):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/hours - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, turfs.ErrSportNotFound):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/hours - Sport not found: turf_id=%d, sport=%s", turfID, sportName)
			handlers.RespondNotFound(w, msgSportNotFound)

		case errors.Is(err, turfs.ErrAccessDenied):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/hours - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, turfs.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/hours - Invalid time range: turf_id=%d, error=%v", turfID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, turfs.ErrInvalidInput):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/hours - Invalid input: turf_id=%d, error=%v", turfID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /turfs/{id}/sports/{sport}/hours - Failed to update hours: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turfs/{id}/sports/{sport}/hours - Hours updated successfully: turf_id=%d, sport=%s, hours=%s-%s",
		turfID, sportName, req.OpenTime, req.CloseTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
