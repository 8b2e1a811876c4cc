package get_owner_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Turf-BookingService/internal/api/handlers"
	"github.com/m04kA/Turf-BookingService/internal/api/middleware"
	"github.com/m04kA/Turf-BookingService/internal/service/bookings"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
	msgInvalidTurfID  = "некорректный ID турфа"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus  = "некорректный статус бронирования"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/bookings
// Query params: turfId, date, sport, status, includeCancelled (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ownerId из URL
	vars := mux.Vars(r)
	ownerIDStr := vars["ownerId"]

	ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /owners/{ownerId}/bookings - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Получаем authUserID из контекста (через middleware Auth)
	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /owners/{ownerId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Владелец может смотреть только бронирования своих турфов
	if authUserID != ownerID {
		h.logger.Warn("GET /owners/{ownerId}/bookings - Access denied: owner_id=%d, auth_user_id=%d", ownerID, authUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Извлекаем фильтры из query параметров
	query := r.URL.Query()

	var turfID *int64
	if v := query.Get("turfId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.logger.Warn("GET /owners/{ownerId}/bookings - Invalid turf ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTurfID)
			return
		}
		turfID = &id
	}

	includeCancelled := query.Get("includeCancelled") == "true"

	serviceReq, err := ToServiceRequest(ownerID, turfID, query.Get("date"), query.Get("sport"), query.Get("status"), includeCancelled)
	if err != nil {
		h.logger.Warn("GET /owners/{ownerId}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем бронирования владельца
	result, err := h.service.GetOwnerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /owners/{ownerId}/bookings - Invalid status: owner_id=%d", ownerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /owners/{ownerId}/bookings - Access denied to turf filter: owner_id=%d", ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /owners/{ownerId}/bookings - Failed to get bookings: owner_id=%d, error=%v",
				ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{ownerId}/bookings - Bookings retrieved successfully: owner_id=%d, count=%d",
		ownerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
