package update_sport_pricing

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
	msgInvalidPricing     = "некорректная тарифная сетка"
)

// UpdateSportPricingRequest HTTP request model
type UpdateSportPricingRequest struct {
	Pricing []PricingTierRequest `json:"pricing"`
}

// PricingTierRequest один тариф в тарифной сетке
type PricingTierRequest struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Rate      float64 `json:"rate"`
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

// Handle PATCH /api/v1/turfs/{turfId}/sports/{sportName}/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем turfId и sportName из URL
	vars := mux.Vars(r)
	turfIDStr := vars["turfId"]
	sportName := vars["sportName"]

	turfID, err := strconv.ParseInt(turfIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/pricing - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/pricing - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSportPricingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/pricing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateSportPricingRequest{
		UserID: userID,
	}
	for _, t := range req.Pricing {
		serviceReq.Pricing = append(serviceReq.Pricing, models.PricingTierRequest{
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
			Rate:      t.Rate,
		})
	}

	// Заменяем тарифную сетку вида спорта
	result, err := h.service.ReplaceSportPricing(r.Context(), turfID, sportName, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, turfs.ErrTurfNotFound):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/pricing - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, turfs.ErrSportNotFound):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/pricing - Sport not found: turf_id=%d, sport=%s", turfID, sportName)
			handlers.RespondNotFound(w, msgSportNotFound)

		case errors.Is(err, turfs.ErrAccessDenied):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/pricing - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, turfs.ErrInvalidPricing):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/pricing - Invalid pricing: turf_id=%d, error=%v", turfID, err)
			handlers.RespondBadRequest(w, msgInvalidPricing)

		case errors.Is(err, turfs.ErrInvalidInput):
			h.logger.Warn("PATCH /turfs/{id}/sports/{sport}/pricing - Invalid input: turf_id=%d, error=%v", turfID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /turfs/{id}/sports/{sport}/pricing - Failed to update pricing: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turfs/{id}/sports/{sport}/pricing - Pricing updated successfully: turf_id=%d, sport=%s, tiers=%d",
		turfID, sportName, len(req.Pricing))
	handlers.RespondJSON(w, http.StatusOK, result)
}
