package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Turf-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/Turf-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTurfID   = "некорректный ID турфа"
	msgMissingSport    = "вид спорта обязателен"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTurfNotFound    = "турф не найден"
	msgSportNotOffered = "вид спорта не предлагается на этом турфе"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/available-slots
// Query params: sport (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем turfId из URL
	turfIDStr := vars["turfId"]
	turfID, err := strconv.ParseInt(turfIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/available-slots - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	// Извлекаем sport из query параметров
	sport := r.URL.Query().Get("sport")
	if sport == "" {
		h.logger.Warn("GET /turfs/{id}/available-slots - Missing sport")
		handlers.RespondBadRequest(w, msgMissingSport)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /turfs/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(turfID, sport, dateStr)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/available-slots - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, getAvailableSlots.ErrSportNotOffered):
			h.logger.Warn("GET /turfs/{id}/available-slots - Sport not offered: turf_id=%d, sport=%s", turfID, sport)
			handlers.RespondNotFound(w, msgSportNotOffered)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /turfs/{id}/available-slots - Invalid input: turf_id=%d, error=%v", turfID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /turfs/{id}/available-slots - Failed to get slots: turf_id=%d, sport=%s, error=%v",
				turfID, sport, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /turfs/{id}/available-slots - Slots retrieved successfully: turf_id=%d, sport=%s, available=%d, booked=%d",
		turfID, sport, len(result.AvailableSlots), len(result.BookedSlots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
