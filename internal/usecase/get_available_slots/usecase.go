package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	turfRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	turfRepo     TurfRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	turfRepo TurfRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		turfRepo:     turfRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Картина доступности всегда вычисляется заново - результат не кэшируется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: turf=%d, sport=%s, date=%s",
		req.TurfID, req.SportName, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем турф вместе с видами спорта и тарифами
	turf, err := uc.turfRepo.GetByID(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			uc.logger.Warn("GetAvailableSlots: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	// 4. Проверяем, что вид спорта предлагается на этом турфе
	sport := turf.SportByName(req.SportName)
	if sport == nil {
		uc.logger.Warn("GetAvailableSlots: sport %q not offered at turf id=%d", req.SportName, req.TurfID)
		return nil, ErrSportNotOffered
	}

	// 5. Получаем занятые слоты на эту дату
	// Ключ занятости - точный кортеж (турф, дата, вид спорта)
	filter := domain.BookingsFilter{
		TurfID:    &req.TurfID,
		Date:      &req.Date,
		SportName: &req.SportName,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	reservedLabels := make([]domain.SlotLabel, 0, len(bookings))
	for _, b := range bookings {
		reservedLabels = append(reservedLabels, b.SlotLabel)
	}

	// 6. Собираем картину доступности
	// Окно спорта имеет приоритет над окном турфа; вид спорта, закрытый
	// для бронирования, даёт пустой список свободных слотов
	window := turf.WindowFor(sport)
	bookable := sport.Available && !domain.DateInPast(req.Date, now)

	availability := domain.BuildAvailability(
		window,
		sport.Pricing,
		bookable,
		reservedLabels,
		req.Date,
		now,
	)

	uc.logger.Info("GetAvailableSlots: turf=%d, sport=%s, date=%s: %d available, %d booked",
		req.TurfID, req.SportName, req.Date.Format(domain.DateFormat),
		len(availability.AvailableSlots), len(availability.BookedSlots))

	slots := make([]Slot, len(availability.AvailableSlots))
	for i, s := range availability.AvailableSlots {
		slots[i] = Slot{Time: s.Label, Price: s.Price}
	}

	return &Response{
		TurfID:         req.TurfID,
		SportName:      req.SportName,
		Date:           req.Date,
		AvailableSlots: slots,
		BookedSlots:    availability.BookedSlots,
	}, nil
}
