package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/booking"
	turfRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	turfRepo     TurfRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	turfRepo TurfRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		turfRepo:     turfRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости и insert выполняются в сериализуемой транзакции с
// блокировкой бронирований дня (FOR UPDATE); частичный уникальный индекс
// в хранилище страхует от гонки двух одновременных запросов на один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, turf=%d, sport=%s, date=%s, slot=%s",
		req.UserID, req.TurfID, req.SportName, req.Date.Format(domain.DateFormat), req.SlotLabel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем турф вместе с видами спорта и тарифами
		turf, err := uc.turfRepo.GetByID(txCtx, req.TurfID)
		if err != nil {
			if errors.Is(err, turfRepo.ErrTurfNotFound) {
				uc.logger.Warn("CreateBooking: turf id=%d not found", req.TurfID)
				return ErrTurfNotFound
			}
			uc.logger.Error("CreateBooking: failed to get turf id=%d: %v", req.TurfID, err)
			return fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
		}

		// 3.2. Проверяем вид спорта
		sport := turf.SportByName(req.SportName)
		if sport == nil {
			uc.logger.Warn("CreateBooking: sport %q not offered at turf id=%d", req.SportName, req.TurfID)
			return ErrSportNotOffered
		}
		if !sport.Available {
			uc.logger.Warn("CreateBooking: sport %q is closed for booking at turf id=%d", req.SportName, req.TurfID)
			return ErrSportUnavailable
		}

		// 3.3. Дата не должна быть в прошлом
		if domain.DateInPast(req.Date, now) {
			uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
			return ErrInvalidDate
		}

		// 3.4. Пересобираем актуальную сетку слотов и проверяем членство метки.
		// Это защита от устаревшего состояния клиента: если владелец сменил
		// часы работы или длительность слота, старые метки отклоняются
		requested := req.SlotLabel.Trimmed()
		resolvedPrice, ok := findSlot(turf, sport, requested, req.Date, now)
		if !ok {
			uc.logger.Warn("CreateBooking: slot %q is not in the current slot grid of turf id=%d", requested, req.TurfID)
			return ErrInvalidSlot
		}

		// 3.5. Цена всегда разрешается на сервере по текущей тарифной сетке.
		// Цена клиента используется только для сверки
		if err := verifyClientPrice(req.Price, resolvedPrice); err != nil {
			uc.logger.Warn("CreateBooking: client price mismatch for slot %q: %v", requested, err)
			return err
		}

		// 3.6. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			TurfID:    &req.TurfID,
			Date:      &req.Date,
			SportName: &req.SportName,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.7. Проверяем занятость кортежа (турф, дата, слот, спорт)
		for _, b := range bookings {
			if b.IsActive() && b.SlotLabel.Trimmed() == requested {
				uc.logger.Warn("CreateBooking: slot %q already booked at turf id=%d", requested, req.TurfID)
				return ErrSlotTaken
			}
		}

		// 3.8. Сохраняем бронирование
		booking := &domain.Booking{
			Reference:   uuid.New(),
			UserID:      req.UserID,
			UserName:    req.UserName,
			TurfID:      req.TurfID,
			BookingDate: req.Date,
			SlotLabel:   requested,
			SportName:   req.SportName,
			Price:       resolvedPrice,
			Status:      domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Уникальный индекс поймал гонку, которую не увидела проверка выше
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %q taken concurrently at turf id=%d", requested, req.TurfID)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s", result.ID, result.Reference)

	return &Response{
		ID:        result.ID,
		Reference: result.Reference,
		UserID:    result.UserID,
		UserName:  result.UserName,
		TurfID:    result.TurfID,
		Date:      result.BookingDate,
		SlotLabel: result.SlotLabel,
		SportName: result.SportName,
		Price:     result.Price,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}

// findSlot ищет метку в свежесгенерированной сетке слотов и возвращает
// разрешённую по тарифам цену. Сетка собирается с пустым множеством занятых
// слотов: занятость проверяется отдельно, чтобы отличать "слот занят"
// от "слота не существует"
func findSlot(turf *domain.Turf, sport *domain.Sport, label domain.SlotLabel, date, now time.Time) (*float64, bool) {
	availability := domain.BuildAvailability(turf.WindowFor(sport), sport.Pricing, true, nil, date, now)
	for _, slot := range availability.AvailableSlots {
		if slot.Label == label {
			return slot.Price, true
		}
	}
	return nil, false
}
