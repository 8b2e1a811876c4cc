package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/booking"
	turfRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
	"github.com/m04kA/Turf-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	turfRepo     TurfRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	turfRepo TurfRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		turfRepo:     turfRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или бронирования на собственных турфах, если он владелец
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу. Статус completed производный, поэтому
// фильтрация по нему (и по pending) идёт по вычисленному статусу, а не по SQL
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	now := s.timeProvider.Now()

	// Конвертируем статус из строки в domain.BookingStatus
	var wantStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		wantStatus = &status
	}

	// В SQL фильтруем только по хранимым статусам; pending и completed
	// различаются уже после вычисления производного статуса
	var storedStatus *domain.BookingStatus
	if wantStatus != nil {
		stored := *wantStatus
		if stored == domain.StatusCompleted {
			stored = domain.StatusPending
		}
		storedStatus = &stored
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, storedStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	bookings = filterByDisplayStatus(bookings, wantStatus, now)

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, now), nil
}

// GetOwnerBookings получает бронирования по всем турфам владельца
// Поддерживает фильтрацию по турфу, дате, виду спорта, статусу и включению
// отменённых бронирований
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for owner=%d", req.OwnerID)

	now := s.timeProvider.Now()

	turfIDs, err := s.turfRepo.GetIDsByOwner(ctx, req.OwnerID)
	if err != nil {
		s.logger.Error("GetOwnerBookings: failed to get turfs for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	if len(turfIDs) == 0 {
		s.logger.Info("GetOwnerBookings: owner=%d has no turfs", req.OwnerID)
		return models.FromDomainBookingList(nil, now), nil
	}

	// Фильтр по конкретному турфу применяем только если турф принадлежит владельцу
	if req.TurfID != nil {
		if !containsID(turfIDs, *req.TurfID) {
			s.logger.Warn("GetOwnerBookings: turf id=%d does not belong to owner=%d", *req.TurfID, req.OwnerID)
			return nil, ErrAccessDenied
		}
		turfIDs = []int64{*req.TurfID}
	}

	var wantStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetOwnerBookings: invalid status=%s for owner=%d", *req.Status, req.OwnerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		wantStatus = &status
	}

	filter := domain.BookingsFilter{
		TurfIDs:          turfIDs,
		Date:             req.Date,
		SportName:        req.SportName,
		IncludeCancelled: req.IncludeCancelled,
	}

	// См. GetUserBookings: completed хранится как pending
	if wantStatus != nil {
		stored := *wantStatus
		if stored == domain.StatusCompleted {
			stored = domain.StatusPending
		}
		filter.Status = &stored
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	bookings = filterByDisplayStatus(bookings, wantStatus, now)

	s.logger.Info("GetOwnerBookings: successfully fetched %d bookings for owner=%d", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings, now), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование (cancelled_by_user)
// Владелец турфа может отменить любое бронирование на своём турфе (cancelled_by_owner)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	// Прошедшее бронирование считается завершённым и отмене не подлежит
	now := s.timeProvider.Now()
	if !booking.CanBeCancelled() || booking.DisplayStatus(now) == domain.StatusCompleted {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.DisplayStatus(now))
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	// Проверяем, является ли пользователь владельцем бронирования
	if booking.UserID == req.UserID {
		cancelStatus = domain.StatusCancelledByUser
	} else {
		// Проверяем, является ли пользователь владельцем турфа
		if err := s.checkOwnerAccess(ctx, booking.TurfID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByOwner
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или бронирование на своём турфе
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь владельцем турфа
	if err := s.checkOwnerAccess(ctx, booking.TurfID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем турфа
func (s *Service) checkOwnerAccess(ctx context.Context, turfID int64, userID int64) error {
	turf, err := s.turfRepo.GetByID(ctx, turfID)
	if err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			s.logger.Warn("checkOwnerAccess: turf id=%d not found", turfID)
			return ErrTurfNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get turf id=%d: %v", turfID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get turf: %v", ErrInternal, err)
	}

	if turf.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of turf=%d", userID, turfID)
		return ErrAccessDenied
	}

	return nil
}

// filterByDisplayStatus фильтрует бронирования по производному статусу.
// Нужен для различения pending и completed: в хранилище оба лежат как pending
func filterByDisplayStatus(bookings []*domain.Booking, status *domain.BookingStatus, now time.Time) []*domain.Booking {
	if status == nil {
		return bookings
	}

	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.DisplayStatus(now) == *status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
