package turfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	turfRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
	"github.com/m04kA/Turf-BookingService/internal/service/turfs/models"
	"github.com/m04kA/Turf-BookingService/pkg/types"
)

// Service сервис для работы с турфами
type Service struct {
	turfRepo  TurfRepository
	txManager TransactionManager
	validate  *validator.Validate
	logger    Logger
}

// NewService создает новый экземпляр сервиса турфов
func NewService(
	turfRepo TurfRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		turfRepo:  turfRepo,
		txManager: txManager,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Create создает новый турф вместе с видами спорта и тарифами
// Турф, виды спорта и тарифы вставляются в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateTurfRequest) (*models.TurfResponse, error) {
	s.logger.Info("Create: creating turf %q in city=%s for owner=%d", req.Name, req.City, req.OwnerID)

	// 1. Валидируем структуру запроса
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Конвертируем в domain модель (парсит времена, подставляет дефолты)
	turf, err := req.ToDomainTurf()
	if err != nil {
		s.logger.Warn("Create: invalid time value: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Проверяем часы работы и тарифы
	if !turf.OpeningTime.IsBefore(turf.ClosingTime) {
		s.logger.Warn("Create: opening time %s is not before closing time %s", turf.OpeningTime, turf.ClosingTime)
		return nil, fmt.Errorf("%w: opening time must be before closing time", ErrInvalidTimeRange)
	}

	seen := make(map[string]struct{}, len(turf.Sports))
	for i := range turf.Sports {
		sport := &turf.Sports[i]

		if _, ok := seen[sport.Name]; ok {
			s.logger.Warn("Create: duplicate sport %q", sport.Name)
			return nil, fmt.Errorf("%w: duplicate sport %q", ErrInvalidInput, sport.Name)
		}
		seen[sport.Name] = struct{}{}

		if sport.OpenTime != nil && sport.CloseTime != nil && !sport.OpenTime.IsBefore(*sport.CloseTime) {
			s.logger.Warn("Create: sport %q open time is not before close time", sport.Name)
			return nil, fmt.Errorf("%w: sport %q open time must be before close time", ErrInvalidTimeRange, sport.Name)
		}

		if err := validatePricing(sport.Pricing); err != nil {
			s.logger.Warn("Create: invalid pricing for sport %q: %v", sport.Name, err)
			return nil, err
		}
	}

	// 4. Создаем турф в транзакции
	var created *domain.Turf
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.turfRepo.Create(txCtx, turf)
		return txErr
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created turf id=%d", created.ID)
	return models.FromDomainTurf(created), nil
}

// GetByID получает турф по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TurfResponse, error) {
	s.logger.Info("GetByID: fetching turf id=%d", id)

	turf, err := s.turfRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			s.logger.Warn("GetByID: turf id=%d not found", id)
			return nil, ErrTurfNotFound
		}
		s.logger.Error("GetByID: repository error for turf id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched turf id=%d", id)
	return models.FromDomainTurf(turf), nil
}

// List получает список активных турфов
// Публичный метод - опционально фильтрует по городу и виду спорта
func (s *Service) List(ctx context.Context, city, sportName *string) (*models.TurfListResponse, error) {
	s.logger.Info("List: fetching turfs, city=%v, sport=%v", city, sportName)

	turfs, err := s.turfRepo.List(ctx, turfRepo.Filter{
		City:       city,
		SportName:  sportName,
		OnlyActive: true,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d turfs", len(turfs))
	return models.FromDomainTurfList(turfs), nil
}

// Cities получает список городов, в которых есть активные турфы
// Публичный метод
func (s *Service) Cities(ctx context.Context) (*models.CityListResponse, error) {
	s.logger.Info("Cities: fetching city list")

	cities, err := s.turfRepo.Cities(ctx)
	if err != nil {
		s.logger.Error("Cities: repository error: %v", err)
		return nil, fmt.Errorf("%w: Cities - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cities: successfully fetched %d cities", len(cities))
	return &models.CityListResponse{Cities: cities}, nil
}

// SetActive включает или выключает турф
// Доступно только владельцу турфа
func (s *Service) SetActive(ctx context.Context, turfID, userID int64, active bool) (*models.TurfResponse, error) {
	s.logger.Info("SetActive: setting turf id=%d active=%t by user=%d", turfID, active, userID)

	if _, err := s.ownedTurf(ctx, turfID, userID); err != nil {
		return nil, err
	}

	if err := s.turfRepo.SetActive(ctx, turfID, active); err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			return nil, ErrTurfNotFound
		}
		s.logger.Error("SetActive: repository error for turf id=%d: %v", turfID, err)
		return nil, fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: successfully set turf id=%d active=%t", turfID, active)
	return s.GetByID(ctx, turfID)
}

// SetSportHours изменяет часы работы вида спорта
// Доступно только владельцу турфа
func (s *Service) SetSportHours(ctx context.Context, turfID int64, sportName string, req *models.UpdateSportHoursRequest) (*models.TurfResponse, error) {
	s.logger.Info("SetSportHours: turf id=%d, sport=%s, hours=%s-%s by user=%d",
		turfID, sportName, req.OpenTime, req.CloseTime, req.UserID)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("SetSportHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	open, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		s.logger.Warn("SetSportHours: invalid open time %q: %v", req.OpenTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		s.logger.Warn("SetSportHours: invalid close time %q: %v", req.CloseTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !open.IsBefore(closeTime) {
		s.logger.Warn("SetSportHours: open time %s is not before close time %s", open, closeTime)
		return nil, fmt.Errorf("%w: open time must be before close time", ErrInvalidTimeRange)
	}

	turf, err := s.ownedTurf(ctx, turfID, req.UserID)
	if err != nil {
		return nil, err
	}
	if turf.SportByName(sportName) == nil {
		s.logger.Warn("SetSportHours: sport %q not found at turf id=%d", sportName, turfID)
		return nil, ErrSportNotFound
	}

	if err := s.turfRepo.SetSportHours(ctx, turfID, sportName, open, closeTime); err != nil {
		if errors.Is(err, turfRepo.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		s.logger.Error("SetSportHours: repository error for turf id=%d: %v", turfID, err)
		return nil, fmt.Errorf("%w: SetSportHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSportHours: successfully updated hours for sport=%s at turf id=%d", sportName, turfID)
	return s.GetByID(ctx, turfID)
}

// SetSportAvailability открывает или закрывает вид спорта для бронирования
// Доступно только владельцу турфа
func (s *Service) SetSportAvailability(ctx context.Context, turfID int64, sportName string, userID int64, available bool) (*models.TurfResponse, error) {
	s.logger.Info("SetSportAvailability: turf id=%d, sport=%s, available=%t by user=%d",
		turfID, sportName, available, userID)

	turf, err := s.ownedTurf(ctx, turfID, userID)
	if err != nil {
		return nil, err
	}
	if turf.SportByName(sportName) == nil {
		s.logger.Warn("SetSportAvailability: sport %q not found at turf id=%d", sportName, turfID)
		return nil, ErrSportNotFound
	}

	if err := s.turfRepo.SetSportAvailability(ctx, turfID, sportName, available); err != nil {
		if errors.Is(err, turfRepo.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		s.logger.Error("SetSportAvailability: repository error for turf id=%d: %v", turfID, err)
		return nil, fmt.Errorf("%w: SetSportAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSportAvailability: successfully set sport=%s available=%t at turf id=%d", sportName, available, turfID)
	return s.GetByID(ctx, turfID)
}

// ReplaceSportPricing полностью заменяет тарифную сетку вида спорта
// Доступно только владельцу турфа. Замена выполняется в транзакции
func (s *Service) ReplaceSportPricing(ctx context.Context, turfID int64, sportName string, req *models.UpdateSportPricingRequest) (*models.TurfResponse, error) {
	s.logger.Info("ReplaceSportPricing: turf id=%d, sport=%s, %d tiers by user=%d",
		turfID, sportName, len(req.Pricing), req.UserID)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("ReplaceSportPricing: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tiers, err := models.ToDomainPricing(req.Pricing)
	if err != nil {
		s.logger.Warn("ReplaceSportPricing: invalid time value: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	turf, err := s.ownedTurf(ctx, turfID, req.UserID)
	if err != nil {
		return nil, err
	}
	if turf.SportByName(sportName) == nil {
		s.logger.Warn("ReplaceSportPricing: sport %q not found at turf id=%d", sportName, turfID)
		return nil, ErrSportNotFound
	}

	if err := validatePricing(tiers); err != nil {
		s.logger.Warn("ReplaceSportPricing: invalid pricing for sport %q: %v", sportName, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.turfRepo.ReplaceSportPricing(txCtx, turfID, sportName, tiers)
	})
	if err != nil {
		if errors.Is(err, turfRepo.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		s.logger.Error("ReplaceSportPricing: repository error for turf id=%d: %v", turfID, err)
		return nil, fmt.Errorf("%w: ReplaceSportPricing - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceSportPricing: successfully replaced pricing for sport=%s at turf id=%d", sportName, turfID)
	return s.GetByID(ctx, turfID)
}

// Вспомогательные методы

// ownedTurf получает турф и проверяет, что пользователь является его владельцем
func (s *Service) ownedTurf(ctx context.Context, turfID, userID int64) (*domain.Turf, error) {
	turf, err := s.turfRepo.GetByID(ctx, turfID)
	if err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			s.logger.Warn("ownedTurf: turf id=%d not found", turfID)
			return nil, ErrTurfNotFound
		}
		s.logger.Error("ownedTurf: repository error for turf id=%d: %v", turfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if turf.OwnerID != userID {
		s.logger.Warn("ownedTurf: user=%d is not the owner of turf=%d", userID, turfID)
		return nil, ErrAccessDenied
	}

	return turf, nil
}

// validatePricing проверяет тарифную сетку: каждый тариф покрывает
// корректный диапазон и имеет положительную ставку. Пересечения тарифов
// допускаются: при расчёте цены слота выигрывает первый подходящий тариф
func validatePricing(tiers []domain.PricingTier) error {
	for _, tier := range tiers {
		if !tier.StartTime.IsBefore(tier.EndTime) {
			return fmt.Errorf("%w: tier %s-%s start must be before end", ErrInvalidPricing, tier.StartTime, tier.EndTime)
		}

		if tier.Rate <= 0 {
			return fmt.Errorf("%w: tier %s-%s rate must be positive", ErrInvalidPricing, tier.StartTime, tier.EndTime)
		}
	}

	return nil
}
