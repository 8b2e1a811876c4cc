package turfs

import (
	"context"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	"github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
	"github.com/m04kA/Turf-BookingService/pkg/types"
)

// TurfRepository интерфейс репозитория турфов
type TurfRepository interface {
	Create(ctx context.Context, turf *domain.Turf) (*domain.Turf, error)
	GetByID(ctx context.Context, id int64) (*domain.Turf, error)
	List(ctx context.Context, filter turf.Filter) ([]*domain.Turf, error)
	Cities(ctx context.Context) ([]string, error)
	SetActive(ctx context.Context, id int64, active bool) error
	SetSportHours(ctx context.Context, turfID int64, sportName string, open, close types.TimeString) error
	SetSportAvailability(ctx context.Context, turfID int64, sportName string, available bool) error
	ReplaceSportPricing(ctx context.Context, turfID int64, sportName string, tiers []domain.PricingTier) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
