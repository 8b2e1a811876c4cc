package list_cities

import (
	"context"

	"github.com/m04kA/Turf-BookingService/internal/service/turfs/models"
)

type TurfService interface {
	Cities(ctx context.Context) (*models.CityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
