package toggle_sport

import (
	"context"

	"github.com/m04kA/Turf-BookingService/internal/service/turfs/models"
)

type TurfService interface {
	SetSportAvailability(ctx context.Context, turfID int64, sportName string, userID int64, available bool) (*models.TurfResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
