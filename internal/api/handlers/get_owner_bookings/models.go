package get_owner_bookings

import (
	"time"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	"github.com/m04kA/Turf-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(ownerID int64, turfID *int64, dateStr, sport, status string, includeCancelled bool) (*models.GetOwnerBookingsRequest, error) {
	req := &models.GetOwnerBookingsRequest{
		OwnerID:          ownerID,
		TurfID:           turfID,
		IncludeCancelled: includeCancelled,
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if sport != "" {
		req.SportName = &sport
	}
	if status != "" {
		req.Status = &status
	}

	return req, nil
}
