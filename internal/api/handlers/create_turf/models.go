package create_turf

import (
	"github.com/m04kA/Turf-BookingService/internal/service/turfs/models"
)

// CreateTurfRequest HTTP request model
// Владелец берется из контекста аутентификации, не из тела
type CreateTurfRequest struct {
	Name                string         `json:"name"`
	City                string         `json:"city"`
	Description         string         `json:"description,omitempty"`
	ImageURL            string         `json:"imageUrl,omitempty"`
	Amenities           []string       `json:"amenities,omitempty"`
	Facilities          []string       `json:"facilities,omitempty"`
	SlotDurationMinutes int            `json:"slotDurationMinutes,omitempty"`
	OpeningTime         string         `json:"openingTime,omitempty"`
	ClosingTime         string         `json:"closingTime,omitempty"`
	Sports              []SportRequest `json:"sports"`
}

// SportRequest вид спорта при создании турфа
type SportRequest struct {
	Name      string               `json:"name"`
	Available *bool                `json:"available,omitempty"`
	OpenTime  *string              `json:"openTime,omitempty"`
	CloseTime *string              `json:"closeTime,omitempty"`
	Pricing   []PricingTierRequest `json:"pricing,omitempty"`
}

// PricingTierRequest один тариф в тарифной сетке
type PricingTierRequest struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Rate      float64 `json:"rate"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateTurfRequest) ToServiceRequest(ownerID int64) *models.CreateTurfRequest {
	req := &models.CreateTurfRequest{
		OwnerID:             ownerID,
		Name:                r.Name,
		City:                r.City,
		Description:         r.Description,
		ImageURL:            r.ImageURL,
		Amenities:           r.Amenities,
		Facilities:          r.Facilities,
		SlotDurationMinutes: r.SlotDurationMinutes,
		OpeningTime:         r.OpeningTime,
		ClosingTime:         r.ClosingTime,
	}

	for _, s := range r.Sports {
		sport := models.SportRequest{
			Name:      s.Name,
			Available: s.Available,
			OpenTime:  s.OpenTime,
			CloseTime: s.CloseTime,
		}
		for _, t := range s.Pricing {
			sport.Pricing = append(sport.Pricing, models.PricingTierRequest{
				StartTime: t.StartTime,
				EndTime:   t.EndTime,
				Rate:      t.Rate,
			})
		}
		req.Sports = append(req.Sports, sport)
	}

	return req
}
