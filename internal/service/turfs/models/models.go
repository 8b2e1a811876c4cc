package models

import (
	"time"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	"github.com/m04kA/Turf-BookingService/pkg/types"
)

// Request модели

// CreateTurfRequest запрос на создание турфа
type CreateTurfRequest struct {
	OwnerID             int64          `json:"ownerId" validate:"required,gt=0"`
	Name                string         `json:"name" validate:"required,max=200"`
	City                string         `json:"city" validate:"required,max=100"`
	Description         string         `json:"description" validate:"max=1000"`
	ImageURL            string         `json:"imageUrl" validate:"omitempty,max=500"`
	Amenities           []string       `json:"amenities"`
	Facilities          []string       `json:"facilities"`
	SlotDurationMinutes int            `json:"slotDurationMinutes" validate:"omitempty,gte=5,lte=480"`
	OpeningTime         string         `json:"openingTime" validate:"omitempty"`
	ClosingTime         string         `json:"closingTime" validate:"omitempty"`
	Sports              []SportRequest `json:"sports" validate:"required,min=1,dive"`
}

// SportRequest вид спорта при создании турфа
type SportRequest struct {
	Name      string               `json:"name" validate:"required,max=100"`
	Available *bool                `json:"available,omitempty"`
	OpenTime  *string              `json:"openTime,omitempty"`
	CloseTime *string              `json:"closeTime,omitempty"`
	Pricing   []PricingTierRequest `json:"pricing" validate:"dive"`
}

// PricingTierRequest один тариф в тарифной сетке вида спорта
type PricingTierRequest struct {
	StartTime string  `json:"startTime" validate:"required"`
	EndTime   string  `json:"endTime" validate:"required"`
	Rate      float64 `json:"rate" validate:"gt=0"`
}

// UpdateSportHoursRequest запрос на изменение часов работы вида спорта
type UpdateSportHoursRequest struct {
	UserID    int64  `json:"userId" validate:"required,gt=0"`
	OpenTime  string `json:"openTime" validate:"required"`
	CloseTime string `json:"closeTime" validate:"required"`
}

// UpdateSportPricingRequest запрос на замену тарифной сетки вида спорта
type UpdateSportPricingRequest struct {
	UserID  int64                `json:"userId" validate:"required,gt=0"`
	Pricing []PricingTierRequest `json:"pricing" validate:"required,dive"`
}

// ToDomainTurf конвертирует request в domain модель
// Пустые поля заполняются значениями по умолчанию
func (r *CreateTurfRequest) ToDomainTurf() (*domain.Turf, error) {
	turf := &domain.Turf{
		OwnerID:             r.OwnerID,
		Name:                r.Name,
		City:                r.City,
		Description:         r.Description,
		ImageURL:            r.ImageURL,
		Amenities:           r.Amenities,
		Facilities:          r.Facilities,
		SlotDurationMinutes: r.SlotDurationMinutes,
		IsActive:            true,
	}

	if turf.Description == "" {
		turf.Description = domain.DefaultDescription
	}
	if turf.ImageURL == "" {
		turf.ImageURL = domain.DefaultImageURL
	}
	if turf.SlotDurationMinutes == 0 {
		turf.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}

	turf.OpeningTime = domain.DefaultOpeningTime
	if r.OpeningTime != "" {
		open, err := types.NewTimeStringFromString(r.OpeningTime)
		if err != nil {
			return nil, err
		}
		turf.OpeningTime = open
	}

	turf.ClosingTime = domain.DefaultClosingTime
	if r.ClosingTime != "" {
		closeTime, err := types.NewTimeStringFromString(r.ClosingTime)
		if err != nil {
			return nil, err
		}
		turf.ClosingTime = closeTime
	}

	for _, s := range r.Sports {
		sport := domain.Sport{
			Name:      s.Name,
			Available: true,
		}
		if s.Available != nil {
			sport.Available = *s.Available
		}

		if s.OpenTime != nil {
			open, err := types.NewTimeStringFromString(*s.OpenTime)
			if err != nil {
				return nil, err
			}
			sport.OpenTime = &open
		}
		if s.CloseTime != nil {
			closeTime, err := types.NewTimeStringFromString(*s.CloseTime)
			if err != nil {
				return nil, err
			}
			sport.CloseTime = &closeTime
		}

		tiers, err := ToDomainPricing(s.Pricing)
		if err != nil {
			return nil, err
		}
		sport.Pricing = tiers

		turf.Sports = append(turf.Sports, sport)
	}

	return turf, nil
}

// ToDomainPricing конвертирует тарифы запроса в domain модели
func ToDomainPricing(tiers []PricingTierRequest) ([]domain.PricingTier, error) {
	result := make([]domain.PricingTier, 0, len(tiers))
	for _, t := range tiers {
		start, err := types.NewTimeStringFromString(t.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(t.EndTime)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.PricingTier{
			StartTime: start,
			EndTime:   end,
			Rate:      t.Rate,
		})
	}
	return result, nil
}

// Response модели

// PricingTierResponse один тариф в ответе
type PricingTierResponse struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Rate      float64 `json:"rate"`
}

// SportResponse вид спорта в ответе
type SportResponse struct {
	Name      string                `json:"name"`
	Available bool                  `json:"available"`
	OpenTime  *string               `json:"openTime,omitempty"`
	CloseTime *string               `json:"closeTime,omitempty"`
	Pricing   []PricingTierResponse `json:"pricing"`
}

// TurfResponse ответ с данными турфа
type TurfResponse struct {
	ID                  int64           `json:"id"`
	OwnerID             int64           `json:"ownerId"`
	Name                string          `json:"name"`
	City                string          `json:"city"`
	Description         string          `json:"description"`
	ImageURL            string          `json:"imageUrl"`
	Amenities           []string        `json:"amenities"`
	Facilities          []string        `json:"facilities"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	OpeningTime         string          `json:"openingTime"`
	ClosingTime         string          `json:"closingTime"`
	IsActive            bool            `json:"isActive"`
	Sports              []SportResponse `json:"sports"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// TurfListResponse ответ со списком турфов
type TurfListResponse struct {
	Turfs []TurfResponse `json:"turfs"`
}

// CityListResponse ответ со списком городов
type CityListResponse struct {
	Cities []string `json:"cities"`
}

// FromDomainTurf конвертирует domain модель в DTO
func FromDomainTurf(t *domain.Turf) *TurfResponse {
	if t == nil {
		return nil
	}

	resp := &TurfResponse{
		ID:                  t.ID,
		OwnerID:             t.OwnerID,
		Name:                t.Name,
		City:                t.City,
		Description:         t.Description,
		ImageURL:            t.ImageURL,
		Amenities:           t.Amenities,
		Facilities:          t.Facilities,
		SlotDurationMinutes: t.SlotDurationMinutes,
		OpeningTime:         t.OpeningTime.String(),
		ClosingTime:         t.ClosingTime.String(),
		IsActive:            t.IsActive,
		Sports:              make([]SportResponse, 0, len(t.Sports)),
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}

	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if resp.Facilities == nil {
		resp.Facilities = []string{}
	}

	for i := range t.Sports {
		resp.Sports = append(resp.Sports, fromDomainSport(&t.Sports[i]))
	}

	return resp
}

// FromDomainTurfList конвертирует список domain моделей в DTO
func FromDomainTurfList(turfs []*domain.Turf) *TurfListResponse {
	resp := &TurfListResponse{
		Turfs: make([]TurfResponse, 0, len(turfs)),
	}

	for _, t := range turfs {
		if turfResp := FromDomainTurf(t); turfResp != nil {
			resp.Turfs = append(resp.Turfs, *turfResp)
		}
	}

	return resp
}

func fromDomainSport(s *domain.Sport) SportResponse {
	resp := SportResponse{
		Name:      s.Name,
		Available: s.Available,
		Pricing:   make([]PricingTierResponse, 0, len(s.Pricing)),
	}

	if s.OpenTime != nil {
		open := s.OpenTime.String()
		resp.OpenTime = &open
	}
	if s.CloseTime != nil {
		closeTime := s.CloseTime.String()
		resp.CloseTime = &closeTime
	}

	for _, tier := range s.Pricing {
		resp.Pricing = append(resp.Pricing, PricingTierResponse{
			StartTime: tier.StartTime.String(),
			EndTime:   tier.EndTime.String(),
			Rate:      tier.Rate,
		})
	}

	return resp
}
