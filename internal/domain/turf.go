package domain

import (
	"time"

	"github.com/m04kA/Turf-BookingService/pkg/types"
)

// PricingTier is one piece of a sport's piecewise pricing schedule.
// Tiers cover sub-ranges of the operating window, not necessarily
// contiguously; lookup is first-match in stored order.
type PricingTier struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Rate      float64
}

// Contains reports whether the slot start falls into this tier.
// The range is half-open: [StartTime, EndTime).
func (p *PricingTier) Contains(slotStart types.TimeString) bool {
	return !slotStart.IsBefore(p.StartTime) && slotStart.IsBefore(p.EndTime)
}

// Sport is one bookable sport offered by a turf. A sport may override
// the turf's operating hours with its own window.
type Sport struct {
	ID        int64
	TurfID    int64
	Name      string
	Available bool
	OpenTime  *types.TimeString // nil = use the turf's opening time
	CloseTime *types.TimeString // nil = use the turf's closing time
	Pricing   []PricingTier
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Turf represents a sports venue with its sports and booking configuration
type Turf struct {
	ID                  int64
	Name                string
	City                string
	OwnerID             int64
	Description         string
	ImageURL            string
	Amenities           []string
	Facilities          []string
	SlotDurationMinutes int
	OpeningTime         types.TimeString
	ClosingTime         types.TimeString
	IsActive            bool
	Sports              []Sport
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SportByName returns the sport with the given name, or nil
func (t *Turf) SportByName(name string) *Sport {
	for i := range t.Sports {
		if t.Sports[i].Name == name {
			return &t.Sports[i]
		}
	}
	return nil
}

// HasAvailableSport reports whether at least one sport is open for booking
func (t *Turf) HasAvailableSport() bool {
	for i := range t.Sports {
		if t.Sports[i].Available {
			return true
		}
	}
	return false
}

// WindowFor returns the operating window for the given sport: the sport's
// own hours when set, the turf's hours otherwise, with defaults filling
// any remaining gaps.
func (t *Turf) WindowFor(sport *Sport) OperatingWindow {
	open := t.OpeningTime
	if open.IsZero() {
		open = DefaultOpeningTime
	}
	closeTime := t.ClosingTime
	if closeTime.IsZero() {
		closeTime = DefaultClosingTime
	}

	if sport != nil {
		if sport.OpenTime != nil && !sport.OpenTime.IsZero() {
			open = *sport.OpenTime
		}
		if sport.CloseTime != nil && !sport.CloseTime.IsZero() {
			closeTime = *sport.CloseTime
		}
	}

	duration := t.SlotDurationMinutes
	if duration <= 0 {
		duration = DefaultSlotDurationMinutes
	}

	return OperatingWindow{
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotDurationMinutes: duration,
	}
}
