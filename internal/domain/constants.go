package domain

import "github.com/m04kA/Turf-BookingService/pkg/types"

// Default turf configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultOpeningTime         = types.TimeString("06:00")
	DefaultClosingTime         = types.TimeString("22:00")
	DefaultImageURL            = "/turf-image.jpg"
	DefaultDescription         = "A premium turf for all your sports needs."
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxNameLength               = 200
	MaxCityLength               = 100
	MaxDescriptionLength        = 1000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelledStatuses список статусов отменённых бронирований
// Используется при фильтрации занятых слотов
var CancelledStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByOwner,
}
