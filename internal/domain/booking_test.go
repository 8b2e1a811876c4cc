package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/Turf-BookingService/pkg/types"
)

func sportTime(s string) *types.TimeString {
	ts := types.MustTimeString(s)
	return &ts
}

func TestBooking_DisplayStatus(t *testing.T) {
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	booking := Booking{
		BookingDate: date,
		SlotLabel:   "10:00 - 11:00",
		Status:      StatusPending,
	}

	t.Run("pending before the slot", func(t *testing.T) {
		now := time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, StatusPending, booking.DisplayStatus(now))
	})

	t.Run("pending during the slot", func(t *testing.T) {
		now := time.Date(2026, 9, 20, 10, 30, 0, 0, time.UTC)
		assert.Equal(t, StatusPending, booking.DisplayStatus(now))
	})

	t.Run("completed once the slot end has passed", func(t *testing.T) {
		now := time.Date(2026, 9, 20, 11, 0, 0, 0, time.UTC)
		assert.Equal(t, StatusCompleted, booking.DisplayStatus(now))
	})

	t.Run("completed on a later day", func(t *testing.T) {
		now := time.Date(2026, 9, 25, 8, 0, 0, 0, time.UTC)
		assert.Equal(t, StatusCompleted, booking.DisplayStatus(now))
	})

	t.Run("cancellation wins over completion", func(t *testing.T) {
		cancelled := booking
		cancelled.Status = StatusCancelledByUser

		now := time.Date(2026, 9, 25, 8, 0, 0, 0, time.UTC)
		assert.Equal(t, StatusCancelledByUser, cancelled.DisplayStatus(now))
	})
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelledByUser}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelledByOwner}).CanBeCancelled())
}

func TestTurf_WindowFor(t *testing.T) {
	turf := Turf{
		SlotDurationMinutes: 60,
		OpeningTime:         "08:00",
		ClosingTime:         "20:00",
		Sports: []Sport{
			{Name: "football"},
		},
	}

	t.Run("sport without own hours inherits turf hours", func(t *testing.T) {
		w := turf.WindowFor(turf.SportByName("football"))
		assert.Equal(t, window("08:00", "20:00", 60), w)
	})

	t.Run("sport hours override turf hours", func(t *testing.T) {
		withHours := turf
		withHours.Sports = []Sport{{Name: "cricket", OpenTime: sportTime("10:00"), CloseTime: sportTime("18:00")}}

		w := withHours.WindowFor(withHours.SportByName("cricket"))
		assert.Equal(t, window("10:00", "18:00", 60), w)
	})

	t.Run("defaults fill missing configuration", func(t *testing.T) {
		bare := Turf{Sports: []Sport{{Name: "football"}}}

		w := bare.WindowFor(bare.SportByName("football"))
		assert.Equal(t, window("06:00", "22:00", 60), w)
	})
}
