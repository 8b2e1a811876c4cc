package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	turfRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeTurfRepo struct {
	turf *domain.Turf
	err  error
}

func (f *fakeTurfRepo) GetByID(_ context.Context, _ int64) (*domain.Turf, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.turf, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testTurf() *domain.Turf {
	return &domain.Turf{
		ID:                  1,
		OwnerID:             100,
		Name:                "Green Field",
		City:                "Pune",
		SlotDurationMinutes: 60,
		OpeningTime:         "06:00",
		ClosingTime:         "10:00",
		IsActive:            true,
		Sports: []domain.Sport{
			{
				Name:      "football",
				Available: true,
				Pricing: []domain.PricingTier{
					{StartTime: "06:00", EndTime: "08:00", Rate: 500},
					{StartTime: "08:00", EndTime: "10:00", Rate: 800},
				},
			},
			{
				Name:      "cricket",
				Available: false,
			},
		},
	}
}

func newTestUseCase(bookings *fakeBookingRepo, turfs *fakeTurfRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, turfs, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	req := &Request{TurfID: 1, SportName: "football", Date: date}

	t.Run("all slots free with tier prices", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, now)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, resp.AvailableSlots, 4)
		assert.Empty(t, resp.BookedSlots)

		assert.Equal(t, domain.SlotLabel("06:00 - 07:00"), resp.AvailableSlots[0].Time)
		require.NotNil(t, resp.AvailableSlots[0].Price)
		assert.Equal(t, 500.0, *resp.AvailableSlots[0].Price)
		require.NotNil(t, resp.AvailableSlots[2].Price)
		assert.Equal(t, 800.0, *resp.AvailableSlots[2].Price)
	})

	t.Run("booked slots are excluded and reported", func(t *testing.T) {
		bookings := &fakeBookingRepo{
			bookings: []*domain.Booking{
				{SlotLabel: "07:00 - 08:00", Status: domain.StatusPending},
			},
		}
		uc := newTestUseCase(bookings, &fakeTurfRepo{turf: testTurf()}, now)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, resp.AvailableSlots, 3)
		for _, slot := range resp.AvailableSlots {
			assert.NotEqual(t, domain.SlotLabel("07:00 - 08:00"), slot.Time)
		}
		assert.Equal(t, []domain.SlotLabel{"07:00 - 08:00"}, resp.BookedSlots)
	})

	t.Run("unavailable sport yields no free slots but keeps booked", func(t *testing.T) {
		bookings := &fakeBookingRepo{
			bookings: []*domain.Booking{
				{SlotLabel: "07:00 - 08:00", Status: domain.StatusPending},
			},
		}
		uc := newTestUseCase(bookings, &fakeTurfRepo{turf: testTurf()}, now)

		resp, err := uc.Execute(context.Background(), &Request{TurfID: 1, SportName: "cricket", Date: date})
		require.NoError(t, err)

		assert.Empty(t, resp.AvailableSlots)
		assert.Equal(t, []domain.SlotLabel{"07:00 - 08:00"}, resp.BookedSlots)
	})

	t.Run("past date yields no free slots", func(t *testing.T) {
		lateNow := time.Date(2026, 9, 25, 12, 0, 0, 0, time.UTC)
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, lateNow)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, resp.AvailableSlots)
	})

	t.Run("turf not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{err: turfRepo.ErrTurfNotFound}, now)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTurfNotFound)
	})

	t.Run("sport not offered", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, now)

		_, err := uc.Execute(context.Background(), &Request{TurfID: 1, SportName: "tennis", Date: date})
		assert.ErrorIs(t, err, ErrSportNotOffered)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, now)

		_, err := uc.Execute(context.Background(), &Request{TurfID: 0, SportName: "football", Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{TurfID: 1, SportName: "", Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{TurfID: 1, SportName: "football"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
