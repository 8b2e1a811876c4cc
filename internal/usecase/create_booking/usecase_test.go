package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/booking"
	turfRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
	"github.com/m04kA/Turf-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	existing  []*domain.Booking
	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = booking

	saved := *booking
	saved.ID = 42
	saved.CreatedAt = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	saved.UpdatedAt = saved.CreatedAt
	return &saved, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	uc := NewUseCase(bookings, turfs, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:    7,
		UserName:  "Rahul",
		TurfID:    1,
		Date:      time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		SlotLabel: "06:00 - 07:00",
		SportName: "football",
	}
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	t.Run("creates pending booking with server-resolved price", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newTestUseCase(repo, &fakeTurfRepo{turf: testTurf()}, now)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.ID)
		assert.NotEqual(t, uuid.Nil, resp.Reference)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		require.NotNil(t, resp.Price)
		assert.Equal(t, 500.0, *resp.Price)

		require.NotNil(t, repo.created)
		assert.Equal(t, domain.StatusPending, repo.created.Status)
	})

	t.Run("slot label is stored trimmed", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newTestUseCase(repo, &fakeTurfRepo{turf: testTurf()}, now)

		req := validRequest()
		req.SlotLabel = "  06:00 - 07:00 "

		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.SlotLabel("06:00 - 07:00"), repo.created.SlotLabel)
	})

	t.Run("uncovered slot has no price and accepts no client price", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newTestUseCase(repo, &fakeTurfRepo{turf: testTurf()}, now)

		req := validRequest()
		req.SlotLabel = "08:00 - 09:00" // outside the priced tier

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, resp.Price)
	})

	t.Run("client price within tolerance is accepted", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, now)

		req := validRequest()
		req.Price = ptr.Ptr(500.004)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp.Price)
		assert.Equal(t, 500.0, *resp.Price)
	})

	t.Run("client price mismatch is rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newTestUseCase(repo, &fakeTurfRepo{turf: testTurf()}, now)

		req := validRequest()
		req.Price = ptr.Ptr(450.0)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPriceMismatch)
		assert.Nil(t, repo.created)
	})

	t.Run("client price for an unpriced slot is rejected", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, now)

		req := validRequest()
		req.SlotLabel = "08:00 - 09:00"
		req.Price = ptr.Ptr(500.0)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPriceMismatch)
	})

	t.Run("active booking on the same slot", func(t *testing.T) {
		repo := &fakeBookingRepo{
			existing: []*domain.Booking{
				{SlotLabel: "06:00 - 07:00", Status: domain.StatusPending},
			},
		}
		uc := newTestUseCase(repo, &fakeTurfRepo{turf: testTurf()}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Nil(t, repo.created)
	})

	t.Run("cancelled booking does not block the slot", func(t *testing.T) {
		repo := &fakeBookingRepo{
			existing: []*domain.Booking{
				{SlotLabel: "06:00 - 07:00", Status: domain.StatusCancelledByUser},
			},
		}
		uc := newTestUseCase(repo, &fakeTurfRepo{turf: testTurf()}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("unique index race maps to slot taken", func(t *testing.T) {
		repo := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
		uc := newTestUseCase(repo, &fakeTurfRepo{turf: testTurf()}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("stale slot label after configuration change", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, now)

		req := validRequest()
		req.SlotLabel = "05:00 - 06:00" // before opening time

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("same-day slot that already started is rejected", func(t *testing.T) {
		sameDayNow := time.Date(2026, 9, 20, 6, 30, 0, 0, time.UTC)
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, sameDayNow)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("date in the past", func(t *testing.T) {
		lateNow := time.Date(2026, 9, 25, 12, 0, 0, 0, time.UTC)
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, lateNow)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("sport closed for booking", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, now)

		req := validRequest()
		req.SportName = "cricket"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSportUnavailable)
	})

	t.Run("sport not offered", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{turf: testTurf()}, now)

		req := validRequest()
		req.SportName = "tennis"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSportNotOffered)
	})

	t.Run("turf not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeTurfRepo{err: turfRepo.ErrTurfNotFound}, now)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrTurfNotFound)
	})
}

func TestValidateRequest(t *testing.T) {
	mutations := map[string]func(r *Request){
		"zero user id":        func(r *Request) { r.UserID = 0 },
		"blank user name":     func(r *Request) { r.UserName = "   " },
		"zero turf id":        func(r *Request) { r.TurfID = 0 },
		"zero date":           func(r *Request) { r.Date = time.Time{} },
		"blank slot label":    func(r *Request) { r.SlotLabel = "  " },
		"unparseable label":   func(r *Request) { r.SlotLabel = "morning" },
		"empty sport":         func(r *Request) { r.SportName = "" },
		"negative price":      func(r *Request) { r.Price = ptr.Ptr(-1.0) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}

	assert.NoError(t, validateRequest(validRequest()))
}
