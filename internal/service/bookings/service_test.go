package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/Turf-BookingService/internal/service/bookings/models"
	"github.com/m04kA/Turf-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking     *domain.Booking
	bookings    []*domain.Booking
	getErr      error
	queriedWith *domain.BookingStatus

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.queriedWith = status
	return f.bookings, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.queriedWith = filter.Status
	return f.bookings, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	return nil
}

type fakeTurfRepo struct {
	turf    *domain.Turf
	turfIDs []int64
}

func (f *fakeTurfRepo) GetByID(_ context.Context, _ int64) (*domain.Turf, error) {
	return f.turf, nil
}

func (f *fakeTurfRepo) GetIDsByOwner(_ context.Context, _ int64) ([]int64, error) {
	return f.turfIDs, nil
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

func newTestService(bookings *fakeBookingRepo, turfs *fakeTurfRepo, now time.Time) *Service {
	s := NewService(bookings, turfs, nopLogger{})
	s.timeProvider = &fixedTime{now: now}
	return s
}

func futureBooking() *domain.Booking {
	return &domain.Booking{
		ID:          10,
		UserID:      7,
		TurfID:      1,
		BookingDate: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		SlotLabel:   "10:00 - 11:00",
		SportName:   "football",
		Status:      domain.StatusPending,
	}
}

func TestService_GetByID(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	turf := &domain.Turf{ID: 1, OwnerID: 100}

	t.Run("booking owner sees own booking", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{booking: futureBooking()}, &fakeTurfRepo{turf: turf}, now)

		resp, err := s.GetByID(context.Background(), 10, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
	})

	t.Run("turf owner sees bookings on own turf", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{booking: futureBooking()}, &fakeTurfRepo{turf: turf}, now)

		_, err := s.GetByID(context.Background(), 10, 100)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{booking: futureBooking()}, &fakeTurfRepo{turf: turf}, now)

		_, err := s.GetByID(context.Background(), 10, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("booking not found", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}, &fakeTurfRepo{turf: turf}, now)

		_, err := s.GetByID(context.Background(), 10, 7)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("past pending booking is reported completed", func(t *testing.T) {
		lateNow := time.Date(2026, 9, 25, 12, 0, 0, 0, time.UTC)
		s := newTestService(&fakeBookingRepo{booking: futureBooking()}, &fakeTurfRepo{turf: turf}, lateNow)

		resp, err := s.GetByID(context.Background(), 10, 7)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	// Два pending бронирования: одно уже прошло, второе в будущем
	now := time.Date(2026, 9, 22, 12, 0, 0, 0, time.UTC)

	past := futureBooking()
	past.ID = 11
	past.BookingDate = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	upcoming := futureBooking()
	upcoming.ID = 12
	upcoming.BookingDate = time.Date(2026, 9, 25, 0, 0, 0, 0, time.UTC)

	t.Run("without status returns everything with derived statuses", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{past, upcoming}}
		s := newTestService(repo, &fakeTurfRepo{}, now)

		resp, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7})
		require.NoError(t, err)

		require.Len(t, resp.Bookings, 2)
		assert.Equal(t, string(domain.StatusCompleted), resp.Bookings[0].Status)
		assert.Equal(t, string(domain.StatusPending), resp.Bookings[1].Status)
		assert.Nil(t, repo.queriedWith)
	})

	t.Run("completed filter queries stored pending and refines in memory", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{past, upcoming}}
		s := newTestService(repo, &fakeTurfRepo{}, now)

		resp, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: 7,
			Status: ptr.Ptr(string(domain.StatusCompleted)),
		})
		require.NoError(t, err)

		require.NotNil(t, repo.queriedWith)
		assert.Equal(t, domain.StatusPending, *repo.queriedWith)

		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(11), resp.Bookings[0].ID)
	})

	t.Run("pending filter drops bookings that already completed", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{past, upcoming}}
		s := newTestService(repo, &fakeTurfRepo{}, now)

		resp, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: 7,
			Status: ptr.Ptr(string(domain.StatusPending)),
		})
		require.NoError(t, err)

		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(12), resp.Bookings[0].ID)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{}, &fakeTurfRepo{}, now)

		_, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: 7,
			Status: ptr.Ptr("confirmed"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetOwnerBookings(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	t.Run("owner without turfs gets an empty list", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{}, &fakeTurfRepo{}, now)

		resp, err := s.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{OwnerID: 100})
		require.NoError(t, err)
		assert.Empty(t, resp.Bookings)
	})

	t.Run("turf filter must belong to the owner", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{}, &fakeTurfRepo{turfIDs: []int64{1, 2}}, now)

		_, err := s.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{
			OwnerID: 100,
			TurfID:  ptr.Ptr(int64(5)),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("bookings across owner turfs", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{futureBooking()}}
		s := newTestService(repo, &fakeTurfRepo{turfIDs: []int64{1, 2}}, now)

		resp, err := s.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{OwnerID: 100})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})
}

func TestService_Cancel(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	turf := &domain.Turf{ID: 1, OwnerID: 100}

	t.Run("booking owner cancels own booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: futureBooking()}
		s := newTestService(repo, &fakeTurfRepo{turf: turf}, now)

		err := s.Cancel(context.Background(), 10, &models.CancelBookingRequest{
			UserID:             7,
			CancellationReason: "plans changed",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(10), repo.cancelledID)
		assert.Equal(t, domain.StatusCancelledByUser, repo.cancelledStatus)
		assert.Equal(t, "plans changed", repo.cancelledReason)
	})

	t.Run("turf owner cancels a booking on own turf", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: futureBooking()}
		s := newTestService(repo, &fakeTurfRepo{turf: turf}, now)

		err := s.Cancel(context.Background(), 10, &models.CancelBookingRequest{
			UserID:             100,
			CancellationReason: "maintenance",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByOwner, repo.cancelledStatus)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{booking: futureBooking()}, &fakeTurfRepo{turf: turf}, now)

		err := s.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: 999})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		lateNow := time.Date(2026, 9, 25, 12, 0, 0, 0, time.UTC)
		s := newTestService(&fakeBookingRepo{booking: futureBooking()}, &fakeTurfRepo{turf: turf}, lateNow)

		err := s.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("already cancelled booking cannot be cancelled again", func(t *testing.T) {
		cancelled := futureBooking()
		cancelled.Status = domain.StatusCancelledByUser
		s := newTestService(&fakeBookingRepo{booking: cancelled}, &fakeTurfRepo{turf: turf}, now)

		err := s.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("booking not found", func(t *testing.T) {
		s := newTestService(&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}, &fakeTurfRepo{turf: turf}, now)

		err := s.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
