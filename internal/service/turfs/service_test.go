package turfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	turfRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
	"github.com/m04kA/Turf-BookingService/internal/service/turfs/models"
	"github.com/m04kA/Turf-BookingService/pkg/ptr"
	"github.com/m04kA/Turf-BookingService/pkg/types"
)

type fakeTurfRepo struct {
	turf   *fakeStoredTurf
	getErr error

	replacedTiers []domain.PricingTier
	setHours      []types.TimeString
	setActive     *bool
	setAvailable  *bool
}

// fakeStoredTurf хранит единственный турф фейкового репозитория
type fakeStoredTurf struct {
	turf domain.Turf
}

func (f *fakeTurfRepo) Create(_ context.Context, t *domain.Turf) (*domain.Turf, error) {
	created := *t
	created.ID = 1
	f.turf = &fakeStoredTurf{turf: created}
	return &created, nil
}

func (f *fakeTurfRepo) GetByID(_ context.Context, _ int64) (*domain.Turf, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	t := f.turf.turf
	return &t, nil
}

func (f *fakeTurfRepo) List(_ context.Context, _ turfRepo.Filter) ([]*domain.Turf, error) {
	if f.turf == nil {
		return nil, nil
	}
	t := f.turf.turf
	return []*domain.Turf{&t}, nil
}

func (f *fakeTurfRepo) Cities(_ context.Context) ([]string, error) {
	if f.turf == nil {
		return nil, nil
	}
	return []string{f.turf.turf.City}, nil
}

func (f *fakeTurfRepo) SetActive(_ context.Context, _ int64, active bool) error {
	f.setActive = &active
	f.turf.turf.IsActive = active
	return nil
}

func (f *fakeTurfRepo) SetSportHours(_ context.Context, _ int64, _ string, open, close types.TimeString) error {
	f.setHours = []types.TimeString{open, close}
	return nil
}

func (f *fakeTurfRepo) SetSportAvailability(_ context.Context, _ int64, _ string, available bool) error {
	f.setAvailable = &available
	return nil
}

func (f *fakeTurfRepo) ReplaceSportPricing(_ context.Context, _ int64, _ string, tiers []domain.PricingTier) error {
	f.replacedTiers = tiers
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func repoWithTurf() *fakeTurfRepo {
	return &fakeTurfRepo{
		turf: &fakeStoredTurf{
			turf: domain.Turf{
				ID:                  1,
				OwnerID:             100,
				Name:                "Green Field",
				City:                "Pune",
				SlotDurationMinutes: 60,
				OpeningTime:         "06:00",
				ClosingTime:         "22:00",
				IsActive:            true,
				Sports: []domain.Sport{
					{Name: "football", Available: true},
				},
			},
		},
	}
}

func newTestService(repo *fakeTurfRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func validCreateRequest() *models.CreateTurfRequest {
	return &models.CreateTurfRequest{
		OwnerID: 100,
		Name:    "Green Field",
		City:    "Pune",
		Sports: []models.SportRequest{
			{
				Name: "football",
				Pricing: []models.PricingTierRequest{
					{StartTime: "06:00", EndTime: "12:00", Rate: 500},
					{StartTime: "12:00", EndTime: "22:00", Rate: 800},
				},
			},
		},
	}
}

func TestService_Create(t *testing.T) {
	t.Run("creates turf with defaults", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{})

		resp, err := s.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ID)
		assert.True(t, resp.IsActive)
		assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
		assert.Equal(t, domain.DefaultOpeningTime.String(), resp.OpeningTime)
		assert.Equal(t, domain.DefaultClosingTime.String(), resp.ClosingTime)

		require.Len(t, resp.Sports, 1)
		assert.True(t, resp.Sports[0].Available)
		assert.Len(t, resp.Sports[0].Pricing, 2)
	})

	t.Run("missing required fields", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{})

		req := validCreateRequest()
		req.Name = ""

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no sports", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{})

		req := validCreateRequest()
		req.Sports = nil

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate sport", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{})

		req := validCreateRequest()
		req.Sports = append(req.Sports, models.SportRequest{Name: "football"})

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("opening time after closing time", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{})

		req := validCreateRequest()
		req.OpeningTime = "22:00"
		req.ClosingTime = "06:00"

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("unparseable time", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{})

		req := validCreateRequest()
		req.OpeningTime = "6am"

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("sport hours inverted", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{})

		req := validCreateRequest()
		req.Sports[0].OpenTime = ptr.Ptr("18:00")
		req.Sports[0].CloseTime = ptr.Ptr("10:00")

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("inverted pricing tier", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{})

		req := validCreateRequest()
		req.Sports[0].Pricing = []models.PricingTierRequest{
			{StartTime: "12:00", EndTime: "06:00", Rate: 500},
		}

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPricing)
	})
}

func TestService_OwnershipGuards(t *testing.T) {
	t.Run("non-owner cannot toggle turf", func(t *testing.T) {
		s := newTestService(repoWithTurf())

		_, err := s.SetActive(context.Background(), 1, 999, false)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing turf", func(t *testing.T) {
		s := newTestService(&fakeTurfRepo{getErr: turfRepo.ErrTurfNotFound})

		_, err := s.SetActive(context.Background(), 1, 100, false)
		assert.ErrorIs(t, err, ErrTurfNotFound)
	})

	t.Run("owner toggles turf", func(t *testing.T) {
		repo := repoWithTurf()
		s := newTestService(repo)

		resp, err := s.SetActive(context.Background(), 1, 100, false)
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
		require.NotNil(t, repo.setActive)
		assert.False(t, *repo.setActive)
	})
}

func TestService_SetSportHours(t *testing.T) {
	t.Run("owner updates sport hours", func(t *testing.T) {
		repo := repoWithTurf()
		s := newTestService(repo)

		_, err := s.SetSportHours(context.Background(), 1, "football", &models.UpdateSportHoursRequest{
			UserID:    100,
			OpenTime:  "08:00",
			CloseTime: "20:00",
		})
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "20:00"}, repo.setHours)
	})

	t.Run("inverted hours", func(t *testing.T) {
		s := newTestService(repoWithTurf())

		_, err := s.SetSportHours(context.Background(), 1, "football", &models.UpdateSportHoursRequest{
			UserID:    100,
			OpenTime:  "20:00",
			CloseTime: "08:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("unknown sport", func(t *testing.T) {
		s := newTestService(repoWithTurf())

		_, err := s.SetSportHours(context.Background(), 1, "tennis", &models.UpdateSportHoursRequest{
			UserID:    100,
			OpenTime:  "08:00",
			CloseTime: "20:00",
		})
		assert.ErrorIs(t, err, ErrSportNotFound)
	})
}

func TestService_ReplaceSportPricing(t *testing.T) {
	t.Run("owner replaces pricing", func(t *testing.T) {
		repo := repoWithTurf()
		s := newTestService(repo)

		_, err := s.ReplaceSportPricing(context.Background(), 1, "football", &models.UpdateSportPricingRequest{
			UserID: 100,
			Pricing: []models.PricingTierRequest{
				{StartTime: "06:00", EndTime: "12:00", Rate: 600},
			},
		})
		require.NoError(t, err)

		require.Len(t, repo.replacedTiers, 1)
		assert.Equal(t, 600.0, repo.replacedTiers[0].Rate)
	})

	t.Run("non-positive rate", func(t *testing.T) {
		s := newTestService(repoWithTurf())

		_, err := s.ReplaceSportPricing(context.Background(), 1, "football", &models.UpdateSportPricingRequest{
			UserID: 100,
			Pricing: []models.PricingTierRequest{
				{StartTime: "06:00", EndTime: "12:00", Rate: 0},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		s := newTestService(repoWithTurf())

		_, err := s.ReplaceSportPricing(context.Background(), 1, "football", &models.UpdateSportPricingRequest{
			UserID: 999,
			Pricing: []models.PricingTierRequest{
				{StartTime: "06:00", EndTime: "12:00", Rate: 600},
			},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestValidatePricing(t *testing.T) {
	tiers := func(start, end string, rate float64) []domain.PricingTier {
		return []domain.PricingTier{
			{StartTime: types.MustTimeString(start), EndTime: types.MustTimeString(end), Rate: rate},
		}
	}

	assert.NoError(t, validatePricing(nil))
	assert.NoError(t, validatePricing(tiers("06:00", "12:00", 500)))

	assert.ErrorIs(t, validatePricing(tiers("12:00", "06:00", 500)), ErrInvalidPricing)
	assert.ErrorIs(t, validatePricing(tiers("06:00", "06:00", 500)), ErrInvalidPricing)
	assert.ErrorIs(t, validatePricing(tiers("06:00", "12:00", 0)), ErrInvalidPricing)
	assert.ErrorIs(t, validatePricing(tiers("06:00", "12:00", -10)), ErrInvalidPricing)

	// Пересекающиеся тарифы допустимы
	overlapping := []domain.PricingTier{
		{StartTime: "06:00", EndTime: "12:00", Rate: 500},
		{StartTime: "10:00", EndTime: "14:00", Rate: 900},
	}
	assert.NoError(t, validatePricing(overlapping))
}
