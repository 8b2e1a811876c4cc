package turf

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	"github.com/m04kA/Turf-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Turf-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/Turf-BookingService/pkg/types"
)

// Filter параметры выборки турфов
type Filter struct {
	City       *string // Фильтр по городу (опционально)
	SportName  *string // Только турфы, предлагающие вид спорта (опционально)
	OwnerID    *int64  // Только турфы владельца (опционально)
	OnlyActive bool    // Только активные турфы
}

// Repository репозиторий для работы с турфами, их видами спорта и тарифами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория турфов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает турф вместе с видами спорта и тарифной сеткой.
// Несколько insert-ов - вызывающий код должен выполнять метод в транзакции.
func (r *Repository) Create(ctx context.Context, turf *domain.Turf) (*domain.Turf, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("turfs").
		Columns(
			"name",
			"city",
			"owner_id",
			"description",
			"image_url",
			"amenities",
			"facilities",
			"slot_duration_minutes",
			"opening_time",
			"closing_time",
			"is_active",
		).
		Values(
			turf.Name,
			turf.City,
			turf.OwnerID,
			turf.Description,
			turf.ImageURL,
			pq.Array(turf.Amenities),
			pq.Array(turf.Facilities),
			turf.SlotDurationMinutes,
			turf.OpeningTime,
			turf.ClosingTime,
			turf.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&turf.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	turf.CreatedAt = createdAt.Time
	turf.UpdatedAt = updatedAt.Time

	for i := range turf.Sports {
		turf.Sports[i].TurfID = turf.ID
		if err := r.createSport(ctx, executor, &turf.Sports[i]); err != nil {
			return nil, err
		}
	}

	return turf, nil
}

func (r *Repository) createSport(ctx context.Context, executor DBExecutor, sport *domain.Sport) error {
	query, args, err := psqlbuilder.Insert("turf_sports").
		Columns("turf_id", "name", "available", "open_time", "close_time").
		Values(sport.TurfID, sport.Name, sport.Available, sport.OpenTime, sport.CloseTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createSport - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sport.ID); err != nil {
		return fmt.Errorf("%w: createSport - execute insert: %v", ErrExecQuery, err)
	}

	return r.insertPricing(ctx, executor, sport.ID, sport.Pricing)
}

func (r *Repository) insertPricing(ctx context.Context, executor DBExecutor, sportID int64, tiers []domain.PricingTier) error {
	if len(tiers) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("sport_pricing").
		Columns("sport_id", "start_time", "end_time", "rate", "position")

	// position фиксирует порядок объявления тарифов: поиск цены идёт
	// по первому совпадению именно в этом порядке
	for i, tier := range tiers {
		insertBuilder = insertBuilder.Values(sportID, tier.StartTime, tier.EndTime, tier.Rate, i)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertPricing - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertPricing - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает турф по ID вместе с видами спорта и тарифами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Turf, error) {
	turfs, err := r.selectTurfs(ctx, psqlbuilder.Select(turfColumns...).
		From("turfs").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	if len(turfs) == 0 {
		return nil, ErrTurfNotFound
	}
	return turfs[0], nil
}

// List получает турфы с фильтрацией по городу, виду спорта и владельцу
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.Turf, error) {
	selectBuilder := psqlbuilder.Select(turfColumns...).
		From("turfs").
		OrderBy("city ASC, name ASC")

	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.City != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"city": *filter.City})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.SportName != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("EXISTS (SELECT 1 FROM turf_sports ts WHERE ts.turf_id = turfs.id AND ts.name = ? AND ts.available)", *filter.SportName),
		)
	}

	return r.selectTurfs(ctx, selectBuilder)
}

// Cities возвращает города, в которых есть активный турф с доступным видом спорта
func (r *Repository) Cities(ctx context.Context) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT city").
		From("turfs").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Expr("EXISTS (SELECT 1 FROM turf_sports ts WHERE ts.turf_id = turfs.id AND ts.available)")).
		OrderBy("city ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cities - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Cities - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cities := make([]string, 0)
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("%w: Cities - scan city: %v", ErrScanRow, err)
		}
		cities = append(cities, city)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Cities - rows error: %v", ErrScanRow, err)
	}

	return cities, nil
}

// GetIDsByOwner возвращает ID всех турфов владельца
func (r *Repository) GetIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("turfs").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetIDsByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIDsByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetIDsByOwner - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetIDsByOwner - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// SetActive включает или выключает турф целиком
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := psqlbuilder.Update("turfs").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, query, args, ErrTurfNotFound)
}

// SetSportHours задаёт собственное окно работы вида спорта
func (r *Repository) SetSportHours(ctx context.Context, turfID int64, sportName string, open, close types.TimeString) error {
	query, args, err := psqlbuilder.Update("turf_sports").
		Set("open_time", open).
		Set("close_time", close).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"turf_id": turfID, "name": sportName}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSportHours - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, query, args, ErrSportNotFound)
}

// SetSportAvailability открывает или закрывает вид спорта для бронирования
func (r *Repository) SetSportAvailability(ctx context.Context, turfID int64, sportName string, available bool) error {
	query, args, err := psqlbuilder.Update("turf_sports").
		Set("available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"turf_id": turfID, "name": sportName}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSportAvailability - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, query, args, ErrSportNotFound)
}

// ReplaceSportPricing полностью заменяет тарифную сетку вида спорта.
// Delete + insert - вызывающий код должен выполнять метод в транзакции.
func (r *Repository) ReplaceSportPricing(ctx context.Context, turfID int64, sportName string, tiers []domain.PricingTier) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("turf_sports").
		Where(squirrel.Eq{"turf_id": turfID, "name": sportName}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceSportPricing - build select query: %v", ErrBuildQuery, err)
	}

	var sportID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sportID)
	if err == sql.ErrNoRows {
		return ErrSportNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: ReplaceSportPricing - scan sport id: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Delete("sport_pricing").
		Where(squirrel.Eq{"sport_id": sportID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceSportPricing - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceSportPricing - execute delete: %v", ErrExecQuery, err)
	}

	return r.insertPricing(ctx, executor, sportID, tiers)
}

var turfColumns = []string{
	"id",
	"name",
	"city",
	"owner_id",
	"description",
	"image_url",
	"amenities",
	"facilities",
	"slot_duration_minutes",
	"opening_time",
	"closing_time",
	"is_active",
	"created_at",
	"updated_at",
}

func (r *Repository) execExpectingRow(ctx context.Context, query string, args []interface{}, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

func (r *Repository) selectTurfs(ctx context.Context, selectBuilder squirrel.SelectBuilder) ([]*domain.Turf, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: selectTurfs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: selectTurfs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	turfs := make([]*domain.Turf, 0)
	for rows.Next() {
		var turf domain.Turf
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&turf.ID,
			&turf.Name,
			&turf.City,
			&turf.OwnerID,
			&turf.Description,
			&turf.ImageURL,
			pq.Array(&turf.Amenities),
			pq.Array(&turf.Facilities),
			&turf.SlotDurationMinutes,
			&turf.OpeningTime,
			&turf.ClosingTime,
			&turf.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: selectTurfs - scan turf: %v", ErrScanRow, err)
		}

		turf.CreatedAt = createdAt.Time
		turf.UpdatedAt = updatedAt.Time
		turfs = append(turfs, &turf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: selectTurfs - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadSports(ctx, executor, turfs); err != nil {
		return nil, err
	}

	return turfs, nil
}

// loadSports догружает виды спорта и тарифы для выбранных турфов
func (r *Repository) loadSports(ctx context.Context, executor DBExecutor, turfs []*domain.Turf) error {
	if len(turfs) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Turf, len(turfs))
	turfIDs := make([]int64, 0, len(turfs))
	for _, t := range turfs {
		byID[t.ID] = t
		turfIDs = append(turfIDs, t.ID)
	}

	query, args, err := psqlbuilder.Select("id", "turf_id", "name", "available", "open_time", "close_time", "created_at", "updated_at").
		From("turf_sports").
		Where(squirrel.Eq{"turf_id": turfIDs}).
		OrderBy("turf_id ASC, id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadSports - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSports - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sportsByTurf := make(map[int64][]domain.Sport, len(turfs))

	for rows.Next() {
		var sport domain.Sport
		var openTime, closeTime sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&sport.ID,
			&sport.TurfID,
			&sport.Name,
			&sport.Available,
			&openTime,
			&closeTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: loadSports - scan sport: %v", ErrScanRow, err)
		}

		if openTime.Valid {
			ts := types.TimeString(openTime.String)
			sport.OpenTime = &ts
		}
		if closeTime.Valid {
			ts := types.TimeString(closeTime.String)
			sport.CloseTime = &ts
		}
		sport.CreatedAt = createdAt.Time
		sport.UpdatedAt = updatedAt.Time
		sport.Pricing = make([]domain.PricingTier, 0)

		sportsByTurf[sport.TurfID] = append(sportsByTurf[sport.TurfID], sport)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSports - rows error: %v", ErrScanRow, err)
	}

	// Указатели на спорты собираем только после того, как все append-ы
	// сделаны, иначе реаллокация слайсов их инвалидирует
	sportsByID := make(map[int64]*domain.Sport)
	sportIDs := make([]int64, 0)

	for turfID, sports := range sportsByTurf {
		turf := byID[turfID]
		turf.Sports = sports
		for i := range turf.Sports {
			sportsByID[turf.Sports[i].ID] = &turf.Sports[i]
			sportIDs = append(sportIDs, turf.Sports[i].ID)
		}
	}

	return r.loadPricing(ctx, executor, sportsByID, sportIDs)
}

// loadPricing догружает тарифные сетки в порядке position
func (r *Repository) loadPricing(ctx context.Context, executor DBExecutor, sportsByID map[int64]*domain.Sport, sportIDs []int64) error {
	if len(sportIDs) == 0 {
		return nil
	}

	query, args, err := psqlbuilder.Select("sport_id", "start_time", "end_time", "rate").
		From("sport_pricing").
		Where(squirrel.Eq{"sport_id": sportIDs}).
		OrderBy("sport_id ASC, position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadPricing - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadPricing - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sportID int64
		var tier domain.PricingTier

		if err := rows.Scan(&sportID, &tier.StartTime, &tier.EndTime, &tier.Rate); err != nil {
			return fmt.Errorf("%w: loadPricing - scan tier: %v", ErrScanRow, err)
		}

		if sport, ok := sportsByID[sportID]; ok {
			sport.Pricing = append(sport.Pricing, tier)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadPricing - rows error: %v", ErrScanRow, err)
	}

	return nil
}
