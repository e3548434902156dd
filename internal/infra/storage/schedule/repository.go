package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SBS-SalonService/pkg/psqlbuilder"
)

const windowColumns = "id, salon_id, weekdays, service_ids, staff_ids, open_time, close_time, created_at, updated_at"

// Repository репозиторий для работы с окнами рабочих часов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно рабочих часов
func (r *Repository) Create(ctx context.Context, window *domain.WorkingHourWindow) (*domain.WorkingHourWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekdays := make(pq.Int64Array, len(window.Weekdays))
	for i, d := range window.Weekdays {
		weekdays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("working_hour_windows").
		Columns(
			"salon_id",
			"weekdays",
			"service_ids",
			"staff_ids",
			"open_time",
			"close_time",
		).
		Values(
			window.SalonID,
			weekdays,
			pq.Array(window.ServiceIDs),
			pq.Array(window.StaffIDs),
			window.OpenTime,
			window.CloseTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetByID получает окно расписания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WorkingHourWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns).
		From("working_hour_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows, err := r.scanWindows(rows)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, ErrWindowNotFound
	}

	return windows[0], nil
}

// ListBySalon получает все окна рабочих часов салона
func (r *Repository) ListBySalon(ctx context.Context, salonID int64) ([]*domain.WorkingHourWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns).
		From("working_hour_windows").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("open_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// Delete удаляет окно расписания (hard delete).
// Уже созданные записи окно не затрагивает: его слоты просто перестают
// предлагаться при следующем расчёте доступности.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_hour_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// scanWindows сканирует результаты запроса в слайс окон
func (r *Repository) scanWindows(rows *sql.Rows) ([]*domain.WorkingHourWindow, error) {
	windows := make([]*domain.WorkingHourWindow, 0)

	for rows.Next() {
		var window domain.WorkingHourWindow
		var weekdays, serviceIDs, staffIDs pq.Int64Array
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.SalonID,
			&weekdays,
			&serviceIDs,
			&staffIDs,
			&window.OpenTime,
			&window.CloseTime,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		window.Weekdays = make([]int, len(weekdays))
		for i, d := range weekdays {
			window.Weekdays[i] = int(d)
		}
		window.ServiceIDs = serviceIDs
		window.StaffIDs = staffIDs
		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
