package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Глобальная политика хранится единственной строкой с фиксированным id
const configRowID = 1

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий глобальной политики рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает текущую политику рабочих часов
func (r *Repository) Get(ctx context.Context) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_hour", "end_hour", "slot_duration_minutes", "updated_at").
		From("schedule_config").
		Where(squirrel.Eq{"id": configRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.StartHour,
		&wh.EndHour,
		&wh.SlotDurationMinutes,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}

// Save сохраняет политику (upsert единственной строки)
func (r *Repository) Save(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns("id", "start_hour", "end_hour", "slot_duration_minutes", "updated_at").
		Values(configRowID, wh.StartHour, wh.EndHour, wh.SlotDurationMinutes, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (id) DO UPDATE SET start_hour = EXCLUDED.start_hour, end_hour = EXCLUDED.end_hour, slot_duration_minutes = EXCLUDED.slot_duration_minutes, updated_at = NOW()").
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	wh.UpdatedAt = updatedAt.Time

	return wh, nil
}
