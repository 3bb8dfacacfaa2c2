package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const postColumns = "id, name, is_enabled, use_custom_hours, start_time, end_time, interval_minutes, created_at, updated_at"

// Код ошибки PostgreSQL foreign_key_violation
const pqForeignKeyViolation = "23503"

// Repository репозиторий для работы с постами и закрытыми слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория постов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый пост
func (r *Repository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("posts").
		Columns("name", "is_enabled", "use_custom_hours", "start_time", "end_time", "interval_minutes").
		Values(post.Name, post.IsEnabled, post.UseCustomHours, post.StartTime, post.EndTime, post.IntervalMinutes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&post.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	post.CreatedAt = createdAt.Time
	post.UpdatedAt = updatedAt.Time

	return post, nil
}

// EnsureDefault создает пост по умолчанию (id=1), если его ещё нет, и возвращает его
// Используется при бронировании без явного указания поста
func (r *Repository) EnsureDefault(ctx context.Context) (*domain.Post, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("posts").
		Columns("id", "name", "is_enabled", "use_custom_hours", "interval_minutes").
		Values(domain.DefaultPostID, domain.DefaultPostName, true, false, domain.DefaultSlotDurationMinutes).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: EnsureDefault - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: EnsureDefault - execute insert: %v", ErrExecQuery, err)
	}

	// Вставка с явным id не трогает posts_id_seq, двигаем её вручную,
	// иначе следующий обычный INSERT получит nextval() = 1 и упадёт на первичном ключе
	const advanceSeq = `SELECT setval('posts_id_seq', GREATEST((SELECT MAX(id) FROM posts), 1))`
	if _, err := executor.ExecContext(ctx, advanceSeq); err != nil {
		return nil, fmt.Errorf("%w: EnsureDefault - advance id sequence: %v", ErrExecQuery, err)
	}

	return r.GetByID(ctx, domain.DefaultPostID)
}

// GetByID получает пост по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(postColumns).
		From("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	post, err := scanPost(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan post: %v", ErrScanRow, err)
	}

	return post, nil
}

// List возвращает все посты, упорядоченные по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Post, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(postColumns).
		From("posts").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return posts, nil
}

// Update сохраняет изменённый пост
func (r *Repository) Update(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("posts").
		Set("name", post.Name).
		Set("is_enabled", post.IsEnabled).
		Set("use_custom_hours", post.UseCustomHours).
		Set("start_time", post.StartTime).
		Set("end_time", post.EndTime).
		Set("interval_minutes", post.IntervalMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": post.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	post.UpdatedAt = updatedAt.Time

	return post, nil
}

// Delete удаляет пост; записи закрытых слотов удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrPostInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// ListClosedSlots возвращает закрытые вручную времена поста
func (r *Repository) ListClosedSlots(ctx context.Context, postID int64) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_of_day").
		From("post_closed_slots").
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("time_of_day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListClosedSlots - scan time_of_day: %v", ErrScanRow, err)
		}
		slots = append(slots, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClosedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// SetClosedSlot закрывает или открывает время суток для поста
// Операция идемпотентна: повторное закрытие/открытие не является ошибкой
func (r *Repository) SetClosedSlot(ctx context.Context, postID int64, timeOfDay types.TimeString, closed bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var query string
	var args []interface{}
	var err error

	if closed {
		query, args, err = psqlbuilder.Insert("post_closed_slots").
			Columns("post_id", "time_of_day").
			Values(postID, timeOfDay).
			Suffix("ON CONFLICT (post_id, time_of_day) DO NOTHING").
			ToSql()
	} else {
		query, args, err = psqlbuilder.Delete("post_closed_slots").
			Where(squirrel.Eq{"post_id": postID, "time_of_day": timeOfDay}).
			ToSql()
	}
	if err != nil {
		return fmt.Errorf("%w: SetClosedSlot - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetClosedSlot - execute query: %v", ErrExecQuery, err)
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	var startTime, endTime sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&post.ID,
		&post.Name,
		&post.IsEnabled,
		&post.UseCustomHours,
		&startTime,
		&endTime,
		&post.IntervalMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		ts := types.TimeString(startTime.String)
		post.StartTime = &ts
	}
	if endTime.Valid {
		ts := types.TimeString(endTime.String)
		post.EndTime = &ts
	}
	post.CreatedAt = createdAt.Time
	post.UpdatedAt = updatedAt.Time

	return &post, nil
}
