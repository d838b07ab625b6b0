package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/model"
)

const scheduledClassColumns = `id, group_id, student_id, day_of_week, start_hour, start_minute, duration_minutes, is_active, created_at, updated_at`

type ScheduledClassRepository struct {
	pool *pgxpool.Pool
}

func NewScheduledClassRepository(pool *pgxpool.Pool) *ScheduledClassRepository {
	return &ScheduledClassRepository{pool: pool}
}

func scanScheduledClass(row pgx.Row) (*model.ScheduledClass, error) {
	class := &model.ScheduledClass{}
	err := row.Scan(
		&class.ID,
		&class.GroupID,
		&class.StudentID,
		&class.DayOfWeek,
		&class.StartHour,
		&class.StartMinute,
		&class.DurationMinutes,
		&class.IsActive,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return class, nil
}

func collectScheduledClasses(rows pgx.Rows) ([]*model.ScheduledClass, error) {
	defer rows.Close()

	var classes []*model.ScheduledClass
	for rows.Next() {
		class, err := scanScheduledClass(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled class: %w", err)
		}
		classes = append(classes, class)
	}
	return classes, nil
}

// Create inserts one recurring class.
func (r *ScheduledClassRepository) Create(ctx context.Context, class *model.ScheduledClass) error {
	query := `
		INSERT INTO scheduled_classes (group_id, student_id, day_of_week, start_hour, start_minute, duration_minutes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		class.GroupID,
		class.StudentID,
		class.DayOfWeek,
		class.StartHour,
		class.StartMinute,
		class.DurationMinutes,
		class.IsActive,
	).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create scheduled class: %w", err)
	}

	return nil
}

// CreateGroup inserts several classes in one transaction. Either all
// weekdays of the group are created or none.
func (r *ScheduledClassRepository) CreateGroup(ctx context.Context, classes []*model.ScheduledClass) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO scheduled_classes (group_id, student_id, day_of_week, start_hour, start_minute, duration_minutes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	for _, class := range classes {
		err := tx.QueryRow(
			ctx, query,
			class.GroupID,
			class.StudentID,
			class.DayOfWeek,
			class.StartHour,
			class.StartMinute,
			class.DurationMinutes,
			class.IsActive,
		).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create scheduled class in group: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID returns the class or (nil, nil) when absent.
func (r *ScheduledClassRepository) GetByID(ctx context.Context, id int64) (*model.ScheduledClass, error) {
	query := `SELECT ` + scheduledClassColumns + ` FROM scheduled_classes WHERE id = $1`

	class, err := scanScheduledClass(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get scheduled class by id: %w", err)
	}

	return class, nil
}

// Update rewrites the mutable fields of a class.
func (r *ScheduledClassRepository) Update(ctx context.Context, class *model.ScheduledClass) error {
	query := `
		UPDATE scheduled_classes
		SET student_id = $2, day_of_week = $3, start_hour = $4, start_minute = $5, duration_minutes = $6, is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		class.ID,
		class.StudentID,
		class.DayOfWeek,
		class.StartHour,
		class.StartMinute,
		class.DurationMinutes,
		class.IsActive,
	).Scan(&class.UpdatedAt)

	if err == pgx.ErrNoRows {
		return fmt.Errorf("scheduled class %d: %w", class.ID, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update scheduled class: %w", err)
	}

	return nil
}

// Deactivate soft-deletes one class.
func (r *ScheduledClassRepository) Deactivate(ctx context.Context, id int64) (int64, error) {
	query := `UPDATE scheduled_classes SET is_active = false, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("deactivate scheduled class: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeactivateGroup soft-deletes every class sharing a group id.
func (r *ScheduledClassRepository) DeactivateGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	query := `UPDATE scheduled_classes SET is_active = false, updated_at = now() WHERE group_id = $1`

	tag, err := r.pool.Exec(ctx, query, groupID)
	if err != nil {
		return 0, fmt.Errorf("deactivate schedule group: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListActive returns all active classes, weekday and start time ascending.
func (r *ScheduledClassRepository) ListActive(ctx context.Context) ([]*model.ScheduledClass, error) {
	query := `
		SELECT ` + scheduledClassColumns + `
		FROM scheduled_classes
		WHERE is_active = true
		ORDER BY day_of_week, start_hour, start_minute, student_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active scheduled classes: %w", err)
	}

	return collectScheduledClasses(rows)
}

// ListActiveForWeekday returns active classes for one weekday, start time
// ascending for deterministic display.
func (r *ScheduledClassRepository) ListActiveForWeekday(ctx context.Context, weekday int) ([]*model.ScheduledClass, error) {
	query := `
		SELECT ` + scheduledClassColumns + `
		FROM scheduled_classes
		WHERE is_active = true AND day_of_week = $1
		ORDER BY start_hour, start_minute, student_id
	`

	rows, err := r.pool.Query(ctx, query, weekday)
	if err != nil {
		return nil, fmt.Errorf("list scheduled classes for weekday: %w", err)
	}

	return collectScheduledClasses(rows)
}

// ListForStudent returns the student's active classes.
func (r *ScheduledClassRepository) ListForStudent(ctx context.Context, studentID int64) ([]*model.ScheduledClass, error) {
	query := `
		SELECT ` + scheduledClassColumns + `
		FROM scheduled_classes
		WHERE is_active = true AND student_id = $1
		ORDER BY day_of_week, start_hour, start_minute
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list scheduled classes for student: %w", err)
	}

	return collectScheduledClasses(rows)
}
