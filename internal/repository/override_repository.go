package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/model"
)

const overrideColumns = `id, student_id, date, is_absent, added_ad_hoc, start_hour, start_minute, duration_minutes, created_at, updated_at`

// OverrideRepository manages per-date exception rows. The table holds at
// most one row per (student, date), enforced by a unique constraint;
// absence markers and ad hoc additions share the row.
type OverrideRepository struct {
	pool *pgxpool.Pool
}

func NewOverrideRepository(pool *pgxpool.Pool) *OverrideRepository {
	return &OverrideRepository{pool: pool}
}

func scanOverride(row pgx.Row) (*model.DateOverride, error) {
	ov := &model.DateOverride{}
	err := row.Scan(
		&ov.ID,
		&ov.StudentID,
		&ov.Date,
		&ov.IsAbsent,
		&ov.AddedAdHoc,
		&ov.StartHour,
		&ov.StartMinute,
		&ov.DurationMinutes,
		&ov.CreatedAt,
		&ov.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ov.Date = ov.Date.UTC()
	return ov, nil
}

// MarkAbsent upserts the (student, date) row with is_absent set.
// Calling it twice yields the same row as calling it once.
func (r *OverrideRepository) MarkAbsent(ctx context.Context, studentID int64, date time.Time) (*model.DateOverride, error) {
	query := `
		INSERT INTO date_overrides (student_id, date, is_absent)
		VALUES ($1, $2, true)
		ON CONFLICT (student_id, date) DO UPDATE
		SET is_absent = true, updated_at = now()
		RETURNING ` + overrideColumns

	ov, err := scanOverride(r.pool.QueryRow(ctx, query, studentID, date))
	if err != nil {
		return nil, fmt.Errorf("mark absent: %w", err)
	}

	return ov, nil
}

// AddAdHoc records a one-off occurrence for (student, date). An existing
// absence-only row is extended in place; a second ad hoc addition for the
// same pair fails with ErrDuplicateOccurrence.
func (r *OverrideRepository) AddAdHoc(ctx context.Context, studentID int64, date time.Time, startHour, startMinute, durationMinutes int) (*model.DateOverride, error) {
	query := `
		INSERT INTO date_overrides (student_id, date, added_ad_hoc, start_hour, start_minute, duration_minutes)
		VALUES ($1, $2, true, $3, $4, $5)
		ON CONFLICT (student_id, date) DO UPDATE
		SET added_ad_hoc = true, start_hour = EXCLUDED.start_hour, start_minute = EXCLUDED.start_minute,
		    duration_minutes = EXCLUDED.duration_minutes, updated_at = now()
		WHERE date_overrides.added_ad_hoc = false
		RETURNING ` + overrideColumns

	ov, err := scanOverride(r.pool.QueryRow(ctx, query, studentID, date, startHour, startMinute, durationMinutes))
	if err == pgx.ErrNoRows {
		// Conflict row was already ad hoc; the conditional update matched nothing.
		return nil, fmt.Errorf("student %d on %s: %w", studentID, date.Format("2006-01-02"), apperr.ErrDuplicateOccurrence)
	}
	if err != nil {
		return nil, fmt.Errorf("add ad hoc occurrence: %w", err)
	}

	return ov, nil
}

// ListForRange returns all overrides with date in [start, end] inclusive.
func (r *OverrideRepository) ListForRange(ctx context.Context, start, end time.Time) ([]*model.DateOverride, error) {
	query := `
		SELECT ` + overrideColumns + `
		FROM date_overrides
		WHERE date >= $1 AND date <= $2
		ORDER BY date, student_id
	`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list overrides for range: %w", err)
	}
	defer rows.Close()

	var overrides []*model.DateOverride
	for rows.Next() {
		ov, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		overrides = append(overrides, ov)
	}

	return overrides, nil
}
