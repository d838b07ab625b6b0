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

const feedbackColumns = `id, student_id, class_date, textbook, homework_completion, class_content, parent_message, created_at`

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

func scanFeedback(row pgx.Row) (*model.Feedback, error) {
	fb := &model.Feedback{}
	err := row.Scan(
		&fb.ID,
		&fb.StudentID,
		&fb.ClassDate,
		&fb.Textbook,
		&fb.HomeworkCompletion,
		&fb.ClassContent,
		&fb.ParentMessage,
		&fb.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	fb.ClassDate = fb.ClassDate.UTC()
	return fb, nil
}

func collectFeedback(rows pgx.Rows) ([]*model.Feedback, error) {
	defer rows.Close()

	var feedbacks []*model.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, nil
}

// Create inserts a new feedback row.
func (r *FeedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	query := `
		INSERT INTO feedback (student_id, class_date, textbook, homework_completion, class_content, parent_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		fb.StudentID,
		fb.ClassDate,
		fb.Textbook,
		fb.HomeworkCompletion,
		fb.ClassContent,
		fb.ParentMessage,
	).Scan(&fb.ID, &fb.CreatedAt)

	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}

	return nil
}

// GetByID returns the feedback or (nil, nil) when absent.
func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*model.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`

	fb, err := scanFeedback(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback by id: %w", err)
	}

	return fb, nil
}

// GetForStudentDate returns the earliest-created feedback for the
// (student, date) pair, or (nil, nil) when none exists.
func (r *FeedbackRepository) GetForStudentDate(ctx context.Context, studentID int64, date time.Time) (*model.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback
		WHERE student_id = $1 AND class_date = $2
		ORDER BY created_at
		LIMIT 1
	`

	fb, err := scanFeedback(r.pool.QueryRow(ctx, query, studentID, date))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback for student date: %w", err)
	}

	return fb, nil
}

// Update rewrites the mutable fields of a feedback row. Last write wins.
func (r *FeedbackRepository) Update(ctx context.Context, fb *model.Feedback) error {
	query := `
		UPDATE feedback
		SET class_date = $2, textbook = $3, homework_completion = $4, class_content = $5, parent_message = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(
		ctx, query,
		fb.ID,
		fb.ClassDate,
		fb.Textbook,
		fb.HomeworkCompletion,
		fb.ClassContent,
		fb.ParentMessage,
	)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Row vanished between fetch and write, e.g. the student was
		// deleted mid-edit. Delete wins.
		return fmt.Errorf("feedback %d: %w", fb.ID, apperr.ErrNotFound)
	}

	return nil
}

// Delete removes one feedback row and returns the number deleted.
func (r *FeedbackRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM feedback WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete feedback: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListForStudent returns the student's feedback, most recent class date
// first, ties broken by creation time.
func (r *FeedbackRepository) ListForStudent(ctx context.Context, studentID int64) ([]*model.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback
		WHERE student_id = $1
		ORDER BY class_date DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list feedback for student: %w", err)
	}

	return collectFeedback(rows)
}

// ListForRange returns feedback with class_date in [start, end] inclusive.
func (r *FeedbackRepository) ListForRange(ctx context.Context, start, end time.Time) ([]*model.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback
		WHERE class_date >= $1 AND class_date <= $2
		ORDER BY class_date, student_id, created_at
	`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list feedback for range: %w", err)
	}

	return collectFeedback(rows)
}
