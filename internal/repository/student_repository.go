package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mingmingss/feedback-management/internal/model"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (name, contact, notes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, student.Name, student.Contact, student.Notes).
		Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID returns the student or (nil, nil) when absent.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `
		SELECT id, name, contact, notes, created_at
		FROM students
		WHERE id = $1
	`

	student := &model.Student{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Contact,
		&student.Notes,
		&student.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return student, nil
}

// List returns all students ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `
		SELECT id, name, contact, notes, created_at
		FROM students
		ORDER BY name, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student := &model.Student{}
		err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Contact,
			&student.Notes,
			&student.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}

	return students, nil
}

// UpdateNotes replaces the student's notes and returns the number of
// rows updated.
func (r *StudentRepository) UpdateNotes(ctx context.Context, id int64, notes string) (int64, error) {
	query := `UPDATE students SET notes = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, notes)
	if err != nil {
		return 0, fmt.Errorf("update student notes: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes the student and, through ON DELETE CASCADE, all of the
// student's scheduled classes, date overrides, and feedback. Runs in a
// transaction with explicit child deletes so the cascade does not depend
// on the schema alone.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, query := range []string{
		`DELETE FROM feedback WHERE student_id = $1`,
		`DELETE FROM date_overrides WHERE student_id = $1`,
		`DELETE FROM scheduled_classes WHERE student_id = $1`,
	} {
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return 0, fmt.Errorf("delete student children: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return tag.RowsAffected(), nil
}
