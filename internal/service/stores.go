package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mingmingss/feedback-management/internal/model"
)

// Store interfaces are satisfied by the pgx repositories and by the
// in-memory implementations used in tests. Lookups return (nil, nil)
// when the row does not exist; services translate that to ErrNotFound.

type StudentStore interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context) ([]*model.Student, error)
	UpdateNotes(ctx context.Context, id int64, notes string) (int64, error)
	// Delete removes the student and all dependent rows (scheduled
	// classes, overrides, feedback). Returns the number of students
	// deleted (0 or 1).
	Delete(ctx context.Context, id int64) (int64, error)
}

type ScheduledClassStore interface {
	Create(ctx context.Context, class *model.ScheduledClass) error
	// CreateGroup inserts several classes atomically; all rows carry the
	// same GroupID.
	CreateGroup(ctx context.Context, classes []*model.ScheduledClass) error
	GetByID(ctx context.Context, id int64) (*model.ScheduledClass, error)
	Update(ctx context.Context, class *model.ScheduledClass) error
	Deactivate(ctx context.Context, id int64) (int64, error)
	DeactivateGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
	ListActive(ctx context.Context) ([]*model.ScheduledClass, error)
	ListActiveForWeekday(ctx context.Context, weekday int) ([]*model.ScheduledClass, error)
	ListForStudent(ctx context.Context, studentID int64) ([]*model.ScheduledClass, error)
}

type OverrideStore interface {
	// MarkAbsent upserts the (student, date) override with is_absent set.
	// Idempotent: marking twice leaves the same state as once.
	MarkAbsent(ctx context.Context, studentID int64, date time.Time) (*model.DateOverride, error)
	// AddAdHoc records a one-off occurrence for (student, date). Returns
	// apperr.ErrDuplicateOccurrence when an ad hoc entry already exists
	// for the pair.
	AddAdHoc(ctx context.Context, studentID int64, date time.Time, startHour, startMinute, durationMinutes int) (*model.DateOverride, error)
	ListForRange(ctx context.Context, start, end time.Time) ([]*model.DateOverride, error)
}

type FeedbackStore interface {
	Create(ctx context.Context, fb *model.Feedback) error
	GetByID(ctx context.Context, id int64) (*model.Feedback, error)
	GetForStudentDate(ctx context.Context, studentID int64, date time.Time) (*model.Feedback, error)
	Update(ctx context.Context, fb *model.Feedback) error
	Delete(ctx context.Context, id int64) (int64, error)
	// ListForStudent returns the student's feedback, most recent class
	// date first.
	ListForStudent(ctx context.Context, studentID int64) ([]*model.Feedback, error)
	ListForRange(ctx context.Context, start, end time.Time) ([]*model.Feedback, error)
}
