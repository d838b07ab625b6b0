package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/model"
)

type StudentService struct {
	students StudentStore
	feedback FeedbackStore
	logger   *zap.Logger
}

func NewStudentService(students StudentStore, feedback FeedbackStore, logger *zap.Logger) *StudentService {
	return &StudentService{
		students: students,
		feedback: feedback,
		logger:   logger,
	}
}

// Register creates a new student. Name is required.
func (s *StudentService) Register(ctx context.Context, name, contact string) (*model.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("student name is required: %w", apperr.ErrInvalidInput)
	}

	student := &model.Student{
		Name:    name,
		Contact: strings.TrimSpace(contact),
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.logger.Info("Student registered",
		zap.Int64("student_id", student.ID),
		zap.String("name", student.Name),
	)
	return student, nil
}

// Get returns the student together with their feedback history, most
// recent first.
func (s *StudentService) Get(ctx context.Context, id int64) (*model.Student, []*model.Feedback, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, nil, fmt.Errorf("student %d: %w", id, apperr.ErrNotFound)
	}

	feedbacks, err := s.feedback.ListForStudent(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list feedback for student: %w", err)
	}
	return student, feedbacks, nil
}

func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// UpdateNotes replaces the student's notes. Last write wins.
func (s *StudentService) UpdateNotes(ctx context.Context, id int64, notes string) error {
	affected, err := s.students.UpdateNotes(ctx, id, notes)
	if err != nil {
		return fmt.Errorf("update student notes: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// Delete removes the student and every dependent row: scheduled classes,
// date overrides, and feedback. After this, the student appears in no
// projection.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	affected, err := s.students.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student %d: %w", id, apperr.ErrNotFound)
	}

	s.logger.Info("Student deleted", zap.Int64("student_id", id))
	return nil
}
