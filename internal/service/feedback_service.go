package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/schedule"
)

type FeedbackService struct {
	feedback  FeedbackStore
	students  StudentStore
	overrides OverrideStore
	logger    *zap.Logger
}

func NewFeedbackService(feedback FeedbackStore, students StudentStore, overrides OverrideStore, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedback:  feedback,
		students:  students,
		overrides: overrides,
		logger:    logger,
	}
}

// CreateFeedbackInput carries the fields of a new feedback entry.
// ClassDate is YYYY-MM-DD. With Compose set, ClassContent and
// ParentMessage are treated as raw form fields and the stored content
// becomes the composite parent report.
type CreateFeedbackInput struct {
	StudentID          int64
	ClassDate          string
	Textbook           string
	HomeworkCompletion int
	ClassContent       string
	ParentMessage      string
	Compose            bool
}

func (s *FeedbackService) Create(ctx context.Context, in CreateFeedbackInput) (*model.Feedback, error) {
	day, err := schedule.ParseDate(in.ClassDate)
	if err != nil {
		return nil, fmt.Errorf("parse class date %q: %w", in.ClassDate, apperr.ErrInvalidInput)
	}
	if in.HomeworkCompletion < 0 || in.HomeworkCompletion > 100 {
		return nil, fmt.Errorf("homework completion %d out of range 0-100: %w", in.HomeworkCompletion, apperr.ErrInvalidInput)
	}
	student, err := s.students.GetByID(ctx, in.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student %d: %w", in.StudentID, apperr.ErrNotFound)
	}

	content := in.ClassContent
	if in.Compose {
		content = ComposeClassContent(student.Name, schedule.DateOf(day), in.HomeworkCompletion, in.ClassContent, in.ParentMessage)
	}

	fb := &model.Feedback{
		StudentID:          in.StudentID,
		ClassDate:          schedule.DateOf(day),
		Textbook:           in.Textbook,
		HomeworkCompletion: in.HomeworkCompletion,
		ClassContent:       content,
		ParentMessage:      in.ParentMessage,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.logger.Info("Feedback created",
		zap.Int64("feedback_id", fb.ID),
		zap.Int64("student_id", fb.StudentID),
		zap.String("class_date", in.ClassDate),
	)
	return fb, nil
}

// UpdateFeedbackInput carries optional fields for a partial update.
// Last write wins; there is no version check.
type UpdateFeedbackInput struct {
	ClassDate          *string
	Textbook           *string
	HomeworkCompletion *int
	ClassContent       *string
	ParentMessage      *string
}

func (s *FeedbackService) Update(ctx context.Context, id int64, in UpdateFeedbackInput) (*model.Feedback, error) {
	fb, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	if fb == nil {
		return nil, fmt.Errorf("feedback %d: %w", id, apperr.ErrNotFound)
	}

	if in.ClassDate != nil {
		day, err := schedule.ParseDate(*in.ClassDate)
		if err != nil {
			return nil, fmt.Errorf("parse class date %q: %w", *in.ClassDate, apperr.ErrInvalidInput)
		}
		fb.ClassDate = schedule.DateOf(day)
	}
	if in.Textbook != nil {
		fb.Textbook = *in.Textbook
	}
	if in.HomeworkCompletion != nil {
		if *in.HomeworkCompletion < 0 || *in.HomeworkCompletion > 100 {
			return nil, fmt.Errorf("homework completion %d out of range 0-100: %w", *in.HomeworkCompletion, apperr.ErrInvalidInput)
		}
		fb.HomeworkCompletion = *in.HomeworkCompletion
	}
	if in.ClassContent != nil {
		fb.ClassContent = *in.ClassContent
	}
	if in.ParentMessage != nil {
		fb.ParentMessage = *in.ParentMessage
	}

	if err := s.feedback.Update(ctx, fb); err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return fb, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	affected, err := s.feedback.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("feedback %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// ListForStudent returns the student's feedback, most recent class date
// first. The first entry is what the feedback form shows as "previous
// feedback".
func (s *FeedbackService) ListForStudent(ctx context.Context, studentID int64) ([]*model.Feedback, error) {
	feedbacks, err := s.feedback.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list feedback for student: %w", err)
	}
	return feedbacks, nil
}

// MarkAbsent flags the student as absent on the given date. Idempotent.
// The occurrence stays in the day's projection with is_absent set; it is
// never removed. No feedback row is created as a side effect. When one
// already exists for the date its id is returned alongside the override.
func (s *FeedbackService) MarkAbsent(ctx context.Context, studentID int64, classDate string) (*model.DateOverride, *model.Feedback, error) {
	day, err := schedule.ParseDate(classDate)
	if err != nil {
		return nil, nil, fmt.Errorf("parse class date %q: %w", classDate, apperr.ErrInvalidInput)
	}
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, nil, fmt.Errorf("student %d: %w", studentID, apperr.ErrNotFound)
	}

	ov, err := s.overrides.MarkAbsent(ctx, studentID, schedule.DateOf(day))
	if err != nil {
		return nil, nil, fmt.Errorf("mark absent: %w", err)
	}

	fb, err := s.feedback.GetForStudentDate(ctx, studentID, schedule.DateOf(day))
	if err != nil {
		return nil, nil, fmt.Errorf("get feedback for date: %w", err)
	}

	s.logger.Info("Student marked absent",
		zap.Int64("student_id", studentID),
		zap.String("class_date", classDate),
	)
	return ov, fb, nil
}

// ComposeClassContent renders the composite report body the academy
// sends to parents: a month/week header, homework completion, lesson
// content, and the parent message in one block. The week number is the
// week-of-month of the class date (day 1-7 is week 1).
func ComposeClassContent(studentName string, classDate time.Time, homeworkCompletion int, classContent, parentMessage string) string {
	week := (classDate.Day() + 6) / 7

	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s %d월 %d주차 수업보고서📚\n\n", studentName, int(classDate.Month()), week)
	fmt.Fprintf(&b, " 📎지난숙제완성도: %d%%\n\n", homeworkCompletion)
	fmt.Fprintf(&b, " 📎수업내용: \n%s\n\n", classContent)
	fmt.Fprintf(&b, " 📎부모님 전달사항: \n%s", parentMessage)
	return b.String()
}
