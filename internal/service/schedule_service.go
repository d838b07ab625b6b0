package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/schedule"
)

// DefaultGranularityMinutes is the slot granularity used when the config
// does not override it.
const DefaultGranularityMinutes = 15

type ScheduleService struct {
	classes     ScheduledClassStore
	overrides   OverrideStore
	students    StudentStore
	granularity int
	logger      *zap.Logger
}

func NewScheduleService(
	classes ScheduledClassStore,
	overrides OverrideStore,
	students StudentStore,
	granularity int,
	logger *zap.Logger,
) *ScheduleService {
	if granularity <= 0 {
		granularity = DefaultGranularityMinutes
	}
	return &ScheduleService{
		classes:     classes,
		overrides:   overrides,
		students:    students,
		granularity: granularity,
		logger:      logger,
	}
}

// CreateClasses creates recurring classes for a student, one per weekday.
// All created rows share a group id so they can be deactivated together.
// Validation happens before any row is written.
func (s *ScheduleService) CreateClasses(ctx context.Context, studentID int64, weekdays []int, startTime string, durationMinutes int) ([]*model.ScheduledClass, error) {
	if len(weekdays) == 0 {
		return nil, fmt.Errorf("at least one weekday is required: %w", apperr.ErrInvalidInput)
	}
	for _, wd := range weekdays {
		if !schedule.ValidWeekday(wd) {
			return nil, fmt.Errorf("weekday %d out of range 0-6: %w", wd, apperr.ErrInvalidInput)
		}
	}
	start, err := schedule.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}
	if !schedule.ValidDuration(durationMinutes, s.granularity) {
		return nil, fmt.Errorf("duration %d must be a positive multiple of %d: %w",
			durationMinutes, s.granularity, apperr.ErrInvalidInput)
	}
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	groupID := uuid.New()
	classes := make([]*model.ScheduledClass, 0, len(weekdays))
	for _, wd := range weekdays {
		classes = append(classes, &model.ScheduledClass{
			GroupID:         groupID,
			StudentID:       studentID,
			DayOfWeek:       wd,
			StartHour:       start.Hour,
			StartMinute:     start.Minute,
			DurationMinutes: durationMinutes,
			IsActive:        true,
		})
	}

	if len(classes) == 1 {
		err = s.classes.Create(ctx, classes[0])
	} else {
		err = s.classes.CreateGroup(ctx, classes)
	}
	if err != nil {
		return nil, fmt.Errorf("create scheduled classes: %w", err)
	}

	s.logger.Info("Scheduled classes created",
		zap.Int64("student_id", studentID),
		zap.String("group_id", groupID.String()),
		zap.Ints("weekdays", weekdays),
		zap.String("start_time", start.String()),
	)
	return classes, nil
}

// UpdateClassInput carries optional fields for a partial update.
type UpdateClassInput struct {
	StudentID       *int64
	DayOfWeek       *int
	StartTime       *string
	DurationMinutes *int
	IsActive        *bool
}

// UpdateClass applies a partial update to one recurring class.
func (s *ScheduleService) UpdateClass(ctx context.Context, id int64, in UpdateClassInput) (*model.ScheduledClass, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get scheduled class: %w", err)
	}
	if class == nil {
		return nil, fmt.Errorf("scheduled class %d: %w", id, apperr.ErrNotFound)
	}

	if in.StudentID != nil {
		if err := s.requireStudent(ctx, *in.StudentID); err != nil {
			return nil, err
		}
		class.StudentID = *in.StudentID
	}
	if in.DayOfWeek != nil {
		if !schedule.ValidWeekday(*in.DayOfWeek) {
			return nil, fmt.Errorf("weekday %d out of range 0-6: %w", *in.DayOfWeek, apperr.ErrInvalidInput)
		}
		class.DayOfWeek = *in.DayOfWeek
	}
	if in.StartTime != nil {
		start, err := schedule.ParseTimeOfDay(*in.StartTime)
		if err != nil {
			return nil, err
		}
		class.StartHour, class.StartMinute = start.Hour, start.Minute
	}
	if in.DurationMinutes != nil {
		if !schedule.ValidDuration(*in.DurationMinutes, s.granularity) {
			return nil, fmt.Errorf("duration %d must be a positive multiple of %d: %w",
				*in.DurationMinutes, s.granularity, apperr.ErrInvalidInput)
		}
		class.DurationMinutes = *in.DurationMinutes
	}
	if in.IsActive != nil {
		class.IsActive = *in.IsActive
	}

	if err := s.classes.Update(ctx, class); err != nil {
		return nil, fmt.Errorf("update scheduled class: %w", err)
	}
	return class, nil
}

// DeactivateClass soft-deletes one recurring class. Past projections keep
// nothing: the class simply stops producing occurrences.
func (s *ScheduleService) DeactivateClass(ctx context.Context, id int64) error {
	affected, err := s.classes.Deactivate(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate scheduled class: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("scheduled class %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// DeactivateGroup soft-deletes every class created together.
func (s *ScheduleService) DeactivateGroup(ctx context.Context, groupID uuid.UUID) error {
	affected, err := s.classes.DeactivateGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("deactivate schedule group: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule group %s: %w", groupID, apperr.ErrNotFound)
	}
	return nil
}

func (s *ScheduleService) ListActive(ctx context.Context) ([]*model.ScheduledClass, error) {
	classes, err := s.classes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scheduled classes: %w", err)
	}
	return classes, nil
}

// ListForWeekday returns the active classes falling on one weekday,
// start time ascending. Backs the day view of the weekly timetable.
func (s *ScheduleService) ListForWeekday(ctx context.Context, weekday int) ([]*model.ScheduledClass, error) {
	if !schedule.ValidWeekday(weekday) {
		return nil, fmt.Errorf("weekday %d out of range 0-6: %w", weekday, apperr.ErrInvalidInput)
	}
	classes, err := s.classes.ListActiveForWeekday(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("list scheduled classes for weekday: %w", err)
	}
	return classes, nil
}

func (s *ScheduleService) ListForStudent(ctx context.Context, studentID int64) ([]*model.ScheduledClass, error) {
	classes, err := s.classes.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list scheduled classes for student: %w", err)
	}
	return classes, nil
}

// AddAdHocOccurrence records a one-off class for a single date,
// independent of the weekly recurrence. A second ad hoc addition for the
// same (student, date) pair fails with ErrDuplicateOccurrence.
func (s *ScheduleService) AddAdHocOccurrence(ctx context.Context, studentID int64, date string, startTime string, durationMinutes int) (*model.DateOverride, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, apperr.ErrInvalidInput)
	}
	start, err := schedule.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}
	if !schedule.ValidDuration(durationMinutes, s.granularity) {
		return nil, fmt.Errorf("duration %d must be a positive multiple of %d: %w",
			durationMinutes, s.granularity, apperr.ErrInvalidInput)
	}
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	ov, err := s.overrides.AddAdHoc(ctx, studentID, schedule.DateOf(day), start.Hour, start.Minute, durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("add ad hoc occurrence: %w", err)
	}

	s.logger.Info("Ad hoc occurrence added",
		zap.Int64("student_id", studentID),
		zap.String("date", date),
		zap.String("start_time", start.String()),
	)
	return ov, nil
}

func (s *ScheduleService) requireStudent(ctx context.Context, studentID int64) error {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return fmt.Errorf("student %d: %w", studentID, apperr.ErrNotFound)
	}
	return nil
}
