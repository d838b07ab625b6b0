package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/render"
	"github.com/mingmingss/feedback-management/internal/schedule"
)

// CalendarService answers calendar status queries. It fetches store state
// once per request and hands it to the pure projector; nothing is cached
// between requests, so a feedback written or absence marked between two
// calls shows up immediately.
type CalendarService struct {
	classes   ScheduledClassStore
	overrides OverrideStore
	feedback  FeedbackStore
	students  StudentStore
	loc       *time.Location // academy-local time, used for "today"
	logger    *zap.Logger
}

func NewCalendarService(
	classes ScheduledClassStore,
	overrides OverrideStore,
	feedback FeedbackStore,
	students StudentStore,
	loc *time.Location,
	logger *zap.Logger,
) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{
		classes:   classes,
		overrides: overrides,
		feedback:  feedback,
		students:  students,
		loc:       loc,
		logger:    logger,
	}
}

// GetCalendarStatus projects the closed range [startDate, endDate] into
// one DaySchedule per date. Dates are YYYY-MM-DD. Fails with
// ErrInvalidRange when the end precedes the start. Read-only.
func (s *CalendarService) GetCalendarStatus(ctx context.Context, startDate, endDate string) ([]model.DaySchedule, error) {
	start, err := schedule.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("parse start date %q: %w", startDate, apperr.ErrInvalidInput)
	}
	end, err := schedule.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date %q: %w", endDate, apperr.ErrInvalidInput)
	}
	return s.projectRange(ctx, start, end)
}

// GetMonthStatus projects a full calendar month, the primary caller
// pattern (the UI requests the first through last day of the displayed
// month).
func (s *CalendarService) GetMonthStatus(ctx context.Context, year int, month time.Month) ([]model.DaySchedule, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return s.projectRange(ctx, start, end)
}

// RenderMonthImage draws the month status grid as a PNG.
func (s *CalendarService) RenderMonthImage(ctx context.Context, year int, month time.Month) ([]byte, error) {
	days, err := s.GetMonthStatus(ctx, year, month)
	if err != nil {
		return nil, err
	}

	today := time.Now().In(s.loc)
	return render.Month(year, month, days, schedule.DateOf(today))
}

func (s *CalendarService) projectRange(ctx context.Context, start, end time.Time) ([]model.DaySchedule, error) {
	start, end = schedule.DateOf(start), schedule.DateOf(end)
	if end.Before(start) {
		return nil, fmt.Errorf("range %s..%s: %w",
			schedule.FormatDate(start), schedule.FormatDate(end), apperr.ErrInvalidRange)
	}

	classes, err := s.classes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scheduled classes: %w", err)
	}
	overrides, err := s.overrides.ListForRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	feedbacks, err := s.feedback.ListForRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	byID := make(map[int64]*model.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}

	days, err := schedule.Project(start, end, schedule.ProjectionInput{
		Classes:   classes,
		Overrides: overrides,
		Feedbacks: feedbacks,
		Students:  byID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Calendar range projected",
		zap.String("start", schedule.FormatDate(start)),
		zap.String("end", schedule.FormatDate(end)),
		zap.Int("days", len(days)),
	)
	return days, nil
}
