package service_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/repository/inmem"
	"github.com/mingmingss/feedback-management/internal/service"
)

type fixture struct {
	students *service.StudentService
	schedule *service.ScheduleService
	feedback *service.FeedbackService
	calendar *service.CalendarService
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := inmem.Open()
	students := inmem.NewStudentStore(db)
	classes := inmem.NewScheduledClassStore(db)
	overrides := inmem.NewOverrideStore(db)
	feedback := inmem.NewFeedbackStore(db)

	logger := zap.NewNop()
	return &fixture{
		students: service.NewStudentService(students, feedback, logger),
		schedule: service.NewScheduleService(classes, overrides, students, 0, logger),
		feedback: service.NewFeedbackService(feedback, students, overrides, logger),
		calendar: service.NewCalendarService(classes, overrides, feedback, students, nil, logger),
	}
}

func (f *fixture) registerStudent(t *testing.T, name string) *model.Student {
	t.Helper()
	student, err := f.students.Register(context.Background(), name, "")
	if err != nil {
		t.Fatalf("register student: %v", err)
	}
	return student
}
