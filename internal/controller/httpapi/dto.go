package httpapi

import (
	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/schedule"
)

// Wire shapes. Dates travel as YYYY-MM-DD and start times as HH:MM; the
// Monday=0 weekday encoding crosses the boundary unchanged.

type studentJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}

func toStudentJSON(st *model.Student) studentJSON {
	return studentJSON{
		ID:        st.ID,
		Name:      st.Name,
		Contact:   st.Contact,
		Notes:     st.Notes,
		CreatedAt: st.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}

type scheduledClassJSON struct {
	ID              int64  `json:"id"`
	GroupID         string `json:"group_id"`
	StudentID       int64  `json:"student_id"`
	DayOfWeek       int    `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
	CreatedAt       string `json:"created_at"`
}

func toScheduledClassJSON(sc *model.ScheduledClass) scheduledClassJSON {
	return scheduledClassJSON{
		ID:              sc.ID,
		GroupID:         sc.GroupID.String(),
		StudentID:       sc.StudentID,
		DayOfWeek:       sc.DayOfWeek,
		StartTime:       schedule.TimeOfDay{Hour: sc.StartHour, Minute: sc.StartMinute}.String(),
		DurationMinutes: sc.DurationMinutes,
		IsActive:        sc.IsActive,
		CreatedAt:       sc.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}

func toScheduledClassListJSON(classes []*model.ScheduledClass) []scheduledClassJSON {
	out := make([]scheduledClassJSON, 0, len(classes))
	for _, sc := range classes {
		out = append(out, toScheduledClassJSON(sc))
	}
	return out
}

type feedbackJSON struct {
	ID                 int64  `json:"id"`
	StudentID          int64  `json:"student_id"`
	ClassDate          string `json:"class_date"`
	Textbook           string `json:"textbook"`
	HomeworkCompletion int    `json:"homework_completion"`
	ClassContent       string `json:"class_content"`
	ParentMessage      string `json:"parent_message"`
	CreatedAt          string `json:"created_at"`
}

func toFeedbackJSON(fb *model.Feedback) feedbackJSON {
	return feedbackJSON{
		ID:                 fb.ID,
		StudentID:          fb.StudentID,
		ClassDate:          schedule.FormatDate(fb.ClassDate),
		Textbook:           fb.Textbook,
		HomeworkCompletion: fb.HomeworkCompletion,
		ClassContent:       fb.ClassContent,
		ParentMessage:      fb.ParentMessage,
		CreatedAt:          fb.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}

func toFeedbackListJSON(feedbacks []*model.Feedback) []feedbackJSON {
	out := make([]feedbackJSON, 0, len(feedbacks))
	for _, fb := range feedbacks {
		out = append(out, toFeedbackJSON(fb))
	}
	return out
}

type occurrenceJSON struct {
	StudentID       int64  `json:"student_id"`
	StudentName     string `json:"student_name"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	FeedbackWritten bool   `json:"feedback_written"`
	IsAbsent        bool   `json:"is_absent"`
	FeedbackID      *int64 `json:"feedback_id"`
}

type dayScheduleJSON struct {
	Date    string           `json:"date"`
	Classes []occurrenceJSON `json:"classes"`
}

func toCalendarJSON(days []model.DaySchedule) []dayScheduleJSON {
	out := make([]dayScheduleJSON, 0, len(days))
	for _, day := range days {
		classes := make([]occurrenceJSON, 0, len(day.Classes))
		for _, occ := range day.Classes {
			classes = append(classes, occurrenceJSON{
				StudentID:       occ.StudentID,
				StudentName:     occ.StudentName,
				StartTime:       occ.StartTime(),
				DurationMinutes: occ.DurationMinutes,
				FeedbackWritten: occ.FeedbackWritten,
				IsAbsent:        occ.IsAbsent,
				FeedbackID:      occ.FeedbackID,
			})
		}
		out = append(out, dayScheduleJSON{
			Date:    schedule.FormatDate(day.Date),
			Classes: classes,
		})
	}
	return out
}
