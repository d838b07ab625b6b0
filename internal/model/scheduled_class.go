package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledClass is a weekly recurring lesson template for one student.
type ScheduledClass struct {
	ID              int64     `json:"id"`
	GroupID         uuid.UUID `json:"group_id"` // classes created together share a group
	StudentID       int64     `json:"student_id"`
	DayOfWeek       int       `json:"day_of_week"`      // 0 = Monday, 6 = Sunday
	StartHour       int       `json:"start_hour"`       // 0-23
	StartMinute     int       `json:"start_minute"`     // 0-59
	DurationMinutes int       `json:"duration_minutes"` // positive, granularity-aligned
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
