package model

import "time"

// DateOverride holds per-date exception data for one student: an absence
// marker, an ad hoc (one-off) class, or both. At most one row exists per
// (student, date) pair.
type DateOverride struct {
	ID              int64     `json:"id"`
	StudentID       int64     `json:"student_id"`
	Date            time.Time `json:"date"` // calendar date, midnight UTC
	IsAbsent        bool      `json:"is_absent"`
	AddedAdHoc      bool      `json:"added_ad_hoc"`
	StartHour       int       `json:"start_hour"`       // meaningful only when AddedAdHoc
	StartMinute     int       `json:"start_minute"`     // meaningful only when AddedAdHoc
	DurationMinutes int       `json:"duration_minutes"` // meaningful only when AddedAdHoc
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
