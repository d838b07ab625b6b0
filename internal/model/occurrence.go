package model

import (
	"fmt"
	"time"
)

type OccurrenceStatus string

const (
	StatusFeedbackPending OccurrenceStatus = "feedback_pending"
	StatusFeedbackWritten OccurrenceStatus = "feedback_written"
	StatusAbsent          OccurrenceStatus = "absent"
)

// Occurrence is one concrete lesson instance for a student on a specific
// date, derived from a recurring class and/or an ad hoc addition. Never
// persisted; recomputed on every query.
type Occurrence struct {
	StudentID       int64  `json:"student_id"`
	StudentName     string `json:"student_name"`
	StartHour       int    `json:"start_hour"`
	StartMinute     int    `json:"start_minute"`
	DurationMinutes int    `json:"duration_minutes"`
	FeedbackWritten bool   `json:"feedback_written"`
	IsAbsent        bool   `json:"is_absent"`
	FeedbackID      *int64 `json:"feedback_id,omitempty"`
	AddedAdHoc      bool   `json:"added_ad_hoc"`
}

// StartTime returns the start time as "HH:MM".
func (o Occurrence) StartTime() string {
	return fmt.Sprintf("%02d:%02d", o.StartHour, o.StartMinute)
}

// Status derives the display status. Absence dominates: an absent
// occurrence stays absent even when a feedback row exists for the date.
func (o Occurrence) Status() OccurrenceStatus {
	switch {
	case o.IsAbsent:
		return StatusAbsent
	case o.FeedbackWritten:
		return StatusFeedbackWritten
	default:
		return StatusFeedbackPending
	}
}

// DaySchedule is the projection of one calendar date: every occurrence
// falling on that date, ordered by start time then student id.
type DaySchedule struct {
	Date    time.Time    `json:"date"`
	Classes []Occurrence `json:"classes"`
}
