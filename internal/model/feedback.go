package model

import "time"

// Feedback is one lesson's written feedback for a student.
type Feedback struct {
	ID                 int64     `json:"id"`
	StudentID          int64     `json:"student_id"`
	ClassDate          time.Time `json:"class_date"` // calendar date, midnight UTC
	Textbook           string    `json:"textbook"`
	HomeworkCompletion int       `json:"homework_completion"` // percentage, 0-100
	ClassContent       string    `json:"class_content"`
	ParentMessage      string    `json:"parent_message"`
	CreatedAt          time.Time `json:"created_at"`
}
