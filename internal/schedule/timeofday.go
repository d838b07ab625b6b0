package schedule

import (
	"fmt"

	"github.com/mingmingss/feedback-management/internal/apperr"
)

// TimeOfDay is a wall-clock start time within a day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24h format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("parse time %q: %w", s, apperr.ErrInvalidInput)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q out of range: %w", s, apperr.ErrInvalidInput)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinuteOfDay returns minutes since midnight, used for ordering.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// ValidDuration reports whether minutes is positive and aligned to the
// configured slot granularity.
func ValidDuration(minutes, granularity int) bool {
	if minutes <= 0 {
		return false
	}
	if granularity > 0 && minutes%granularity != 0 {
		return false
	}
	return true
}
