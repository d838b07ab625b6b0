package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/model"
)

// ProjectionInput is a snapshot of store state fetched by the caller.
// Project is a pure function over it: the same input always yields the
// same projection, and nothing is cached between calls.
type ProjectionInput struct {
	Classes   []*model.ScheduledClass // active recurring classes
	Overrides []*model.DateOverride
	Feedbacks []*model.Feedback
	Students  map[int64]*model.Student
}

type studentDate struct {
	studentID int64
	date      string
}

// Project expands the closed range [start, end] into one DaySchedule per
// date. Every date in the range is present in the result, with an empty
// class list when nothing falls on it.
//
// Per date D: recurring classes whose weekday matches D, plus ad hoc
// overrides for D, form the occurrence list. A student with both a
// recurring class and an ad hoc addition on D gets two independent
// occurrences; they are intentionally not merged. Absence and
// feedback-written flags are then applied per (student, D).
func Project(start, end time.Time, in ProjectionInput) ([]model.DaySchedule, error) {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return nil, fmt.Errorf("range %s..%s: %w", FormatDate(start), FormatDate(end), apperr.ErrInvalidRange)
	}

	var byWeekday [7][]*model.ScheduledClass
	for _, sc := range in.Classes {
		if !sc.IsActive || !ValidWeekday(sc.DayOfWeek) {
			continue
		}
		byWeekday[sc.DayOfWeek] = append(byWeekday[sc.DayOfWeek], sc)
	}

	overrides := make(map[studentDate]*model.DateOverride, len(in.Overrides))
	for _, ov := range in.Overrides {
		overrides[studentDate{ov.StudentID, FormatDate(ov.Date)}] = ov
	}

	feedbacks := make(map[studentDate]*model.Feedback, len(in.Feedbacks))
	for _, fb := range in.Feedbacks {
		key := studentDate{fb.StudentID, FormatDate(fb.ClassDate)}
		// Keep the earliest-created feedback when several exist for one date.
		if prev, ok := feedbacks[key]; ok && prev.CreatedAt.Before(fb.CreatedAt) {
			continue
		}
		feedbacks[key] = fb
	}

	var days []model.DaySchedule
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		occs := make([]model.Occurrence, 0)

		for _, sc := range byWeekday[WeekdayOf(d)] {
			occs = append(occs, model.Occurrence{
				StudentID:       sc.StudentID,
				StartHour:       sc.StartHour,
				StartMinute:     sc.StartMinute,
				DurationMinutes: sc.DurationMinutes,
			})
		}
		for _, ov := range in.Overrides {
			if ov.AddedAdHoc && DateOf(ov.Date).Equal(d) {
				occs = append(occs, model.Occurrence{
					StudentID:       ov.StudentID,
					StartHour:       ov.StartHour,
					StartMinute:     ov.StartMinute,
					DurationMinutes: ov.DurationMinutes,
					AddedAdHoc:      true,
				})
			}
		}

		for i := range occs {
			occ := &occs[i]
			key := studentDate{occ.StudentID, FormatDate(d)}
			if st, ok := in.Students[occ.StudentID]; ok {
				occ.StudentName = st.Name
			}
			if ov, ok := overrides[key]; ok && ov.IsAbsent {
				occ.IsAbsent = true
			}
			if fb, ok := feedbacks[key]; ok {
				occ.FeedbackWritten = true
				id := fb.ID
				occ.FeedbackID = &id
			}
		}

		sort.SliceStable(occs, func(i, j int) bool {
			a, b := occs[i], occs[j]
			am, bm := a.StartHour*60+a.StartMinute, b.StartHour*60+b.StartMinute
			if am != bm {
				return am < bm
			}
			return a.StudentID < b.StudentID
		})

		days = append(days, model.DaySchedule{Date: d, Classes: occs})
	}

	return days, nil
}
