package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/schedule"
	"github.com/mingmingss/feedback-management/internal/service"
)

type overrideStore struct {
	db *DB
}

func NewOverrideStore(db *DB) service.OverrideStore {
	return &overrideStore{db: db}
}

// find must be called with db.mu held.
func (s *overrideStore) find(studentID int64, date time.Time) *model.DateOverride {
	for _, ov := range s.db.overrides {
		if ov.StudentID == studentID && ov.Date.Equal(date) {
			return ov
		}
	}
	return nil
}

func (s *overrideStore) MarkAbsent(ctx context.Context, studentID int64, date time.Time) (*model.DateOverride, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	date = schedule.DateOf(date)
	if ov := s.find(studentID, date); ov != nil {
		ov.IsAbsent = true
		ov.UpdatedAt = now()
		cp := *ov
		return &cp, nil
	}

	ov := &model.DateOverride{
		ID:        s.db.nextID(),
		StudentID: studentID,
		Date:      date,
		IsAbsent:  true,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	s.db.overrides[ov.ID] = ov
	cp := *ov
	return &cp, nil
}

func (s *overrideStore) AddAdHoc(ctx context.Context, studentID int64, date time.Time, startHour, startMinute, durationMinutes int) (*model.DateOverride, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	date = schedule.DateOf(date)
	if ov := s.find(studentID, date); ov != nil {
		if ov.AddedAdHoc {
			return nil, fmt.Errorf("student %d on %s: %w",
				studentID, schedule.FormatDate(date), apperr.ErrDuplicateOccurrence)
		}
		ov.AddedAdHoc = true
		ov.StartHour = startHour
		ov.StartMinute = startMinute
		ov.DurationMinutes = durationMinutes
		ov.UpdatedAt = now()
		cp := *ov
		return &cp, nil
	}

	ov := &model.DateOverride{
		ID:              s.db.nextID(),
		StudentID:       studentID,
		Date:            date,
		AddedAdHoc:      true,
		StartHour:       startHour,
		StartMinute:     startMinute,
		DurationMinutes: durationMinutes,
		CreatedAt:       now(),
		UpdatedAt:       now(),
	}
	s.db.overrides[ov.ID] = ov
	cp := *ov
	return &cp, nil
}

func (s *overrideStore) ListForRange(ctx context.Context, start, end time.Time) ([]*model.DateOverride, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	start, end = schedule.DateOf(start), schedule.DateOf(end)
	var overrides []*model.DateOverride
	for _, ov := range s.db.overrides {
		if !ov.Date.Before(start) && !ov.Date.After(end) {
			cp := *ov
			overrides = append(overrides, &cp)
		}
	}
	sort.Slice(overrides, func(i, j int) bool {
		if !overrides[i].Date.Equal(overrides[j].Date) {
			return overrides[i].Date.Before(overrides[j].Date)
		}
		return overrides[i].StudentID < overrides[j].StudentID
	})
	return overrides, nil
}
