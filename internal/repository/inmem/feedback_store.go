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

type feedbackStore struct {
	db *DB
}

func NewFeedbackStore(db *DB) service.FeedbackStore {
	return &feedbackStore{db: db}
}

func (s *feedbackStore) Create(ctx context.Context, fb *model.Feedback) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	fb.ID = s.db.nextID()
	fb.CreatedAt = now()
	cp := *fb
	s.db.feedbacks[fb.ID] = &cp
	return nil
}

func (s *feedbackStore) GetByID(ctx context.Context, id int64) (*model.Feedback, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if fb, ok := s.db.feedbacks[id]; ok {
		cp := *fb
		return &cp, nil
	}
	return nil, nil
}

func (s *feedbackStore) GetForStudentDate(ctx context.Context, studentID int64, date time.Time) (*model.Feedback, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	date = schedule.DateOf(date)
	var found *model.Feedback
	for _, fb := range s.db.feedbacks {
		if fb.StudentID != studentID || !fb.ClassDate.Equal(date) {
			continue
		}
		if found == nil || fb.CreatedAt.Before(found.CreatedAt) {
			found = fb
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

func (s *feedbackStore) Update(ctx context.Context, fb *model.Feedback) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	prev, ok := s.db.feedbacks[fb.ID]
	if !ok {
		return fmt.Errorf("feedback %d: %w", fb.ID, apperr.ErrNotFound)
	}
	fb.CreatedAt = prev.CreatedAt
	cp := *fb
	s.db.feedbacks[fb.ID] = &cp
	return nil
}

func (s *feedbackStore) Delete(ctx context.Context, id int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.feedbacks[id]; !ok {
		return 0, nil
	}
	delete(s.db.feedbacks, id)
	return 1, nil
}

func (s *feedbackStore) ListForStudent(ctx context.Context, studentID int64) ([]*model.Feedback, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var feedbacks []*model.Feedback
	for _, fb := range s.db.feedbacks {
		if fb.StudentID == studentID {
			cp := *fb
			feedbacks = append(feedbacks, &cp)
		}
	}
	sort.Slice(feedbacks, func(i, j int) bool {
		if !feedbacks[i].ClassDate.Equal(feedbacks[j].ClassDate) {
			return feedbacks[i].ClassDate.After(feedbacks[j].ClassDate)
		}
		return feedbacks[i].CreatedAt.After(feedbacks[j].CreatedAt)
	})
	return feedbacks, nil
}

func (s *feedbackStore) ListForRange(ctx context.Context, start, end time.Time) ([]*model.Feedback, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	start, end = schedule.DateOf(start), schedule.DateOf(end)
	var feedbacks []*model.Feedback
	for _, fb := range s.db.feedbacks {
		if !fb.ClassDate.Before(start) && !fb.ClassDate.After(end) {
			cp := *fb
			feedbacks = append(feedbacks, &cp)
		}
	}
	sort.Slice(feedbacks, func(i, j int) bool {
		if !feedbacks[i].ClassDate.Equal(feedbacks[j].ClassDate) {
			return feedbacks[i].ClassDate.Before(feedbacks[j].ClassDate)
		}
		return feedbacks[i].ID < feedbacks[j].ID
	})
	return feedbacks, nil
}
