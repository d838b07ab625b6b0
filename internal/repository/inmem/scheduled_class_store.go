package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/service"
)

type scheduledClassStore struct {
	db *DB
}

func NewScheduledClassStore(db *DB) service.ScheduledClassStore {
	return &scheduledClassStore{db: db}
}

func (s *scheduledClassStore) insert(class *model.ScheduledClass) {
	class.ID = s.db.nextID()
	class.CreatedAt = now()
	class.UpdatedAt = class.CreatedAt
	cp := *class
	s.db.classes[class.ID] = &cp
}

func (s *scheduledClassStore) Create(ctx context.Context, class *model.ScheduledClass) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.insert(class)
	return nil
}

func (s *scheduledClassStore) CreateGroup(ctx context.Context, classes []*model.ScheduledClass) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, class := range classes {
		s.insert(class)
	}
	return nil
}

func (s *scheduledClassStore) GetByID(ctx context.Context, id int64) (*model.ScheduledClass, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if class, ok := s.db.classes[id]; ok {
		cp := *class
		return &cp, nil
	}
	return nil, nil
}

func (s *scheduledClassStore) Update(ctx context.Context, class *model.ScheduledClass) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.classes[class.ID]; !ok {
		return nil
	}
	class.UpdatedAt = now()
	cp := *class
	s.db.classes[class.ID] = &cp
	return nil
}

func (s *scheduledClassStore) Deactivate(ctx context.Context, id int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	class, ok := s.db.classes[id]
	if !ok {
		return 0, nil
	}
	class.IsActive = false
	class.UpdatedAt = now()
	return 1, nil
}

func (s *scheduledClassStore) DeactivateGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var affected int64
	for _, class := range s.db.classes {
		if class.GroupID == groupID {
			class.IsActive = false
			class.UpdatedAt = now()
			affected++
		}
	}
	return affected, nil
}

func (s *scheduledClassStore) list(match func(*model.ScheduledClass) bool) []*model.ScheduledClass {
	var classes []*model.ScheduledClass
	for _, class := range s.db.classes {
		if match(class) {
			cp := *class
			classes = append(classes, &cp)
		}
	}
	sort.Slice(classes, func(i, j int) bool {
		a, b := classes[i], classes[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		am, bm := a.StartHour*60+a.StartMinute, b.StartHour*60+b.StartMinute
		if am != bm {
			return am < bm
		}
		return a.ID < b.ID
	})
	return classes
}

func (s *scheduledClassStore) ListActive(ctx context.Context) ([]*model.ScheduledClass, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return s.list(func(c *model.ScheduledClass) bool { return c.IsActive }), nil
}

func (s *scheduledClassStore) ListActiveForWeekday(ctx context.Context, weekday int) ([]*model.ScheduledClass, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return s.list(func(c *model.ScheduledClass) bool {
		return c.IsActive && c.DayOfWeek == weekday
	}), nil
}

func (s *scheduledClassStore) ListForStudent(ctx context.Context, studentID int64) ([]*model.ScheduledClass, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return s.list(func(c *model.ScheduledClass) bool {
		return c.IsActive && c.StudentID == studentID
	}), nil
}
