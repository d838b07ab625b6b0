package inmem

import (
	"context"
	"sort"

	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/service"
)

type studentStore struct {
	db *DB
}

func NewStudentStore(db *DB) service.StudentStore {
	return &studentStore{db: db}
}

func (s *studentStore) Create(ctx context.Context, student *model.Student) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	student.ID = s.db.nextID()
	student.CreatedAt = now()
	cp := *student
	s.db.students[student.ID] = &cp
	return nil
}

func (s *studentStore) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if st, ok := s.db.students[id]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (s *studentStore) List(ctx context.Context) ([]*model.Student, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	students := make([]*model.Student, 0, len(s.db.students))
	for _, st := range s.db.students {
		cp := *st
		students = append(students, &cp)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].Name != students[j].Name {
			return students[i].Name < students[j].Name
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

func (s *studentStore) UpdateNotes(ctx context.Context, id int64, notes string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	st, ok := s.db.students[id]
	if !ok {
		return 0, nil
	}
	st.Notes = notes
	return 1, nil
}

func (s *studentStore) Delete(ctx context.Context, id int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.students[id]; !ok {
		return 0, nil
	}
	delete(s.db.students, id)
	for cid, class := range s.db.classes {
		if class.StudentID == id {
			delete(s.db.classes, cid)
		}
	}
	for oid, ov := range s.db.overrides {
		if ov.StudentID == id {
			delete(s.db.overrides, oid)
		}
	}
	for fid, fb := range s.db.feedbacks {
		if fb.StudentID == id {
			delete(s.db.feedbacks, fid)
		}
	}
	return 1, nil
}
