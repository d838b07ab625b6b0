// Package inmem provides in-memory implementations of the service store
// interfaces. They back the test suite and the STORAGE=memory mode used
// for local development without PostgreSQL.
package inmem

import (
	"sync"
	"time"

	"github.com/mingmingss/feedback-management/internal/model"
)

type DB struct {
	mu sync.RWMutex

	seq       int64
	students  map[int64]*model.Student
	classes   map[int64]*model.ScheduledClass
	overrides map[int64]*model.DateOverride
	feedbacks map[int64]*model.Feedback
}

func Open() *DB {
	return &DB{
		students:  make(map[int64]*model.Student),
		classes:   make(map[int64]*model.ScheduledClass),
		overrides: make(map[int64]*model.DateOverride),
		feedbacks: make(map[int64]*model.Feedback),
	}
}

// nextID must be called with db.mu held.
func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

func now() time.Time {
	return time.Now().UTC()
}
