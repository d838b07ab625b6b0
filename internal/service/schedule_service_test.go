package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/service"
)

func TestCreateClassesSharedGroup(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	classes, err := f.schedule.CreateClasses(ctx, st.ID, []int{0, 2, 4}, "15:30", 60)
	require.NoError(t, err)
	require.Len(t, classes, 3)

	group := classes[0].GroupID
	assert.NotEqual(t, uuid.Nil, group)
	for _, c := range classes {
		assert.Equal(t, group, c.GroupID)
		assert.Equal(t, st.ID, c.StudentID)
		assert.Equal(t, 15, c.StartHour)
		assert.Equal(t, 30, c.StartMinute)
		assert.Equal(t, 60, c.DurationMinutes)
		assert.True(t, c.IsActive)
	}

	active, err := f.schedule.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestCreateClassesValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	cases := []struct {
		name     string
		weekdays []int
		start    string
		duration int
		wantErr  error
	}{
		{"no weekdays", nil, "15:00", 60, apperr.ErrInvalidInput},
		{"weekday out of range", []int{7}, "15:00", 60, apperr.ErrInvalidInput},
		{"negative weekday", []int{-1}, "15:00", 60, apperr.ErrInvalidInput},
		{"bad time", []int{2}, "25:00", 60, apperr.ErrInvalidInput},
		{"duration off granularity", []int{2}, "15:00", 50, apperr.ErrInvalidInput},
		{"zero duration", []int{2}, "15:00", 0, apperr.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.schedule.CreateClasses(ctx, st.ID, tc.weekdays, tc.start, tc.duration)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Nothing was written for any of the rejected inputs.
	active, err := f.schedule.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCreateClassesUnknownStudent(t *testing.T) {
	f := setup(t)

	_, err := f.schedule.CreateClasses(context.Background(), 999, []int{2}, "15:00", 60)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateClassPartial(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	classes, err := f.schedule.CreateClasses(ctx, st.ID, []int{2}, "15:00", 60)
	require.NoError(t, err)
	id := classes[0].ID

	newStart := "16:30"
	updated, err := f.schedule.UpdateClass(ctx, id, service.UpdateClassInput{StartTime: &newStart})
	require.NoError(t, err)
	assert.Equal(t, 16, updated.StartHour)
	assert.Equal(t, 30, updated.StartMinute)
	assert.Equal(t, 2, updated.DayOfWeek)
	assert.Equal(t, 60, updated.DurationMinutes)

	badDay := 9
	_, err = f.schedule.UpdateClass(ctx, id, service.UpdateClassInput{DayOfWeek: &badDay})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.schedule.UpdateClass(ctx, 999, service.UpdateClassInput{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeactivateClass(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	classes, err := f.schedule.CreateClasses(ctx, st.ID, []int{2}, "15:00", 60)
	require.NoError(t, err)

	require.NoError(t, f.schedule.DeactivateClass(ctx, classes[0].ID))

	active, err := f.schedule.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Soft delete: the row survives as an inactive record.
	class, err := f.schedule.UpdateClass(ctx, classes[0].ID, service.UpdateClassInput{})
	require.NoError(t, err)
	assert.False(t, class.IsActive)

	err = f.schedule.DeactivateClass(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeactivateGroup(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	classes, err := f.schedule.CreateClasses(ctx, st.ID, []int{0, 2, 4}, "15:00", 60)
	require.NoError(t, err)

	require.NoError(t, f.schedule.DeactivateGroup(ctx, classes[0].GroupID))

	active, err := f.schedule.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	err = f.schedule.DeactivateGroup(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListForWeekday(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	_, err := f.schedule.CreateClasses(ctx, st.ID, []int{0, 2}, "15:00", 60)
	require.NoError(t, err)

	classes, err := f.schedule.ListForWeekday(ctx, 2)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, 2, classes[0].DayOfWeek)

	classes, err = f.schedule.ListForWeekday(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, classes)

	_, err = f.schedule.ListForWeekday(ctx, 7)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestAddAdHocOccurrence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "서연")

	ov, err := f.schedule.AddAdHocOccurrence(ctx, st.ID, "2024-06-05", "10:00", 30)
	require.NoError(t, err)
	assert.True(t, ov.AddedAdHoc)
	assert.Equal(t, 10, ov.StartHour)
	assert.Equal(t, 30, ov.DurationMinutes)
}

func TestAddAdHocOccurrenceDuplicate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "서연")

	_, err := f.schedule.AddAdHocOccurrence(ctx, st.ID, "2024-06-05", "10:00", 30)
	require.NoError(t, err)

	_, err = f.schedule.AddAdHocOccurrence(ctx, st.ID, "2024-06-05", "11:00", 30)
	assert.ErrorIs(t, err, apperr.ErrDuplicateOccurrence)

	// Another date for the same student is fine.
	_, err = f.schedule.AddAdHocOccurrence(ctx, st.ID, "2024-06-06", "10:00", 30)
	assert.NoError(t, err)
}

func TestAddAdHocOccurrenceValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "서연")

	_, err := f.schedule.AddAdHocOccurrence(ctx, st.ID, "06/05/2024", "10:00", 30)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.schedule.AddAdHocOccurrence(ctx, st.ID, "2024-06-05", "10:99", 30)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.schedule.AddAdHocOccurrence(ctx, 999, "2024-06-05", "10:00", 30)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
