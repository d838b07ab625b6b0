package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/service"
)

func TestRegisterStudent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	student, err := f.students.Register(ctx, "  지민 ", "010-1234-5678")
	require.NoError(t, err)
	assert.NotZero(t, student.ID)
	assert.Equal(t, "지민", student.Name)
	assert.Equal(t, "010-1234-5678", student.Contact)
}

func TestRegisterStudentRequiresName(t *testing.T) {
	f := setup(t)

	_, err := f.students.Register(context.Background(), "   ", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestGetStudentWithFeedbackHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	for _, d := range []string{"2024-06-05", "2024-06-12"} {
		_, err := f.feedback.Create(ctx, service.CreateFeedbackInput{
			StudentID: st.ID,
			ClassDate: d,
		})
		require.NoError(t, err)
	}

	got, history, err := f.students.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-06-12", history[0].ClassDate.Format("2006-01-02"))
	assert.Equal(t, "2024-06-05", history[1].ClassDate.Format("2006-01-02"))
}

func TestGetStudentNotFound(t *testing.T) {
	f := setup(t)

	_, _, err := f.students.Get(context.Background(), 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateStudentNotes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	require.NoError(t, f.students.UpdateNotes(ctx, st.ID, "교재 변경 예정"))

	got, _, err := f.students.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "교재 변경 예정", got.Notes)

	err = f.students.UpdateNotes(ctx, 999, "x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteStudentCascades(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	_, err := f.schedule.CreateClasses(ctx, st.ID, []int{2}, "15:00", 60)
	require.NoError(t, err)
	_, err = f.feedback.Create(ctx, service.CreateFeedbackInput{StudentID: st.ID, ClassDate: "2024-06-05"})
	require.NoError(t, err)
	_, _, err = f.feedback.MarkAbsent(ctx, st.ID, "2024-06-12")
	require.NoError(t, err)

	require.NoError(t, f.students.Delete(ctx, st.ID))

	_, _, err = f.students.Get(ctx, st.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// The projection no longer contains the student anywhere.
	days, err := f.calendar.GetCalendarStatus(ctx, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	for _, day := range days {
		assert.Empty(t, day.Classes)
	}

	err = f.students.Delete(ctx, st.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListStudents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.registerStudent(t, "지민")
	f.registerStudent(t, "서연")

	students, err := f.students.List(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}
