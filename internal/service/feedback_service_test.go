package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mingmingss/feedback-management/internal/apperr"
	"github.com/mingmingss/feedback-management/internal/service"
)

func TestCreateFeedback(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	fb, err := f.feedback.Create(ctx, service.CreateFeedbackInput{
		StudentID:          st.ID,
		ClassDate:          "2024-06-05",
		Textbook:           "쎈 수학 중2",
		HomeworkCompletion: 80,
		ClassContent:       "이차방정식 풀이",
		ParentMessage:      "복습 부탁드립니다",
	})
	require.NoError(t, err)
	assert.NotZero(t, fb.ID)
	assert.Equal(t, "2024-06-05", fb.ClassDate.Format("2006-01-02"))
	assert.Equal(t, "이차방정식 풀이", fb.ClassContent)
}

func TestCreateFeedbackComposed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	fb, err := f.feedback.Create(ctx, service.CreateFeedbackInput{
		StudentID:          st.ID,
		ClassDate:          "2024-06-05",
		HomeworkCompletion: 80,
		ClassContent:       "이차방정식 풀이",
		ParentMessage:      "복습 부탁드립니다",
		Compose:            true,
	})
	require.NoError(t, err)

	want := "📚 지민 6월 1주차 수업보고서📚\n\n" +
		" 📎지난숙제완성도: 80%\n\n" +
		" 📎수업내용: \n이차방정식 풀이\n\n" +
		" 📎부모님 전달사항: \n복습 부탁드립니다"
	assert.Equal(t, want, fb.ClassContent)
}

func TestCreateFeedbackValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	_, err := f.feedback.Create(ctx, service.CreateFeedbackInput{StudentID: st.ID, ClassDate: "bad"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.feedback.Create(ctx, service.CreateFeedbackInput{StudentID: st.ID, ClassDate: "2024-06-05", HomeworkCompletion: 101})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.feedback.Create(ctx, service.CreateFeedbackInput{StudentID: 999, ClassDate: "2024-06-05"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateFeedbackPartial(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	fb, err := f.feedback.Create(ctx, service.CreateFeedbackInput{
		StudentID:          st.ID,
		ClassDate:          "2024-06-05",
		Textbook:           "쎈 수학 중2",
		HomeworkCompletion: 80,
	})
	require.NoError(t, err)

	hw := 95
	updated, err := f.feedback.Update(ctx, fb.ID, service.UpdateFeedbackInput{HomeworkCompletion: &hw})
	require.NoError(t, err)
	assert.Equal(t, 95, updated.HomeworkCompletion)
	assert.Equal(t, "쎈 수학 중2", updated.Textbook)

	bad := 120
	_, err = f.feedback.Update(ctx, fb.ID, service.UpdateFeedbackInput{HomeworkCompletion: &bad})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.feedback.Update(ctx, 999, service.UpdateFeedbackInput{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteFeedback(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	fb, err := f.feedback.Create(ctx, service.CreateFeedbackInput{StudentID: st.ID, ClassDate: "2024-06-05"})
	require.NoError(t, err)

	require.NoError(t, f.feedback.Delete(ctx, fb.ID))

	err = f.feedback.Delete(ctx, fb.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMarkAbsentIdempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	ov1, fb, err := f.feedback.MarkAbsent(ctx, st.ID, "2024-06-05")
	require.NoError(t, err)
	assert.True(t, ov1.IsAbsent)
	assert.Nil(t, fb, "marking absent must not create a feedback row")

	ov2, _, err := f.feedback.MarkAbsent(ctx, st.ID, "2024-06-05")
	require.NoError(t, err)
	assert.Equal(t, ov1.ID, ov2.ID)
	assert.True(t, ov2.IsAbsent)
}

func TestMarkAbsentReturnsExistingFeedback(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	created, err := f.feedback.Create(ctx, service.CreateFeedbackInput{StudentID: st.ID, ClassDate: "2024-06-05"})
	require.NoError(t, err)

	_, fb, err := f.feedback.MarkAbsent(ctx, st.ID, "2024-06-05")
	require.NoError(t, err)
	require.NotNil(t, fb)
	assert.Equal(t, created.ID, fb.ID)
}

func TestMarkAbsentValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, _, err := f.feedback.MarkAbsent(ctx, 999, "2024-06-05")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	st := f.registerStudent(t, "지민")
	_, _, err = f.feedback.MarkAbsent(ctx, st.ID, "bad-date")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestMarkAbsentKeepsAdHocFlag(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "서연")

	_, err := f.schedule.AddAdHocOccurrence(ctx, st.ID, "2024-06-05", "10:00", 30)
	require.NoError(t, err)

	ov, _, err := f.feedback.MarkAbsent(ctx, st.ID, "2024-06-05")
	require.NoError(t, err)
	assert.True(t, ov.IsAbsent)
	assert.True(t, ov.AddedAdHoc)
}

func TestComposeClassContentWeekOfMonth(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Contains(t, service.ComposeClassContent("지민", day(1), 0, "", ""), "6월 1주차")
	assert.Contains(t, service.ComposeClassContent("지민", day(7), 0, "", ""), "6월 1주차")
	assert.Contains(t, service.ComposeClassContent("지민", day(8), 0, "", ""), "6월 2주차")
	assert.Contains(t, service.ComposeClassContent("지민", day(30), 0, "", ""), "6월 5주차")
}

func TestListForStudentOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	st := f.registerStudent(t, "지민")

	var ids []int64
	for _, d := range []string{"2024-06-05", "2024-06-19", "2024-06-12"} {
		fb, err := f.feedback.Create(ctx, service.CreateFeedbackInput{StudentID: st.ID, ClassDate: d})
		require.NoError(t, err)
		ids = append(ids, fb.ID)
	}

	list, err := f.feedback.ListForStudent(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[1], list[0].ID)
	assert.Equal(t, ids[2], list[1].ID)
	assert.Equal(t, ids[0], list[2].ID)
}
