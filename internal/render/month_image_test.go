package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mingmingss/feedback-management/internal/model"
)

func TestMonthProducesDecodablePNG(t *testing.T) {
	days := []model.DaySchedule{
		{
			Date: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			Classes: []model.Occurrence{
				{StudentID: 1, StudentName: "지민", StartHour: 15, DurationMinutes: 60},
				{StudentID: 2, StudentName: "서연", StartHour: 16, DurationMinutes: 60, FeedbackWritten: true},
				{StudentID: 3, StudentName: "하준", StartHour: 17, DurationMinutes: 60, IsAbsent: true},
			},
		},
	}

	data, err := Month(2024, time.June, days, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestMonthEmptyDays(t *testing.T) {
	data, err := Month(2024, time.February, nil, time.Time{})
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestCountStatuses(t *testing.T) {
	day := model.DaySchedule{
		Classes: []model.Occurrence{
			{},
			{FeedbackWritten: true},
			{IsAbsent: true},
			{IsAbsent: true, FeedbackWritten: true},
		},
	}

	counts := countStatuses(day)
	assert.Equal(t, 1, counts.pending)
	assert.Equal(t, 1, counts.written)
	assert.Equal(t, 2, counts.absent)
}
