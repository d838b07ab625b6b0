package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mingmingss/feedback-management/internal/apperr"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: TimeOfDay{0, 0}},
		{in: "09:05", want: TimeOfDay{9, 5}},
		{in: "15:30", want: TimeOfDay{15, 30}},
		{in: "23:59", want: TimeOfDay{23, 59}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9:30", wantErr: true},
		{in: "09:30:00", wantErr: true},
		{in: "0930", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, apperr.ErrInvalidInput, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay{9, 5}.String())
	assert.Equal(t, "15:00", TimeOfDay{15, 0}.String())
}

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 0, TimeOfDay{0, 0}.MinuteOfDay())
	assert.Equal(t, 930, TimeOfDay{15, 30}.MinuteOfDay())
}

func TestValidDuration(t *testing.T) {
	assert.True(t, ValidDuration(60, 15))
	assert.True(t, ValidDuration(45, 15))
	assert.False(t, ValidDuration(50, 15))
	assert.False(t, ValidDuration(0, 15))
	assert.False(t, ValidDuration(-30, 15))

	// Zero granularity disables the alignment check.
	assert.True(t, ValidDuration(7, 0))
	assert.False(t, ValidDuration(0, 0))
}

func TestWeekdayOf(t *testing.T) {
	// 2024-06-03 is a Monday.
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, WeekdayOf(monday.AddDate(0, 0, i)))
	}
}

func TestValidWeekday(t *testing.T) {
	assert.True(t, ValidWeekday(0))
	assert.True(t, ValidWeekday(6))
	assert.False(t, ValidWeekday(-1))
	assert.False(t, ValidWeekday(7))
}

func TestWeekdayShortName(t *testing.T) {
	assert.Equal(t, "Mon", WeekdayShortName(0))
	assert.Equal(t, "Sun", WeekdayShortName(6))
	assert.Equal(t, "?", WeekdayShortName(7))
}

func TestDateOf(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	at := time.Date(2024, 6, 5, 23, 45, 12, 0, loc)
	got := DateOf(at)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2024-06-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", FormatDate(d))

	_, err = ParseDate("06/05/2024")
	assert.Error(t, err)
}
