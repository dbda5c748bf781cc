package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextWorkday_SkipsWeekends(t *testing.T) {
	tests := []struct {
		name string
		from string
		want string
	}{
		{"midweek", "2024-01-02", "2024-01-03"},
		{"friday to monday", "2024-01-05", "2024-01-08"},
		{"saturday to monday", "2024-01-06", "2024-01-08"},
		{"sunday to monday", "2024-01-07", "2024-01-08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, day(tt.want), NextWorkday(day(tt.from)))
		})
	}
}

func TestSkipWeekend_KeepsWorkdays(t *testing.T) {
	assert.Equal(t, day("2024-01-01"), SkipWeekend(day("2024-01-01")))
	assert.Equal(t, day("2024-01-08"), SkipWeekend(day("2024-01-06")))
}

func TestParseDay_Formats(t *testing.T) {
	want := day("2024-05-10")

	for _, input := range []string{"2024-05-10", "10/05/2024", "10-05-2024", "2024/05/10", " 2024-05-10 "} {
		got, ok := ParseDay(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseDay_Malformed(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2024-13-40", "mañana"} {
		_, ok := ParseDay(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestParseDayOr_FallsBack(t *testing.T) {
	fallback := day("2024-01-01")
	assert.Equal(t, fallback, ParseDayOr("garbage", fallback))
	assert.Equal(t, day("2024-02-02"), ParseDayOr("2024-02-02", fallback))
}

func TestTimestamps(t *testing.T) {
	start, end := Timestamps(day("2024-01-02"), 2, 3)

	assert.Equal(t, WorkdayStartHour+2, start.Hour())
	assert.Equal(t, 3*time.Hour, end.Sub(start))
	assert.Equal(t, 2, start.Day())
}

func TestTimestamps_ZeroHourMarker(t *testing.T) {
	start, end := Timestamps(day("2024-01-02"), 0, 0)
	assert.True(t, start.Equal(end))
}
