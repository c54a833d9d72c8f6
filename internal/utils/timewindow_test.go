package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func within(t time.Time, start time.Time, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func TestDayBounds(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 45, 0, time.Local)
	start, end := DayBounds(now)

	require.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local), start)
	require.Equal(t, time.Date(2025, 3, 15, 23, 59, 59, int(999*time.Millisecond), time.Local), end)

	// 当天最后一毫秒之前的提交算今天的
	assert.True(t, within(time.Date(2025, 3, 15, 23, 59, 59, int(998*time.Millisecond), time.Local), start, end))
	assert.True(t, within(start, start, end))
	// 第二天的零点之后不算
	assert.False(t, within(time.Date(2025, 3, 16, 0, 0, 0, int(1*time.Millisecond), time.Local), start, end))
	assert.False(t, within(time.Date(2025, 3, 14, 23, 59, 59, 0, time.Local), start, end))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2024, 2, 10, 12, 0, 0, 0, time.Local))

	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), start)
	// 2024 年是闰年
	require.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), time.Local), end)
}

func TestYearBounds(t *testing.T) {
	start, end := YearBounds(2025, time.Local)

	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), start)
	require.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, int(999*time.Millisecond), time.Local), end)
}
