package utils

import "time"

// DayBounds 返回 t 所在自然日的闭区间 [00:00:00.000, 23:59:59.999]，
// 使用 t 自带的时区，也就是服务器的本地时区
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// MonthBounds 返回 t 所在自然月的闭区间
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// YearBounds 返回 year 这一年的闭区间
func YearBounds(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}
