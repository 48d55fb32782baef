package reconciliation

import "time"

// ReferenceWindow returns the period a run covers: the first day of
// now's month through today. When the month opens on a weekend the
// start slides forward to the next Monday, matching how the source
// exports are cut.
func ReferenceWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	switch start.Weekday() {
	case time.Saturday:
		start = start.AddDate(0, 0, 2)
	case time.Sunday:
		start = start.AddDate(0, 0, 1)
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, end
}

// LastWorkingDay returns the last weekday of now's month.
func LastWorkingDay(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	switch day.Weekday() {
	case time.Saturday:
		day = day.AddDate(0, 0, -1)
	case time.Sunday:
		day = day.AddDate(0, 0, -2)
	}
	return day
}

// IsProcessingDay reports whether scheduled runs fire today: the 20th
// of the month or the month's last working day.
func IsProcessingDay(now time.Time) bool {
	if now.Day() == 20 {
		return true
	}
	last := LastWorkingDay(now)
	return now.Year() == last.Year() && now.YearDay() == last.YearDay()
}
