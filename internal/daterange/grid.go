package daterange

import "time"

const (
	// DaysPerWeek is the number of columns in a calendar grid
	DaysPerWeek = 7
	// GridWeeks is the number of rows in a calendar grid
	GridWeeks = 6
	// GridSize is the number of days in a calendar grid
	GridSize = DaysPerWeek * GridWeeks
)

// CalendarDay is one cell of a calendar grid
type CalendarDay struct {
	Date         time.Time
	OutsideMonth bool
	Disabled     bool
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Offset returns the column of the 1st of the month for a week starting on weekStart
func Offset(year int, month time.Month, weekStart time.Weekday) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) - int(weekStart) + DaysPerWeek) % DaysPerWeek
}

// DaysForMonth returns the 42 days shown for a Sunday-first month view,
// padded with the tail of the previous month and the head of the next one.
func DaysForMonth(year int, month time.Month) []time.Time {
	return DaysForMonthFrom(year, month, time.Sunday)
}

// DaysForMonthFrom is DaysForMonth with a configurable first weekday
func DaysForMonthFrom(year int, month time.Month, weekStart time.Weekday) []time.Time {
	offset := Offset(year, month, weekStart)

	days := make([]time.Time, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		// time.Date normalizes day overflow in both directions, including year rollover
		days = append(days, time.Date(year, month, 1-offset+i, 0, 0, 0, 0, time.Local))
	}
	return days
}

// Month returns the grid cells for a month with the outside-month and
// disabled flags filled in. A nil policy disables nothing.
func Month(year int, month time.Month, weekStart time.Weekday, policy Policy) []CalendarDay {
	if policy == nil {
		policy = AllowAll{}
	}

	dates := DaysForMonthFrom(year, month, weekStart)
	cells := make([]CalendarDay, len(dates))
	for i, d := range dates {
		cells[i] = CalendarDay{
			Date:         d,
			OutsideMonth: d.Month() != month,
			Disabled:     policy.Disabled(d),
		}
	}
	return cells
}

// PrevMonth returns the month before the given one
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth returns the month after the given one
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// Weekdays returns the column headers for a week starting on weekStart
func Weekdays(weekStart time.Weekday) []string {
	names := make([]string, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		wd := time.Weekday((int(weekStart) + i) % DaysPerWeek)
		names = append(names, wd.String()[:3])
	}
	return names
}
