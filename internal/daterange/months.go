package daterange

import "time"

// DefaultYearSpan is how many years either side of the current one the
// month/year selector offers
const DefaultYearSpan = 50

// MonthOption is a selectable month
type MonthOption struct {
	Value time.Month
	Label string
}

// MonthName returns the full English month name
func MonthName(m time.Month) string {
	return m.String()
}

// Months returns January through December
func Months() []MonthOption {
	months := make([]MonthOption, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, MonthOption{Value: m, Label: MonthName(m)})
	}
	return months
}

// YearRange returns current-span through current+span inclusive
func YearRange(current, span int) []int {
	if span < 0 {
		span = 0
	}
	years := make([]int, 0, 2*span+1)
	for y := current - span; y <= current+span; y++ {
		years = append(years, y)
	}
	return years
}

// MonthTitle renders a month heading such as "March 2024"
func MonthTitle(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}
