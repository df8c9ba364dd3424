package daterange_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
)

// ExampleSelect shows the two-click selection swapping an out-of-order second click
func ExampleSelect() {
	r := daterange.DateRange{}
	r = daterange.Select(r, time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local))
	fmt.Println(daterange.FormatRange(r))

	r = daterange.Select(r, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local))
	fmt.Println(daterange.FormatRange(r))

	// Output:
	// 03/05/2024
	// 03/01/2024 - 03/05/2024
}

// ExampleParseRange shows descending input being ordered
func ExampleParseRange() {
	r := daterange.ParseRange("03/05/2024 - 03/01/2024")
	fmt.Println(daterange.FormatRange(r))
	fmt.Println(r.Days(), "days")

	fmt.Println(daterange.ParseRange("not a date").IsEmpty())

	// Output:
	// 03/01/2024 - 03/05/2024
	// 5 days
	// true
}

// ExampleDaysForMonth prints the first row of a month view
func ExampleDaysForMonth() {
	days := daterange.DaysForMonth(2025, time.January)
	week := make([]string, 0, 7)
	for _, d := range days[:7] {
		week = append(week, d.Format("Jan 2"))
	}
	fmt.Println(strings.Join(week, ", "))
	fmt.Println(len(days))

	// Output:
	// Dec 29, Dec 30, Dec 31, Jan 1, Jan 2, Jan 3, Jan 4
	// 42
}
