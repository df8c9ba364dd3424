package components

import (
	"strconv"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// MonthYearSelector lets the user jump the calendar to any month of a
// window of years around the current one
type MonthYearSelector struct {
	form     *huh.Form
	visible  bool
	month    time.Month
	year     int
	yearSpan int
	now      func() time.Time
	applied  bool
}

// NewMonthYearSelector creates a hidden selector
func NewMonthYearSelector(yearSpan int, now func() time.Time) *MonthYearSelector {
	if now == nil {
		now = time.Now
	}
	if yearSpan <= 0 {
		yearSpan = daterange.DefaultYearSpan
	}
	return &MonthYearSelector{
		yearSpan: yearSpan,
		now:      now,
	}
}

// Show opens the selector preset to the given month
func (s *MonthYearSelector) Show(year int, month time.Month) tea.Cmd {
	s.year = year
	s.month = month
	s.visible = true
	s.applied = false
	s.form = s.buildForm()
	return s.form.Init()
}

// Hide closes the selector without applying
func (s *MonthYearSelector) Hide() {
	s.visible = false
	s.form = nil
}

// IsVisible returns whether the selector is open
func (s *MonthYearSelector) IsVisible() bool {
	return s.visible
}

// Selection returns the chosen month and year
func (s *MonthYearSelector) Selection() (int, time.Month) {
	return s.year, s.month
}

// Applied reports whether the last Update completed the form; it resets on read
func (s *MonthYearSelector) Applied() bool {
	applied := s.applied
	s.applied = false
	return applied
}

func (s *MonthYearSelector) buildForm() *huh.Form {
	monthOptions := make([]huh.Option[time.Month], 0, 12)
	for _, m := range daterange.Months() {
		monthOptions = append(monthOptions, huh.NewOption(m.Label, m.Value))
	}

	years := daterange.YearRange(s.now().Year(), s.yearSpan)
	if s.year < years[0] || s.year > years[len(years)-1] {
		// Keep the visible year selectable even when it's outside the window
		years = append([]int{s.year}, years...)
	}
	yearOptions := make([]huh.Option[int], 0, len(years))
	for _, y := range years {
		yearOptions = append(yearOptions, huh.NewOption(strconv.Itoa(y), y))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[time.Month]().
				Title("Month").
				Options(monthOptions...).
				Height(6).
				Value(&s.month),
			huh.NewSelect[int]().
				Title("Year").
				Options(yearOptions...).
				Height(6).
				Value(&s.year),
		),
	).WithShowHelp(false).WithWidth(24)
}

// Update forwards messages to the form. Esc closes without applying.
func (s *MonthYearSelector) Update(msg tea.Msg) (*MonthYearSelector, tea.Cmd) {
	if !s.visible || s.form == nil {
		return s, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		s.Hide()
		return s, nil
	}

	model, cmd := s.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.visible = false
		s.applied = true
		s.form = nil
	case huh.StateAborted:
		s.Hide()
	}

	return s, cmd
}

// View renders the selector form
func (s *MonthYearSelector) View() string {
	if !s.visible || s.form == nil {
		return ""
	}
	return s.form.View()
}
