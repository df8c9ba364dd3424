package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	calendarCellWidth  = 3
	calendarWidth      = calendarCellWidth * daterange.DaysPerWeek
	calendarHeaderRows = 2 // month title + weekday names
	calendarHeight     = calendarHeaderRows + daterange.GridWeeks
	navButtonWidth     = 3
)

var (
	calendarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	calendarNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	calendarWeekdayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	calendarOutsideStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	calendarDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238")).
				Strikethrough(true)

	calendarTodayStyle = lipgloss.NewStyle().
				Underline(true)

	calendarEndpointStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("39"))

	calendarInRangeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("24"))

	calendarHoverStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237"))

	calendarCursorStyle = lipgloss.NewStyle().
				Reverse(true)
)

// CalendarOptions configures a Calendar
type CalendarOptions struct {
	WeekStart       time.Weekday
	Policy          daterange.Policy
	Now             func() time.Time
	YearSpan        int
	ShowOutsideDays bool
}

// Calendar is a single-month range calendar driven by keys and the mouse.
// It owns the working selection while a picker is open.
type Calendar struct {
	year      int
	month     time.Month
	weekStart time.Weekday
	selector  daterange.Selector
	now       func() time.Time
	showOut   bool
	selected  daterange.DateRange
	cursor    time.Time
	hover     *time.Time
	focused   bool
	monthYear *MonthYearSelector
}

// NewCalendar creates a calendar showing the current month
func NewCalendar(opts CalendarOptions) *Calendar {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Policy == nil {
		opts.Policy = daterange.AllowAll{}
	}

	c := &Calendar{
		weekStart: opts.WeekStart,
		selector:  daterange.Selector{Policy: opts.Policy},
		now:       opts.Now,
		showOut:   opts.ShowOutsideDays,
		monthYear: NewMonthYearSelector(opts.YearSpan, opts.Now),
	}
	c.JumpTo(opts.Now())
	return c
}

// SetSelected replaces the working selection
func (c *Calendar) SetSelected(r daterange.DateRange) {
	c.selected = r
}

// Selected returns the working selection
func (c *Calendar) Selected() daterange.DateRange {
	return c.selected
}

// SetPolicy swaps the disable policy
func (c *Calendar) SetPolicy(p daterange.Policy) {
	if p == nil {
		p = daterange.AllowAll{}
	}
	c.selector.Policy = p
}

// SetWeekStart changes the first column of the grid
func (c *Calendar) SetWeekStart(wd time.Weekday) {
	c.weekStart = wd
}

// JumpTo shows the month containing t and puts the cursor on t
func (c *Calendar) JumpTo(t time.Time) {
	c.cursor = daterange.Day(t)
	c.year, c.month = c.cursor.Year(), c.cursor.Month()
}

// Month returns the visible year and month
func (c *Calendar) Month() (int, time.Month) {
	return c.year, c.month
}

// Cursor returns the keyboard-focused day
func (c *Calendar) Cursor() time.Time {
	return c.cursor
}

// PrevMonth shows the previous month
func (c *Calendar) PrevMonth() {
	c.showMonth(daterange.PrevMonth(c.year, c.month))
}

// NextMonth shows the next month
func (c *Calendar) NextMonth() {
	c.showMonth(daterange.NextMonth(c.year, c.month))
}

// showMonth changes the visible month, clamping the cursor day into it
func (c *Calendar) showMonth(year int, month time.Month) {
	c.year, c.month = year, month
	day := c.cursor.Day()
	if n := daterange.DaysIn(year, month); day > n {
		day = n
	}
	c.cursor = time.Date(year, month, day, 0, 0, 0, 0, c.cursor.Location())
}

// Focus gives the calendar keyboard focus
func (c *Calendar) Focus() {
	c.focused = true
	c.hover = nil
}

// Blur removes keyboard focus and the hover preview
func (c *Calendar) Blur() {
	c.focused = false
	c.hover = nil
	c.monthYear.Hide()
}

// Focused returns whether the calendar has keyboard focus
func (c *Calendar) Focused() bool {
	return c.focused
}

// Hover returns the day under the pointer or keyboard cursor, if any
func (c *Calendar) Hover() (time.Time, bool) {
	if c.hover == nil {
		return time.Time{}, false
	}
	return *c.hover, true
}

// SetHover moves the hover preview to day
func (c *Calendar) SetHover(day time.Time) {
	day = daterange.Day(day)
	c.hover = &day
}

// ClearHover drops the hover preview
func (c *Calendar) ClearHover() {
	c.hover = nil
}

// SelectingMonth reports whether the month/year selector is open
func (c *Calendar) SelectingMonth() bool {
	return c.monthYear.IsVisible()
}

// Cells returns the 42 visible days with their flags
func (c *Calendar) Cells() []daterange.CalendarDay {
	return daterange.Month(c.year, c.month, c.weekStart, c.selector.Policy)
}

// Pick applies a click on day; disabled days are ignored
func (c *Calendar) Pick(day time.Time) bool {
	before := c.selected
	c.selected = c.selector.Select(c.selected, day)
	return !before.Equal(c.selected)
}

// DayAt maps a point local to the calendar view to the day drawn there
func (c *Calendar) DayAt(x, y int) (daterange.CalendarDay, bool) {
	row := y - calendarHeaderRows
	if x < 0 || x >= calendarWidth || row < 0 || row >= daterange.GridWeeks {
		return daterange.CalendarDay{}, false
	}

	cell := c.Cells()[row*daterange.DaysPerWeek+x/calendarCellWidth]
	if cell.OutsideMonth && !c.showOut {
		return daterange.CalendarDay{}, false
	}
	return cell, true
}

// Update handles keys while focused and mouse messages in local coordinates
func (c *Calendar) Update(msg tea.Msg) (*Calendar, tea.Cmd) {
	if c.monthYear.IsVisible() {
		var cmd tea.Cmd
		c.monthYear, cmd = c.monthYear.Update(msg)
		if c.monthYear.Applied() {
			year, month := c.monthYear.Selection()
			c.showMonth(year, month)
		}
		return c, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		return c.handleKey(msg)
	case tea.MouseMsg:
		return c.handleMouse(msg)
	}
	return c, nil
}

func (c *Calendar) handleKey(msg tea.KeyMsg) (*Calendar, tea.Cmd) {
	switch {
	case key.Matches(msg, calendarKeys.Left):
		c.moveCursor(-1)
	case key.Matches(msg, calendarKeys.Right):
		c.moveCursor(1)
	case key.Matches(msg, calendarKeys.Up):
		c.moveCursor(-daterange.DaysPerWeek)
	case key.Matches(msg, calendarKeys.Down):
		c.moveCursor(daterange.DaysPerWeek)
	case key.Matches(msg, calendarKeys.PrevMonth):
		c.PrevMonth()
		c.SetHover(c.cursor)
	case key.Matches(msg, calendarKeys.NextMonth):
		c.NextMonth()
		c.SetHover(c.cursor)
	case key.Matches(msg, calendarKeys.Select):
		c.Pick(c.cursor)
	case key.Matches(msg, calendarKeys.MonthYear):
		return c, c.monthYear.Show(c.year, c.month)
	}
	return c, nil
}

// moveCursor shifts the cursor by days, following it into other months
func (c *Calendar) moveCursor(days int) {
	c.cursor = c.cursor.AddDate(0, 0, days)
	c.year, c.month = c.cursor.Year(), c.cursor.Month()
	c.SetHover(c.cursor)
}

func (c *Calendar) handleMouse(msg tea.MouseMsg) (*Calendar, tea.Cmd) {
	if msg.Y == 0 {
		if isLeftPress(msg) {
			switch {
			case msg.X >= 0 && msg.X < navButtonWidth:
				c.PrevMonth()
			case msg.X >= calendarWidth-navButtonWidth && msg.X < calendarWidth:
				c.NextMonth()
			case msg.X >= 0 && msg.X < calendarWidth:
				return c, c.monthYear.Show(c.year, c.month)
			}
		}
		return c, nil
	}

	cell, ok := c.DayAt(msg.X, msg.Y)
	if !ok {
		if msg.Action == tea.MouseActionMotion {
			c.ClearHover()
		}
		return c, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if !cell.Disabled {
			c.SetHover(cell.Date)
		}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			c.cursor = cell.Date
			c.Pick(cell.Date)
		}
	}
	return c, nil
}

// View renders the month title, weekday header and the 6x7 grid
func (c *Calendar) View() string {
	if c.monthYear.IsVisible() {
		return c.monthYear.View()
	}

	var b strings.Builder

	title := daterange.MonthTitle(c.year, c.month)
	gap := calendarWidth - 2*navButtonWidth
	b.WriteString(calendarNavStyle.Render(" < "))
	b.WriteString(calendarTitleStyle.Render(lipgloss.PlaceHorizontal(gap, lipgloss.Center, title)))
	b.WriteString(calendarNavStyle.Render(" > "))
	b.WriteString("\n")

	for _, wd := range daterange.Weekdays(c.weekStart) {
		b.WriteString(calendarWeekdayStyle.Render(fmt.Sprintf("%3s", wd[:2])))
	}

	today := daterange.Day(c.now())
	for i, cell := range c.Cells() {
		if i%daterange.DaysPerWeek == 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.renderCell(cell, today))
	}

	return b.String()
}

func (c *Calendar) renderCell(cell daterange.CalendarDay, today time.Time) string {
	if cell.OutsideMonth && !c.showOut {
		return strings.Repeat(" ", calendarCellWidth)
	}

	text := fmt.Sprintf("%2d", cell.Date.Day())
	style := lipgloss.NewStyle()

	switch {
	case c.selected.IsStart(cell.Date) || c.selected.IsEnd(cell.Date):
		style = calendarEndpointStyle
	case c.selected.Contains(cell.Date):
		style = calendarInRangeStyle
	case c.hover != nil && daterange.InHoverPreview(c.selected, *c.hover, cell.Date):
		style = calendarHoverStyle
	case cell.Disabled:
		style = calendarDisabledStyle
	case cell.OutsideMonth:
		style = calendarOutsideStyle
	}

	if cell.Date.Equal(today) {
		style = style.Inherit(calendarTodayStyle)
	}
	if c.focused && cell.Date.Equal(c.cursor) {
		style = style.Inherit(calendarCursorStyle)
	}

	return " " + style.Render(text)
}
