package components

import (
	"strings"
	"testing"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// committedFrom runs cmd and collects any RangeCommittedMsg it produces.
// Only call it with commands that don't contain ticks.
func committedFrom(cmd tea.Cmd) []RangeCommittedMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case RangeCommittedMsg:
		return []RangeCommittedMsg{msg}
	case tea.BatchMsg:
		var out []RangeCommittedMsg
		for _, c := range msg {
			out = append(out, committedFrom(c)...)
		}
		return out
	}
	return nil
}

func newTestRangePicker(opts Options) *RangePicker {
	opts.Now = fixedNow
	p := NewRangePicker(opts)
	p.Focus()
	return p
}

func TestNewRangePicker_Defaults(t *testing.T) {
	p := NewRangePicker(Options{})

	assert.True(t, strings.HasPrefix(p.ID(), "date-range-picker-"), "got %q", p.ID())
	assert.True(t, p.Value().IsEmpty())
	assert.Empty(t, p.Text())
	assert.False(t, p.IsOpen())
	assert.Contains(t, p.View(), "Select date range")

	other := NewRangePicker(Options{})
	assert.NotEqual(t, p.ID(), other.ID(), "generated IDs are unique")

	named := NewRangePicker(Options{ID: "trip", Placeholder: "When?"})
	assert.Equal(t, "trip", named.ID())
	assert.Contains(t, named.View(), "When?")
}

func TestRangePicker_TypedRangeUpdatesWorkingOnly(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.Update(runes("03/01/2024 - 03/05/2024"))

	expected := daterange.New(day(2024, 3, 1), day(2024, 3, 5))
	assert.True(t, expected.Equal(p.Working()))
	assert.True(t, p.Value().IsEmpty(), "typing must not commit")
	assert.True(t, expected.Equal(p.Calendar().Selected()))

	year, month := p.Calendar().Month()
	assert.Equal(t, 2024, year)
	assert.Equal(t, 3, int(month))
}

func TestRangePicker_PartialInputKeepsFrom(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.Update(runes("03/01/2024 - 03/0"))

	assert.True(t, daterange.Starting(day(2024, 3, 1)).Equal(p.Working()))
}

func TestRangePicker_EnterCommits(t *testing.T) {
	var changes []daterange.DateRange
	p := newTestRangePicker(Options{
		ID:       "trip",
		OnChange: func(r daterange.DateRange) { changes = append(changes, r) },
	})

	p.Update(runes("03/01/2024 - 03/05/2024"))
	_, cmd := p.Update(keyPress(tea.KeyEnter))

	expected := daterange.New(day(2024, 3, 1), day(2024, 3, 5))
	assert.True(t, expected.Equal(p.Value()))
	assert.Equal(t, "03/01/2024 - 03/05/2024", p.Text())

	msgs := committedFrom(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, "trip", msgs[0].ID)
	assert.True(t, expected.Equal(msgs[0].Range))

	require.Len(t, changes, 1, "OnChange fires once per commit")
	assert.True(t, expected.Equal(changes[0]))
}

func TestRangePicker_TrailingJunkDropsEnd(t *testing.T) {
	p := newTestRangePicker(Options{})
	p.SetValue(daterange.New(day(2024, 3, 1), day(2024, 3, 5)))

	p.Update(runes(" junk"))

	assert.Equal(t, "03/01/2024 - 03/05/2024 junk", p.Text())
	assert.True(t, daterange.Starting(day(2024, 3, 1)).Equal(p.Working()))
	assert.False(t, p.invalid, "a valid From is enough to accept the text")
}

func TestRangePicker_UnparseableTextLeavesWorkingAlone(t *testing.T) {
	p := newTestRangePicker(Options{})

	_, cmd := p.Update(runes("not a date"))

	assert.NotNil(t, cmd, "invalid input schedules the flash reset")
	assert.True(t, p.Working().IsEmpty())
	assert.True(t, p.invalid)
	assert.Equal(t, "not a date", p.Text())

	p.Blur()
	assert.Empty(t, p.Text(), "blur restores the last valid text")
	assert.False(t, p.invalid)
}

func TestRangePicker_InvalidFlashClears(t *testing.T) {
	p := newTestRangePicker(Options{})
	p.Update(runes("nope"))
	require.True(t, p.invalid)

	// A stale flash from an older keystroke is ignored
	p.Update(invalidFlashMsg{id: p.ID(), seq: p.flashSeq - 1})
	assert.True(t, p.invalid)

	p.Update(invalidFlashMsg{id: p.ID(), seq: p.flashSeq})
	assert.False(t, p.invalid)
}

func TestRangePicker_EnterAfterInvalidRestoresLastValid(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.Update(runes("03/01/2024"))
	p.Update(runes("x"))
	p.Update(keyPress(tea.KeyEnter))

	assert.Equal(t, "03/01/2024", p.Text())
	assert.True(t, daterange.Starting(day(2024, 3, 1)).Equal(p.Value()))
}

func TestRangePicker_EscDiscardsTypedRange(t *testing.T) {
	p := newTestRangePicker(Options{})
	committed := daterange.New(day(2024, 2, 1), day(2024, 2, 3))
	p.SetValue(committed)

	p.Update(keyPress(tea.KeyCtrlU))
	p.Update(runes("03/01/2024 - 03/05/2024"))
	p.Update(keyPress(tea.KeyEsc))

	assert.True(t, committed.Equal(p.Working()))
	assert.True(t, committed.Equal(p.Value()))
	assert.Equal(t, "02/01/2024 - 02/03/2024", p.Text())
}

func TestRangePicker_CalendarSelectionAndSave(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.Update(keyPress(tea.KeyDown))
	require.True(t, p.IsOpen())
	require.True(t, p.CalendarFocused())

	p.Update(keyPress(tea.KeyEnter))
	for i := 0; i < 3; i++ {
		p.Update(keyPress(tea.KeyLeft))
	}
	p.Update(keyPress(tea.KeyEnter))

	expected := daterange.New(day(2024, 3, 12), day(2024, 3, 15))
	assert.True(t, expected.Equal(p.Working()))
	assert.True(t, p.Value().IsEmpty(), "calendar picks stay in the draft until saved")

	_, cmd := p.Update(runes("s"))

	assert.False(t, p.IsOpen())
	assert.True(t, expected.Equal(p.Value()))
	assert.Equal(t, "03/12/2024 - 03/15/2024", p.Text())
	require.Len(t, committedFrom(cmd), 1)
}

func TestRangePicker_FutureDaysDisabledByDefault(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.Update(keyPress(tea.KeyDown))
	p.Update(keyPress(tea.KeyRight))
	p.Update(keyPress(tea.KeyEnter))

	assert.True(t, p.Working().IsEmpty())

	allowAll := newTestRangePicker(Options{Policy: daterange.AllowAll{}})
	allowAll.Update(keyPress(tea.KeyDown))
	allowAll.Update(keyPress(tea.KeyRight))
	allowAll.Update(keyPress(tea.KeyEnter))

	assert.True(t, daterange.Starting(day(2024, 3, 16)).Equal(allowAll.Working()))
}

func TestRangePicker_CalendarEscCancels(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.Update(keyPress(tea.KeyDown))
	p.Update(keyPress(tea.KeyEnter))
	require.False(t, p.Working().IsEmpty())

	p.Update(keyPress(tea.KeyEsc))

	assert.False(t, p.IsOpen())
	assert.True(t, p.Working().IsEmpty())
	assert.True(t, p.Calendar().Selected().IsEmpty())
}

func TestRangePicker_OpenResetsWorkingFromCommitted(t *testing.T) {
	p := newTestRangePicker(Options{})
	committed := daterange.New(day(2023, 11, 2), day(2023, 11, 9))
	p.SetValue(committed)

	p.Update(keyPress(tea.KeyDown))

	assert.True(t, committed.Equal(p.Working()))
	year, month := p.Calendar().Month()
	assert.Equal(t, 2023, year)
	assert.Equal(t, 11, int(month), "calendar opens on the From month")
}

func TestRangePicker_ReopenKeepsDraft(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.Update(keyPress(tea.KeyDown))
	p.Update(keyPress(tea.KeyLeft))
	p.Update(keyPress(tea.KeyEnter))
	require.True(t, daterange.Starting(day(2024, 3, 14)).Equal(p.Working()))

	p.Update(keyPress(tea.KeyTab))
	require.False(t, p.CalendarFocused())

	p.Update(keyPress(tea.KeyDown))
	assert.True(t, p.IsOpen())
	assert.True(t, p.CalendarFocused(), "down still moves focus to the calendar")
	assert.True(t, daterange.Starting(day(2024, 3, 14)).Equal(p.Working()), "an open popover keeps its draft")
	assert.True(t, p.Value().IsEmpty())
}

func TestRangePicker_TabSwitchesFocus(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.Update(keyPress(tea.KeyDown))
	require.True(t, p.CalendarFocused())

	p.Update(keyPress(tea.KeyTab))
	assert.False(t, p.CalendarFocused())
	assert.True(t, p.IsOpen())

	p.Update(keyPress(tea.KeyTab))
	assert.True(t, p.CalendarFocused())
}

func TestRangePicker_Disabled(t *testing.T) {
	p := NewRangePicker(Options{Disabled: true, Now: fixedNow})

	assert.Nil(t, p.Focus())
	p.Update(keyPress(tea.KeyDown))
	assert.False(t, p.IsOpen())

	p.Open()
	assert.False(t, p.IsOpen())

	p.Update(press(1, 1))
	assert.False(t, p.IsOpen())
	assert.Contains(t, p.View(), "Select date range")
}

func TestRangePicker_MouseSelectDayAndSave(t *testing.T) {
	p := newTestRangePicker(Options{})
	p.Open()

	l := p.layout()
	// March 1, 2024 sits in column 5 of the first week
	p.Update(press(l.calendarX+5*calendarCellWidth, l.calendarY+calendarHeaderRows))
	require.True(t, p.CalendarFocused())
	require.True(t, daterange.Starting(day(2024, 3, 1)).Equal(p.Working()))

	saveX := l.calendarX + len(footerCancelLabel) + len(footerGap)
	_, cmd := p.Update(press(saveX, l.footerY))

	assert.False(t, p.IsOpen())
	assert.True(t, daterange.Starting(day(2024, 3, 1)).Equal(p.Value()))
	assert.Len(t, committedFrom(cmd), 1)
}

func TestRangePicker_MouseFooterCancel(t *testing.T) {
	p := newTestRangePicker(Options{})
	p.Open()

	l := p.layout()
	p.Update(press(l.calendarX+5*calendarCellWidth, l.calendarY+calendarHeaderRows))
	p.Update(press(l.calendarX, l.footerY))

	assert.False(t, p.IsOpen())
	assert.True(t, p.Working().IsEmpty())
}

func TestRangePicker_ClickOutsideCancels(t *testing.T) {
	p := newTestRangePicker(Options{})
	p.Open()
	p.Update(keyPress(tea.KeyDown))
	p.Update(keyPress(tea.KeyEnter))

	p.Update(press(500, 500))

	assert.False(t, p.IsOpen())
	assert.True(t, p.Working().IsEmpty())
}

func TestRangePicker_IconClickTogglesCalendar(t *testing.T) {
	p := NewRangePicker(Options{Now: fixedNow, Label: "Trip"})

	l := p.layout()
	assert.Equal(t, 1, l.inputTop, "label takes the first row")

	p.Update(press(l.inputWidth-1, l.inputTop+1))
	assert.True(t, p.IsOpen())

	p.Update(press(l.inputWidth-1, l.inputTop+1))
	assert.False(t, p.IsOpen())
}

func TestRangePicker_SetOptionsKeepsID(t *testing.T) {
	p := newTestRangePicker(Options{ID: "trip"})

	p.SetOptions(Options{Placeholder: "Pick dates", Policy: daterange.AllowAll{}})

	assert.Equal(t, "trip", p.ID())
	assert.Contains(t, p.View(), "Pick dates")

	p.Update(keyPress(tea.KeyDown))
	p.Update(keyPress(tea.KeyRight))
	p.Update(keyPress(tea.KeyEnter))
	assert.True(t, daterange.Starting(day(2024, 3, 16)).Equal(p.Working()))
}

func TestRangePicker_SetOptionsKeepsClock(t *testing.T) {
	p := newTestRangePicker(Options{})

	p.SetOptions(Options{Label: "Reloaded"})
	p.Open()

	assert.Equal(t, day(2024, 3, 15), p.Calendar().Cursor(), "today still comes from the original clock")
	assert.True(t, p.Calendar().Cells()[len(p.Calendar().Cells())-1].Disabled, "default policy uses the same clock")
}

func TestRangePicker_ViewShowsLabelAndDescription(t *testing.T) {
	p := NewRangePicker(Options{
		Now:         fixedNow,
		Label:       "Travel dates",
		Description: "Type a range or open the calendar",
	})
	p.Open()

	view := p.View()
	assert.Contains(t, view, "Travel dates")
	assert.Contains(t, view, "Type a range or open the calendar")
	assert.Contains(t, view, "March 2024")
	assert.Contains(t, view, "[Save]")
	assert.Contains(t, view, "[Cancel]")
}
