package components

import (
	"strings"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	invalidFlashDuration = 800 * time.Millisecond
	calendarIcon         = "📅"
	iconHitWidth         = 4
	footerCancelLabel    = "[Cancel]"
	footerGap            = "  "
)

var (
	pickerLabelStyle = lipgloss.NewStyle().
				Bold(true)

	pickerDescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	pickerInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	pickerInputFocusedStyle = pickerInputStyle.
				BorderForeground(lipgloss.Color("39"))

	pickerInputInvalidStyle = pickerInputStyle.
				BorderForeground(lipgloss.Color("196"))

	pickerDropdownStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Padding(0, 1)

	pickerButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	pickerPrimaryButtonStyle = lipgloss.NewStyle().
					Bold(true).
					Foreground(lipgloss.Color("39"))

	pickerDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))
)

type pickerFocus int

const (
	focusInput pickerFocus = iota
	focusCalendar
)

type invalidFlashMsg struct {
	id  string
	seq int
}

// RangePicker is the rich range picker: a typed MM/DD/YYYY input backed by
// a popover calendar with explicit Save and Cancel. The working range is only
// reported upward on commit.
type RangePicker struct {
	opts          Options
	committed     daterange.DateRange
	working       daterange.DateRange
	input         textinput.Model
	lastValidText string
	calendar      *Calendar
	help          help.Model
	open          bool
	focused       bool
	focus         pickerFocus
	invalid       bool
	flashSeq      int
}

// NewRangePicker creates a rich picker. Future days are disabled unless
// opts.Policy says otherwise.
func NewRangePicker(opts Options) *RangePicker {
	opts = opts.withDefaults()

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 40
	ti.Width = len("MM/DD/YYYY - MM/DD/YYYY") + 1
	ti.Prompt = ""

	p := &RangePicker{
		opts:  opts,
		input: ti,
		help:  help.New(),
		calendar: NewCalendar(CalendarOptions{
			WeekStart:       opts.WeekStart,
			Policy:          opts.policyOr(daterange.DisableFuture{Now: opts.Now}),
			Now:             opts.Now,
			YearSpan:        opts.YearSpan,
			ShowOutsideDays: false,
		}),
	}
	return p
}

// ID returns the element identifier
func (p *RangePicker) ID() string {
	return p.opts.ID
}

// SetOptions re-applies options that can change at runtime. The ID is kept.
func (p *RangePicker) SetOptions(opts Options) {
	opts.ID = p.opts.ID
	if opts.OnChange == nil {
		opts.OnChange = p.opts.OnChange
	}
	if opts.Now == nil {
		opts.Now = p.opts.Now
	}
	p.opts = opts.withDefaults()
	p.input.Placeholder = p.opts.Placeholder
	p.calendar.SetPolicy(p.opts.policyOr(daterange.DisableFuture{Now: p.opts.Now}))
	p.calendar.SetWeekStart(p.opts.WeekStart)
	if p.opts.Disabled {
		p.Close()
	}
}

// SetValue replaces the committed range, as when the host's value changes
func (p *RangePicker) SetValue(r daterange.DateRange) {
	p.committed = r
	p.working = r
	p.calendar.SetSelected(r)
	p.setText(daterange.FormatRange(r))
}

// Value returns the committed range
func (p *RangePicker) Value() daterange.DateRange {
	return p.committed
}

// Working returns the draft range being edited
func (p *RangePicker) Working() daterange.DateRange {
	return p.working
}

// Text returns what the input currently shows
func (p *RangePicker) Text() string {
	return p.input.Value()
}

// IsOpen returns whether the calendar popover is shown
func (p *RangePicker) IsOpen() bool {
	return p.open
}

// CalendarFocused returns whether keys go to the calendar rather than the input
func (p *RangePicker) CalendarFocused() bool {
	return p.open && p.focus == focusCalendar
}

// Calendar exposes the popover calendar
func (p *RangePicker) Calendar() *Calendar {
	return p.calendar
}

// Focus gives the picker keyboard focus on its text input
func (p *RangePicker) Focus() tea.Cmd {
	if p.opts.Disabled {
		return nil
	}
	p.focused = true
	p.focus = focusInput
	p.calendar.Blur()
	return p.input.Focus()
}

// Blur drops keyboard focus, restoring the last valid text
func (p *RangePicker) Blur() {
	p.focused = false
	p.restoreText()
	p.input.Blur()
	p.calendar.Blur()
}

// Open shows the popover with the working range reset from the committed
// one and the calendar on its From month, or today. An open popover keeps
// its draft.
func (p *RangePicker) Open() {
	if p.opts.Disabled || p.open {
		return
	}
	p.working = p.committed
	p.calendar.SetSelected(p.working)
	if p.working.From != nil {
		p.calendar.JumpTo(*p.working.From)
	} else {
		p.calendar.JumpTo(p.opts.Now())
	}
	p.open = true
}

// Close hides the popover without touching the working range
func (p *RangePicker) Close() {
	p.open = false
	p.calendar.Blur()
	p.focus = focusInput
	if p.focused {
		p.input.Focus()
	}
}

// Save commits the working range, closes the popover and reports the value
func (p *RangePicker) Save() tea.Cmd {
	p.committed = p.working
	p.setText(daterange.FormatRange(p.committed))
	p.Close()

	logger.Debug("date range committed", "id", p.opts.ID, "range", daterange.FormatRange(p.committed))

	if p.opts.OnChange != nil {
		p.opts.OnChange(p.committed)
	}
	return commitCmd(p.opts.ID, p.committed)
}

// Cancel discards the working range and closes the popover
func (p *RangePicker) Cancel() {
	p.working = p.committed
	p.calendar.SetSelected(p.working)
	p.Close()
}

func (p *RangePicker) setText(text string) {
	p.input.SetValue(text)
	p.input.CursorEnd()
	p.lastValidText = text
	p.invalid = false
}

func (p *RangePicker) restoreText() {
	if p.input.Value() != p.lastValidText {
		p.input.SetValue(p.lastValidText)
		p.input.CursorEnd()
	}
	p.invalid = false
}

// Update handles Bubble Tea messages. Mouse messages must already be in the
// picker's local coordinates (see Translate).
func (p *RangePicker) Update(msg tea.Msg) (*RangePicker, tea.Cmd) {
	switch msg := msg.(type) {
	case invalidFlashMsg:
		if msg.id == p.opts.ID && msg.seq == p.flashSeq {
			p.invalid = false
		}
		return p, nil
	case tea.MouseMsg:
		return p.handleMouse(msg)
	case tea.KeyMsg:
		if !p.focused || p.opts.Disabled {
			return p, nil
		}
		if p.CalendarFocused() {
			return p.handleCalendarKey(msg)
		}
		return p.handleInputKey(msg)
	}

	if p.calendar.SelectingMonth() {
		var cmd tea.Cmd
		p.calendar, cmd = p.calendar.Update(msg)
		return p, cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *RangePicker) handleInputKey(msg tea.KeyMsg) (*RangePicker, tea.Cmd) {
	switch {
	case key.Matches(msg, richPickerKeys.Commit):
		p.restoreText()
		return p, p.Save()
	case key.Matches(msg, richPickerKeys.Cancel):
		p.Cancel()
		p.setText(daterange.FormatRange(p.committed))
		return p, nil
	case key.Matches(msg, richPickerKeys.Open):
		p.Open()
		p.focusCalendar()
		return p, nil
	case key.Matches(msg, richPickerKeys.Switch):
		if p.open {
			p.focusCalendar()
		}
		return p, nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() == before {
		return p, cmd
	}

	return p, tea.Batch(cmd, p.parseInput())
}

// parseInput applies typed text to the working range. Text without a valid
// From date leaves the range untouched and flashes the input.
func (p *RangePicker) parseInput() tea.Cmd {
	text := p.input.Value()
	r := daterange.ParseRange(text)
	if r.From == nil {
		logger.Debug("invalid date range input", "id", p.opts.ID, "text", text)
		return p.flashInvalid()
	}

	p.working = r
	p.lastValidText = text
	p.invalid = false
	p.calendar.SetSelected(r)
	p.calendar.JumpTo(*r.From)
	return nil
}

func (p *RangePicker) flashInvalid() tea.Cmd {
	p.invalid = true
	p.flashSeq++
	id, seq := p.opts.ID, p.flashSeq
	return tea.Tick(invalidFlashDuration, func(time.Time) tea.Msg {
		return invalidFlashMsg{id: id, seq: seq}
	})
}

func (p *RangePicker) focusCalendar() {
	p.focus = focusCalendar
	p.input.Blur()
	p.calendar.Focus()
	p.calendar.SetHover(p.calendar.Cursor())
}

func (p *RangePicker) focusInput() {
	p.focus = focusInput
	p.calendar.Blur()
	p.input.Focus()
}

func (p *RangePicker) handleCalendarKey(msg tea.KeyMsg) (*RangePicker, tea.Cmd) {
	if p.calendar.SelectingMonth() {
		var cmd tea.Cmd
		p.calendar, cmd = p.calendar.Update(msg)
		return p, cmd
	}

	switch {
	case key.Matches(msg, richPickerKeys.Cancel):
		p.Cancel()
		return p, nil
	case key.Matches(msg, richPickerKeys.Save):
		return p, p.Save()
	case key.Matches(msg, richPickerKeys.Switch):
		p.focusInput()
		return p, nil
	}

	var cmd tea.Cmd
	p.calendar, cmd = p.calendar.Update(msg)
	p.working = p.calendar.Selected()
	return p, cmd
}

// pickerLayout records where the interactive parts of a picker are drawn
type pickerLayout struct {
	inputTop    int
	inputHeight int
	inputWidth  int
	calendarX   int
	calendarY   int
	footerY     int
}

func (p *RangePicker) layout() pickerLayout {
	var l pickerLayout
	if p.opts.Label != "" {
		l.inputTop = lipgloss.Height(p.labelView())
	}
	input := p.inputView()
	l.inputHeight = lipgloss.Height(input)
	l.inputWidth = lipgloss.Width(input)

	x, y := contentOffset(p.dropdownStyle())
	l.calendarX = x
	l.calendarY = l.inputTop + l.inputHeight + y
	l.footerY = l.calendarY + lipgloss.Height(p.calendar.View()) + 1
	return l
}

func (p *RangePicker) handleMouse(msg tea.MouseMsg) (*RangePicker, tea.Cmd) {
	if p.opts.Disabled {
		return p, nil
	}

	offX, offY := contentOffset(p.containerStyle())
	msg = Translate(msg, offX, offY)

	if !within(msg.X, msg.Y, p.body()) {
		if p.open && msg.Action == tea.MouseActionPress {
			p.Cancel()
		}
		if msg.Action == tea.MouseActionMotion {
			p.calendar.ClearHover()
		}
		return p, nil
	}

	l := p.layout()
	if msg.Y >= l.inputTop && msg.Y < l.inputTop+l.inputHeight {
		if !isLeftPress(msg) {
			return p, nil
		}
		cmd := p.Focus()
		if msg.X >= l.inputWidth-iconHitWidth {
			if p.open {
				p.Cancel()
			} else {
				p.Open()
			}
		}
		return p, cmd
	}

	if !p.open {
		return p, nil
	}

	if msg.Y == l.footerY && isLeftPress(msg) {
		x := msg.X - l.calendarX
		cancelEnd := len(footerCancelLabel)
		saveStart := cancelEnd + len(footerGap)
		switch {
		case x >= 0 && x < cancelEnd:
			p.Cancel()
		case x >= saveStart && x < saveStart+len("[Save]"):
			return p, p.Save()
		}
		return p, nil
	}

	if isLeftPress(msg) && !p.CalendarFocused() {
		p.focused = true
		p.focusCalendar()
	}

	var cmd tea.Cmd
	p.calendar, cmd = p.calendar.Update(Translate(msg, l.calendarX, l.calendarY))
	p.working = p.calendar.Selected()
	return p, cmd
}

func (p *RangePicker) labelView() string {
	return styleOr(p.opts.LabelStyle, pickerLabelStyle).Render(p.opts.Label)
}

func (p *RangePicker) inputView() string {
	style := pickerInputStyle
	switch {
	case p.invalid:
		style = pickerInputInvalidStyle
	case p.focused && p.focus == focusInput:
		style = pickerInputFocusedStyle
	}

	content := p.input.View() + " " + calendarIcon
	if p.opts.Disabled {
		text := p.input.Value()
		if text == "" {
			text = p.opts.Placeholder
		}
		content = pickerDisabledStyle.Render(text) + " " + calendarIcon
	}
	return style.Render(content)
}

func (p *RangePicker) dropdownStyle() lipgloss.Style {
	return styleOr(p.opts.CalendarStyle, pickerDropdownStyle)
}

func (p *RangePicker) dropdownView() string {
	footer := pickerButtonStyle.Render(footerCancelLabel) + footerGap + pickerPrimaryButtonStyle.Render("[Save]")
	return p.dropdownStyle().Render(p.calendar.View() + "\n\n" + footer)
}

// body renders everything except the container style
func (p *RangePicker) body() string {
	var parts []string
	if p.opts.Label != "" {
		parts = append(parts, p.labelView())
	}
	parts = append(parts, p.inputView())
	if p.open {
		parts = append(parts, p.dropdownView())
	}
	if p.opts.Description != "" {
		parts = append(parts, styleOr(p.opts.DescriptionStyle, pickerDescriptionStyle).Render(p.opts.Description))
	}
	if p.focused && !p.opts.Disabled {
		parts = append(parts, p.help.View(richPickerKeys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// View renders the picker
func (p *RangePicker) View() string {
	return p.containerStyle().Render(strings.TrimRight(p.body(), "\n"))
}

func (p *RangePicker) containerStyle() lipgloss.Style {
	return styleOr(p.opts.ContainerStyle, lipgloss.NewStyle())
}
