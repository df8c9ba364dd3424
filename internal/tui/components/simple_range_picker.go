package components

import (
	"strings"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var pickerPlaceholderStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

// SimpleRangePicker is the inline variant: a read-only field that toggles a
// dropdown calendar. Completing a two-click selection commits and closes it.
type SimpleRangePicker struct {
	opts     Options
	value    daterange.DateRange
	working  daterange.DateRange
	calendar *Calendar
	help     help.Model
	open     bool
	focused  bool
}

// NewSimpleRangePicker creates an inline picker. Every day is selectable
// unless opts.Policy or opts.Disabled say otherwise.
func NewSimpleRangePicker(opts Options) *SimpleRangePicker {
	opts = opts.withDefaults()

	return &SimpleRangePicker{
		opts: opts,
		help: help.New(),
		calendar: NewCalendar(CalendarOptions{
			WeekStart:       opts.WeekStart,
			Policy:          opts.policyOr(daterange.AllowAll{}),
			Now:             opts.Now,
			YearSpan:        opts.YearSpan,
			ShowOutsideDays: true,
		}),
	}
}

// ID returns the element identifier
func (p *SimpleRangePicker) ID() string {
	return p.opts.ID
}

// SetOptions re-applies options that can change at runtime. The ID is kept.
func (p *SimpleRangePicker) SetOptions(opts Options) {
	opts.ID = p.opts.ID
	if opts.OnChange == nil {
		opts.OnChange = p.opts.OnChange
	}
	if opts.Now == nil {
		opts.Now = p.opts.Now
	}
	p.opts = opts.withDefaults()
	p.calendar.SetPolicy(p.opts.policyOr(daterange.AllowAll{}))
	p.calendar.SetWeekStart(p.opts.WeekStart)
	if p.opts.Disabled {
		p.Cancel()
	}
}

// SetValue replaces the committed range
func (p *SimpleRangePicker) SetValue(r daterange.DateRange) {
	p.value = r
	p.working = r
	p.calendar.SetSelected(r)
}

// Value returns the committed range
func (p *SimpleRangePicker) Value() daterange.DateRange {
	return p.value
}

// Working returns the draft range
func (p *SimpleRangePicker) Working() daterange.DateRange {
	return p.working
}

// Text returns the displayed range text
func (p *SimpleRangePicker) Text() string {
	return daterange.FormatRange(p.working)
}

// IsOpen returns whether the dropdown is shown
func (p *SimpleRangePicker) IsOpen() bool {
	return p.open
}

// Calendar exposes the dropdown calendar
func (p *SimpleRangePicker) Calendar() *Calendar {
	return p.calendar
}

// Focus gives the picker keyboard focus
func (p *SimpleRangePicker) Focus() tea.Cmd {
	if p.opts.Disabled {
		return nil
	}
	p.focused = true
	if p.open {
		p.calendar.Focus()
	}
	return nil
}

// Blur drops keyboard focus and closes the dropdown
func (p *SimpleRangePicker) Blur() {
	p.focused = false
	p.Cancel()
}

// Toggle opens or closes the dropdown
func (p *SimpleRangePicker) Toggle() {
	if p.open {
		p.Cancel()
		return
	}
	p.Open()
}

// Open shows the dropdown on the working From month, or today. An open
// dropdown keeps its draft.
func (p *SimpleRangePicker) Open() {
	if p.opts.Disabled || p.open {
		return
	}
	p.working = p.value
	p.calendar.SetSelected(p.working)
	if p.working.From != nil {
		p.calendar.JumpTo(*p.working.From)
	} else {
		p.calendar.JumpTo(p.opts.Now())
	}
	p.open = true
	p.calendar.Focus()
	p.calendar.SetHover(p.calendar.Cursor())
}

// Apply commits the working range, complete or not, and closes the dropdown
func (p *SimpleRangePicker) Apply() tea.Cmd {
	p.value = p.working
	p.open = false
	p.calendar.Blur()

	logger.Debug("date range committed", "id", p.opts.ID, "range", daterange.FormatRange(p.value))

	if p.opts.OnChange != nil {
		p.opts.OnChange(p.value)
	}
	return commitCmd(p.opts.ID, p.value)
}

// Cancel discards the working range and closes the dropdown
func (p *SimpleRangePicker) Cancel() {
	p.working = p.value
	p.calendar.SetSelected(p.working)
	p.open = false
	p.calendar.Blur()
}

// Update handles Bubble Tea messages; mouse messages must be local (see Translate)
func (p *SimpleRangePicker) Update(msg tea.Msg) (*SimpleRangePicker, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)
	case tea.KeyMsg:
		if !p.focused || p.opts.Disabled {
			return p, nil
		}
		return p.handleKey(msg)
	}

	if p.open {
		var cmd tea.Cmd
		p.calendar, cmd = p.calendar.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *SimpleRangePicker) handleKey(msg tea.KeyMsg) (*SimpleRangePicker, tea.Cmd) {
	if !p.open {
		if key.Matches(msg, simplePickerKeys.Open) {
			p.Open()
		}
		return p, nil
	}

	if p.calendar.SelectingMonth() {
		var cmd tea.Cmd
		p.calendar, cmd = p.calendar.Update(msg)
		return p, cmd
	}

	switch {
	case key.Matches(msg, simplePickerKeys.Cancel):
		p.Cancel()
		return p, nil
	case key.Matches(msg, simplePickerKeys.Save):
		return p, p.Apply()
	}

	var cmd tea.Cmd
	p.calendar, cmd = p.calendar.Update(msg)
	return p, tea.Batch(cmd, p.syncSelection())
}

// syncSelection pulls the calendar selection into the working range and
// commits as soon as both ends are picked
func (p *SimpleRangePicker) syncSelection() tea.Cmd {
	selected := p.calendar.Selected()
	if selected.Equal(p.working) {
		return nil
	}
	p.working = selected
	if p.working.IsComplete() {
		return p.Apply()
	}
	return nil
}

func (p *SimpleRangePicker) layout() pickerLayout {
	var l pickerLayout
	if p.opts.Label != "" {
		l.inputTop = lipgloss.Height(p.labelView())
	}
	field := p.fieldView()
	l.inputHeight = lipgloss.Height(field)
	l.inputWidth = lipgloss.Width(field)

	x, y := contentOffset(p.dropdownStyle())
	l.calendarX = x
	l.calendarY = l.inputTop + l.inputHeight + y
	l.footerY = l.calendarY + lipgloss.Height(p.calendar.View()) + 1
	return l
}

func (p *SimpleRangePicker) handleMouse(msg tea.MouseMsg) (*SimpleRangePicker, tea.Cmd) {
	if p.opts.Disabled {
		return p, nil
	}

	offX, offY := contentOffset(p.containerStyle())
	msg = Translate(msg, offX, offY)

	if !within(msg.X, msg.Y, p.body()) {
		if p.open && msg.Action == tea.MouseActionPress {
			p.Cancel()
		}
		return p, nil
	}

	l := p.layout()
	if msg.Y >= l.inputTop && msg.Y < l.inputTop+l.inputHeight {
		if isLeftPress(msg) {
			p.focused = true
			p.Toggle()
		}
		return p, nil
	}

	if !p.open {
		return p, nil
	}

	if msg.Y == l.footerY && isLeftPress(msg) {
		x := msg.X - l.calendarX
		cancelEnd := len(footerCancelLabel)
		applyStart := cancelEnd + len(footerGap)
		switch {
		case x >= 0 && x < cancelEnd:
			p.Cancel()
		case x >= applyStart && x < applyStart+len("[Apply]"):
			return p, p.Apply()
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.calendar, cmd = p.calendar.Update(Translate(msg, l.calendarX, l.calendarY))
	return p, tea.Batch(cmd, p.syncSelection())
}

func (p *SimpleRangePicker) labelView() string {
	return styleOr(p.opts.LabelStyle, pickerLabelStyle).Render(p.opts.Label)
}

func (p *SimpleRangePicker) fieldView() string {
	style := pickerInputStyle
	if p.focused && !p.opts.Disabled {
		style = pickerInputFocusedStyle
	}

	text := daterange.FormatRange(p.working)
	var shown string
	switch {
	case p.opts.Disabled:
		if text == "" {
			text = p.opts.Placeholder
		}
		shown = pickerDisabledStyle.Render(text)
	case text == "":
		shown = pickerPlaceholderStyle.Render(p.opts.Placeholder)
	default:
		shown = text
	}

	width := len("MM/DD/YYYY - MM/DD/YYYY")
	if w := lipgloss.Width(p.opts.Placeholder); w > width {
		width = w
	}
	return style.Render(lipgloss.NewStyle().Width(width).Render(shown) + " " + calendarIcon)
}

func (p *SimpleRangePicker) dropdownStyle() lipgloss.Style {
	return styleOr(p.opts.CalendarStyle, pickerDropdownStyle)
}

func (p *SimpleRangePicker) containerStyle() lipgloss.Style {
	return styleOr(p.opts.ContainerStyle, lipgloss.NewStyle())
}

func (p *SimpleRangePicker) body() string {
	var parts []string
	if p.opts.Label != "" {
		parts = append(parts, p.labelView())
	}
	parts = append(parts, p.fieldView())
	if p.open {
		footer := pickerButtonStyle.Render(footerCancelLabel) + footerGap + pickerPrimaryButtonStyle.Render("[Apply]")
		parts = append(parts, p.dropdownStyle().Render(p.calendar.View()+"\n\n"+footer))
	}
	if p.opts.Description != "" {
		parts = append(parts, styleOr(p.opts.DescriptionStyle, pickerDescriptionStyle).Render(p.opts.Description))
	}
	if p.focused && !p.opts.Disabled {
		parts = append(parts, p.help.View(simplePickerKeys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// View renders the picker
func (p *SimpleRangePicker) View() string {
	return p.containerStyle().Render(strings.TrimRight(p.body(), "\n"))
}
