package tui

import (
	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/MikeBiancalana/rangepick/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// PickModel runs a single picker until it commits or the user gives up.
// It backs the pick command.
type PickModel struct {
	rich      *components.RangePicker
	simple    *components.SimpleRangePicker
	result    daterange.DateRange
	committed bool
	cancelled bool
}

// NewPickModel creates a one-shot picker; simple selects the inline variant
func NewPickModel(opts components.Options, simple bool) *PickModel {
	m := &PickModel{}
	if simple {
		m.simple = components.NewSimpleRangePicker(opts)
		m.simple.Focus()
		return m
	}
	m.rich = components.NewRangePicker(opts)
	return m
}

// SetValue presets the committed range
func (m *PickModel) SetValue(r daterange.DateRange) {
	if m.simple != nil {
		m.simple.SetValue(r)
		return
	}
	m.rich.SetValue(r)
}

// Result returns the committed range and whether one was committed
func (m *PickModel) Result() (daterange.DateRange, bool) {
	return m.result, m.committed
}

// Cancelled reports whether the user quit without committing
func (m *PickModel) Cancelled() bool {
	return m.cancelled
}

// Init focuses the picker; the inline variant starts open
func (m *PickModel) Init() tea.Cmd {
	if m.simple != nil {
		m.simple.Open()
		return nil
	}
	return m.rich.Focus()
}

// Update finishes on commit, ctrl+c, or esc while the calendar is closed
func (m *PickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case components.RangeCommittedMsg:
		m.result = msg.Range
		m.committed = true
		logger.Debug("pick: committed", "range", daterange.FormatRange(msg.Range))
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.cancel()
		case "esc":
			if !m.open() {
				return m.cancel()
			}
		}
	}

	var cmd tea.Cmd
	if m.simple != nil {
		m.simple, cmd = m.simple.Update(msg)
	} else {
		m.rich, cmd = m.rich.Update(msg)
	}
	return m, cmd
}

func (m *PickModel) open() bool {
	if m.simple != nil {
		return m.simple.IsOpen()
	}
	return m.rich.IsOpen()
}

func (m *PickModel) cancel() (tea.Model, tea.Cmd) {
	m.cancelled = true
	logger.Debug("pick: cancelled")
	return m, tea.Quit
}

// View renders the picker and a one-line hint
func (m *PickModel) View() string {
	var body string
	if m.simple != nil {
		body = m.simple.View()
	} else {
		body = m.rich.View()
	}
	return body + "\n" + mutedStyle.Render("esc quit without picking")
}
