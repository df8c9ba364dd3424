package components

import (
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/xid"
)

const (
	defaultPlaceholder = "Select date range"
	defaultIDPrefix    = "date-range-picker"
)

// Options configures a range picker. Every field is optional.
type Options struct {
	Placeholder string
	Disabled    bool
	ID          string
	Label       string
	Description string

	// Nil styles fall back to the built-in look
	LabelStyle       *lipgloss.Style
	DescriptionStyle *lipgloss.Style
	ContainerStyle   *lipgloss.Style
	CalendarStyle    *lipgloss.Style

	// Policy decides which days can't be picked. Nil means the variant's default.
	Policy    daterange.Policy
	WeekStart time.Weekday
	YearSpan  int
	Now       func() time.Time

	// OnChange is called once per committed selection, never with a draft
	OnChange func(daterange.DateRange)
}

// RangeCommittedMsg is emitted when a picker commits its working range
type RangeCommittedMsg struct {
	ID    string
	Range daterange.DateRange
}

// withDefaults fills in the placeholder, a unique ID and the clock
func (o Options) withDefaults() Options {
	if o.Placeholder == "" {
		o.Placeholder = defaultPlaceholder
	}
	if o.ID == "" {
		o.ID = defaultIDPrefix + "-" + xid.New().String()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.YearSpan <= 0 {
		o.YearSpan = daterange.DefaultYearSpan
	}
	return o
}

// policyOr resolves the effective policy: disabled widgets block everything,
// an explicit Policy wins, otherwise def applies
func (o Options) policyOr(def daterange.Policy) daterange.Policy {
	if o.Disabled {
		return daterange.DisableAll{}
	}
	if o.Policy != nil {
		return o.Policy
	}
	return def
}

func commitCmd(id string, r daterange.DateRange) tea.Cmd {
	return func() tea.Msg {
		return RangeCommittedMsg{ID: id, Range: r}
	}
}

func styleOr(s *lipgloss.Style, def lipgloss.Style) lipgloss.Style {
	if s == nil {
		return def
	}
	return *s
}

// contentOffset returns where content starts inside a styled block
func contentOffset(s lipgloss.Style) (int, int) {
	return s.GetMarginLeft() + s.GetBorderLeftSize() + s.GetPaddingLeft(),
		s.GetMarginTop() + s.GetBorderTopSize() + s.GetPaddingTop()
}

// Translate shifts a mouse message into a component's local coordinates
func Translate(msg tea.MouseMsg, originX, originY int) tea.MouseMsg {
	msg.X -= originX
	msg.Y -= originY
	return msg
}

// within reports whether a local point falls inside a rendered block
func within(x, y int, rendered string) bool {
	return x >= 0 && y >= 0 && x < lipgloss.Width(rendered) && y < lipgloss.Height(rendered)
}

func isLeftPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
