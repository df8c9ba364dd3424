package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/config"
	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/MikeBiancalana/rangepick/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := newModel(config.Default(), nil, fixedNow)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return m
}

func typeText(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func sendKey(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

// deliver feeds a command's message back into the model, like the runtime does
func deliver(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				deliver(t, m, c)
			}
		}
		return
	}
	m.Update(msg)
}

func TestMinimumTerminalSizeConstants(t *testing.T) {
	if MinTerminalWidth != 40 {
		t.Errorf("Expected MinTerminalWidth to be 40, got %d", MinTerminalWidth)
	}
	if MinTerminalHeight != 20 {
		t.Errorf("Expected MinTerminalHeight to be 20, got %d", MinTerminalHeight)
	}
}

func TestVariantName(t *testing.T) {
	tests := []struct {
		variant  Variant
		expected string
	}{
		{VariantRich, VariantNameRich},
		{VariantSimple, VariantNameSimple},
		{VariantCount, "Unknown"},
	}

	for _, tt := range tests {
		if got := variantName(tt.variant); got != tt.expected {
			t.Errorf("variantName(%d) = %q, want %q", tt.variant, got, tt.expected)
		}
	}
}

func TestNewModel_InitialView(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, VariantRich, m.Active())
	assert.True(t, m.Selected().IsEmpty())

	view := m.View()
	assert.Contains(t, view, "Date Range Picker")
	assert.Contains(t, view, "Select date range")
	assert.Contains(t, view, "Tip: You can type dates manually")
	assert.Contains(t, view, "Selected Range")
	assert.Contains(t, view, "No dates selected")
	assert.Contains(t, view, "Keyboard Controls")
}

func TestModel_TypedRangeShowsSummary(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "03/01/2024 - 03/05/2024")
	assert.True(t, m.Selected().IsEmpty(), "summary waits for a commit")

	deliver(t, m, sendKey(m, tea.KeyEnter))

	expected := daterange.New(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
	)
	assert.True(t, expected.Equal(m.Selected()))
	assert.True(t, expected.Equal(m.simple.Value()), "inline picker mirrors the committed range")

	view := m.View()
	assert.Contains(t, view, "Start Date:")
	assert.Contains(t, view, "March 1, 2024")
	assert.Contains(t, view, "End Date:")
	assert.Contains(t, view, "March 5, 2024")
	assert.Contains(t, view, "5 days")
	assert.NotContains(t, view, "No dates selected")
}

func TestModel_PartialRangeSummary(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "03/01/2024")
	deliver(t, m, sendKey(m, tea.KeyEnter))

	view := m.View()
	assert.Contains(t, view, "March 1, 2024")
	assert.NotContains(t, view, "End Date:")
	assert.NotContains(t, view, "Duration:")
}

func TestPluralDays(t *testing.T) {
	assert.Equal(t, "1 day", pluralDays(1))
	assert.Equal(t, "12 days", pluralDays(12))
}

func TestModel_TabSwitchesVariant(t *testing.T) {
	m := newTestModel(t)

	sendKey(m, tea.KeyTab)
	assert.Equal(t, VariantSimple, m.Active())

	sendKey(m, tea.KeyTab)
	assert.Equal(t, VariantRich, m.Active())
}

func TestModel_TabStaysInOpenPicker(t *testing.T) {
	m := newTestModel(t)

	sendKey(m, tea.KeyDown)
	require.True(t, m.rich.IsOpen())

	sendKey(m, tea.KeyTab)
	assert.Equal(t, VariantRich, m.Active())
	assert.False(t, m.rich.CalendarFocused(), "tab moves between input and calendar")
}

func TestModel_InlinePickerCommit(t *testing.T) {
	m := newTestModel(t)
	sendKey(m, tea.KeyTab)

	sendKey(m, tea.KeyEnter)
	require.True(t, m.simple.IsOpen())
	sendKey(m, tea.KeyEnter)
	sendKey(m, tea.KeyLeft)
	deliver(t, m, sendKey(m, tea.KeyEnter))

	assert.False(t, m.simple.IsOpen())
	assert.Equal(t, 2, m.Selected().Days())
	assert.Equal(t, "03/14/2024 - 03/15/2024", m.rich.Text())
	assert.Contains(t, m.View(), "2 days")
}

func TestModel_Quit(t *testing.T) {
	t.Run("ctrl+c quits from the text field", func(t *testing.T) {
		m := newTestModel(t)
		cmd := sendKey(m, tea.KeyCtrlC)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("q is typed into the text field", func(t *testing.T) {
		m := newTestModel(t)
		typeText(m, "q")
		assert.Equal(t, "q", m.rich.Text())
	})

	t.Run("q quits from the inline picker", func(t *testing.T) {
		m := newTestModel(t)
		sendKey(m, tea.KeyTab)
		cmd := typeText(m, "q")
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestModel_ConfigChanged(t *testing.T) {
	m := newTestModel(t)
	m.SetConfigError(errors.New("bad yaml"))
	assert.Contains(t, m.View(), "config: bad yaml")

	cfg := config.Default()
	cfg.Label = "Trip dates"
	cfg.Placeholder = "When?"
	allow := false
	cfg.DisableFuture = &allow

	_, cmd := m.Update(ConfigChangedMsg{Path: "/tmp/config.yaml", Config: cfg})
	assert.Nil(t, cmd, "no watcher means nothing to wait for")

	view := m.View()
	assert.Contains(t, view, "Trip dates")
	assert.Contains(t, view, "When?")
	assert.NotContains(t, view, "bad yaml")
	assert.Equal(t, "demo-date-range", m.rich.ID())

	// Future days are now allowed in the rich picker
	sendKey(m, tea.KeyDown)
	sendKey(m, tea.KeyRight)
	sendKey(m, tea.KeyEnter)
	assert.True(t, m.rich.Working().IsStart(time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)))
}

func TestModel_ConfigReloadError(t *testing.T) {
	m := newTestModel(t)
	before := m.rich.View()

	_, cmd := m.Update(ConfigChangedMsg{
		Path: "/tmp/config.yaml",
		Err:  errors.New("week_start must be sunday or monday"),
	})
	assert.Nil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "config: week_start must be sunday or monday")
	assert.Contains(t, view, "Select date range", "current options are kept")
	assert.Equal(t, before, m.rich.View())
	assert.Equal(t, config.Default(), m.cfg)
}

func TestModel_MondayWeekStart(t *testing.T) {
	cfg := config.Default()
	cfg.WeekStart = "monday"
	m := newModel(cfg, nil, fixedNow)

	assert.Equal(t, time.Monday, m.rich.Calendar().Cells()[0].Date.Weekday())
	assert.Equal(t, time.Monday, m.simple.Calendar().Cells()[0].Date.Weekday())
}

func TestModel_TooSmall(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})

	assert.Contains(t, m.View(), "Terminal too small")
}

func TestModel_RenderTimerRecords(t *testing.T) {
	m := newTestModel(t)
	m.View()
	m.View()

	assert.Equal(t, int64(2), m.renderTimer.Stats().Count)
}

func TestModel_RangeCommittedFromUnknownID(t *testing.T) {
	m := newTestModel(t)
	r := daterange.Starting(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))

	m.Update(components.RangeCommittedMsg{ID: "elsewhere", Range: r})

	assert.True(t, r.Equal(m.Selected()))
	assert.True(t, m.rich.Value().IsEmpty())
	assert.True(t, m.simple.Value().IsEmpty())
}
