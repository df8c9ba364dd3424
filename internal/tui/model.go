package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/config"
	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/MikeBiancalana/rangepick/internal/perf"
	"github.com/MikeBiancalana/rangepick/internal/sync"
	"github.com/MikeBiancalana/rangepick/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Variant identifies which picker has keyboard focus
//
// Async Closure Capture Pattern
// ==============================
// tea.Cmd closures run later, on another goroutine. Capture everything a
// closure needs before returning it instead of reading the model inside:
//
//	changes := m.watcher.Changes() // captured now
//	return func() tea.Msg {
//	    event := <-changes
//	    return ConfigChangedMsg{...}
//	}
type Variant int

const (
	VariantRich Variant = iota
	VariantSimple
	VariantCount // Keep this last to get the count
)

const (
	VariantNameRich   = "Date range picker"
	VariantNameSimple = "Inline range picker"
)

// variantName returns the display name for a variant
func variantName(v Variant) string {
	switch v {
	case VariantRich:
		return VariantNameRich
	case VariantSimple:
		return VariantNameSimple
	default:
		return "Unknown"
	}
}

// Minimum terminal dimensions
const (
	MinTerminalWidth  = 40
	MinTerminalHeight = 20
)

const (
	summaryDateLayout = "January 2, 2006"
	renderThreshold   = 16 * time.Millisecond
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true)

	activeSectionStyle = sectionTitleStyle.
				Foreground(lipgloss.Color("39"))

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	summaryKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Model is the demo application: both picker variants plus a summary of the
// last committed range
type Model struct {
	cfg      config.PickerConfig
	watcher  *sync.Watcher
	rich     *components.RangePicker
	simple   *components.SimpleRangePicker
	active   Variant
	selected daterange.DateRange
	now      func() time.Time

	width            int
	height           int
	terminalTooSmall bool

	renderTimer *perf.Recorder
	configErr   string
}

// NewModel creates the demo model. watcher may be nil to disable hot reload.
func NewModel(cfg config.PickerConfig, watcher *sync.Watcher) *Model {
	return newModel(cfg, watcher, time.Now)
}

func newModel(cfg config.PickerConfig, watcher *sync.Watcher, now func() time.Time) *Model {
	m := &Model{
		cfg:         cfg,
		watcher:     watcher,
		now:         now,
		renderTimer: perf.NewRecorder("tui.view", logger.GetLogger(), renderThreshold),
	}

	m.rich = components.NewRangePicker(m.richOptions())
	m.simple = components.NewSimpleRangePicker(m.simpleOptions())
	m.rich.Focus()
	return m
}

// richOptions builds the rich picker options from the current config
func (m *Model) richOptions() components.Options {
	return components.Options{
		ID:          "demo-date-range",
		Label:       m.cfg.Label,
		Placeholder: m.cfg.Placeholder,
		Description: m.cfg.Description,
		Policy:      m.policy(daterange.DisableFuture{Now: m.now}),
		WeekStart:   m.cfg.Weekday(),
		YearSpan:    m.cfg.YearSpan,
		Now:         m.now,
	}
}

// simpleOptions builds the inline picker options from the current config
func (m *Model) simpleOptions() components.Options {
	return components.Options{
		ID:          "demo-inline-range",
		Placeholder: m.cfg.Placeholder,
		Policy:      m.policy(daterange.AllowAll{}),
		WeekStart:   m.cfg.Weekday(),
		YearSpan:    m.cfg.YearSpan,
		Now:         m.now,
	}
}

// policy resolves the configured policy with the model's clock
func (m *Model) policy(def daterange.Policy) daterange.Policy {
	p := m.cfg.Policy(def)
	if df, ok := p.(daterange.DisableFuture); ok && df.Now == nil {
		df.Now = m.now
		return df
	}
	return p
}

// Init starts the config watcher
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if err := m.watcher.Start(); err != nil {
		logger.Warn("config watcher disabled", "error", err)
		m.watcher = nil
		return nil
	}
	return m.waitForConfigChange()
}

// Update routes messages to the focused picker and handles app-level keys
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case components.RangeCommittedMsg:
		return m.handleRangeCommitted(msg)
	case ConfigChangedMsg:
		return m.handleConfigChanged(msg)
	}

	// Ticks and form commands belong to whichever picker issued them
	var richCmd, simpleCmd tea.Cmd
	m.rich, richCmd = m.rich.Update(msg)
	m.simple, simpleCmd = m.simple.Update(msg)
	return m, tea.Batch(richCmd, simpleCmd)
}

// Active returns the focused variant
func (m *Model) Active() Variant {
	return m.active
}

// Selected returns the last committed range
func (m *Model) Selected() daterange.DateRange {
	return m.selected
}

// SetActive moves keyboard focus to the given variant
func (m *Model) SetActive(v Variant) tea.Cmd {
	if v < 0 || v >= VariantCount {
		return nil
	}
	m.active = v
	if v == VariantRich {
		m.simple.Blur()
		return m.rich.Focus()
	}
	m.rich.Blur()
	return m.simple.Focus()
}

// shutdown releases the watcher and flushes render stats
func (m *Model) shutdown() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.renderTimer.LogStats()
}

// View renders the demo page
func (m *Model) View() string {
	done := m.renderTimer.Start()
	defer done()

	if m.terminalTooSmall {
		return warningStyle.Render("Terminal too small. Please resize.")
	}

	return strings.Join(m.layout().blocks, sectionSeparator)
}

func (m *Model) headerView() string {
	title := titleStyle.Render("Date Range Picker")
	subtitle := subtitleStyle.Render("Type a range or pick one on the calendar")
	if m.configErr != "" {
		subtitle += "\n" + warningStyle.Render("config: "+m.configErr)
	}
	return title + "\n" + subtitle
}

func (m *Model) sectionView(v Variant, body string) string {
	style := sectionTitleStyle
	if m.active == v {
		style = activeSectionStyle
	}
	return style.Render(variantName(v)) + "\n" + body
}

func (m *Model) summaryView() string {
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("Selected Range"))
	b.WriteString("\n")

	if m.selected.IsEmpty() {
		b.WriteString(mutedStyle.Render("No dates selected"))
		return summaryStyle.Render(b.String())
	}

	var rows []string
	if m.selected.From != nil {
		rows = append(rows, summaryKeyStyle.Render("Start Date:")+m.selected.From.Format(summaryDateLayout))
	}
	if m.selected.To != nil {
		rows = append(rows, summaryKeyStyle.Render("End Date:")+m.selected.To.Format(summaryDateLayout))
	}
	if m.selected.IsComplete() {
		rows = append(rows, summaryKeyStyle.Render("Duration:")+pluralDays(m.selected.Days()))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return summaryStyle.Render(b.String())
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

func (m *Model) controlsView() string {
	lines := []string{
		sectionTitleStyle.Render("Keyboard Controls"),
		"↑/↓     open the calendar from the text field",
		"arrows  move between days, pgup/pgdn change month",
		"enter   pick the focused day (or commit typed text)",
		"m       jump to a month and year",
		"s       save, esc cancel",
		"tab     switch pickers while closed",
		"q       quit from the inline picker, ctrl+c quits anywhere",
	}
	return mutedStyle.Render(strings.Join(lines, "\n"))
}
