package tui

import (
	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/MikeBiancalana/rangepick/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Message Handlers
//
// Each handler takes one message type and follows the signature:
//
//   func (m *Model) handle<MessageType>(msg <MessageType>) (tea.Model, tea.Cmd)
//
// This makes handlers testable in isolation and easy to understand.

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight
	return m, nil
}

// handleMouse hands the event to both pickers in their own coordinates.
// Each picker closes itself on a press outside its bounds.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.terminalTooSmall {
		return m, nil
	}

	l := m.layout()
	richMsg := components.Translate(msg, 0, l.richTop)
	simpleMsg := components.Translate(msg, 0, l.simpleTop)

	var cmds []tea.Cmd
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		switch {
		case hits(simpleMsg, m.simple.View()) && m.active != VariantSimple:
			cmds = append(cmds, m.SetActive(VariantSimple))
		case hits(richMsg, m.rich.View()) && m.active != VariantRich:
			cmds = append(cmds, m.SetActive(VariantRich))
		}
	}

	var cmd tea.Cmd
	m.rich, cmd = m.rich.Update(richMsg)
	cmds = append(cmds, cmd)
	m.simple, cmd = m.simple.Update(simpleMsg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// hits reports whether a local mouse position falls on a rendered block
func hits(msg tea.MouseMsg, rendered string) bool {
	return msg.X >= 0 && msg.Y >= 0 &&
		msg.X < lipgloss.Width(rendered) && msg.Y < lipgloss.Height(rendered)
}

// handleRangeCommitted records a committed range and mirrors it into the
// other picker
func (m *Model) handleRangeCommitted(msg components.RangeCommittedMsg) (tea.Model, tea.Cmd) {
	logger.Debug("tui: range committed",
		"id", msg.ID,
		"range", daterange.FormatRange(msg.Range),
		"days", msg.Range.Days())

	m.selected = msg.Range
	switch msg.ID {
	case m.rich.ID():
		m.simple.SetValue(msg.Range)
	case m.simple.ID():
		m.rich.SetValue(msg.Range)
	}
	return m, nil
}

// handleConfigChanged re-applies picker options from a reloaded config.
// A failed reload keeps the current options and shows the error.
func (m *Model) handleConfigChanged(msg ConfigChangedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Warn("tui: config reload failed", "path", msg.Path, "error", msg.Err)
		m.SetConfigError(msg.Err)
		return m, m.waitForConfigChange()
	}

	logger.Info("tui: config reloaded", "path", msg.Path)

	m.cfg = msg.Config
	m.configErr = ""
	m.rich.SetOptions(m.richOptions())
	m.simple.SetOptions(m.simpleOptions())
	return m, m.waitForConfigChange()
}
