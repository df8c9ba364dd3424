package tui

import (
	"github.com/MikeBiancalana/rangepick/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

// Keyboard Handlers
//
// App-level keys are checked first. Everything else belongs to the focused
// picker, which owns its own bindings.

// handleKeyPress is the main keyboard input dispatcher
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "q":
		// The rich picker's text field takes q as input
		if m.active == VariantSimple && !m.simple.IsOpen() {
			return m.quit()
		}
	case "tab", "shift+tab":
		if !m.activeOpen() {
			return m, m.SetActive((m.active + 1) % VariantCount)
		}
	}

	var cmd tea.Cmd
	switch m.active {
	case VariantRich:
		m.rich, cmd = m.rich.Update(msg)
	case VariantSimple:
		m.simple, cmd = m.simple.Update(msg)
	}
	return m, cmd
}

// activeOpen reports whether the focused picker shows its calendar
func (m *Model) activeOpen() bool {
	if m.active == VariantSimple {
		return m.simple.IsOpen()
	}
	return m.rich.IsOpen()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	logger.Debug("tui: quitting")
	m.shutdown()
	return m, tea.Quit
}
