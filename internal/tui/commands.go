package tui

import (
	"github.com/MikeBiancalana/rangepick/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfigChangedMsg carries a picker config reloaded from disk, or the error
// that stopped it from loading
type ConfigChangedMsg struct {
	Path   string
	Config config.PickerConfig
	Err    error
}

// waitForConfigChange waits for the next reload from the watcher.
// This is a non-blocking async command - it returns immediately and the
// closure waits for the watcher channel to signal changes.
func (m *Model) waitForConfigChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	changes := m.watcher.Changes()
	return func() tea.Msg {
		event, ok := <-changes
		if !ok {
			return nil
		}
		return ConfigChangedMsg{Path: event.Path, Config: event.Config, Err: event.Err}
	}
}

// SetConfigError shows a config load problem in the header until the next
// successful reload
func (m *Model) SetConfigError(err error) {
	if err == nil {
		m.configErr = ""
		return
	}
	m.configErr = err.Error()
}
