package components

import "github.com/charmbracelet/bubbles/key"

type calendarKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Select    key.Binding
	MonthYear key.Binding
}

var calendarKeys = calendarKeyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
	PrevMonth: key.NewBinding(key.WithKeys("pgup", "<", ","), key.WithHelp("pgup/<", "prev month")),
	NextMonth: key.NewBinding(key.WithKeys("pgdown", ">", "."), key.WithHelp("pgdn/>", "next month")),
	Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("space/enter", "pick day")),
	MonthYear: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month/year")),
}

// pickerKeyMap holds the shell-level bindings; it implements help.KeyMap
type pickerKeyMap struct {
	Open   key.Binding
	Save   key.Binding
	Cancel key.Binding
	Switch key.Binding
	Commit key.Binding
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Commit, k.Save, k.Cancel, k.Switch}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{calendarKeys.Select, calendarKeys.PrevMonth, calendarKeys.NextMonth, calendarKeys.MonthYear},
	}
}

var richPickerKeys = pickerKeyMap{
	Open:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "open calendar")),
	Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
	Save:   key.NewBinding(key.WithKeys("ctrl+s", "s"), key.WithHelp("s", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "input/calendar")),
}

var simplePickerKeys = pickerKeyMap{
	Open:   key.NewBinding(key.WithKeys("enter", " ", "down"), key.WithHelp("enter", "toggle calendar")),
	Commit: key.NewBinding(key.WithDisabled()),
	Save:   key.NewBinding(key.WithKeys("a", "ctrl+s"), key.WithHelp("a", "apply")),
	Cancel: key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc/c", "cancel")),
	Switch: key.NewBinding(key.WithDisabled()),
}
