// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys apply on every page.
type GlobalKeys struct {
	Quit       key.Binding
	SwitchPage key.Binding
	ToggleLog  key.Binding
	Help       key.Binding
}

// ActivityKeys drive the registration form.
type ActivityKeys struct {
	NextField   key.Binding
	PrevField   key.Binding
	PrevPackage key.Binding
	NextPackage key.Binding
	Submit      key.Binding
}

// MembersKeys drive the member table.
type MembersKeys struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
}

// Global is the app-wide keymap.
var Global = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	SwitchPage: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "活动页/报名名单"),
	),
	ToggleLog: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "logs"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
}

// Activity is the form keymap.
var Activity = ActivityKeys{
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab/↓", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "previous field"),
	),
	PrevPackage: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous package"),
	),
	NextPackage: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next package"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "立即报名"),
	),
}

// Members is the member table keymap.
var Members = MembersKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
}

// ShortHelp implements help.KeyMap.
func (k ActivityKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.NextPackage, k.Submit, Global.SwitchPage, Global.Quit}
}

// FullHelp implements help.KeyMap.
func (k ActivityKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.PrevPackage, k.NextPackage, k.Submit},
		{Global.SwitchPage, Global.ToggleLog, Global.Quit},
	}
}

// ShortHelp implements help.KeyMap.
func (k MembersKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, Global.SwitchPage, Global.Quit}
}

// FullHelp implements help.KeyMap.
func (k MembersKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{Global.SwitchPage, Global.ToggleLog, Global.Quit},
	}
}
