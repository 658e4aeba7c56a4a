package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var (
	_ help.KeyMap = ActivityKeys{}
	_ help.KeyMap = MembersKeys{}
)

func TestBindingsHaveHelp(t *testing.T) {
	bindings := []key.Binding{
		Global.Quit, Global.SwitchPage, Global.ToggleLog, Global.Help,
		Activity.NextField, Activity.PrevField, Activity.PrevPackage, Activity.NextPackage, Activity.Submit,
		Members.Up, Members.Down, Members.Refresh,
	}
	for _, b := range bindings {
		require.NotEmpty(t, b.Keys())
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
}

func TestSubmitMatchesEnter(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, Activity.Submit))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, Activity.Submit))
}

func TestSwitchPageMatchesCtrlT(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlT}, Global.SwitchPage))
}
