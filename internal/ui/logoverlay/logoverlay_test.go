package logoverlay

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jufengpp/signup/internal/log"
)

func entry(level log.Level, msg string) string {
	return log.Format(time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC), level, log.CatSlots, msg)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggle(t *testing.T) {
	m := New()
	m.SetSize(100, 40)
	require.False(t, m.Visible())
	require.Empty(t, m.View())

	m.Toggle()
	require.True(t, m.Visible())
	require.Contains(t, m.View(), "Logs")
	require.Contains(t, m.View(), "No logs to display")
}

func TestAppend_BoundsBuffer(t *testing.T) {
	m := New()
	for i := 0; i < maxEntries+10; i++ {
		m.Append(fmt.Sprintf("entry %d\n", i))
	}
	require.Len(t, m.Entries(), maxEntries)
	require.Equal(t, "entry 10", m.Entries()[0])
}

func TestLevelFilter(t *testing.T) {
	m := New()
	m.SetSize(100, 40)
	m.Toggle()
	m.Append(entry(log.LevelDebug, "polling"))
	m.Append(entry(log.LevelWarn, "poll failed"))
	m.Append(entry(log.LevelError, "boom"))

	require.Len(t, m.Filtered(), 3)

	m, _ = m.Update(key("w"))
	require.Len(t, m.Filtered(), 2)

	m, _ = m.Update(key("e"))
	require.Len(t, m.Filtered(), 1)
	require.Contains(t, m.View(), "boom")

	m, _ = m.Update(key("c"))
	require.Empty(t, m.Entries())
}

func TestEscCloses(t *testing.T) {
	m := New()
	m.SetSize(100, 40)
	m.Toggle()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
}

func TestHiddenIgnoresKeys(t *testing.T) {
	m := New()
	m.Append(entry(log.LevelDebug, "x"))

	m, _ = m.Update(key("c"))
	require.Len(t, m.Entries(), 1)
}
