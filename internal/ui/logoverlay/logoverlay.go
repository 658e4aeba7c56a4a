// Package logoverlay shows recent log entries over the running TUI.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/ui/overlay"
	"github.com/jufengpp/signup/internal/ui/styles"
)

const (
	maxEntries        = 500
	viewportMaxHeight = 20
	viewportMinHeight = 5
	boxMaxWidth       = 140
	boxMinWidth       = 40
)

var levelTags = []struct {
	level log.Level
	tag   string
	key   string
	label string
}{
	{log.LevelDebug, "[DEBUG]", "d", "Debug"},
	{log.LevelInfo, "[INFO]", "i", "Info"},
	{log.LevelWarn, "[WARN]", "w", "Warn"},
	{log.LevelError, "[ERROR]", "e", "Error"},
}

// Model is the log overlay component state.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records an entry, dropping the oldest past the buffer size.
func (m *Model) Append(entry string) {
	m.entries = append(m.entries, strings.TrimSuffix(entry, "\n"))
	if over := len(m.entries) - maxEntries; over > 0 {
		m.entries = m.entries[over:]
	}
	if m.visible {
		m.refresh()
	}
}

// Entries returns the buffered entries.
func (m Model) Entries() []string {
	return m.entries
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := keyMsg.String(); k {
	case "c":
		m.entries = nil
		m.refresh()
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	case "ctrl+x", "esc":
		m.visible = false
	case "ctrl+c":
		return m, tea.Quit
	default:
		for _, lt := range levelTags {
			if k == lt.key {
				m.minLevel = lt.level
				m.refresh()
			}
		}
	}
	return m, nil
}

// Toggle flips visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
}

// Visible returns whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// SetSize updates the viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

// View renders the boxed log list.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs")

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, m.hints()}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(body)
}

// Overlay renders the log box centered on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center}, m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(m.boxWidth()-2, height)
	m.viewport.SetContent(m.content())
	m.viewport.GotoBottom()
}

func (m Model) content() string {
	maxWidth := m.boxWidth() - 2
	var lines []string
	for _, entry := range m.entries {
		level, known := entryLevel(entry)
		if known && level < m.minLevel {
			continue
		}
		if ansi.StringWidth(entry) > maxWidth {
			entry = ansi.Truncate(entry, maxWidth, "…")
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(levelColor(level, known)).Render(entry))
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

// Filtered returns the entries passing the current level filter.
func (m Model) Filtered() []string {
	var out []string
	for _, entry := range m.entries {
		if level, known := entryLevel(entry); !known || level >= m.minLevel {
			out = append(out, entry)
		}
	}
	return out
}

func (m Model) hints() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, lt := range levelTags {
		label := "[" + lt.key + "] " + lt.label
		if lt.level == m.minLevel {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, hint.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func entryLevel(entry string) (log.Level, bool) {
	for _, lt := range levelTags {
		if strings.Contains(entry, lt.tag) {
			return lt.level, true
		}
	}
	return log.LevelDebug, false
}

func levelColor(level log.Level, known bool) lipgloss.TerminalColor {
	if !known {
		return styles.TextPrimaryColor
	}
	switch level {
	case log.LevelError:
		return styles.StatusErrorColor
	case log.LevelWarn:
		return styles.StatusWarningColor
	case log.LevelInfo:
		return styles.StatusInfoColor
	default:
		return styles.TextMutedColor
	}
}
