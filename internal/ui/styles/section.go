package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderSection draws content inside a rounded box whose top edge carries
// the title: ╭─ Title ─────╮. Lines wider than the box are left as-is.
func RenderSection(title string, content []string, width int, color lipgloss.TerminalColor) string {
	borderStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)

	inner := max(width-2, 1)

	var top string
	if title == "" {
		top = borderStyle.Render("╭" + strings.Repeat("─", inner) + "╮")
	} else {
		fill := max(inner-lipgloss.Width(title)-3, 0)
		top = borderStyle.Render("╭─ ") + titleStyle.Render(title) +
			borderStyle.Render(" "+strings.Repeat("─", fill)+"╮")
	}

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, top)
	side := borderStyle.Render("│")
	for _, row := range content {
		pad := max(inner-lipgloss.Width(row), 0)
		lines = append(lines, side+row+strings.Repeat(" ", pad)+side)
	}
	lines = append(lines, borderStyle.Render("╰"+strings.Repeat("─", inner)+"╯"))

	return strings.Join(lines, "\n")
}
