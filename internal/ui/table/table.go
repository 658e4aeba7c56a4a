// Package table renders a bordered, scrollable table of typed rows.
//
// The table is a pure render component: callers own the row data and the
// selection index and pass them in. Columns render their own cells, so
// styled content (coloured tags) works the same as plain text.
//
//	tbl := table.New(table.Config[Row]{
//	    Title:   "报名名单",
//	    Columns: []table.Column[Row]{{Header: "姓名", MinWidth: 8, Render: func(r Row, w int) string { return r.Name }}},
//	}).SetRows(rows).SetSize(80, 20)
//	view := tbl.View(selected)
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jufengpp/signup/internal/ui/styles"
)

// Column defines one table column. Width fixes the column; otherwise it
// shares the remaining space with the other flex columns.
type Column[T any] struct {
	Header   string
	Width    int
	MinWidth int
	Align    lipgloss.Position
	Render   func(row T, width int) string
}

// Config defines the table.
type Config[T any] struct {
	Columns      []Column[T]
	Title        string
	EmptyMessage string
	BorderColor  lipgloss.TerminalColor
}

// Model holds the rows and the scroll position.
type Model[T any] struct {
	config  Config[T]
	rows    []T
	width   int
	height  int
	yOffset int
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.TextMutedColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.FocusBorderColor)
	emptyStyle    = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
)

// New creates a table.
func New[T any](cfg Config[T]) Model[T] {
	if cfg.BorderColor == nil {
		cfg.BorderColor = styles.BorderDefaultColor
	}
	return Model[T]{config: cfg}
}

// SetRows replaces the row data and keeps the scroll offset in range.
func (m Model[T]) SetRows(rows []T) Model[T] {
	m.rows = rows
	m.yOffset = m.clamp(m.yOffset)
	return m
}

// Rows returns the current row data.
func (m Model[T]) Rows() []T {
	return m.rows
}

// SetSize sets the outer dimensions, borders included.
func (m Model[T]) SetSize(width, height int) Model[T] {
	m.width = width
	m.height = height
	m.yOffset = m.clamp(m.yOffset)
	return m
}

// YOffset returns the index of the first visible row.
func (m Model[T]) YOffset() int {
	return m.yOffset
}

// EnsureVisible scrolls just enough to show row index.
func (m Model[T]) EnsureVisible(index int) Model[T] {
	if index < 0 || index >= len(m.rows) {
		return m
	}
	visible := m.visibleRows()
	switch {
	case index < m.yOffset:
		m.yOffset = index
	case index >= m.yOffset+visible:
		m.yOffset = index - visible + 1
	}
	m.yOffset = m.clamp(m.yOffset)
	return m
}

// visibleRows is the number of data rows that fit inside the border
// below the header.
func (m Model[T]) visibleRows() int {
	return max(m.height-3, 1)
}

func (m Model[T]) clamp(offset int) int {
	limit := max(len(m.rows)-m.visibleRows(), 0)
	return min(max(offset, 0), limit)
}

// View renders the table with row selected highlighted. An out-of-range
// selected means no highlight.
func (m Model[T]) View(selected int) string {
	if m.width <= 2 || m.height <= 2 {
		return ""
	}

	inner := m.width - 2
	widths := columnWidths(m.config.Columns, inner)
	rows := m.visibleRows()

	lines := make([]string, 0, rows+1)
	lines = append(lines, headerStyle.Render(m.renderHeader(widths)))

	if len(m.rows) == 0 {
		msg := emptyStyle.Render(m.config.EmptyMessage)
		pad := max((inner-lipgloss.Width(msg))/2, 0)
		lines = append(lines, strings.Repeat(" ", pad)+msg)
	} else {
		end := min(m.yOffset+rows, len(m.rows))
		for i := m.yOffset; i < end; i++ {
			lines = append(lines, m.renderRow(m.rows[i], widths, i == selected))
		}
	}
	for len(lines) < rows+1 {
		lines = append(lines, "")
	}

	return styles.RenderSection(m.config.Title, lines, m.width, m.config.BorderColor)
}

func (m Model[T]) renderHeader(widths []int) string {
	cells := make([]string, len(widths))
	for i, col := range m.config.Columns {
		cells[i] = fit(col.Header, widths[i], col.Align)
	}
	return " " + strings.Join(cells, " ")
}

func (m Model[T]) renderRow(row T, widths []int, selected bool) string {
	cells := make([]string, len(widths))
	for i, col := range m.config.Columns {
		cells[i] = fit(col.Render(row, widths[i]), widths[i], col.Align)
	}
	line := strings.Join(cells, " ")
	if selected {
		return selectedStyle.Render("▌") + line
	}
	return " " + line
}

// columnWidths gives fixed columns their width and splits what is left
// evenly between flex columns, honouring MinWidth.
func columnWidths[T any](cols []Column[T], total int) []int {
	widths := make([]int, len(cols))
	// One cell for the selection marker, one between each pair of columns.
	remaining := total - 1 - max(len(cols)-1, 0)
	flex := 0
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			remaining -= col.Width
		} else {
			flex++
		}
	}
	if flex == 0 {
		return widths
	}

	share := max(remaining/flex, 0)
	extra := max(remaining-share*flex, 0)
	for i, col := range cols {
		if col.Width > 0 {
			continue
		}
		w := share
		if extra > 0 {
			w++
			extra--
		}
		widths[i] = max(w, col.MinWidth, 1)
	}
	return widths
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int, align lipgloss.Position) string {
	if lipgloss.Width(s) > width {
		s = styles.TruncateString(s, width)
	}
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + s
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
