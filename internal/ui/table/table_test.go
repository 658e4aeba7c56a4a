package table

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

type person struct {
	id   int
	name string
}

func testTable() Model[person] {
	return New(Config[person]{
		Title:        "名单",
		EmptyMessage: "暂无数据",
		Columns: []Column[person]{
			{Header: "#", Width: 3, Align: lipgloss.Right, Render: func(p person, _ int) string { return fmt.Sprint(p.id) }},
			{Header: "姓名", MinWidth: 4, Render: func(p person, _ int) string { return p.name }},
		},
	})
}

func people(n int) []person {
	out := make([]person, n)
	for i := range out {
		out[i] = person{id: i + 1, name: fmt.Sprintf("学员%d", i+1)}
	}
	return out
}

func lines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestView_Dimensions(t *testing.T) {
	view := testTable().SetRows(people(3)).SetSize(30, 8).View(-1)

	out := lines(view)
	require.Len(t, out, 8)
	for _, line := range out {
		require.Equal(t, 30, ansi.StringWidth(line), "line %q", line)
	}
	require.Contains(t, out[0], "名单")
	require.Contains(t, out[1], "姓名")
	require.Contains(t, out[2], "  1 学员1")
}

func TestView_Empty(t *testing.T) {
	view := ansi.Strip(testTable().SetSize(30, 6).View(0))
	require.Contains(t, view, "暂无数据")
}

func TestView_TooSmall(t *testing.T) {
	require.Empty(t, testTable().SetSize(2, 2).View(0))
}

func TestView_SelectionMarker(t *testing.T) {
	out := lines(testTable().SetRows(people(3)).SetSize(30, 8).View(1))
	require.True(t, strings.HasPrefix(out[3], "│▌"), "row %q", out[3])
	require.True(t, strings.HasPrefix(out[2], "│ "), "row %q", out[2])
}

func TestView_TruncatesWideCells(t *testing.T) {
	tbl := testTable().SetRows([]person{{id: 1, name: "飓风乒乓中关村校区飓风乒乓中关村校区"}}).SetSize(20, 5)
	for _, line := range lines(tbl.View(-1)) {
		require.Equal(t, 20, ansi.StringWidth(line))
	}
}

func TestEnsureVisible(t *testing.T) {
	// Height 6 leaves 3 data rows.
	tbl := testTable().SetRows(people(10)).SetSize(30, 6)
	require.Equal(t, 0, tbl.YOffset())

	tbl = tbl.EnsureVisible(5)
	require.Equal(t, 3, tbl.YOffset())
	require.Contains(t, ansi.Strip(tbl.View(5)), "学员6")
	require.NotContains(t, ansi.Strip(tbl.View(5)), "学员3")

	tbl = tbl.EnsureVisible(1)
	require.Equal(t, 1, tbl.YOffset())

	tbl = tbl.EnsureVisible(99)
	require.Equal(t, 1, tbl.YOffset(), "out of range index is ignored")
}

func TestSetRows_ClampsOffset(t *testing.T) {
	tbl := testTable().SetRows(people(10)).SetSize(30, 6).EnsureVisible(9)
	require.Equal(t, 7, tbl.YOffset())

	tbl = tbl.SetRows(people(2))
	require.Equal(t, 0, tbl.YOffset())
}

func TestColumnWidths(t *testing.T) {
	cols := []Column[person]{
		{Width: 4},
		{MinWidth: 2},
		{MinWidth: 10},
	}
	// 30 - marker - 2 separators - 4 fixed = 23 for two flex columns.
	require.Equal(t, []int{4, 12, 11}, columnWidths(cols, 30))
	// Too narrow: MinWidth wins.
	require.Equal(t, []int{4, 2, 10}, columnWidths(cols, 8))
}

func TestFit(t *testing.T) {
	require.Equal(t, "ab  ", fit("ab", 4, lipgloss.Left))
	require.Equal(t, "  ab", fit("ab", 4, lipgloss.Right))
	require.Equal(t, " ab ", fit("ab", 4, lipgloss.Center))
	require.Equal(t, "ab…", fit("abcdef", 3, lipgloss.Left))
}
