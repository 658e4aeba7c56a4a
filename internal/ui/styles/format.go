package styles

import "github.com/charmbracelet/x/ansi"

// TruncateString truncates s to maxWidth terminal cells, ending in an
// ellipsis when anything was cut.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return ansi.Truncate(s, maxWidth, "…")
}
