// Package toaster provides a notification toast overlay component.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jufengpp/signup/internal/ui/overlay"
	"github.com/jufengpp/signup/internal/ui/styles"
)

// maxWidth bounds the toast text before it wraps.
const maxWidth = 48

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✅ with green border.
	StyleSuccess Style = iota
	// StyleError shows ❌ with red border.
	StyleError
	// StyleInfo shows ℹ️ with blue border.
	StyleInfo
	// StyleWarn shows ⚠️ with yellow border.
	StyleWarn
)

// DismissMsg hides the toast it was scheduled for. A newer toast ignores it.
type DismissMsg struct {
	ID int
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	id      int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that hides it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.id++
	m.message = message
	m.style = style
	m.visible = true

	id := m.id
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{ID: id} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if dismiss, ok := msg.(DismissMsg); ok && dismiss.ID == m.id {
		m.visible = false
		m.message = ""
	}
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text currently shown.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var icon string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.ToastBorderErrorColor)
		icon = "❌ "
	case StyleInfo:
		style = style.BorderForeground(styles.ToastBorderInfoColor)
		icon = "ℹ️ "
	case StyleWarn:
		style = style.BorderForeground(styles.ToastBorderWarnColor)
		icon = "⚠️ "
	default:
		style = style.BorderForeground(styles.ToastBorderSuccessColor)
		icon = "✅ "
	}

	return style.Render(wordwrap.String(icon+m.message, maxWidth))
}

// Overlay renders the toast near the top of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Top,
		PadY:     1,
	}, m.View(), bg)
}
