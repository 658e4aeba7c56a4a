// Package memberlist implements the registration list page.
package memberlist

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jufengpp/signup/internal/api"
	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/keys"
	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/members"
	"github.com/jufengpp/signup/internal/mode"
	"github.com/jufengpp/signup/internal/ui/styles"
	"github.com/jufengpp/signup/internal/ui/table"
	"github.com/jufengpp/signup/internal/ui/toaster"
)

// Title heads the page.
const Title = "📋 报名详情列表"

// LoadingText is shown until the first load completes.
const LoadingText = "加载中..."

// loadedMsg carries one List result. Results of superseded loads are dropped.
type loadedMsg struct {
	seq     int
	records []domain.RegistrationRecord
	err     error
}

// Model is the member list page state.
type Model struct {
	services mode.Services
	table    table.Model[members.Row]
	selected int
	loading  bool
	loaded   bool
	err      error
	seq      int

	width  int
	height int
}

// New creates the page. Call Load to fetch.
func New(services mode.Services) Model {
	return Model{
		services: services,
		table:    table.New(tableConfig()),
	}
}

func tableConfig() table.Config[members.Row] {
	return table.Config[members.Row]{
		Title:        Title,
		EmptyMessage: members.EmptyText,
		Columns: []table.Column[members.Row]{
			{
				Header: members.Headers[0], Width: 4, Align: lipgloss.Right,
				Render: func(r members.Row, _ int) string { return strconv.Itoa(r.Index) },
			},
			{
				Header: members.Headers[1], MinWidth: 8,
				Render: func(r members.Row, _ int) string { return r.Name },
			},
			{
				Header: members.Headers[2], Width: 13,
				Render: func(r members.Row, _ int) string { return r.Phone },
			},
			{
				Header: members.Headers[3], Width: 10,
				Render: func(r members.Row, _ int) string { return PackageTag(domain.CoursePackage(r.CoursePackage)) },
			},
		},
	}
}

// PackageTag renders the package label in its colour: blue for 30 hours,
// green for 60, unstyled for anything else.
func PackageTag(p domain.CoursePackage) string {
	switch p {
	case domain.Package30:
		return lipgloss.NewStyle().Foreground(styles.Package30Color).Render(p.Label())
	case domain.Package60:
		return lipgloss.NewStyle().Foreground(styles.Package60Color).Render(p.Label())
	default:
		return p.Label()
	}
}

// errorText prefers the server's message and falls back to a generic one.
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return domain.MsgListFailed
}

// Load fetches the list. refresh bypasses the cache.
func (m Model) Load(refresh bool) (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	seq := m.seq
	svc := m.services.Members

	return m, func() tea.Msg {
		records, err := svc.List(context.Background(), refresh)
		return loadedMsg{seq: seq, records: records, err: err}
	}
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.table = m.table.SetSize(width, max(height-1, 3))
	return m
}

// Records returns the rows on screen.
func (m Model) Records() []members.Row {
	return m.table.Rows()
}

// Loading reports whether a fetch is outstanding.
func (m Model) Loading() bool {
	return m.loading
}

// Err returns the error of the last load, if it failed.
func (m Model) Err() error {
	return m.err
}

// Update handles messages for the member list page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// Keep whatever was shown before.
			m.err = msg.err
			log.ErrorErr(log.CatMembers, "Loading member list failed", msg.err)
			return m, func() tea.Msg {
				return mode.ShowToastMsg{Message: errorText(msg.err), Style: toaster.StyleError}
			}
		}
		m.err = nil
		m.loaded = true
		m.table = m.table.SetRows(members.Rows(msg.records))
		m.selected = min(m.selected, max(len(msg.records)-1, 0))
		m.table = m.table.EnsureVisible(m.selected)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Members.Refresh):
			return m.Load(true)
		case key.Matches(msg, keys.Members.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, keys.Members.Down):
			if m.selected < len(m.table.Rows())-1 {
				m.selected++
			}
		}
		m.table = m.table.EnsureVisible(m.selected)
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.selected = max(m.selected-1, 0)
		case tea.MouseButtonWheelDown:
			m.selected = min(m.selected+1, max(len(m.table.Rows())-1, 0))
		}
		m.table = m.table.EnsureVisible(m.selected)
		return m, nil
	}
	return m, nil
}

// View renders the page.
func (m Model) View() string {
	status := styles.MutedStyle.Render(fmt.Sprintf("共 %d 人报名", len(m.table.Rows())))
	switch {
	case m.loading && !m.loaded:
		status = styles.MutedStyle.Render(LoadingText)
	case m.loading:
		status += styles.MutedStyle.Render("  刷新中...")
	case m.err != nil:
		status += "  " + styles.ErrorStyle.Render(errorText(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(m.selected), styles.StatusBarStyle.Render(status))
}
