package memberlist

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jufengpp/signup/internal/api"
	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/members"
	"github.com/jufengpp/signup/internal/mocks"
	"github.com/jufengpp/signup/internal/mode"
	"github.com/jufengpp/signup/internal/ui/toaster"
)

var records = []domain.RegistrationRecord{
	{ID: "1", Name: "张三", Phone: "13800138000", CoursePackage: domain.Package30},
	{ID: "2", Name: "李四", Phone: "13900139000", CoursePackage: domain.Package60},
	{ID: "3", Name: "王五", Phone: "13700137000", CoursePackage: "PACKAGE_90"},
}

func newModel(t *testing.T, lister *mocks.MockLister) Model {
	t.Helper()
	return New(mode.Services{Members: members.NewService(lister, 0)}).SetSize(80, 12)
}

// load runs a Load and feeds its result back.
func load(t *testing.T, m Model, refresh bool) (Model, tea.Cmd) {
	t.Helper()
	m, cmd := m.Load(refresh)
	require.True(t, m.Loading())
	require.NotNil(t, cmd)
	return m.Update(cmd())
}

func TestLoad_RendersTable(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(records, nil).Once()

	m, cmd := load(t, newModel(t, lister), false)
	require.Nil(t, cmd)
	require.False(t, m.Loading())
	require.Len(t, m.Records(), 3)

	view := ansi.Strip(m.View())
	for _, want := range []string{Title, "序号", "姓名", "联系电话", "课程包", "张三", "13900139000", "30课时", "60课时", "PACKAGE_90", "共 3 人报名"} {
		require.Contains(t, view, want)
	}
}

func TestLoad_Empty(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(nil, nil).Once()

	m, _ := load(t, newModel(t, lister), false)
	require.Contains(t, ansi.Strip(m.View()), members.EmptyText)
}

func TestLoad_LoadingText(t *testing.T) {
	lister := mocks.NewMockLister(t)
	m, _ := newModel(t, lister).Load(false)
	require.Contains(t, ansi.Strip(m.View()), LoadingText)
}

func TestLoad_ErrorKeepsRowsAndToasts(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(records, nil).Once()
	lister.EXPECT().ListRegistrations(mock.Anything).
		Return(nil, &api.Error{Status: 500, Message: "服务器繁忙", FromServer: true}).Once()

	m, _ := load(t, newModel(t, lister), false)
	m, cmd := load(t, m, true)

	require.Len(t, m.Records(), 3, "previous rows stay on screen")
	require.Error(t, m.Err())

	toast, ok := cmd().(mode.ShowToastMsg)
	require.True(t, ok)
	require.Equal(t, toaster.StyleError, toast.Style)
	require.Equal(t, "服务器繁忙", toast.Message)
	require.Contains(t, ansi.Strip(m.View()), "服务器繁忙")
}

func TestLoad_StaleResultDropped(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(records, nil)

	m := newModel(t, lister)
	m, first := m.Load(false)
	m, second := m.Load(true)

	m, _ = m.Update(first())
	require.True(t, m.Loading(), "superseded result is ignored")

	m, _ = m.Update(second())
	require.False(t, m.Loading())
	require.Len(t, m.Records(), 3)
}

func TestRefreshKey_Reloads(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(records, nil).Twice()

	m, _ := load(t, newModel(t, lister), false)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.True(t, m.Loading())
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	require.False(t, m.Loading())
}

func TestNavigation_StaysInRange(t *testing.T) {
	lister := mocks.NewMockLister(t)
	lister.EXPECT().ListRegistrations(mock.Anything).Return(records, nil).Once()
	m, _ := load(t, newModel(t, lister), false)

	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	for range 5 {
		m, _ = m.Update(down)
	}
	require.Equal(t, 2, m.selected)

	for range 5 {
		m, _ = m.Update(up)
	}
	require.Equal(t, 0, m.selected)
}

func TestPackageTag(t *testing.T) {
	require.Equal(t, "30课时", ansi.Strip(PackageTag(domain.Package30)))
	require.Equal(t, "60课时", ansi.Strip(PackageTag(domain.Package60)))
	require.Equal(t, "PACKAGE_90", PackageTag("PACKAGE_90"))
}

func TestErrorText(t *testing.T) {
	require.Equal(t, "服务器繁忙", errorText(&api.Error{Message: "服务器繁忙"}))
	require.Equal(t, domain.MsgListFailed, errorText(errors.New("boom")))
}
