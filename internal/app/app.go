// Package app contains the root application model.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jufengpp/signup/internal/config"
	"github.com/jufengpp/signup/internal/keys"
	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/mode"
	"github.com/jufengpp/signup/internal/mode/activity"
	"github.com/jufengpp/signup/internal/mode/memberlist"
	"github.com/jufengpp/signup/internal/pubsub"
	"github.com/jufengpp/signup/internal/ui/logoverlay"
	"github.com/jufengpp/signup/internal/ui/styles"
	"github.com/jufengpp/signup/internal/ui/toaster"
	"github.com/jufengpp/signup/internal/watcher"
)

const defaultToastDuration = 3 * time.Second

// Toast texts for config reloads.
const (
	MsgConfigReloaded = "活动信息已更新"
	MsgRestartNeeded  = "活动时间、名额或课程包的修改需重启后生效"
	MsgConfigInvalid  = "配置文件有误，已忽略本次修改"
)

// Model is the root application state.
type Model struct {
	page     mode.Page
	activity activity.Model
	members  memberlist.Model

	services mode.Services

	width  int
	height int

	// Centralized toaster, owned by app rather than the pages.
	toaster toaster.Model
	help    help.Model

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.LogListener
	logCancel   context.CancelFunc

	// Config file reloads; nil when not watching.
	configListener *pubsub.ContinuousListener[watcher.Event]
	configCancel   context.CancelFunc
	reload         func() (config.Config, error)
}

// Option configures the root model.
type Option func(*Model)

// WithConfigWatch reloads the activity text each time changes publishes
// an event. load reads and validates the config file.
func WithConfigWatch(changes pubsub.Subscriber[watcher.Event], load func() (config.Config, error)) Option {
	return func(m *Model) {
		ctx, cancel := context.WithCancel(context.Background())
		m.configListener = pubsub.NewContinuousListener(ctx, changes)
		m.configCancel = cancel
		m.reload = load
	}
}

// New creates the root model on the activity page.
// debugMode enables the log overlay (Ctrl+X toggle).
func New(services mode.Services, debugMode bool, opts ...Option) Model {
	m := Model{
		page:       mode.PageActivity,
		activity:   activity.New(services),
		members:    memberlist.New(services),
		services:   services,
		toaster:    toaster.New(),
		help:       help.New(),
		debugMode:  debugMode,
		logOverlay: logoverlay.New(),
	}

	if debugMode {
		ctx, cancel := context.WithCancel(context.Background())
		if l := log.NewListener(ctx); l != nil {
			m.logListener = l
			m.logCancel = cancel
		} else {
			cancel()
		}
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init mounts the activity page and starts the log listener in debug mode.
func (m Model) Init() tea.Cmd {
	// Init cannot return the mounted model, so the first mount happens
	// through a message.
	cmds := []tea.Cmd{func() tea.Msg { return mountMsg{} }}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.configListener != nil {
		cmds = append(cmds, m.configListener.Listen())
	}
	return tea.Batch(cmds...)
}

// mountMsg mounts the activity page from inside Update.
type mountMsg struct{}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		if m.page != mode.PageActivity {
			return m, nil
		}
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Mount()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case log.LogEvent:
		m.logOverlay.Append(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case pubsub.Event[watcher.Event]:
		return m.reloadConfig()

	case mode.ShowToastMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Message, msg.Style, m.toastDuration())
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			return m, nil
		}

	case tea.KeyMsg:
		if m.debugMode && key.Matches(msg, keys.Global.ToggleLog) {
			m.logOverlay.Toggle()
			return m, nil
		}

		// The debug log overlay takes every key while it is open.
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Global.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Global.SwitchPage):
			return m.switchPage()
		case key.Matches(msg, keys.Global.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}
	}

	return m.delegate(msg)
}

// delegate sends input to the page on screen. Async results go to both
// pages; each drops what is not its own.
func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		if m.page == mode.PageMembers {
			m.members, cmd = m.members.Update(msg)
		} else {
			m.activity, cmd = m.activity.Update(msg)
		}
		return m, cmd
	}

	var actCmd, memCmd tea.Cmd
	m.activity, actCmd = m.activity.Update(msg)
	m.members, memCmd = m.members.Update(msg)
	return m, tea.Batch(actCmd, memCmd)
}

// switchPage toggles between the activity page and the member list.
// Leaving the activity page stops its countdown and slot polling.
func (m Model) switchPage() (tea.Model, tea.Cmd) {
	switch m.page {
	case mode.PageActivity:
		log.Info(log.CatUI, "Switching page", "from", mode.PageActivity, "to", mode.PageMembers)
		m.activity = m.activity.Unmount()
		m.page = mode.PageMembers
		m.resize()
		var cmd tea.Cmd
		m.members, cmd = m.members.Load(false)
		return m, cmd

	default:
		log.Info(log.CatUI, "Switching page", "from", mode.PageMembers, "to", mode.PageActivity)
		m.page = mode.PageActivity
		m.resize()
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Mount()
		return m, cmd
	}
}

// reloadConfig applies an edited config file to the activity page.
func (m Model) reloadConfig() (tea.Model, tea.Cmd) {
	if m.reload == nil {
		return m, nil
	}
	listen := m.configListener.Listen()

	cfg, err := m.reload()
	if err != nil {
		log.ErrorErr(log.CatConfig, "Ignoring invalid config change", err)
		toast := func() tea.Msg { return mode.ShowToastMsg{Message: MsgConfigInvalid, Style: toaster.StyleError} }
		return m, tea.Batch(toast, listen)
	}

	var restart bool
	m.activity, restart = m.activity.Reload(cfg.Activity)
	msg := mode.ShowToastMsg{Message: MsgConfigReloaded, Style: toaster.StyleInfo}
	if restart {
		msg = mode.ShowToastMsg{Message: MsgRestartNeeded, Style: toaster.StyleWarn}
	}
	return m, tea.Batch(func() tea.Msg { return msg }, listen)
}

// resize gives the page everything above the help line.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	height := max(m.height-lipgloss.Height(m.helpView()), 1)
	m.activity = m.activity.SetSize(m.width, height)
	m.members = m.members.SetSize(m.width, height)
}

func (m Model) keyMap() help.KeyMap {
	if m.page == mode.PageMembers {
		return keys.Members
	}
	return keys.Activity
}

func (m Model) helpView() string {
	return styles.StatusBarStyle.Render(m.help.View(m.keyMap()))
}

func (m Model) toastDuration() time.Duration {
	if m.services.Config != nil && m.services.Config.UI.ToastDuration > 0 {
		return m.services.Config.UI.ToastDuration
	}
	return defaultToastDuration
}

// Page returns the page on screen.
func (m Model) Page() mode.Page {
	return m.page
}

// Activity returns the activity page.
func (m Model) Activity() activity.Model {
	return m.activity
}

// Members returns the member list page.
func (m Model) Members() memberlist.Model {
	return m.members
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	if m.page == mode.PageMembers {
		view = m.members.View()
	} else {
		view = m.activity.View()
	}
	view = lipgloss.JoinVertical(lipgloss.Left, view, m.helpView())

	if m.width > 0 && m.height > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(view)
	}

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	// Only in debug mode when visible.
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// Close stops background work: slot polling and the listeners.
func (m *Model) Close() error {
	m.activity = m.activity.Unmount()
	if m.services.Tracker != nil {
		m.services.Tracker.Stop()
	}
	if m.logCancel != nil {
		m.logCancel()
		m.logCancel = nil
	}
	if m.configCancel != nil {
		m.configCancel()
		m.configCancel = nil
	}
	return nil
}
