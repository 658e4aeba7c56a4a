// Package activity implements the promotion page: phase and countdown,
// remaining slots, package cards and the registration form.
package activity

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jufengpp/signup/internal/config"
	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/keys"
	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/mode"
	"github.com/jufengpp/signup/internal/pubsub"
	"github.com/jufengpp/signup/internal/submit"
	"github.com/jufengpp/signup/internal/timegate"
	"github.com/jufengpp/signup/internal/ui/markdown"
	"github.com/jufengpp/signup/internal/ui/styles"
	"github.com/jufengpp/signup/internal/ui/toaster"
)

const (
	defaultWidth = 80
	scrollStep   = 3
)

// tickMsg redraws the countdown. Ticks from an earlier mount are dropped.
type tickMsg struct {
	gen int
}

// slotsMsg carries one polled SlotStatus.
type slotsMsg struct {
	gen    int
	status domain.SlotStatus
}

// submitResultMsg carries the outcome of one submission. seq identifies
// the submission, not the mount, so a result survives leaving the page.
type submitResultMsg struct {
	seq     int
	outcome submit.Outcome
}

// Model is the activity page state.
type Model struct {
	services mode.Services
	activity config.ActivityConfig
	window   domain.ActivityWindow

	tickInterval  time.Duration
	markdownStyle string

	state timegate.State
	slots domain.SlotStatus

	form         form
	submitting   bool
	submitSeq    int
	confirmation string
	spinner      spinner.Model
	viewport     viewport.Model
	description  string

	// Mount lifecycle. gen changes on every mount and unmount so messages
	// scheduled by an earlier mount are recognised and ignored.
	ctx      context.Context
	cancel   context.CancelFunc
	gen      int
	listener *pubsub.ContinuousListener[domain.SlotStatus]

	width  int
	height int
}

// New creates the activity page. It does nothing until Mount.
func New(services mode.Services) Model {
	cfg := services.Config

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.SpinnerColor)),
	)

	status, _ := services.Tracker.Status()
	m := Model{
		services:      services,
		activity:      cfg.Activity,
		window:        services.Gate.Window(),
		tickInterval:  cfg.Polling.TickInterval,
		markdownStyle: cfg.UI.MarkdownStyle,
		state:         services.Gate.Current(),
		slots:         status,
		form:          newForm(cfg.Activity.Packages),
		spinner:       sp,
		viewport:      viewport.New(defaultWidth, 0),
		width:         defaultWidth,
	}
	m.renderDescription()
	m.sync()
	return m
}

// Mount starts the countdown, the slot tracker and the slot listener.
// Mounting twice is a no-op.
func (m Model) Mount() (Model, tea.Cmd) {
	if m.cancel != nil {
		return m, nil
	}

	m.gen++
	m.ctx, m.cancel = context.WithCancel(context.Background())

	// Subscribe before starting so the first poll is not missed.
	m.listener = pubsub.NewContinuousListener(m.ctx, m.services.Tracker.Broker())
	m.services.Tracker.Start(m.ctx)

	m.state = m.services.Gate.Current()
	m.slots, _ = m.services.Tracker.Status()
	// A submission may have started before the page was left.
	m.submitting = m.submitting || m.services.Submitter.InFlight()
	m.sync()

	log.Debug(log.CatUI, "Activity page mounted", "gen", m.gen, "phase", m.state.Phase.String())
	focus := m.form.setFocus(m.form.focus)
	cmds := []tea.Cmd{m.tick(), m.listen(), focus}
	if m.submitting {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// Unmount stops every background activity. A submission still in flight
// keeps the button locked and its result is applied when it arrives.
func (m Model) Unmount() Model {
	if m.cancel == nil {
		return m
	}
	m.cancel()
	m.cancel = nil
	m.listener = nil
	m.services.Tracker.Stop()
	m.gen++
	m.sync()

	log.Debug(log.CatUI, "Activity page unmounted", "gen", m.gen)
	return m
}

// Reload swaps in new display text. The window, capacity and packages
// keep their started values because the gate, tracker and form hold them;
// restart reports whether any of those differ in a.
func (m Model) Reload(a config.ActivityConfig) (_ Model, restart bool) {
	cur := m.activity
	restart = a.Start != cur.Start || a.End != cur.End ||
		a.Capacity != cur.Capacity || !slices.Equal(a.Packages, cur.Packages)

	a.Start, a.End = cur.Start, cur.End
	a.Capacity, a.Packages = cur.Capacity, cur.Packages
	m.activity = a
	m.renderDescription()
	m.sync()

	log.Info(log.CatConfig, "Activity text reloaded", "restartNeeded", restart)
	return m, restart
}

// Mounted reports whether the page is live.
func (m Model) Mounted() bool {
	return m.cancel != nil
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) Model {
	widthChanged := width != m.width
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	if widthChanged {
		m.renderDescription()
	}
	m.sync()
	return m
}

// Phase returns the phase shown on screen.
func (m Model) Phase() timegate.State {
	return m.state
}

// Slots returns the slot status shown on screen.
func (m Model) Slots() domain.SlotStatus {
	return m.slots
}

// Submitting reports whether the submit button is showing the spinner.
func (m Model) Submitting() bool {
	return m.submitting
}

// Registered reports whether this session completed a registration.
func (m Model) Registered() bool {
	return m.services.Submitter.State() == submit.StateRegistered
}

// FieldErrors returns the validation errors shown under the form fields.
func (m Model) FieldErrors() map[domain.Field]string {
	return m.form.errors
}

// Update handles messages for the activity page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.gen || m.cancel == nil {
			return m, nil
		}
		m.state = m.services.Gate.Current()
		m.sync()
		return m, m.tick()

	case slotsMsg:
		if msg.gen != m.gen || m.cancel == nil {
			return m, nil
		}
		m.slots = msg.status
		m.sync()
		return m, m.listen()

	case submitResultMsg:
		if !m.submitting || msg.seq != m.submitSeq {
			log.Debug(log.CatUI, "Dropping stale submit result", "seq", msg.seq, "current", m.submitSeq)
			return m, nil
		}
		return m.handleOutcome(msg.outcome)

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.sync()
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input internals.
	cmd := m.form.update(msg)
	m.sync()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyPgUp:
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
		return m, nil
	case tea.KeyPgDown:
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
		return m, nil
	}

	if !m.formVisible() {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, keys.Activity.Submit):
		return m.submit()
	case key.Matches(msg, keys.Activity.NextField):
		cmd = m.form.next()
	case key.Matches(msg, keys.Activity.PrevField):
		cmd = m.form.prev()
	case m.form.focus == focusPackage && key.Matches(msg, keys.Activity.PrevPackage):
		m.form.cyclePackage(-1)
	case m.form.focus == focusPackage && key.Matches(msg, keys.Activity.NextPackage):
		m.form.cyclePackage(1)
	default:
		cmd = m.form.update(msg)
	}
	m.sync()
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(m.viewport.YOffset - scrollStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + scrollStep)
		return m, nil
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease || !m.formVisible() {
		return m, nil
	}

	for i := range m.form.packages {
		if inZone(makePackageZoneID(i), msg) || inZone(makeOptionZoneID(i), msg) {
			m.form.selectPackage(i)
			cmd := m.form.setFocus(focusPackage)
			m.sync()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch {
	case inZone(zoneNameInput, msg):
		cmd = m.form.setFocus(focusName)
	case inZone(zonePhoneInput, msg):
		cmd = m.form.setFocus(focusPhone)
	case inZone(zoneSubmitButton, msg):
		m.form.setFocus(focusSubmit)
		return m.submit()
	default:
		return m, nil
	}
	m.sync()
	return m, cmd
}

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

// submit hands the form to the Submitter off the update loop. The button
// stays disabled until the result arrives.
func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.submitSeq++
	m.form.errors = nil
	m.sync()

	req := m.form.request()
	seq := m.submitSeq
	submitter := m.services.Submitter
	ctx := context.Background()
	if m.ctx != nil {
		// Leaving the page must not abort a request the server may already
		// be processing.
		ctx = context.WithoutCancel(m.ctx)
	}

	run := func() tea.Msg {
		return submitResultMsg{seq: seq, outcome: submitter.Submit(ctx, req)}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) handleOutcome(out submit.Outcome) (Model, tea.Cmd) {
	m.submitting = false

	var cmd tea.Cmd
	switch out.Kind {
	case submit.KindRegistered:
		if m.services.Members != nil {
			m.services.Members.Invalidate(context.Background())
		}
		m.form.reset()
		m.confirmation = out.Message
		cmd = toast(out.Message, toaster.StyleSuccess)

	case submit.KindInvalid:
		m.form.errors = out.Fields
		if len(out.Fields) == 0 {
			cmd = toast(out.Message, toaster.StyleError)
		}

	case submit.KindBusy:

	case submit.KindBlocked:
		style := toaster.StyleWarn
		if errors.Is(out.Err, domain.ErrAlreadyRegistered) {
			style = toaster.StyleInfo
		}
		cmd = toast(out.Message, style)

	default:
		cmd = toast(out.Message, toaster.StyleError)
	}

	m.sync()
	return m, cmd
}

func toast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return mode.ShowToastMsg{Message: message, Style: style}
	}
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// listen waits for the next slot status from the current mount.
func (m Model) listen() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	gen := m.gen
	return m.listener.ListenAs(func(event pubsub.Event[domain.SlotStatus]) tea.Msg {
		return slotsMsg{gen: gen, status: event.Payload}
	})
}

// formVisible reports whether the form, rather than the confirmation or
// the full notice, is on screen.
func (m Model) formVisible() bool {
	return !m.Registered() && !m.slots.IsFull
}

func (m *Model) renderDescription() {
	if m.activity.Description == "" {
		m.description = ""
		return
	}
	r, err := markdown.New(m.contentWidth(), m.markdownStyle)
	if err == nil {
		m.description, err = r.Render(m.activity.Description)
	}
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering description failed", err)
		m.description = m.activity.Description
	}
}

// sync re-renders the scrollable body after any state change.
func (m *Model) sync() {
	m.viewport.SetContent(m.body())
}
