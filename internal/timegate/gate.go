// Package timegate decides whether the activity window is open.
package timegate

import (
	"fmt"
	"time"

	"github.com/jufengpp/signup/internal/domain"
)

// State is the projection of the activity window at one instant.
// Countdown is only set when Phase is PhaseNotStarted.
type State struct {
	Phase     domain.Phase
	Countdown string
}

// ComputePhase places now relative to window. Both bounds belong to the
// open phase.
func ComputePhase(now time.Time, window domain.ActivityWindow) State {
	switch {
	case now.Before(window.Start):
		return State{
			Phase:     domain.PhaseNotStarted,
			Countdown: FormatCountdown(window.Start.Sub(now)),
		}
	case now.After(window.End):
		return State{Phase: domain.PhaseEnded}
	default:
		return State{Phase: domain.PhaseOpen}
	}
}

// FormatCountdown renders d from its coarsest non-zero unit down to seconds,
// e.g. "1天 1小时 0分 0秒", "1分 30秒", "5秒". Sub-second remainders are
// truncated and non-positive durations render as "0秒".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)

	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d天 %d小时 %d分 %d秒", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%d小时 %d分 %d秒", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%d分 %d秒", minutes, seconds)
	default:
		return fmt.Sprintf("%d秒", seconds)
	}
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// Gate evaluates a fixed window against a clock.
type Gate struct {
	window domain.ActivityWindow
	clock  Clock
}

// New creates a gate for window. A nil clock uses the wall clock.
func New(window domain.ActivityWindow, clock Clock) *Gate {
	if clock == nil {
		clock = RealClock{}
	}
	return &Gate{window: window, clock: clock}
}

// Window returns the configured window.
func (g *Gate) Window() domain.ActivityWindow {
	return g.window
}

// Now returns the gate's current time.
func (g *Gate) Now() time.Time {
	return g.clock.Now()
}

// Current evaluates the window at the clock's current time.
func (g *Gate) Current() State {
	return ComputePhase(g.clock.Now(), g.window)
}
