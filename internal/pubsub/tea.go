package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// next blocks for one event. ok is false once ctx is done or ch is closed.
func next[T any](ctx context.Context, ch <-chan Event[T]) (event Event[T], ok bool) {
	select {
	case <-ctx.Done():
		return event, false
	case event, ok = <-ch:
		return event, ok
	}
}

// ListenCmd delivers the next event on ch as a tea.Msg. The command yields
// nil when the subscription ends, which stops the listen loop.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		if event, ok := next(ctx, ch); ok {
			return event
		}
		return nil
	}
}

// ContinuousListener holds one subscription for as long as ctx lives.
// Each handled event must be followed by another Listen.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to src until ctx is done.
func NewContinuousListener[T any](ctx context.Context, src Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, ch: src.Subscribe(ctx)}
}

// Listen waits for the next event and delivers it unchanged.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}

// ListenAs waits for the next event and delivers wrap(event), letting a
// page tag events with its own message type.
func (l *ContinuousListener[T]) ListenAs(wrap func(Event[T]) tea.Msg) tea.Cmd {
	ctx, ch := l.ctx, l.ch
	return func() tea.Msg {
		if event, ok := next(ctx, ch); ok {
			return wrap(event)
		}
		return nil
	}
}
