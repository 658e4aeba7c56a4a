// Package slots tracks the remaining registration capacity by polling the API.
package slots

import (
	"context"
	"sync"
	"time"

	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/pubsub"
)

// DefaultInterval is the polling period.
const DefaultInterval = 10 * time.Second

// Fetcher fetches the current slot status.
type Fetcher interface {
	RemainingSlots(ctx context.Context) (domain.SlotStatus, error)
}

// Config configures a Tracker.
type Config struct {
	// Interval between polls. Defaults to DefaultInterval.
	Interval time.Duration
	// Capacity seeds the status shown before the first successful poll.
	Capacity int
}

// Tracker owns the last known SlotStatus. It polls on a fixed interval
// while started, keeps the previous value when a poll fails, and publishes
// every successful poll on its broker.
type Tracker struct {
	fetcher  Fetcher
	interval time.Duration
	broker   *pubsub.Broker[domain.SlotStatus]
	refresh  chan struct{}

	mu     sync.RWMutex
	status domain.SlotStatus
	known  bool

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped tracker.
func New(fetcher Fetcher, cfg Config) *Tracker {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{
		fetcher:  fetcher,
		interval: interval,
		broker:   pubsub.NewBroker[domain.SlotStatus](),
		refresh:  make(chan struct{}, 1),
		status:   domain.SlotStatus{RemainingSlots: cfg.Capacity},
	}
}

// Broker publishes each successfully polled status.
func (t *Tracker) Broker() *pubsub.Broker[domain.SlotStatus] {
	return t.broker
}

// Status returns the last known status and whether any poll has succeeded yet.
func (t *Tracker) Status() (domain.SlotStatus, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status, t.known
}

// Poll fetches once. On failure the last known status is kept and the
// error is returned wrapped in a *domain.PollError; callers are expected
// to log it, never to show it.
func (t *Tracker) Poll(ctx context.Context) (domain.SlotStatus, error) {
	status, err := t.fetcher.RemainingSlots(ctx)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		prev, _ := t.Status()
		log.Warn(log.CatSlots, "poll failed, keeping last known status",
			"error", err, "remaining", prev.RemainingSlots)
		return prev, &domain.PollError{Err: err}
	}
	if status.RemainingSlots < 0 {
		status.RemainingSlots = 0
	}

	t.mu.Lock()
	t.status = status
	t.known = true
	t.mu.Unlock()

	log.Debug(log.CatSlots, "polled", "remaining", status.RemainingSlots, "full", status.IsFull)
	t.broker.Publish(pubsub.UpdatedEvent, status)
	return status, nil
}

// Start polls immediately and then every interval until ctx is done or
// Stop is called. Starting a running tracker is a no-op.
func (t *Tracker) Start(ctx context.Context) {
	t.runMu.Lock()
	defer t.runMu.Unlock()

	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	// Drop refresh requests made while stopped.
	select {
	case <-t.refresh:
	default:
	}

	go t.run(ctx, done)
	log.Info(log.CatSlots, "tracker started", "interval", t.interval)
}

func (t *Tracker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	_, _ = t.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = t.Poll(ctx)
		case <-t.refresh:
			_, _ = t.Poll(ctx)
		}
	}
}

// Refresh asks a running tracker for one immediate poll. Requests made
// before the previous one was served are coalesced.
func (t *Tracker) Refresh() {
	if !t.Running() {
		log.Debug(log.CatSlots, "refresh ignored, tracker not running")
		return
	}
	select {
	case t.refresh <- struct{}{}:
	default:
	}
}

// Running reports whether the polling loop is active.
func (t *Tracker) Running() bool {
	t.runMu.Lock()
	defer t.runMu.Unlock()
	return t.cancel != nil
}

// Stop cancels the polling loop and waits for it to exit. No poll result
// is applied after Stop returns.
func (t *Tracker) Stop() {
	t.runMu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Info(log.CatSlots, "tracker stopped")
}
