package quiz

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Ticker is the subset of *time.Ticker the coordinator needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// NewTickerFunc creates a ticker firing every d.
type NewTickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithTicker replaces the ticker factory, mainly for tests.
func WithTicker(f NewTickerFunc) CoordinatorOption {
	return func(c *Coordinator) {
		c.newTicker = f
	}
}

// WithInterval overrides TickInterval.
func WithInterval(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		c.interval = d
	}
}

// WithCoordinatorLogger sets the coordinator logger.
func WithCoordinatorLogger(l *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// Coordinator drives the countdown. While the session is active it keeps
// exactly one ticker for the current run and dispatches a tick per interval.
// The ticker is stopped as soon as the session leaves the active status.
type Coordinator struct {
	m         *Machine
	interval  time.Duration
	newTicker NewTickerFunc
	logger    *slog.Logger
	running   atomic.Bool
}

// NewCoordinator creates a coordinator for m. Call Run to start it.
func NewCoordinator(m *Machine, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		m:         m,
		interval:  TickInterval,
		newTicker: NewTimeTicker,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run watches the machine until ctx is done. It returns nil on cancellation
// and ErrTimerRunning if the coordinator is already running.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrTimerRunning
	}
	defer c.running.Store(false)

	updates, unsubscribe := c.m.Subscribe()
	defer unsubscribe()

	var (
		ticker Ticker
		tickC  <-chan time.Time
		run    int
	)
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case s, ok := <-updates:
			if !ok {
				return nil
			}
			if s.Status != StatusActive {
				stop()
				continue
			}
			if ticker == nil || run != s.Run {
				stop()
				run = s.Run
				ticker = c.newTicker(c.interval)
				tickC = ticker.C()
				c.logger.DebugContext(ctx, "timer: started", "run", run, "seconds", s.Seconds())
			}

		case <-tickC:
			s, applied, err := c.m.tick(ctx, run)
			if err != nil {
				c.logger.ErrorContext(ctx, "timer: tick failed", "run", run, "error", err)
			}
			if applied && s.Status != StatusActive {
				stop()
				c.logger.DebugContext(ctx, "timer: stopped", "run", run, "reason", s.EndReason)
			}
		}
	}
}
