package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	// Get returns the stored high score, or 0 when nothing is stored.
	Get(ctx context.Context) (int, error)

	// Set stores value as the new high score.
	Set(ctx context.Context, value int) error
}

// Observer is notified after every dispatch attempt, accepted or not.
// It runs while the machine is locked and must not call back into it.
type Observer interface {
	Observe(e Event, prev, next Session, err error)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event, prev, next Session, err error)

func (f ObserverFunc) Observe(e Event, prev, next Session, err error) {
	f(e, prev, next, err)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for persistence and load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = l
	}
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		m.observers = append(m.observers, o)
	}
}

// Machine owns the current session snapshot and serializes all events
// applied to it. It is safe for concurrent use.
type Machine struct {
	mu        sync.Mutex
	state     Session
	store     HighScoreStore
	persisted int

	// loadGen is bumped by every LoadStart; a load result is applied only
	// if it belongs to the latest generation.
	loadGen uint64

	subs    map[int]chan Session
	nextSub int

	observers []Observer
	logger    *slog.Logger
}

// NewMachine reads the stored high score and returns a machine in the
// loading status.
func NewMachine(ctx context.Context, store HighScoreStore, opts ...Option) (*Machine, error) {
	m := &Machine{
		store:  store,
		subs:   make(map[int]chan Session),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	hs, err := store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get high score: %w", err)
	}
	if hs < 0 {
		hs = 0
	}

	m.state = NewSession(hs)
	m.persisted = hs
	return m, nil
}

// Snapshot returns the current session.
func (m *Machine) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Dispatch applies e and returns the resulting snapshot. A rejected event
// leaves the session unchanged and returns a *TransitionError. When the
// event was applied but a raised high score could not be written, the new
// snapshot is returned together with an error wrapping ErrPersistHighScore.
func (m *Machine) Dispatch(ctx context.Context, e Event) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyLocked(ctx, e)
}

// tick applies a Tick issued for the given run. Ticks for a run that is no
// longer active are dropped without error.
func (m *Machine) tick(ctx context.Context, run int) (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Status != StatusActive || m.state.Run != run {
		return m.state, false, nil
	}
	s, err := m.applyLocked(ctx, Tick{})
	return s, true, err
}

// Load dispatches LoadStart, asks p for questions and applies the result.
// The result is discarded when ctx is cancelled or another LoadStart was
// dispatched while p was running. An expired ctx deadline and questions that
// fail validation are reported as a load failure.
func (m *Machine) Load(ctx context.Context, p Provider) error {
	m.mu.Lock()
	if _, err := m.applyLocked(ctx, LoadStart{}); err != nil {
		m.mu.Unlock()
		return err
	}
	gen := m.loadGen
	m.mu.Unlock()

	qs, loadErr := p.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if errors.Is(ctx.Err(), context.Canceled) {
		m.logger.DebugContext(ctx, "quiz: load result dropped", "reason", "cancelled")
		return ctx.Err()
	}
	if gen != m.loadGen || m.state.Status != StatusLoading {
		m.logger.DebugContext(ctx, "quiz: load result dropped", "reason", "superseded")
		return nil
	}

	if err := ctx.Err(); err != nil && loadErr == nil {
		loadErr = err
	}
	// The deadline may have passed; applying the result must not depend on it.
	ctx = context.WithoutCancel(ctx)
	if loadErr == nil {
		loadErr = ValidateQuestions(qs)
	}
	if loadErr != nil {
		m.logger.WarnContext(ctx, "quiz: load failed", "error", loadErr)
		if _, err := m.applyLocked(ctx, LoadFailed{Err: loadErr}); err != nil {
			return err
		}
		return fmt.Errorf("load questions: %w", loadErr)
	}

	_, err := m.applyLocked(ctx, LoadSucceeded{Questions: qs})
	return err
}

// Subscribe returns a channel that always holds the latest snapshot. The
// current snapshot is delivered immediately. Intermediate snapshots may be
// skipped by slow readers. The returned func closes the channel.
func (m *Machine) Subscribe() (<-chan Session, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Session, 1)
	ch <- m.state
	m.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (m *Machine) applyLocked(ctx context.Context, e Event) (Session, error) {
	prev := m.state
	next, err := Transition(prev, e)
	if err != nil {
		m.notify(e, prev, prev, err)
		return prev, err
	}

	if _, ok := e.(LoadStart); ok {
		m.loadGen++
	}
	m.state = next
	m.publish(next)

	persistErr := m.persistLocked(ctx)
	m.notify(e, prev, next, persistErr)
	return next, persistErr
}

// persistLocked writes the high score whenever it is above the last value
// known to be stored. A failed write is retried by the next dispatch.
func (m *Machine) persistLocked(ctx context.Context) error {
	hs := m.state.HighScore
	if hs <= m.persisted {
		return nil
	}
	if err := m.store.Set(ctx, hs); err != nil {
		m.logger.ErrorContext(ctx, "quiz: persist high score failed", "high_score", hs, "error", err)
		return errors.Join(ErrPersistHighScore, err)
	}
	m.logger.InfoContext(ctx, "quiz: new high score", "high_score", hs)
	m.persisted = hs
	return nil
}

func (m *Machine) publish(s Session) {
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

func (m *Machine) notify(e Event, prev, next Session, err error) {
	for _, o := range m.observers {
		o.Observe(e, prev, next, err)
	}
}
