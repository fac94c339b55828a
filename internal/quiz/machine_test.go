package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-memory HighScoreStore that records calls.
type fakeStore struct {
	mu      sync.Mutex
	value   int
	sets    []int
	getErr  error
	failSet int // number of Set calls to fail before succeeding
}

func (f *fakeStore) Get(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.getErr
}

func (f *fakeStore) Set(_ context.Context, v int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet > 0 {
		f.failSet--
		return errors.New("disk full")
	}
	f.value = v
	f.sets = append(f.sets, v)
	return nil
}

func (f *fakeStore) setCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.sets...)
}

func staticProvider(qs []Question) Provider {
	return ProviderFunc(func(context.Context) ([]Question, error) {
		return qs, nil
	})
}

func newLoadedMachine(t *testing.T, store *fakeStore) *Machine {
	t.Helper()
	m, err := NewMachine(context.Background(), store)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if err := m.Load(context.Background(), staticProvider(testQuestions())); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func dispatchAll(t *testing.T, m *Machine, events ...Event) Session {
	t.Helper()
	var s Session
	for _, e := range events {
		var err error
		s, err = m.Dispatch(context.Background(), e)
		if err != nil {
			t.Fatalf("Dispatch(%s): %v", e.Name(), err)
		}
	}
	return s
}

func TestNewMachine_SeedsHighScore(t *testing.T) {
	m, err := NewMachine(context.Background(), &fakeStore{value: 70})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	s := m.Snapshot()
	if s.Status != StatusLoading || s.HighScore != 70 {
		t.Errorf("initial = %+v, want loading with high score 70", s)
	}
}

func TestNewMachine_GetError(t *testing.T) {
	_, err := NewMachine(context.Background(), &fakeStore{getErr: errors.New("locked")})
	if err == nil {
		t.Fatal("expected error from NewMachine")
	}
}

func TestMachine_PersistsHighScoreOnce(t *testing.T) {
	store := &fakeStore{}
	m := newLoadedMachine(t, store)

	dispatchAll(t, m, Start{}, Answer{Option: 1}, Next{}, Answer{Option: 2}, Next{}, Answer{Option: 2}, Next{})

	if got := store.setCalls(); len(got) != 1 || got[0] != 20 {
		t.Fatalf("Set calls = %v, want [20]", got)
	}

	// A lower score finishes without writing.
	dispatchAll(t, m, Restart{}, Start{}, Finish{})
	if got := store.setCalls(); len(got) != 1 {
		t.Errorf("Set calls = %v, want a single write", got)
	}

	// A fresh machine sees the persisted value.
	m2, err := NewMachine(context.Background(), store)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if hs := m2.Snapshot().HighScore; hs != 20 {
		t.Errorf("HighScore = %d, want 20", hs)
	}
}

func TestMachine_PersistFailureIsRetried(t *testing.T) {
	store := &fakeStore{failSet: 1}
	m := newLoadedMachine(t, store)
	dispatchAll(t, m, Start{}, Answer{Option: 1})

	s, err := m.Dispatch(context.Background(), Finish{})
	if !errors.Is(err, ErrPersistHighScore) {
		t.Fatalf("err = %v, want ErrPersistHighScore", err)
	}
	if s.Status != StatusFinished || s.HighScore != 10 {
		t.Errorf("snapshot = %+v, want finished with high score 10", s)
	}

	// The next accepted event retries the write.
	if _, err := m.Dispatch(context.Background(), Restart{}); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if got := store.setCalls(); len(got) != 1 || got[0] != 10 {
		t.Errorf("Set calls = %v, want [10]", got)
	}
}

func TestMachine_RejectedEventLeavesState(t *testing.T) {
	m := newLoadedMachine(t, &fakeStore{})
	before := m.Snapshot()

	s, err := m.Dispatch(context.Background(), Next{})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if s.Status != before.Status || m.Snapshot().Status != StatusReady {
		t.Errorf("state changed on rejected event")
	}
}

func TestMachine_LoadFailure(t *testing.T) {
	m, _ := NewMachine(context.Background(), &fakeStore{})
	boom := errors.New("network down")

	err := m.Load(context.Background(), ProviderFunc(func(context.Context) ([]Question, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if s := m.Snapshot(); s.Status != StatusError {
		t.Errorf("Status = %s, want error", s.Status)
	}

	// Retry succeeds.
	if err := m.Load(context.Background(), staticProvider(testQuestions())); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s := m.Snapshot(); s.Status != StatusReady {
		t.Errorf("Status = %s, want ready", s.Status)
	}
}

func TestMachine_LoadMalformedQuestionsFails(t *testing.T) {
	m, _ := NewMachine(context.Background(), &fakeStore{})
	bad := []Question{{Text: "q", Options: []string{"only"}}}

	if err := m.Load(context.Background(), staticProvider(bad)); err == nil {
		t.Fatal("expected error for malformed questions")
	}
	if s := m.Snapshot(); s.Status != StatusError {
		t.Errorf("Status = %s, want error", s.Status)
	}
}

func TestMachine_StaleLoadIsDropped(t *testing.T) {
	m, _ := NewMachine(context.Background(), &fakeStore{})

	release := make(chan struct{})
	started := make(chan struct{})
	slow := ProviderFunc(func(context.Context) ([]Question, error) {
		close(started)
		<-release
		return []Question{{Text: "old", Options: []string{"a", "b"}, Points: 1}}, nil
	})

	done := make(chan error, 1)
	go func() { done <- m.Load(context.Background(), slow) }()
	<-started

	if err := m.Load(context.Background(), staticProvider(testQuestions())); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Load: %v", err)
	}

	s := m.Snapshot()
	if s.Status != StatusReady || len(s.Questions) != 3 {
		t.Errorf("snapshot = %s with %d questions, want ready with 3", s.Status, len(s.Questions))
	}
}

func TestMachine_CancelledLoadIsDropped(t *testing.T) {
	m, _ := NewMachine(context.Background(), &fakeStore{})
	ctx, cancel := context.WithCancel(context.Background())

	err := m.Load(ctx, ProviderFunc(func(context.Context) ([]Question, error) {
		cancel()
		return testQuestions(), nil
	}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if s := m.Snapshot(); s.Status != StatusLoading {
		t.Errorf("Status = %s, want loading", s.Status)
	}
}

func TestMachine_LoadDeadlineFails(t *testing.T) {
	m, _ := NewMachine(context.Background(), &fakeStore{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.Load(ctx, ProviderFunc(func(ctx context.Context) ([]Question, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if s := m.Snapshot(); s.Status != StatusError {
		t.Errorf("Status = %s, want error", s.Status)
	}

	// A provider that ignores ctx but returns after the deadline still fails.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel2()
	err = m.Load(ctx2, ProviderFunc(func(ctx context.Context) ([]Question, error) {
		<-ctx.Done()
		return testQuestions(), nil
	}))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if s := m.Snapshot(); s.Status != StatusError {
		t.Errorf("Status = %s, want error", s.Status)
	}
}

func TestMachine_SubscribeDeliversLatest(t *testing.T) {
	m := newLoadedMachine(t, &fakeStore{})
	updates, cancel := m.Subscribe()
	defer cancel()

	if s := <-updates; s.Status != StatusReady {
		t.Fatalf("first snapshot = %s, want ready", s.Status)
	}

	dispatchAll(t, m, Start{}, Answer{Option: 1}, Next{})

	select {
	case s := <-updates:
		if s.Index != 1 || s.Score != 10 {
			t.Errorf("latest = index %d score %d, want 1 and 10", s.Index, s.Score)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	cancel()
	if _, ok := <-updates; ok {
		t.Error("channel not closed after cancel")
	}
}

func TestMachine_Observer(t *testing.T) {
	var names []string
	var rejected int
	obs := ObserverFunc(func(e Event, _, _ Session, err error) {
		names = append(names, e.Name())
		if err != nil {
			rejected++
		}
	})

	m, err := NewMachine(context.Background(), &fakeStore{}, WithObserver(obs))
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	_ = m.Load(context.Background(), staticProvider(testQuestions()))
	_, _ = m.Dispatch(context.Background(), Next{})

	want := []string{"loadStart", "loadSucceeded", "next"}
	if len(names) != len(want) {
		t.Fatalf("observed %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("observed[%d] = %s, want %s", i, names[i], want[i])
		}
	}
	if rejected != 1 {
		t.Errorf("rejected = %d, want 1", rejected)
	}
}

func TestMachine_StaleTickDropped(t *testing.T) {
	m := newLoadedMachine(t, &fakeStore{})
	s := dispatchAll(t, m, Start{})
	firstRun := s.Run

	dispatchAll(t, m, Finish{}, Restart{}, Start{})

	got, applied, err := m.tick(context.Background(), firstRun)
	if err != nil || applied {
		t.Fatalf("tick(stale) = applied %v, err %v", applied, err)
	}
	if got.Seconds() != 90 {
		t.Errorf("SecondsRemaining = %d, want 90", got.Seconds())
	}
}
