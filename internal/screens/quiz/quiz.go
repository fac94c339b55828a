// Package quiz is the screen that plays a quiz machine in the terminal.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/ui/layout"
)

// DefaultLoadTimeout bounds one question load.
const DefaultLoadTimeout = 30 * time.Second

// QuizScreen renders the machine's snapshots and turns key presses into
// events. The countdown is driven elsewhere; the screen only watches it.
type QuizScreen struct {
	machine     *quiz.Machine
	provider    quiz.Provider
	loadTimeout time.Duration

	updates     <-chan quiz.Session
	unsubscribe func()

	session   quiz.Session
	cursor    int
	lastIndex int
	notice    string
	loadErr   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen for m. Questions are loaded from p when the
// machine has none.
func New(m *quiz.Machine, p quiz.Provider, loadTimeout time.Duration) *QuizScreen {
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}
	return &QuizScreen{
		machine:     m,
		provider:    p,
		loadTimeout: loadTimeout,
		session:     m.Snapshot(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.updates, s.unsubscribe = s.machine.Subscribe()

	cmds := []tea.Cmd{waitForSnapshot(s.updates)}
	switch s.session.Status {
	case quiz.StatusLoading, quiz.StatusError:
		cmds = append(cmds, s.load())
	}
	return tea.Batch(cmds...)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Close ends a running quiz and stops watching the machine.
func (s *QuizScreen) Close() tea.Cmd {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.machine.Snapshot().Status != quiz.StatusActive {
		return nil
	}
	return s.dispatch(quiz.Finish{})
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hint := func(b key.Binding) layout.KeyHint {
		h := b.Help()
		return layout.KeyHint{Key: h.Key, Description: h.Desc}
	}
	back := layout.KeyHint{Key: "Esc", Description: "Back"}

	switch s.session.Status {
	case quiz.StatusError:
		return []layout.KeyHint{{Key: "R", Description: "Retry"}, back}
	case quiz.StatusReady:
		return []layout.KeyHint{hint(keys.Start), back}
	case quiz.StatusActive:
		if s.session.Answered() {
			return []layout.KeyHint{hint(keys.Next), hint(keys.Finish), back}
		}
		options := hint(keys.Option)
		if q, ok := s.session.Current(); ok {
			options.Key = fmt.Sprintf("1-%d", min(len(q.Options), 9))
		}
		return []layout.KeyHint{options, {Key: "↑↓", Description: "Move"}, hint(keys.Choose), hint(keys.Finish), back}
	case quiz.StatusFinished:
		return []layout.KeyHint{hint(keys.Restart), back}
	}
	return []layout.KeyHint{back}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		s.apply(msg.Session)
		return s, waitForSnapshot(s.updates)

	case dispatchDoneMsg:
		s.notice = ""
		if msg.Err != nil {
			s.notice = describeError(msg.Err)
		}
		return s, nil

	case loadDoneMsg:
		s.loadErr = ""
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			s.loadErr = msg.Err.Error()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) apply(next quiz.Session) {
	if next.Index != s.lastIndex || next.Run != s.session.Run {
		s.cursor = 0
	}
	s.lastIndex = next.Index
	s.session = next
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	sess := s.session

	switch sess.Status {
	case quiz.StatusError:
		if key.Matches(msg, keys.Restart) {
			return s.load()
		}

	case quiz.StatusReady:
		if key.Matches(msg, keys.Start) {
			return s.dispatch(quiz.Start{})
		}

	case quiz.StatusActive:
		return s.handleActiveKey(msg)

	case quiz.StatusFinished:
		if key.Matches(msg, keys.Restart) {
			return s.dispatch(quiz.Restart{})
		}
	}
	return nil
}

func (s *QuizScreen) handleActiveKey(msg tea.KeyPressMsg) tea.Cmd {
	sess := s.session
	q, _ := sess.Current()

	switch {
	case key.Matches(msg, keys.Finish):
		return s.dispatch(quiz.Finish{})

	case sess.Answered():
		if key.Matches(msg, keys.Next) {
			return s.dispatch(quiz.Next{})
		}

	case key.Matches(msg, keys.Option):
		opt := int(msg.Code - '1')
		if opt >= len(q.Options) {
			return nil
		}
		s.cursor = opt
		return s.dispatch(quiz.Answer{Option: opt})

	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}

	case key.Matches(msg, keys.Down):
		if s.cursor < len(q.Options)-1 {
			s.cursor++
		}

	case key.Matches(msg, keys.Choose):
		return s.dispatch(quiz.Answer{Option: s.cursor})
	}
	return nil
}

func (s *QuizScreen) dispatch(e quiz.Event) tea.Cmd {
	m := s.machine
	return func() tea.Msg {
		_, err := m.Dispatch(context.Background(), e)
		return dispatchDoneMsg{Event: e.Name(), Err: err}
	}
}

func (s *QuizScreen) load() tea.Cmd {
	m, p, timeout := s.machine, s.provider, s.loadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loadDoneMsg{Err: m.Load(ctx, p)}
	}
}

// waitForSnapshot blocks until the machine publishes. A closed channel
// yields no message, which ends the loop.
func waitForSnapshot(updates <-chan quiz.Session) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg{Session: s}
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, quiz.ErrPersistHighScore):
		return "Could not save the high score; it will be retried."
	case errors.Is(err, quiz.ErrInvalidPayload):
		return "That option does not exist."
	case errors.Is(err, quiz.ErrInvalidTransition):
		return ""
	}
	return err.Error()
}
