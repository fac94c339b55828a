package quiz

import (
	"errors"
	"testing"
)

func testQuestions() []Question {
	return []Question{
		{Text: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectOption: 1, Points: 10},
		{Text: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectOption: 0, Points: 20},
		{Text: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectOption: 2, Points: 10},
	}
}

func mustApply(t *testing.T, s Session, events ...Event) Session {
	t.Helper()
	for _, e := range events {
		var err error
		s, err = Transition(s, e)
		if err != nil {
			t.Fatalf("Transition(%s) in %s: %v", e.Name(), s.Status, err)
		}
	}
	return s
}

func readySession(t *testing.T) Session {
	t.Helper()
	return mustApply(t, NewSession(0), LoadSucceeded{Questions: testQuestions()})
}

func activeSession(t *testing.T) Session {
	t.Helper()
	return mustApply(t, readySession(t), Start{})
}

func TestTransition_ExampleScenario(t *testing.T) {
	s := readySession(t)
	if s.Status != StatusReady {
		t.Fatalf("Status = %s, want ready", s.Status)
	}

	s = mustApply(t, s, Start{})
	if s.Status != StatusActive {
		t.Fatalf("Status = %s, want active", s.Status)
	}
	if got := s.Seconds(); got != 90 {
		t.Errorf("SecondsRemaining = %d, want 90", got)
	}

	s = mustApply(t, s, Answer{Option: 1})
	if s.Score != 10 {
		t.Errorf("Score after Q1 = %d, want 10", s.Score)
	}
	s = mustApply(t, s, Next{}, Answer{Option: 2})
	if s.Score != 10 {
		t.Errorf("Score after wrong Q2 = %d, want 10", s.Score)
	}
	s = mustApply(t, s, Next{}, Answer{Option: 2}, Next{})

	if s.Status != StatusFinished {
		t.Fatalf("Status = %s, want finished", s.Status)
	}
	if s.Score != 20 {
		t.Errorf("Score = %d, want 20", s.Score)
	}
	if s.HighScore != 20 {
		t.Errorf("HighScore = %d, want 20", s.HighScore)
	}
	if s.Index != 0 || s.Answer != nil {
		t.Errorf("Index = %d, Answer = %v, want reset", s.Index, s.Answer)
	}
	if s.EndReason != EndCompleted {
		t.Errorf("EndReason = %q, want %q", s.EndReason, EndCompleted)
	}
}

func TestTransition_LoadStartResetsTransientFields(t *testing.T) {
	s := mustApply(t, activeSession(t), Answer{Option: 1})
	s.HighScore = 42

	s = mustApply(t, s, LoadStart{})
	if s.Status != StatusLoading {
		t.Fatalf("Status = %s, want loading", s.Status)
	}
	if len(s.Questions) != 0 || s.Index != 0 || s.Answer != nil || s.Score != 0 || s.SecondsRemaining != nil {
		t.Errorf("transient fields not cleared: %+v", s)
	}
	if s.HighScore != 42 {
		t.Errorf("HighScore = %d, want 42", s.HighScore)
	}
}

func TestTransition_LoadFailed(t *testing.T) {
	s := mustApply(t, NewSession(5), LoadFailed{Err: errors.New("boom")})
	if s.Status != StatusError {
		t.Fatalf("Status = %s, want error", s.Status)
	}

	// Only a new load leaves the error status.
	for _, e := range []Event{Start{}, Answer{}, Next{}, Tick{}, Finish{}, Restart{}} {
		if _, err := Transition(s, e); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s from error: err = %v, want ErrInvalidTransition", e.Name(), err)
		}
	}
	s = mustApply(t, s, LoadStart{}, LoadSucceeded{Questions: testQuestions()})
	if s.Status != StatusReady {
		t.Errorf("Status = %s, want ready after retry", s.Status)
	}
}

func TestTransition_LoadSucceededInvalidPayload(t *testing.T) {
	tests := map[string][]Question{
		"empty":           nil,
		"one option":      {{Text: "q", Options: []string{"a"}, CorrectOption: 0, Points: 1}},
		"correct too big": {{Text: "q", Options: []string{"a", "b"}, CorrectOption: 2, Points: 1}},
		"negative points": {{Text: "q", Options: []string{"a", "b"}, CorrectOption: 0, Points: -1}},
		"empty text":      {{Text: " ", Options: []string{"a", "b"}, CorrectOption: 0, Points: 1}},
	}
	for name, qs := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewSession(0)
			got, err := Transition(s, LoadSucceeded{Questions: qs})
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("err = %v, want ErrInvalidPayload", err)
			}
			if got.Status != StatusLoading {
				t.Errorf("Status = %s, want unchanged loading", got.Status)
			}
		})
	}
}

func TestTransition_LoadResultOutsideLoading(t *testing.T) {
	s := readySession(t)
	if _, err := Transition(s, LoadSucceeded{Questions: testQuestions()}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("LoadSucceeded from ready: err = %v", err)
	}
	if _, err := Transition(s, LoadFailed{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("LoadFailed from ready: err = %v", err)
	}
}

func TestTransition_SecondAnswerIsNoop(t *testing.T) {
	s := mustApply(t, activeSession(t), Answer{Option: 1})
	got, err := Transition(s, Answer{Option: 0})
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if *got.Answer != 1 || got.Score != 10 {
		t.Errorf("Answer = %d, Score = %d, want 1 and 10", *got.Answer, got.Score)
	}
}

func TestTransition_AnswerOutOfRange(t *testing.T) {
	s := activeSession(t)
	for _, opt := range []int{-1, 4, 99} {
		got, err := Transition(s, Answer{Option: opt})
		if !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("Answer(%d): err = %v, want ErrInvalidPayload", opt, err)
		}
		if got.Answer != nil || got.Score != 0 {
			t.Errorf("Answer(%d) changed state: %+v", opt, got)
		}
	}
}

func TestTransition_NextRequiresAnswer(t *testing.T) {
	s := activeSession(t)
	got, err := Transition(s, Next{})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if got.Index != 0 {
		t.Errorf("Index = %d, want 0", got.Index)
	}
}

func TestTransition_TickCountsDownAndTimesOut(t *testing.T) {
	s := mustApply(t, activeSession(t), Answer{Option: 1})
	s = mustApply(t, s, Tick{})
	if got := s.Seconds(); got != 89 {
		t.Fatalf("SecondsRemaining = %d, want 89", got)
	}

	for range 89 {
		s = mustApply(t, s, Tick{})
	}
	if s.Status != StatusActive || s.Seconds() != 0 {
		t.Fatalf("after 90 ticks: Status = %s, seconds = %d, want active with 0", s.Status, s.Seconds())
	}

	s = mustApply(t, s, Tick{})
	if s.Status != StatusFinished {
		t.Fatalf("Status = %s, want finished", s.Status)
	}
	if s.Seconds() != 0 {
		t.Errorf("SecondsRemaining = %d, want clamped 0", s.Seconds())
	}
	if s.HighScore != 10 || s.Index != 0 || s.Answer != nil {
		t.Errorf("finish effect not applied: %+v", s)
	}
	if s.EndReason != EndTimeout {
		t.Errorf("EndReason = %q, want %q", s.EndReason, EndTimeout)
	}

	if _, err := Transition(s, Tick{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("tick after finish: err = %v", err)
	}
}

func TestTransition_FinishPathsConverge(t *testing.T) {
	answered := mustApply(t, activeSession(t), Answer{Option: 1})

	manual := mustApply(t, answered, Finish{})

	timeout := answered
	zero := 0
	timeout.SecondsRemaining = &zero
	timeout = mustApply(t, timeout, Tick{})

	completed := mustApply(t, answered, Next{}, Answer{Option: 3}, Next{}, Answer{Option: 0}, Next{})

	for name, s := range map[string]Session{"manual": manual, "timeout": timeout, "completed": completed} {
		if s.Status != StatusFinished || s.HighScore != 10 || s.Index != 0 || s.Answer != nil {
			t.Errorf("%s: got %+v", name, s)
		}
	}
}

func TestTransition_HighScoreKeepsMaximum(t *testing.T) {
	s := mustApply(t, activeSession(t), Answer{Option: 1}, Finish{})
	if s.HighScore != 10 {
		t.Fatalf("HighScore = %d, want 10", s.HighScore)
	}

	s = mustApply(t, s, Restart{}, Start{}, Answer{Option: 0}, Finish{})
	if s.Score != 0 || s.HighScore != 10 {
		t.Errorf("Score = %d, HighScore = %d, want 0 and 10", s.Score, s.HighScore)
	}
}

func TestTransition_Restart(t *testing.T) {
	finished := mustApply(t, activeSession(t), Answer{Option: 1}, Finish{})

	s := mustApply(t, finished, Restart{})
	if s.Status != StatusReady {
		t.Fatalf("Status = %s, want ready", s.Status)
	}
	if s.Score != 0 || s.Index != 0 || s.Answer != nil || s.SecondsRemaining != nil {
		t.Errorf("transient fields not cleared: %+v", s)
	}
	if s.HighScore != 10 || len(s.Questions) != 3 {
		t.Errorf("HighScore = %d, questions = %d, want 10 and 3", s.HighScore, len(s.Questions))
	}

	// Restart from ready is accepted and changes nothing.
	again := mustApply(t, s, Restart{})
	if again.Status != StatusReady {
		t.Errorf("Status = %s, want ready", again.Status)
	}

	if _, err := Transition(activeSession(t), Restart{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("restart from active: err = %v", err)
	}

	s = mustApply(t, s, Start{})
	if s.Seconds() != 90 || s.Run != 2 {
		t.Errorf("second start: seconds = %d, run = %d", s.Seconds(), s.Run)
	}
}

func TestTransition_InvalidFromStatus(t *testing.T) {
	tests := map[string]struct {
		s Session
		e Event
	}{
		"start from loading":   {NewSession(0), Start{}},
		"start from active":    {activeSession(t), Start{}},
		"answer from ready":    {readySession(t), Answer{Option: 0}},
		"next from ready":      {readySession(t), Next{}},
		"tick from ready":      {readySession(t), Tick{}},
		"finish from ready":    {readySession(t), Finish{}},
		"restart from loading": {NewSession(0), Restart{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Transition(tt.s, tt.e)
			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("err = %v, want *TransitionError", err)
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("err = %v, want ErrInvalidTransition", err)
			}
			if te.Event != tt.e.Name() || te.Status != tt.s.Status {
				t.Errorf("TransitionError = %+v", te)
			}
			if got.Status != tt.s.Status {
				t.Errorf("Status changed to %s", got.Status)
			}
		})
	}
}

func TestTransition_NilEvent(t *testing.T) {
	_, err := Transition(NewSession(0), nil)
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestTransition_ScoreMonotonicAndIndexBounded(t *testing.T) {
	s := activeSession(t)
	prev := s.Score
	for i := 0; s.Status == StatusActive; i++ {
		if s.Index < 0 || s.Index >= len(s.Questions) {
			t.Fatalf("Index %d out of range while active", s.Index)
		}
		s = mustApply(t, s, Answer{Option: i % 4})
		if s.Score < prev {
			t.Fatalf("score decreased from %d to %d", prev, s.Score)
		}
		prev = s.Score
		s = mustApply(t, s, Tick{}, Next{})
	}
	if s.Index > len(s.Questions) {
		t.Errorf("Index = %d beyond %d", s.Index, len(s.Questions))
	}
}

func TestTransition_DoesNotAliasQuestions(t *testing.T) {
	qs := testQuestions()
	s := mustApply(t, NewSession(0), LoadSucceeded{Questions: qs})
	qs[0].Points = 1000
	if s.Questions[0].Points != 10 {
		t.Errorf("session shares caller's slice")
	}
}

func TestParseEvent(t *testing.T) {
	e, err := ParseEvent("answer", 2)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if a, ok := e.(Answer); !ok || a.Option != 2 {
		t.Errorf("got %#v, want Answer{2}", e)
	}

	if _, err := ParseEvent("explode", 0); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
}
