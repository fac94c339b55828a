package quiz

import "slices"

// Transition computes the snapshot that results from applying e to s.
// It performs no I/O. On error the returned snapshot equals s.
func Transition(s Session, e Event) (Session, error) {
	switch e := e.(type) {
	case LoadStart:
		return Session{
			Status:    StatusLoading,
			HighScore: s.HighScore,
			Run:       s.Run,
		}, nil

	case LoadSucceeded:
		if s.Status != StatusLoading {
			return s, invalidTransition(s, e)
		}
		if err := ValidateQuestions(e.Questions); err != nil {
			return s, invalidPayload(s, e, "%v", err)
		}
		next := s
		next.Status = StatusReady
		next.Questions = slices.Clone(e.Questions)
		return next, nil

	case LoadFailed:
		if s.Status != StatusLoading {
			return s, invalidTransition(s, e)
		}
		next := s
		next.Status = StatusError
		return next, nil

	case Start:
		if s.Status != StatusReady {
			return s, invalidTransition(s, e)
		}
		next := s
		next.Status = StatusActive
		next.Index = 0
		next.Answer = nil
		next.Score = 0
		next.SecondsRemaining = intPtr(len(s.Questions) * SecondsPerQuestion)
		next.Run = s.Run + 1
		next.EndReason = ""
		return next, nil

	case Answer:
		if s.Status != StatusActive {
			return s, invalidTransition(s, e)
		}
		if s.Answer != nil {
			return s, nil
		}
		q, _ := s.Current()
		if e.Option < 0 || e.Option >= len(q.Options) {
			return s, invalidPayload(s, e, "option %d out of range [0, %d)", e.Option, len(q.Options))
		}
		next := s
		next.Answer = intPtr(e.Option)
		if e.Option == q.CorrectOption {
			next.Score = s.Score + q.Points
		}
		return next, nil

	case Next:
		if s.Status != StatusActive || s.Answer == nil {
			return s, invalidTransition(s, e)
		}
		next := s
		next.Index = s.Index + 1
		next.Answer = nil
		if next.Index >= len(s.Questions) {
			return finish(next, EndCompleted), nil
		}
		return next, nil

	case Tick:
		if s.Status != StatusActive {
			return s, invalidTransition(s, e)
		}
		remaining := s.Seconds() - 1
		next := s
		if remaining < 0 {
			next.SecondsRemaining = intPtr(0)
			return finish(next, EndTimeout), nil
		}
		next.SecondsRemaining = intPtr(remaining)
		return next, nil

	case Finish:
		if s.Status != StatusActive {
			return s, invalidTransition(s, e)
		}
		return finish(s, EndManual), nil

	case Restart:
		if s.Status != StatusFinished && s.Status != StatusReady {
			return s, invalidTransition(s, e)
		}
		next := s
		next.Status = StatusReady
		next.Score = 0
		next.Index = 0
		next.Answer = nil
		next.SecondsRemaining = nil
		next.EndReason = ""
		return next, nil
	}

	name := "<nil>"
	if e != nil {
		name = e.Name()
	}
	return s, &TransitionError{Event: name, Status: s.Status, Err: ErrUnknownEvent}
}

// finish is the single end-of-run effect shared by next, tick and finish.
func finish(s Session, reason EndReason) Session {
	s.Status = StatusFinished
	s.HighScore = max(s.HighScore, s.Score)
	s.Index = 0
	s.Answer = nil
	s.EndReason = reason
	return s
}
