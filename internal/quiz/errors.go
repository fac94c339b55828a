package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition means the event is not accepted in the current status.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidPayload means the event carried data that violates an invariant.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrUnknownEvent means the event is not part of the event set.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrPersistHighScore means the new high score could not be written.
	// The machine keeps the value and retries on the next dispatch.
	ErrPersistHighScore = errors.New("persist high score")

	// ErrTimerRunning is returned when a coordinator is started twice.
	ErrTimerRunning = errors.New("timer coordinator already running")
)

// TransitionError describes a rejected event. The session is unchanged.
type TransitionError struct {
	Event  string
	Status Status
	Err    error
	Detail string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("%s in %s: %v", e.Event, e.Status, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

func invalidTransition(s Session, e Event) error {
	return &TransitionError{Event: e.Name(), Status: s.Status, Err: ErrInvalidTransition}
}

func invalidPayload(s Session, e Event, format string, args ...any) error {
	return &TransitionError{
		Event:  e.Name(),
		Status: s.Status,
		Err:    ErrInvalidPayload,
		Detail: fmt.Sprintf(format, args...),
	}
}
