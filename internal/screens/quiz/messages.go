package quiz

import "github.com/abhisek/quizzer/internal/quiz"

// snapshotMsg carries a session published by the machine.
type snapshotMsg struct {
	Session quiz.Session
}

// dispatchDoneMsg reports the outcome of an event dispatched from a key press.
type dispatchDoneMsg struct {
	Event string
	Err   error
}

// loadDoneMsg is sent when a question load returns.
type loadDoneMsg struct {
	Err error
}
