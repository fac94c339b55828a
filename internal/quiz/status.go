package quiz

// Status is the lifecycle phase of a quiz session.
type Status int

const (
	StatusLoading  Status = iota // Waiting for the question provider
	StatusError                  // Provider failed; only a new load leaves this state
	StatusReady                  // Questions loaded, waiting for start
	StatusActive                 // Questions are being answered under the countdown
	StatusFinished               // Results are shown
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// EndReason records which path applied the finish effect.
type EndReason string

const (
	EndCompleted EndReason = "completed" // last question answered and next pressed
	EndTimeout   EndReason = "timeout"
	EndManual    EndReason = "manual"
)
