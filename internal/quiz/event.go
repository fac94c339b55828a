package quiz

// Event is an input to the session state machine. The set of events is closed:
// only the types in this file implement it.
type Event interface {
	Name() string
	isEvent()
}

// LoadStart begins (or restarts) loading questions.
type LoadStart struct{}

// LoadSucceeded delivers the loaded question set.
type LoadSucceeded struct {
	Questions []Question
}

// LoadFailed reports that the provider could not deliver questions.
type LoadFailed struct {
	Err error
}

// Start begins a timed run over the loaded questions.
type Start struct{}

// Answer selects an option for the current question.
type Answer struct {
	Option int
}

// Next advances past an answered question.
type Next struct{}

// Tick is one second of countdown. It is dispatched by the timer coordinator.
type Tick struct{}

// Finish ends the active run immediately.
type Finish struct{}

// Restart returns to the start screen with the same questions.
type Restart struct{}

func (LoadStart) Name() string     { return "loadStart" }
func (LoadSucceeded) Name() string { return "loadSucceeded" }
func (LoadFailed) Name() string    { return "loadFailed" }
func (Start) Name() string         { return "start" }
func (Answer) Name() string        { return "answer" }
func (Next) Name() string          { return "next" }
func (Tick) Name() string          { return "tick" }
func (Finish) Name() string        { return "finish" }
func (Restart) Name() string       { return "restart" }

func (LoadStart) isEvent()     {}
func (LoadSucceeded) isEvent() {}
func (LoadFailed) isEvent()    {}
func (Start) isEvent()         {}
func (Answer) isEvent()        {}
func (Next) isEvent()          {}
func (Tick) isEvent()          {}
func (Finish) isEvent()        {}
func (Restart) isEvent()       {}

// ParseEvent builds an event from its wire name. option is only used by
// "answer". Load results cannot be built this way: they come from a provider.
func ParseEvent(name string, option int) (Event, error) {
	switch name {
	case "loadStart":
		return LoadStart{}, nil
	case "start":
		return Start{}, nil
	case "answer":
		return Answer{Option: option}, nil
	case "next":
		return Next{}, nil
	case "finish":
		return Finish{}, nil
	case "restart":
		return Restart{}, nil
	}
	return nil, &TransitionError{Event: name, Err: ErrUnknownEvent}
}
