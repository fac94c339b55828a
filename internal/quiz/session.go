package quiz

// SecondsPerQuestion is the countdown budget granted per question at start.
const SecondsPerQuestion = 30

// Session is an immutable snapshot of the quiz. New snapshots are produced
// only by Transition; slices and pointers are never mutated in place.
type Session struct {
	Status    Status
	Questions []Question

	// Index is the current question while active. It is reset to 0 on finish.
	Index int

	// Answer is the selected option for the current question, nil if unanswered.
	Answer *int

	Score     int
	HighScore int

	// SecondsRemaining is only meaningful while active; nil otherwise until
	// the first start.
	SecondsRemaining *int

	// Run counts applied start events. Ticks carry the run they were issued for.
	Run int

	// EndReason is set by the finish effect and cleared when a new run starts.
	EndReason EndReason
}

// NewSession returns the initial loading snapshot seeded with a high score.
func NewSession(highScore int) Session {
	return Session{Status: StatusLoading, HighScore: highScore}
}

// NumQuestions returns the number of loaded questions.
func (s Session) NumQuestions() int {
	return len(s.Questions)
}

// MaxPoints returns the sum of points over all loaded questions.
func (s Session) MaxPoints() int {
	total := 0
	for _, q := range s.Questions {
		total += q.Points
	}
	return total
}

// Current returns the question at Index, if any.
func (s Session) Current() (Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// Answered reports whether the current question has an answer.
func (s Session) Answered() bool {
	return s.Answer != nil
}

// AnsweredCorrectly reports whether the current answer matches the correct option.
func (s Session) AnsweredCorrectly() bool {
	q, ok := s.Current()
	return ok && s.Answer != nil && *s.Answer == q.CorrectOption
}

// Progress returns how many questions are behind the user, counting the
// current one once it is answered.
func (s Session) Progress() int {
	p := s.Index
	if s.Answer != nil {
		p++
	}
	return p
}

// Percentage returns the score as a percentage of MaxPoints.
func (s Session) Percentage() float64 {
	total := s.MaxPoints()
	if total == 0 {
		return 0
	}
	return float64(s.Score) / float64(total) * 100
}

// Seconds returns SecondsRemaining or 0 when the timer is unset.
func (s Session) Seconds() int {
	if s.SecondsRemaining == nil {
		return 0
	}
	return *s.SecondsRemaining
}

func intPtr(v int) *int {
	return &v
}
