package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizzer/internal/quiz"
)

type questionView struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Points  int      `json:"points"`

	// Hidden until the question is answered.
	CorrectOption *int `json:"correctOption,omitempty"`
}

type sessionView struct {
	Status           string        `json:"status"`
	Index            int           `json:"index"`
	NumQuestions     int           `json:"numQuestions"`
	MaxPoints        int           `json:"maxPoints"`
	Question         *questionView `json:"question,omitempty"`
	Answer           *int          `json:"answer"`
	Score            int           `json:"score"`
	HighScore        int           `json:"highScore"`
	SecondsRemaining *int          `json:"secondsRemaining"`
	EndReason        string        `json:"endReason,omitempty"`
	Percentage       float64       `json:"percentage"`
}

func newSessionView(s quiz.Session) sessionView {
	v := sessionView{
		Status:           s.Status.String(),
		Index:            s.Index,
		NumQuestions:     s.NumQuestions(),
		MaxPoints:        s.MaxPoints(),
		Answer:           s.Answer,
		Score:            s.Score,
		HighScore:        s.HighScore,
		SecondsRemaining: s.SecondsRemaining,
		EndReason:        string(s.EndReason),
		Percentage:       s.Percentage(),
	}
	if s.Status == quiz.StatusActive {
		if q, ok := s.Current(); ok {
			qv := &questionView{Text: q.Text, Options: q.Options, Points: q.Points}
			if s.Answered() {
				correct := q.CorrectOption
				qv.CorrectOption = &correct
			}
			v.Question = qv
		}
	}
	return v
}

type eventRequest struct {
	Type   string `json:"type" binding:"required"`
	Option *int   `json:"option"`
}

func (s *Server) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, newSessionView(s.machine.Snapshot()))
}

func (s *Server) postEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	option := -1
	if req.Option != nil {
		option = *req.Option
	} else if req.Type == "answer" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer requires an option"})
		return
	}

	e, err := quiz.ParseEvent(req.Type, option)
	if err != nil {
		s.writeError(c, err, s.machine.Snapshot())
		return
	}
	if _, ok := e.(quiz.LoadStart); ok {
		s.postReload(c)
		return
	}

	snap, err := s.machine.Dispatch(c.Request.Context(), e)
	if err != nil {
		s.writeError(c, err, snap)
		return
	}
	c.JSON(http.StatusOK, newSessionView(snap))
}

// postReload runs a full load. The load outlives a disconnecting client so
// the machine never stays in loading.
func (s *Server) postReload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), s.c.LoadTimeout)
	defer cancel()

	err := s.machine.Load(ctx, s.provider)
	snap := s.machine.Snapshot()
	if err != nil && snap.Status != quiz.StatusError {
		s.writeError(c, err, snap)
		return
	}
	// A provider failure is reported through the error status.
	c.JSON(http.StatusOK, newSessionView(snap))
}

func (s *Server) writeError(c *gin.Context, err error, snap quiz.Session) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, quiz.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, quiz.ErrInvalidPayload), errors.Is(err, quiz.ErrUnknownEvent):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request.Context(), "server: event failed", "error", err)
	}
	c.JSON(status, gin.H{
		"error":   err.Error(),
		"session": newSessionView(snap),
	})
}
