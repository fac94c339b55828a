// Package metrics exports quiz machine activity to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhisek/quizzer/internal/quiz"
)

const namespace = "quizzer"

// Event results.
const (
	ResultApplied       = "applied"
	ResultRejected      = "rejected"
	ResultPersistFailed = "persist_failed"
)

// Recorder is a quiz.Observer that updates Prometheus collectors.
type Recorder struct {
	events    *prometheus.CounterVec
	finished  *prometheus.CounterVec
	scores    prometheus.Histogram
	highScore prometheus.Gauge
}

// NewRecorder registers the collectors with reg. A nil reg uses the
// default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Quiz events dispatched, by event and result.",
		}, []string{"event", "result"}),
		finished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_finished_total",
			Help:      "Finished quiz runs, by end reason.",
		}, []string{"reason"}),
		scores: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_score_ratio",
			Help:      "Final score as a fraction of the maximum.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		highScore: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "high_score",
			Help:      "Current high score.",
		}),
	}
}

// Observe implements quiz.Observer.
func (r *Recorder) Observe(e quiz.Event, prev, next quiz.Session, err error) {
	result := ResultApplied
	switch {
	case errors.Is(err, quiz.ErrPersistHighScore):
		result = ResultPersistFailed
	case err != nil:
		result = ResultRejected
	}
	r.events.WithLabelValues(e.Name(), result).Inc()

	if prev.Status == quiz.StatusActive && next.Status == quiz.StatusFinished {
		r.finished.WithLabelValues(string(next.EndReason)).Inc()
		if total := prev.MaxPoints(); total > 0 {
			r.scores.Observe(float64(next.Score) / float64(total))
		}
	}
	r.highScore.Set(float64(next.HighScore))
}
