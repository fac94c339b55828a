package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

// lowTimeSeconds turns the countdown amber.
const lowTimeSeconds = 10

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.session.Status {
	case quiz.StatusLoading:
		body = theme.Subtitle.Width(cw).Render("Loading questions...")
	case quiz.StatusError:
		body = s.renderError(cw)
	case quiz.StatusReady:
		body = s.renderReady(cw)
	case quiz.StatusActive:
		body = s.renderActive(cw)
	case quiz.StatusFinished:
		body = s.renderFinished(cw)
	}

	if s.notice != "" {
		body += "\n\n" + theme.Warning.Width(cw).Align(lipgloss.Center).Render(s.notice)
	}
	return components.CabinetFrame(body, width, height)
}

func (s *QuizScreen) renderError(cw int) string {
	msg := "There was an error fetching questions."
	if s.loadErr != "" {
		msg += "\n\n" + s.loadErr
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("💥 " + msg + "\n\nPress R to retry")
}

func (s *QuizScreen) renderReady(cw int) string {
	title := theme.Title.Width(cw).Render("Welcome to the Quiz!")
	sub := theme.Subtitle.Width(cw).Render(
		fmt.Sprintf("%d questions to test your mastery", s.session.NumQuestions()))
	btn := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(components.Button{Label: "Let's start", Active: true}.View())

	return strings.Join([]string{title, sub, btn}, "\n\n")
}

func (s *QuizScreen) renderActive(cw int) string {
	sess := s.session
	q, ok := sess.Current()
	if !ok {
		return ""
	}

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", sess.Index+1, sess.NumQuestions()),
		float64(sess.Progress())/float64(max(sess.NumQuestions(), 1)),
		false, cw,
	).View()

	points := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Align(lipgloss.Right).
		Render(fmt.Sprintf("%d / %d points", sess.Score, sess.MaxPoints()))

	question := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).
		Render(q.Text)

	options := components.OptionList{
		Options: q.Options,
		Cursor:  s.cursor,
		Chosen:  sess.Answer,
		Correct: q.CorrectOption,
		Width:   cw,
	}.View()

	timerStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if sess.Seconds() <= lowTimeSeconds {
		timerStyle = timerStyle.Foreground(theme.Accent)
	}
	timer := timerStyle.Render("⏱ " + formatClock(sess.Seconds()))

	footer := timer
	if sess.Answered() {
		label := "Next"
		if sess.Index == sess.NumQuestions()-1 {
			label = "Finish"
		}
		btn := components.Button{Label: label, Active: true}.View()
		gap := max(cw-lipgloss.Width(timer)-lipgloss.Width(btn), 1)
		footer += strings.Repeat(" ", gap) + btn
	}

	return strings.Join([]string{progress, points, question, options, footer}, "\n\n")
}

func (s *QuizScreen) renderFinished(cw int) string {
	sess := s.session
	pct := sess.Percentage()

	result := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Bold(true).
		Padding(1, 2).
		Render(fmt.Sprintf("%s You scored %d out of %d (%.0f%%)",
			resultEmoji(pct), sess.Score, sess.MaxPoints(), pct))

	lines := []string{
		result,
		theme.Subtitle.Width(cw).Render(fmt.Sprintf("(Highscore: %d points)", sess.HighScore)),
	}
	if sess.EndReason == quiz.EndTimeout {
		lines = append(lines, theme.Warning.Width(cw).Align(lipgloss.Center).Render("Time's up!"))
	}
	lines = append(lines, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(components.Button{Label: "Restart quiz", Active: true}.View()))

	return strings.Join(lines, "\n\n")
}

// resultEmoji grades a percentage.
func resultEmoji(pct float64) string {
	switch {
	case pct >= 100:
		return "🥇"
	case pct >= 80:
		return "🎉"
	case pct >= 50:
		return "🙃"
	case pct > 0:
		return "🤨"
	default:
		return "🤦"
	}
}

// formatClock renders seconds as mm:ss.
func formatClock(secs int) string {
	secs = max(secs, 0)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
