package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/store"
	"github.com/abhisek/quizzer/internal/ui/layout"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

// Limit is the number of runs shown.
const Limit = 50

type historyLoadedMsg struct {
	Runs []store.SessionEvent
	Err  error
}

// HistoryScreen lists finished quiz runs, newest first.
type HistoryScreen struct {
	events   store.EventRepo
	runs     []store.SessionEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		runs, err := events.FinishedSessions(context.Background(), Limit)
		return historyLoadedMsg{Runs: runs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.runs) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No quizzes finished yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, run := range s.runs {
		pct := 0.0
		if run.MaxScore > 0 {
			pct = float64(run.Score) / float64(run.MaxScore) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %3d/%-3d pts  %3.0f%%  %-9s %s",
			prefix,
			run.Timestamp.Format("Jan 02 15:04"),
			run.Score, run.MaxScore, pct,
			run.Reason,
			formatDuration(run.DurationSecs),
		)

		style := lipgloss.NewStyle().Foreground(reasonColor(run.Reason))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %d of %d questions answered · source %s · high score %d",
				run.Answered, run.Questions, sourceName(run.Source), run.HighScore)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func sourceName(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func reasonColor(reason string) color.Color {
	switch reason {
	case "completed":
		return theme.Success
	case "timeout":
		return theme.Accent
	case "abandoned":
		return theme.TextDim
	default:
		return theme.Text
	}
}
