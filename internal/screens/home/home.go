package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/screens/history"
	quizscreen "github.com/abhisek/quizzer/internal/screens/quiz"
	"github.com/abhisek/quizzer/internal/store"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/layout"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

const titleFull = ` ██████╗ ██╗   ██╗██╗███████╗███████╗███████╗██████╗
██╔═══██╗██║   ██║██║╚══███╔╝╚══███╔╝██╔════╝██╔══██╗
██║   ██║██║   ██║██║  ███╔╝   ███╔╝ █████╗  ██████╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝   ███╔╝  ██╔══╝  ██╔══██╗
╚██████╔╝╚██████╔╝██║███████╗███████╗███████╗██║  ██║
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝╚══════╝╚═╝  ╚═╝`

const titleCompact = "Q · U · I · Z · Z · E · R"

// Options wires the home screen to the rest of the app.
type Options struct {
	Machine     *quiz.Machine
	Provider    quiz.Provider
	Events      store.EventRepo // nil hides history
	Source      string
	LoadTimeout time.Duration
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts Options
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(opts Options) *HomeScreen {
	push := func(f func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: f()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Action: push(func() screen.Screen {
			return quizscreen.New(opts.Machine, opts.Provider, opts.LoadTimeout)
		})},
		{Label: "HISTORY", Disabled: opts.Events == nil, Action: push(func() screen.Screen {
			return history.New(opts.Events)
		})},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{opts: opts, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+6)
	cw := components.ContentWidth(width)

	title := titleFull
	if compact {
		title = titleCompact
	}
	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title)),
		h.renderStats(cw),
		components.ButtonMenu(h.menu.Labels(), h.menu.Selected, h.menu.DisabledSet(), cw, compact),
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStats(cw int) string {
	snap := h.opts.Machine.Snapshot()

	score := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("★ HIGH SCORE %d", snap.HighScore))
	stats := score
	if h.opts.Source != "" {
		stats += "  " + lipgloss.NewStyle().Foreground(theme.ArcadeCyan).
			Render("◆ "+strings.ToUpper(h.opts.Source))
	}
	if snap.Status == quiz.StatusActive {
		stats += "  " + theme.Warning.Render("▶ IN PROGRESS")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
