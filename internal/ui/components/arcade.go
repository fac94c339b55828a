package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed sections.
func ContentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// CabinetFrame wraps content in a double-border frame, centered both ways.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

const buttonWidth = 22

// ButtonMenu renders menu labels as fixed-width bordered buttons. compact
// drops the borders for small terminals.
func ButtonMenu(labels []string, selected int, disabled map[int]bool, cw int, compact bool) string {
	base := lipgloss.NewStyle().Width(buttonWidth).Align(lipgloss.Center).Padding(0, 1)
	if !compact {
		base = base.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}

	rows := make([]string, 0, len(labels))
	for i, label := range labels {
		switch {
		case disabled[i]:
			rows = append(rows, base.Foreground(theme.TextDim).Render(label))
		case i == selected:
			s := base.Bold(true).Foreground(theme.BgDark).Background(theme.ArcadeYellow)
			if !compact {
				s = s.BorderForeground(theme.ArcadeYellow)
			}
			rows = append(rows, s.Render("▸ "+label))
		default:
			rows = append(rows, base.Foreground(theme.Text).Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}
