package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/ui/theme"
)

// OptionList renders the options of a multiple-choice question. Before an
// answer the cursor is highlighted; afterwards the correct option is shown
// in green and a wrong pick in red.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  *int
	Correct int
	Width   int
}

func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if o.Chosen == nil && i == o.Cursor {
			prefix = "▸ "
		}
		if o.Chosen != nil && i == *o.Chosen {
			prefix = "● "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case o.Chosen == nil && i == o.Cursor:
			style = theme.Selected
		case o.Chosen != nil && i == o.Correct:
			style = theme.Correct
		case o.Chosen != nil && i == *o.Chosen:
			style = theme.Incorrect
		case o.Chosen != nil:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}

		if o.Width > 0 {
			style = style.Width(o.Width)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
