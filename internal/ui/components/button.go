package components

import (
	"github.com/abhisek/quizzer/internal/ui/theme"
)

// Button renders a call to action such as "Let's start".
type Button struct {
	Label  string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
