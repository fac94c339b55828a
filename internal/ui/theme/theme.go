package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette, built around the React cyan.
var (
	Primary   = lipgloss.Color("#61DAFB") // React Cyan
	Secondary = lipgloss.Color("#1098AD") // Deep Teal
	Accent    = lipgloss.Color("#FFA94D") // Amber
	Success   = lipgloss.Color("#51CF66") // Green
	Error     = lipgloss.Color("#FA5252") // Red
	Text      = lipgloss.Color("#F1F3F5") // Off White
	TextDim   = lipgloss.Color("#868E96") // Gray
	BgDark    = lipgloss.Color("#343A40") // Charcoal
	BgCard    = lipgloss.Color("#495057") // Slate
	Border    = lipgloss.Color("#5C636A") // Steel

	ArcadeYellow = lipgloss.Color("#FFD43B")
	ArcadeCyan   = lipgloss.Color("#3BC9DB")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
