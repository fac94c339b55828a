package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Start   key.Binding
	Up      key.Binding
	Down    key.Binding
	Choose  key.Binding
	Option  key.Binding
	Next    key.Binding
	Finish  key.Binding
	Restart key.Binding
}

var keys = keyMap{
	Start:   key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("Enter", "Start")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "Up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down")),
	Choose:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Answer")),
	Option:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "Answer")),
	Next:    key.NewBinding(key.WithKeys("enter", "n"), key.WithHelp("Enter", "Next")),
	Finish:  key.NewBinding(key.WithKeys("f"), key.WithHelp("F", "Finish")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Restart")),
}
