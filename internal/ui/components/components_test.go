package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { fired = "B"; return nil }},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { fired = "D"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("after down, Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("after up, Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key("enter"))
	if fired != "B" {
		t.Errorf("fired = %q, want B", fired)
	}
	if d := m.DisabledSet(); !d[0] || !d[2] || d[1] {
		t.Errorf("DisabledSet = %v", d)
	}
}

func TestOptionList_MarksAnswer(t *testing.T) {
	chosen := 2
	v := OptionList{Options: []string{"a", "b", "c"}, Chosen: &chosen, Correct: 1}.View()
	if !strings.Contains(v, "● 3) c") {
		t.Errorf("chosen option not marked: %q", v)
	}
	if strings.Contains(v, "▸") {
		t.Errorf("cursor shown after answer: %q", v)
	}

	v = OptionList{Options: []string{"a", "b"}, Cursor: 1}.View()
	if !strings.Contains(v, "▸ 2) b") {
		t.Errorf("cursor not shown: %q", v)
	}
}

func TestProgressBar_Percent(t *testing.T) {
	v := NewProgressBar("Q 3/15", 0.5, true, 40).View()
	if !strings.Contains(v, "50%") || !strings.Contains(v, "Q 3/15") {
		t.Errorf("progress = %q", v)
	}
}
