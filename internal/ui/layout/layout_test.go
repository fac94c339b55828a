package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected too small for narrow terminal")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderHeaderShowsHighScore(t *testing.T) {
	h := RenderHeader("Quiz", 170, 80)
	if !strings.Contains(h, "★ best 170") {
		t.Errorf("header missing high score: %q", h)
	}
	if !strings.Contains(h, "Quiz") {
		t.Errorf("header missing title: %q", h)
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 60)
	if !strings.Contains(f, "Esc") || !strings.Contains(f, "Back") {
		t.Errorf("footer = %q", f)
	}
}
