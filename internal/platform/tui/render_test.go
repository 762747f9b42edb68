package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "Score: 25", core.ColorBrightWhite)
	s.SetColored(3, 1, '#', core.ColorOrange)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "Score:") || !strings.Contains(lines[0], "25") {
		t.Errorf("line 0 = %q, expected the score text", lines[0])
	}
	if !strings.Contains(lines[1], "#") {
		t.Errorf("line 1 = %q, expected the asteroid glyph", lines[1])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("styleFor(unknown).Render() = %q, expected unstyled text", got)
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorPurple; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("colorStyles missing color %d", c)
		}
	}
}
