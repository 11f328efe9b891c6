package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderFooterDropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Space", Description: "Reveal"},
		{Key: "y", Description: "Knew it"},
		{Key: "n", Description: "Missed it"},
		{Key: "Esc", Description: "Back"},
	}
	out := RenderFooter(hints, 30)
	if !strings.Contains(out, "Reveal") {
		t.Error("first hint should always fit")
	}
	if strings.Contains(out, "Back") {
		t.Error("trailing hint should be dropped at width 30")
	}
	if w := lipgloss.Width(out); w != 30 {
		t.Errorf("footer width = %d, want 30", w)
	}

	wide := RenderFooter(hints, 120)
	if !strings.Contains(wide, "Back") {
		t.Error("all hints should fit at width 120")
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Study", "Character → Sound", 100)
	for _, want := range []string{AppName, "Study", "Character → Sound", "light"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", "mode", 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)

	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	if !strings.Contains(frame, "Quit") {
		t.Error("frame missing footer hint")
	}
}
