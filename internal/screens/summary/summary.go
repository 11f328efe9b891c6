package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaflash/internal/router"
	"github.com/abhisek/kanaflash/internal/screen"
	"github.com/abhisek/kanaflash/internal/session"
	"github.com/abhisek/kanaflash/internal/ui/components"
	"github.com/abhisek/kanaflash/internal/ui/layout"
	"github.com/abhisek/kanaflash/internal/ui/theme"
)

// SummaryScreen displays the results of a finished study session.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	heading := "Session complete!"
	if !sum.Completed() {
		heading = "Session ended"
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(heading))
	b.WriteString("\n\n")

	mins := int(sum.Duration().Minutes())
	secs := int(sum.Duration().Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  ·  %d:%02d", sum.Mode.Label(), mins, secs)))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Cards in deck", fmt.Sprintf("%d", sum.DeckSize)},
		{"Scored", fmt.Sprintf("%d", sum.Answered)},
		{"Knew it", fmt.Sprintf("%d", sum.Correct)},
		{"Missed", fmt.Sprintf("%d", sum.Answered-sum.Correct)},
	}
	for _, r := range rows {
		line := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16).Render(r.label) +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(6).Align(lipgloss.Right).Render(r.value)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	bar := components.NewProgressBar("Accuracy", sum.Accuracy(), true, min(50, width-4))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if sum.Answered > 0 && sum.Correct == sum.Answered {
		b.WriteString(center.Inherit(theme.Correct).Render("Perfect run!"))
	} else if sum.Answered < sum.DeckSize {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("%d cards left unscored", sum.DeckSize-sum.Answered)))
	}

	return b.String()
}
