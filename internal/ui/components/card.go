package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaflash/internal/ui/theme"
)

// Verdict is the feedback shown after a card is scored.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

// FlashCard renders one face of a study card.
type FlashCard struct {
	Face     string
	Detail   string
	Script   string
	Revealed bool
	Verdict  Verdict
}

// View renders the card centered in width.
func (c FlashCard) View(width int) string {
	face := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Text).
		Render(spaced(c.Face))

	lines := []string{face}
	if c.Detail != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Secondary).Render(c.Detail))
	}
	lines = append(lines, "", theme.Hint.Render(c.Script))

	switch c.Verdict {
	case VerdictCorrect:
		lines = append(lines, "", theme.Correct.Render("✓ Correct"))
	case VerdictIncorrect:
		lines = append(lines, "", theme.Incorrect.Render("✗ Incorrect"))
	}

	border := theme.Border
	if c.Revealed {
		border = theme.Primary
	}

	cardWidth := min(40, max(20, width-4))
	card := theme.Card.
		BorderForeground(border).
		Width(cardWidth).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

// spaced widens short faces so a single glyph stands out.
func spaced(s string) string {
	r := []rune(s)
	if len(r) > 3 {
		return s
	}
	parts := make([]string, len(r))
	for i, ch := range r {
		parts[i] = string(ch)
	}
	return strings.Join(parts, " ")
}
