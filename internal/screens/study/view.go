package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaflash/internal/ui/components"
	"github.com/abhisek/kanaflash/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	deck := s.ctrl.Deck()
	ch, ok := deck.Current()
	if !deck.Active() || !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No active session.")
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Card %d / %d", deck.Position()+1, deck.Len()))

	status := "not scored"
	statusStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if deck.CurrentAnswered() {
		status = "✓ scored"
		statusStyle = theme.Mastered
	}
	infoRight := statusStyle.Render(status) +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("   %d/%d answered", deck.AnsweredCount(), deck.Len()))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	card := face(ch, deck.Mode(), deck.Flipped())
	if s.last != nil && s.last.char.ID == ch.ID && deck.CurrentAnswered() {
		card.Verdict = components.VerdictIncorrect
		if s.last.correct {
			card.Verdict = components.VerdictCorrect
		}
	}
	b.WriteString(card.View(width))
	b.WriteString("\n\n")

	var prompt string
	switch {
	case !deck.Flipped():
		prompt = "Press space to reveal"
	case !deck.CurrentAnswered():
		prompt = "Did you know it?  y / n"
	default:
		prompt = "Already scored. Use ← → to move on"
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(prompt)))
	b.WriteString("\n\n")

	if s.last != nil {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderLast()))
		b.WriteString("\n")
	}

	bar := components.NewProgressBar("Scored", float64(deck.AnsweredCount())/float64(deck.Len()), true, min(50, width-4))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))

	return b.String()
}

func (s *StudyScreen) renderLast() string {
	text := fmt.Sprintf("%s = %s", s.last.char.Glyph, s.last.char.Romaji)
	if s.last.correct {
		return theme.Correct.Render("✓ " + text)
	}
	return theme.Incorrect.Render("✗ " + text)
}
