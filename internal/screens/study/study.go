package study

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/router"
	"github.com/abhisek/kanaflash/internal/screen"
	"github.com/abhisek/kanaflash/internal/screens/summary"
	"github.com/abhisek/kanaflash/internal/session"
	studyctl "github.com/abhisek/kanaflash/internal/study"
	"github.com/abhisek/kanaflash/internal/ui/components"
	"github.com/abhisek/kanaflash/internal/ui/layout"
)

// lastAnswer is the verdict for the most recently scored card, kept so it
// stays visible after the deck advances.
type lastAnswer struct {
	char    catalog.Character
	correct bool
}

// StudyScreen presents the active deck one card at a time. The session
// must already be started on the controller.
type StudyScreen struct {
	ctrl    *studyctl.Controller
	last    *lastAnswer
	pending bool
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.Closer = (*StudyScreen)(nil)

// New creates a StudyScreen for the controller's active deck.
func New(ctrl *studyctl.Controller) *StudyScreen {
	return &StudyScreen{ctrl: ctrl}
}

func (s *StudyScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyScreen) Title() string {
	return "Study"
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	deck := s.ctrl.Deck()
	if !deck.Flipped() {
		return []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "←→", Description: "Navigate"},
			{Key: "s", Description: "Shuffle"},
			{Key: "Esc", Description: "End"},
		}
	}
	if deck.CurrentAnswered() {
		return []layout.KeyHint{
			{Key: "←→", Description: "Navigate"},
			{Key: "s", Description: "Shuffle"},
			{Key: "Esc", Description: "End"},
		}
	}
	return []layout.KeyHint{
		{Key: "y/1", Description: "Knew it"},
		{Key: "n/2", Description: "Missed it"},
		{Key: "←→", Description: "Navigate"},
		{Key: "Esc", Description: "End"},
	}
}

// Close abandons the session when the screen leaves the stack.
func (s *StudyScreen) Close() {
	s.ctrl.EndStudy(context.Background())
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		return s.handleAdvance(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	deck := s.ctrl.Deck()
	if !deck.Active() || s.pending {
		return s, nil
	}

	switch msg.String() {
	case "space", "enter":
		s.ctrl.Reveal()
	case "y", "1":
		return s.answer(true)
	case "n", "2":
		return s.answer(false)
	case "right", "l":
		deck.Advance()
	case "left", "h":
		deck.Retreat()
	case "s":
		deck.Reshuffle()
	}
	return s, nil
}

func (s *StudyScreen) answer(correct bool) (screen.Screen, tea.Cmd) {
	card, ok := s.ctrl.Deck().Current()
	if !ok || !s.ctrl.Answer(context.Background(), correct) {
		return s, nil
	}
	s.last = &lastAnswer{char: card, correct: correct}
	s.pending = true
	pos := s.ctrl.Deck().Position()
	return s, func() tea.Msg { return advanceMsg{card: pos} }
}

func (s *StudyScreen) handleAdvance(msg advanceMsg) (screen.Screen, tea.Cmd) {
	s.pending = false
	deck := s.ctrl.Deck()
	if !deck.Active() || deck.Position() != msg.card {
		return s, nil
	}
	if s.ctrl.Continue(context.Background()) {
		return s, nil
	}
	sum, _ := s.ctrl.LastSummary()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// face returns the text for the visible side of ch.
func face(ch catalog.Character, mode session.Mode, revealed bool) components.FlashCard {
	card := components.FlashCard{Revealed: revealed, Script: scriptLabel(ch)}
	showGlyph := mode == session.ModeSoundToGlyph
	if !revealed {
		showGlyph = !showGlyph
	}
	if showGlyph {
		card.Face = ch.Glyph
	} else {
		card.Face = ch.Romaji
	}
	if ch.Meaning != "" && (revealed || mode == session.ModeGlyphToSound) {
		card.Detail = ch.Meaning
	}
	return card
}

func scriptLabel(ch catalog.Character) string {
	if ch.Script == catalog.Kanji {
		return fmt.Sprintf("%s · %s", ch.Script.Label(), ch.LevelLabel())
	}
	return ch.Script.Label()
}
