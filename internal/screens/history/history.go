package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaflash/internal/screen"
	"github.com/abhisek/kanaflash/internal/session"
	"github.com/abhisek/kanaflash/internal/store"
	"github.com/abhisek/kanaflash/internal/ui/layout"
	"github.com/abhisek/kanaflash/internal/ui/theme"
)

// DefaultLimit is the number of sessions loaded when no limit is given.
const DefaultLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

// HistoryScreen displays past study sessions.
type HistoryScreen struct {
	repo     store.SessionRepo
	limit    int
	sessions []store.SessionRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. repo may be nil when no database is
// available.
func New(repo store.SessionRepo, limit int) *HistoryScreen {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &HistoryScreen{
		repo:     repo,
		limit:    limit,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, limit := s.repo, s.limit
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		sessions, err := repo.Recent(context.Background(), limit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start studying!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dur := sess.Duration()
		durationStr := fmt.Sprintf("%d:%02d", int(dur.Minutes()), int(dur.Seconds())%60)

		status := "done"
		if !sess.Completed {
			status = "ended early"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d cards  %.0f%% correct  %s",
			prefix, sess.StartedAt.Local().Format("Jan 02, 2006 15:04"), durationStr,
			sess.Answered, sess.DeckSize, sess.Accuracy()*100, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			details := []string{
				fmt.Sprintf("    Mode: %s", session.Mode(sess.Mode).Label()),
				fmt.Sprintf("    Knew %d, missed %d", sess.Correct, sess.Answered-sess.Correct),
				fmt.Sprintf("    Session %s", sess.ID),
			}
			for _, d := range details {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
