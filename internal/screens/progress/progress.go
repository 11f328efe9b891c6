package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaflash/internal/catalog"
	prog "github.com/abhisek/kanaflash/internal/progress"
	"github.com/abhisek/kanaflash/internal/screen"
	"github.com/abhisek/kanaflash/internal/study"
	"github.com/abhisek/kanaflash/internal/ui/components"
	"github.com/abhisek/kanaflash/internal/ui/layout"
	"github.com/abhisek/kanaflash/internal/ui/theme"
)

// action is a destructive operation waiting for y/n confirmation.
type action int

const (
	actionNone action = iota
	actionReset
	actionClearSession
	actionClearMode
	actionClearTheme
)

func (a action) prompt() string {
	switch a {
	case actionReset:
		return "Reset all progress and saved settings?"
	case actionClearSession:
		return "Clear the saved character selection?"
	case actionClearMode:
		return "Clear the saved study mode?"
	case actionClearTheme:
		return "Clear the saved theme?"
	}
	return ""
}

func (a action) done() string {
	switch a {
	case actionReset:
		return "Progress reset."
	case actionClearSession:
		return "Saved selection cleared."
	case actionClearMode:
		return "Saved mode cleared."
	case actionClearTheme:
		return "Saved theme cleared."
	}
	return ""
}

// ProgressScreen is the progress dashboard.
type ProgressScreen struct {
	ctrl    *study.Controller
	offset  int
	pending action
	notice  string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)
var _ screen.InputCapturer = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(ctrl *study.Controller) *ProgressScreen {
	return &ProgressScreen{ctrl: ctrl}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	if s.pending != actionNone {
		return []layout.KeyHint{
			{Key: "y", Description: "Confirm"},
			{Key: "n/Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Reset"},
		{Key: "1/2/3", Description: "Clear selection/mode/theme"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturingInput is true while a confirmation prompt is open.
func (s *ProgressScreen) CapturingInput() bool {
	return s.pending != actionNone
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.pending != actionNone {
		switch key {
		case "y":
			s.apply(s.pending)
			s.notice = s.pending.done()
			s.pending = actionNone
		case "n", "esc":
			s.pending = actionNone
		}
		return s, nil
	}

	s.notice = ""
	switch key {
	case "up", "k":
		s.offset = max(0, s.offset-1)
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(0, s.offset-10)
	case "pgdown":
		s.offset += 10
	case "r":
		s.pending = actionReset
	case "1":
		s.pending = actionClearSession
	case "2":
		s.pending = actionClearMode
	case "3":
		s.pending = actionClearTheme
	}
	return s, nil
}

func (s *ProgressScreen) apply(a action) {
	ctx := context.Background()
	switch a {
	case actionReset:
		s.ctrl.ResetProgress(ctx)
	case actionClearSession:
		s.ctrl.ClearSession(ctx)
	case actionClearMode:
		s.ctrl.ClearMode(ctx)
	case actionClearTheme:
		s.ctrl.ClearTheme(ctx)
	}
}

func (s *ProgressScreen) View(width, height int) string {
	body := s.renderBody(width)
	lines := strings.Split(body, "\n")

	visible := max(1, height-2)
	s.offset = max(0, min(s.offset, len(lines)-visible))
	end := min(len(lines), s.offset+visible)

	var b strings.Builder
	b.WriteString(strings.Join(lines[s.offset:end], "\n"))
	b.WriteString("\n\n")

	switch {
	case s.pending != actionNone:
		b.WriteString("  " + theme.Notice.Render(s.pending.prompt()+" (y/n)"))
	case s.notice != "":
		b.WriteString("  " + theme.Correct.Render(s.notice))
	}
	return b.String()
}

func (s *ProgressScreen) renderBody(width int) string {
	all := s.ctrl.Catalog().All()
	tracker := s.ctrl.Tracker()
	st := tracker.Stats(all)
	barWidth := min(60, width-4)

	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder

	b.WriteString("  " + heading.Render("Overview"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n",
		dim.Render("Mastered"), theme.Body.Render(fmt.Sprintf("%d / %d", st.Mastered, st.Total)),
		dim.Render("Attempts"), theme.Body.Render(fmt.Sprintf("%d", st.Attempts)),
		dim.Render("Accuracy"), theme.Body.Render(fmt.Sprintf("%.0f%%", st.Accuracy)),
	))
	b.WriteString("\n")

	for _, ss := range st.ByScript {
		label := fmt.Sprintf("%-9s %3d/%-3d", ss.Script.Label(), ss.Mastered, ss.Total)
		b.WriteString("  " + components.NewProgressBar(label, ss.Fraction(), true, barWidth).View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + heading.Render("Needs practice"))
	b.WriteString("\n")
	if len(st.NeedsPractice) == 0 {
		b.WriteString("  " + theme.Hint.Render("Nothing to review yet."))
		b.WriteString("\n")
	}
	for _, p := range st.NeedsPractice {
		b.WriteString(fmt.Sprintf("  %s  %s  %s %s\n",
			theme.Body.Render(p.Character.Glyph),
			dim.Render(fmt.Sprintf("%-6s", p.Character.Romaji)),
			theme.Correct.Render(fmt.Sprintf("%d✓", p.Entry.CorrectCount)),
			theme.Incorrect.Render(fmt.Sprintf("%d✗", p.Entry.IncorrectCount)),
		))
	}
	if st.NeedsPracticeMore > 0 {
		b.WriteString("  " + dim.Render(fmt.Sprintf("+%d more", st.NeedsPracticeMore)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + heading.Render("Characters") + "   " + legend())
	b.WriteString("\n")
	for _, sc := range catalog.Scripts {
		chars := s.ctrl.Catalog().Filter(catalog.Filter{Script: sc})
		if len(chars) == 0 {
			continue
		}
		b.WriteString("  " + dim.Render(sc.Label()))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(statusGrid(tracker, chars, width-4)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func statusStyle(status prog.Status) lipgloss.Style {
	switch status {
	case prog.StatusMastered:
		return theme.Mastered
	case prog.StatusInProgress:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	}
}

func legend() string {
	parts := make([]string, 0, 3)
	for _, st := range []prog.Status{prog.StatusMastered, prog.StatusInProgress, prog.StatusNotStarted} {
		parts = append(parts, statusStyle(st).Render("■ "+st.String()))
	}
	return strings.Join(parts, "  ")
}

func statusGrid(tracker *prog.Tracker, chars []catalog.Character, width int) string {
	cells := make([]components.GridCell, len(chars))
	for i, ch := range chars {
		style := statusStyle(tracker.Query(ch.ID).Status())
		cells[i] = components.GridCell{
			Glyph:  ch.Glyph,
			Sub:    ch.Romaji,
			Marked: tracker.Query(ch.ID).Mastered,
			Style:  &style,
		}
	}
	g := components.Grid{Cells: cells, Cursor: -1, Mark: "★"}
	return g.View(width, g.Rows(width))
}
