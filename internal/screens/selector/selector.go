package selector

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/router"
	"github.com/abhisek/kanaflash/internal/screen"
	studyscreen "github.com/abhisek/kanaflash/internal/screens/study"
	"github.com/abhisek/kanaflash/internal/study"
	"github.com/abhisek/kanaflash/internal/ui/components"
	"github.com/abhisek/kanaflash/internal/ui/layout"
	"github.com/abhisek/kanaflash/internal/ui/theme"
)

// SaveDelay is how long selection edits settle before being saved.
const SaveDelay = 500 * time.Millisecond

// saveSelectionMsg fires after SaveDelay; stale generations are dropped.
type saveSelectionMsg struct {
	gen int
}

// SelectorScreen lets the user filter the catalog and pick characters.
type SelectorScreen struct {
	ctrl *study.Controller

	scriptIdx int // 0 is all scripts, otherwise catalog.Scripts[scriptIdx-1]
	level     int
	search    components.SearchInput
	filtered  []catalog.Character
	cursor    int
	gridWidth int
	notice    string

	gen   int
	dirty bool
}

var _ screen.Screen = (*SelectorScreen)(nil)
var _ screen.KeyHintProvider = (*SelectorScreen)(nil)
var _ screen.Closer = (*SelectorScreen)(nil)
var _ screen.InputCapturer = (*SelectorScreen)(nil)

// New creates a SelectorScreen showing the whole catalog.
func New(ctrl *study.Controller) *SelectorScreen {
	s := &SelectorScreen{
		ctrl:      ctrl,
		search:    components.NewSearchInput("glyph, romaji or meaning", 32),
		gridWidth: layout.MinWidth - 4,
	}
	s.refilter()
	return s
}

func (s *SelectorScreen) Init() tea.Cmd {
	return nil
}

func (s *SelectorScreen) Title() string {
	return "Select Characters"
}

func (s *SelectorScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Space", Description: "Toggle"},
		{Key: "a/d", Description: "All/None"},
		{Key: "Tab", Description: "Script"},
	}
	if s.script() == catalog.Kanji {
		hints = append(hints, layout.KeyHint{Key: "[ ]", Description: "Level"})
	}
	return append(hints,
		layout.KeyHint{Key: "/", Description: "Search"},
		layout.KeyHint{Key: "Enter", Description: "Study"},
	)
}

// CapturingInput reports whether the search box owns the keyboard.
func (s *SelectorScreen) CapturingInput() bool {
	return s.search.Focused()
}

// Close saves any unsaved selection edits.
func (s *SelectorScreen) Close() {
	s.flush()
}

func (s *SelectorScreen) script() catalog.Script {
	if s.scriptIdx == 0 {
		return ""
	}
	return catalog.Scripts[s.scriptIdx-1]
}

func (s *SelectorScreen) filter() catalog.Filter {
	return catalog.Filter{Script: s.script(), Level: s.level, Search: s.search.Value()}
}

func (s *SelectorScreen) refilter() {
	s.filtered = s.ctrl.Catalog().Filter(s.filter())
	s.cursor = max(0, min(s.cursor, len(s.filtered)-1))
}

func (s *SelectorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case saveSelectionMsg:
		if msg.gen == s.gen {
			s.flush()
		}
		return s, nil
	case tea.KeyPressMsg:
		if s.search.Focused() {
			return s.handleSearchKey(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SelectorScreen) handleSearchKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.search.Clear()
		s.search.Blur()
		s.refilter()
		return s, nil
	case "enter":
		s.search.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.cursor = 0
	s.refilter()
	return s, cmd
}

func (s *SelectorScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.notice = ""
	key := msg.String()

	switch key {
	case "tab", "shift+tab":
		n := len(catalog.Scripts) + 1
		if key == "tab" {
			s.scriptIdx = (s.scriptIdx + 1) % n
		} else {
			s.scriptIdx = (s.scriptIdx + n - 1) % n
		}
		if s.script() != catalog.Kanji {
			s.level = 0
		}
		s.cursor = 0
		s.refilter()
	case "]", "[":
		if s.script() != catalog.Kanji {
			return s, nil
		}
		n := catalog.MaxLevel + 1
		if key == "]" {
			s.level = (s.level + 1) % n
		} else {
			s.level = (s.level + n - 1) % n
		}
		s.cursor = 0
		s.refilter()
	case "/":
		return s, s.search.Focus()
	case "x":
		s.search.Clear()
		s.refilter()
	case "space":
		if s.cursor < len(s.filtered) {
			s.ctrl.Toggle(s.filtered[s.cursor].ID)
			return s, s.markDirty()
		}
	case "a":
		s.ctrl.SelectAll(s.filtered)
		return s, s.markDirty()
	case "d":
		s.ctrl.DeselectAll(s.filtered)
		return s, s.markDirty()
	case "enter":
		return s.startStudy()
	case "up", "down", "left", "right", "home", "end", "h", "j", "k", "l":
		g := components.Grid{Cells: make([]components.GridCell, len(s.filtered)), Cursor: s.cursor}
		s.cursor = g.Move(key, s.gridWidth).Cursor
	}
	return s, nil
}

func (s *SelectorScreen) markDirty() tea.Cmd {
	s.dirty = true
	s.gen++
	gen := s.gen
	return tea.Tick(SaveDelay, func(time.Time) tea.Msg {
		return saveSelectionMsg{gen: gen}
	})
}

func (s *SelectorScreen) flush() {
	if !s.dirty {
		return
	}
	s.dirty = false
	s.ctrl.PersistSelection(context.Background())
}

func (s *SelectorScreen) startStudy() (screen.Screen, tea.Cmd) {
	s.flush()
	if err := s.ctrl.StartStudy(); err != nil {
		s.notice = err.Error()
		return s, nil
	}
	next := studyscreen.New(s.ctrl)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *SelectorScreen) View(width, height int) string {
	s.gridWidth = max(1, width-4)

	var b strings.Builder
	b.WriteString("  " + s.renderScriptTabs())
	if s.script() == catalog.Kanji {
		b.WriteString("     " + s.renderLevelTabs())
	}
	b.WriteString("\n  ")
	b.WriteString(s.search.View())
	b.WriteString("\n")

	total := s.ctrl.Catalog().Len()
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("  %d selected · showing %d of %d", s.ctrl.SelectedCount(), len(s.filtered), total)))
	b.WriteString("\n\n")

	gridHeight := height - 6
	if len(s.filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("  No characters match."))
	} else {
		cells := make([]components.GridCell, len(s.filtered))
		for i, ch := range s.filtered {
			cells[i] = components.GridCell{Glyph: ch.Glyph, Sub: ch.Romaji, Marked: s.ctrl.IsSelected(ch.ID)}
		}
		grid := components.Grid{Cells: cells, Cursor: s.cursor}
		body := grid.View(s.gridWidth, gridHeight)
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(body))
	}

	if s.notice != "" {
		b.WriteString("\n\n  ")
		b.WriteString(theme.Notice.Render(s.notice))
	} else if s.cursor < len(s.filtered) {
		b.WriteString("\n\n  ")
		b.WriteString(theme.Hint.Render(describe(s.filtered[s.cursor])))
	}
	return b.String()
}

func (s *SelectorScreen) renderScriptTabs() string {
	labels := []string{"All"}
	for _, sc := range catalog.Scripts {
		labels = append(labels, sc.Label())
	}
	return renderTabs(labels, s.scriptIdx)
}

func (s *SelectorScreen) renderLevelTabs() string {
	labels := []string{"All"}
	for lvl := catalog.MinLevel; lvl <= catalog.MaxLevel; lvl++ {
		labels = append(labels, catalog.LevelLabel(lvl))
	}
	return renderTabs(labels, s.level)
}

func renderTabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = theme.Selected.Render("[" + l + "]")
		} else {
			parts[i] = theme.Unselected.Render(" " + l + " ")
		}
	}
	return strings.Join(parts, " ")
}

func describe(ch catalog.Character) string {
	desc := fmt.Sprintf("%s  %s  %s", ch.Glyph, ch.Romaji, ch.Script.Label())
	if ch.Script == catalog.Kanji {
		desc += " " + ch.LevelLabel()
	}
	if ch.Meaning != "" {
		desc += "  · " + ch.Meaning
	}
	return desc
}
