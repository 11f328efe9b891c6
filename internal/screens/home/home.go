package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaflash/internal/router"
	"github.com/abhisek/kanaflash/internal/screen"
	"github.com/abhisek/kanaflash/internal/screens/history"
	progressscreen "github.com/abhisek/kanaflash/internal/screens/progress"
	"github.com/abhisek/kanaflash/internal/screens/selector"
	studyscreen "github.com/abhisek/kanaflash/internal/screens/study"
	"github.com/abhisek/kanaflash/internal/study"
	"github.com/abhisek/kanaflash/internal/ui/components"
)

const (
	itemStart = iota
	itemSelect
	itemMode
	itemTheme
	itemProgress
	itemHistory
	itemExit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	ctrl         *study.Controller
	historyLimit int
	menu         components.Menu
	notice       string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ctrl *study.Controller, historyLimit int) *HomeScreen {
	h := &HomeScreen{ctrl: ctrl, historyLimit: historyLimit}

	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		itemStart: {
			Label:  func() string { return fmt.Sprintf("START STUDY (%d)", ctrl.SelectedCount()) },
			Key:    "s",
			Action: h.startStudy,
		},
		itemSelect: {
			Label:  components.Text("SELECT CHARACTERS"),
			Key:    "c",
			Action: func() tea.Cmd { return push(selector.New(ctrl)) },
		},
		itemMode: {
			Label: func() string { return "MODE: " + strings.ToUpper(ctrl.Mode().Label()) },
			Key:   "m",
			Action: func() tea.Cmd {
				ctrl.ToggleMode(context.Background())
				return nil
			},
		},
		itemTheme: {
			Label: func() string {
				if ctrl.DarkMode() {
					return "THEME: DARK"
				}
				return "THEME: LIGHT"
			},
			Key: "t",
			Action: func() tea.Cmd {
				ctrl.ToggleTheme(context.Background())
				return nil
			},
		},
		itemProgress: {
			Label:  components.Text("PROGRESS"),
			Key:    "p",
			Action: func() tea.Cmd { return push(progressscreen.New(ctrl)) },
		},
		itemHistory: {
			Label:  components.Text("HISTORY"),
			Key:    "h",
			Action: func() tea.Cmd { return push(history.New(ctrl.History(), historyLimit)) },
		},
		itemExit: {
			Label:  components.Text("EXIT"),
			Key:    "q",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) startStudy() tea.Cmd {
	if err := h.ctrl.StartStudy(); err != nil {
		h.notice = err.Error()
		return nil
	}
	next := studyscreen.New(h.ctrl)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// labels returns the menu labels for the current state.
func (h *HomeScreen) labels() []string {
	return h.menu.Labels()
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return h, nil
	}
	h.notice = ""

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(kmsg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 30 || width < 100
	cw := contentWidth(width)

	mastered := len(h.ctrl.Tracker().MasteredSet(h.ctrl.Catalog().All()))

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.ctrl.SelectedCount(), mastered, h.ctrl.Catalog().Len(), cw, compact),
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.labels(), h.menu.Selected, cw))
	}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
