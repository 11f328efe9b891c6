package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/kv"
	"github.com/abhisek/kanaflash/internal/progress"
	"github.com/abhisek/kanaflash/internal/router"
	"github.com/abhisek/kanaflash/internal/study"
)

func newController(t *testing.T) *study.Controller {
	t.Helper()
	mem := kv.NewMemory()
	return study.New(study.Options{
		Catalog:  catalog.Default(),
		Tracker:  progress.New(context.Background(), mem),
		Channels: study.NewChannels(mem),
	})
}

// drive runs msg through the model and feeds back any navigation message
// produced by the returned command.
func drive(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch nav := cmd().(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		next, _ = m.Update(nav)
		m = next.(AppModel)
	}
	return m
}

func viewString(m AppModel) string {
	return fmt.Sprint(m.View().Content)
}

func TestStartStudyOption(t *testing.T) {
	ctrl := newController(t)

	if _, err := newAppModel(Options{Controller: ctrl, StartStudy: true}); !errors.Is(err, study.ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}

	ctrl.Toggle("h-a")
	m, err := newAppModel(Options{Controller: ctrl, StartStudy: true})
	if err != nil {
		t.Fatal(err)
	}
	if m.router.Depth() != 2 || m.router.Active().Title() != "Study" {
		t.Errorf("expected study on top, got %q depth %d", m.router.Active().Title(), m.router.Depth())
	}
}

func TestEscAbandonsStudy(t *testing.T) {
	ctrl := newController(t)
	ctrl.Toggle("h-a")
	m, err := newAppModel(Options{Controller: ctrl, StartStudy: true})
	if err != nil {
		t.Fatal(err)
	}

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", m.router.Depth())
	}
	if ctrl.Deck().Active() {
		t.Error("popping the study screen should end the session")
	}
}

func TestEscWhileSearchingStaysOnScreen(t *testing.T) {
	ctrl := newController(t)
	m, err := newAppModel(Options{Controller: ctrl})
	if err != nil {
		t.Fatal(err)
	}

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.router.Active().Title() != "Select Characters" {
		t.Fatalf("active = %q", m.router.Active().Title())
	}

	m = drive(t, m, tea.KeyPressMsg{Code: '/', Text: "/"})
	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Active().Title() != "Select Characters" {
		t.Error("esc in the search box should not leave the screen")
	}

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Error("second esc should go back home")
	}
}

func TestViewFrame(t *testing.T) {
	ctrl := newController(t)
	m, err := newAppModel(Options{Controller: ctrl})
	if err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(AppModel)

	content := viewString(m)
	for _, want := range []string{"Kanaflash", "Home", "Character → Sound", "light"} {
		if !strings.Contains(content, want) {
			t.Errorf("frame missing %q", want)
		}
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(AppModel)
	if !strings.Contains(viewString(m), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestCtrlCQuits(t *testing.T) {
	ctrl := newController(t)
	ctrl.Toggle("h-a")
	m, err := newAppModel(Options{Controller: ctrl, StartStudy: true})
	if err != nil {
		t.Fatal(err)
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
	if ctrl.Deck().Active() {
		t.Error("ctrl+c should end the session")
	}
}
