package selector

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/kv"
	"github.com/abhisek/kanaflash/internal/progress"
	"github.com/abhisek/kanaflash/internal/router"
	"github.com/abhisek/kanaflash/internal/study"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newScreen(t *testing.T) (*SelectorScreen, *study.Controller, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	ctrl := study.New(study.Options{
		Catalog:  catalog.Default(),
		Tracker:  progress.New(context.Background(), mem),
		Channels: study.NewChannels(mem),
	})
	return New(ctrl), ctrl, mem
}

func TestScriptAndLevelFilters(t *testing.T) {
	s, ctrl, _ := newScreen(t)
	cat := ctrl.Catalog()

	if len(s.filtered) != cat.Len() {
		t.Fatalf("initial filter shows %d, want %d", len(s.filtered), cat.Len())
	}

	s.Update(specialKey(tea.KeyTab))
	if len(s.filtered) != 46 || s.script() != catalog.Hiragana {
		t.Errorf("tab once: %d %s, want 46 hiragana", len(s.filtered), s.script())
	}

	s.Update(keyPress(']'))
	if s.level != 0 {
		t.Error("level should not change outside kanji")
	}

	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyTab))
	if s.script() != catalog.Kanji {
		t.Fatalf("script = %s, want kanji", s.script())
	}

	s.Update(keyPress(']'))
	if s.level != 1 {
		t.Fatalf("level = %d, want 1", s.level)
	}
	for _, ch := range s.filtered {
		if ch.Level != 1 {
			t.Errorf("%s has level %d", ch.ID, ch.Level)
		}
	}
	if len(s.filtered) != cat.CountByLevel()[1] {
		t.Errorf("filtered = %d, want %d", len(s.filtered), cat.CountByLevel()[1])
	}

	s.Update(keyPress('['))
	s.Update(keyPress('['))
	if s.level != catalog.MaxLevel {
		t.Errorf("level wraps to %d, want %d", s.level, catalog.MaxLevel)
	}

	s.Update(specialKey(tea.KeyTab))
	if s.scriptIdx != 0 || s.level != 0 {
		t.Errorf("leaving kanji should reset level, got idx=%d level=%d", s.scriptIdx, s.level)
	}
}

func TestSearch(t *testing.T) {
	s, _, _ := newScreen(t)

	s.Update(keyPress('/'))
	if !s.CapturingInput() {
		t.Fatal("search should capture input")
	}
	for _, r := range "water" {
		s.Update(keyPress(r))
	}
	if len(s.filtered) == 0 {
		t.Fatal("expected kanji meaning match for water")
	}
	for _, ch := range s.filtered {
		if !strings.Contains(ch.Meaning, "water") {
			t.Errorf("%s does not match water", ch.ID)
		}
	}

	// Keys typed into the box are not selection commands.
	s.Update(keyPress('a'))
	if s.ctrl.SelectedCount() != 0 {
		t.Error("typing should not select")
	}

	s.Update(specialKey(tea.KeyEscape))
	if s.CapturingInput() {
		t.Error("esc should leave the search box")
	}
	if s.search.Value() != "" || len(s.filtered) != s.ctrl.Catalog().Len() {
		t.Error("esc should clear the query")
	}
}

func TestToggleAndDebouncedSave(t *testing.T) {
	s, ctrl, mem := newScreen(t)
	ctx := context.Background()

	_, cmd := s.Update(specialKey(tea.KeySpace))
	if cmd == nil {
		t.Fatal("toggle should schedule a save")
	}
	if ctrl.SelectedCount() != 1 || !ctrl.IsSelected(s.filtered[0].ID) {
		t.Fatal("space should select the character under the cursor")
	}

	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeySpace))

	// A stale tick is ignored.
	s.Update(saveSelectionMsg{gen: 1})
	if _, ok := study.NewChannels(mem).Selection.Load(ctx); ok {
		t.Fatal("stale tick should not save")
	}

	s.Update(saveSelectionMsg{gen: s.gen})
	got, ok := study.NewChannels(mem).Selection.Load(ctx)
	if !ok || len(got.SelectedCharacterIDs) != 2 {
		t.Errorf("saved selection = %+v, %v", got, ok)
	}
}

func TestSelectAllAndDeselectAll(t *testing.T) {
	s, ctrl, _ := newScreen(t)

	s.Update(specialKey(tea.KeyTab)) // hiragana
	s.Update(keyPress('a'))
	if ctrl.SelectedCount() != 46 {
		t.Fatalf("SelectedCount = %d, want 46", ctrl.SelectedCount())
	}

	s.Update(specialKey(tea.KeyTab)) // katakana
	s.Update(keyPress('a'))
	if ctrl.SelectedCount() != 46 {
		t.Errorf("select all replaces the selection, got %d", ctrl.SelectedCount())
	}
	s.Update(keyPress('d'))
	if ctrl.SelectedCount() != 0 {
		t.Errorf("SelectedCount = %d after deselect, want 0", ctrl.SelectedCount())
	}
}

func TestStartStudy(t *testing.T) {
	s, ctrl, _ := newScreen(t)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("empty selection should not navigate")
	}
	if s.notice != study.ErrEmptySelection.Error() {
		t.Errorf("notice = %q", s.notice)
	}
	if !strings.Contains(s.View(100, 30), "select at least one") {
		t.Error("notice should be rendered")
	}

	s.Update(specialKey(tea.KeySpace))
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected navigation to study")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Study" {
		t.Fatalf("expected push of study screen, got %#v", cmd())
	}
	if !ctrl.Deck().Active() {
		t.Error("deck should be active")
	}
	if s.dirty {
		t.Error("starting study should flush the selection")
	}
}

func TestCloseFlushes(t *testing.T) {
	s, _, mem := newScreen(t)

	s.Update(specialKey(tea.KeySpace))
	s.Close()

	if _, ok := study.NewChannels(mem).Selection.Load(context.Background()); !ok {
		t.Error("Close should save pending edits")
	}
}

func TestEmptySelectionErrorIsSentinel(t *testing.T) {
	_, ctrl, _ := newScreen(t)
	if err := ctrl.StartStudy(); !errors.Is(err, study.ErrEmptySelection) {
		t.Errorf("err = %v", err)
	}
}
