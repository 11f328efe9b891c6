package catalog

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	counts := c.CountByScript()

	if counts[Hiragana] != 46 {
		t.Errorf("hiragana count = %d, want 46", counts[Hiragana])
	}
	if counts[Katakana] != 46 {
		t.Errorf("katakana count = %d, want 46", counts[Katakana])
	}
	if counts[Kanji] == 0 {
		t.Error("expected kanji in default catalog")
	}
	if c.Len() != counts[Hiragana]+counts[Katakana]+counts[Kanji] {
		t.Errorf("Len = %d, want sum of script counts", c.Len())
	}

	all := c.All()
	if all[0].Script != Hiragana {
		t.Errorf("first script = %q, want hiragana", all[0].Script)
	}
	if all[len(all)-1].Script != Kanji {
		t.Errorf("last script = %q, want kanji", all[len(all)-1].Script)
	}

	for _, ch := range all {
		if (ch.Script == Kanji) != (ch.Level != 0) {
			t.Errorf("character %s: script %s with level %d", ch.ID, ch.Script, ch.Level)
		}
	}

	levels := c.CountByLevel()
	total := 0
	for lvl := MinLevel; lvl <= MaxLevel; lvl++ {
		if levels[lvl] == 0 {
			t.Errorf("no kanji at level %d", lvl)
		}
		total += levels[lvl]
	}
	if total != counts[Kanji] {
		t.Errorf("level total = %d, want %d", total, counts[Kanji])
	}
}

func TestByID(t *testing.T) {
	c := Default()
	ch, ok := c.ByID("h-a")
	if !ok {
		t.Fatal("expected h-a in catalog")
	}
	if ch.Glyph != "あ" || ch.Romaji != "a" {
		t.Errorf("h-a = %+v", ch)
	}
	if _, ok := c.ByID("nope"); ok {
		t.Error("expected unknown id to be absent")
	}
}

func TestNewRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name  string
		chars []Character
	}{
		{"missing glyph", []Character{{ID: "x", Romaji: "a", Script: Hiragana}}},
		{"unknown script", []Character{{ID: "x", Glyph: "x", Romaji: "a", Script: "latin"}}},
		{"kana with level", []Character{{ID: "x", Glyph: "あ", Romaji: "a", Script: Hiragana, Level: 1}}},
		{"kanji without level", []Character{{ID: "x", Glyph: "日", Romaji: "hi", Script: Kanji}}},
		{"level out of range", []Character{{ID: "x", Glyph: "日", Romaji: "hi", Script: Kanji, Level: 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.chars); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Character{
		{ID: "a1", Glyph: "あ", Romaji: "a", Script: Hiragana},
		{ID: "a1", Glyph: "ア", Romaji: "a", Script: Katakana},
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}
}

func TestLoadOrdersByScript(t *testing.T) {
	fsys := fstest.MapFS{
		"data/a.yaml": {Data: []byte("script: kanji\ncharacters:\n  - {id: k1, glyph: 日, romaji: hi, meaning: sun, level: 1}\n")},
		"data/b.yaml": {Data: []byte("script: hiragana\ncharacters:\n  - {id: h1, glyph: あ, romaji: a}\n")},
	}
	c, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	all := c.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].ID != "h1" || all[1].ID != "k1" {
		t.Errorf("order = [%s %s], want [h1 k1]", all[0].ID, all[1].ID)
	}
	if all[0].Script != Hiragana {
		t.Errorf("script not inherited from file: %q", all[0].Script)
	}
}

func TestLoadRejectsScriptMismatch(t *testing.T) {
	fsys := fstest.MapFS{
		"data/a.yaml": {Data: []byte("script: hiragana\ncharacters:\n  - {id: k1, glyph: ア, romaji: a, script: katakana}\n")},
	}
	if _, err := Load(fsys); err == nil {
		t.Error("expected error for script mismatch")
	}
}

func TestLoadEmpty(t *testing.T) {
	if _, err := Load(fstest.MapFS{}); err == nil {
		t.Error("expected error for empty fs")
	}
}

func TestResolve(t *testing.T) {
	c := Default()
	got := c.Resolve([]string{"k-a", "missing", "h-i", "h-a", "h-a"})
	want := []string{"h-a", "h-i", "k-a"}
	if len(got) != len(want) {
		t.Fatalf("Resolve len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Resolve[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestLevelLabel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "N5"},
		{3, "N3"},
		{5, "N1"},
		{0, ""},
		{6, ""},
	}
	for _, tt := range tests {
		if got := LevelLabel(tt.level); got != tt.want {
			t.Errorf("LevelLabel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
