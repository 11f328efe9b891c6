package catalog

import "testing"

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]Character{
		{ID: "h-a", Glyph: "あ", Romaji: "a", Script: Hiragana},
		{ID: "h-ka", Glyph: "か", Romaji: "ka", Script: Hiragana},
		{ID: "k-a", Glyph: "ア", Romaji: "a", Script: Katakana},
		{ID: "kj-1", Glyph: "日", Romaji: "nichi / hi", Meaning: "sun, day", Script: Kanji, Level: 1},
		{ID: "kj-2", Glyph: "会", Romaji: "kai", Meaning: "meet", Script: Kanji, Level: 2},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func ids(chars []Character) []string {
	out := make([]string, len(chars))
	for i, ch := range chars {
		out[i] = ch.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero", Filter{}, []string{"h-a", "h-ka", "k-a", "kj-1", "kj-2"}},
		{"script", Filter{Script: Hiragana}, []string{"h-a", "h-ka"}},
		{"level", Filter{Level: 2}, []string{"kj-2"}},
		{"level excludes kana", Filter{Script: Hiragana, Level: 1}, nil},
		{"glyph", Filter{Search: "日"}, []string{"kj-1"}},
		{"romaji case-insensitive", Filter{Search: "KA"}, []string{"h-ka", "kj-2"}},
		{"full-width romaji", Filter{Search: "ｋａ"}, []string{"h-ka", "kj-2"}},
		{"meaning", Filter{Search: "meet"}, []string{"kj-2"}},
		{"combined", Filter{Script: Kanji, Search: "sun"}, []string{"kj-1"}},
		{"no match", Filter{Search: "zzz"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(c.Filter(tt.filter))
			if len(got) != len(tt.want) {
				t.Fatalf("Filter = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Filter = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{Search: "  "}).IsZero() {
		t.Error("whitespace search should be zero")
	}
	if (Filter{Level: 1}).IsZero() {
		t.Error("level filter should not be zero")
	}
}
