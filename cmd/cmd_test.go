package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/progress"
	"github.com/abhisek/kanaflash/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"5", 5, false},
		{"N5", 1, false},
		{"n1", 5, false},
		{" N3 ", 3, false},
		{"0", 0, true},
		{"6", 0, true},
		{"N6", 0, true},
		{"easy", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newFilterCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addFilterFlags(c)
	for k, v := range flags {
		require.NoError(t, c.Flags().Set(k, v))
	}
	return c
}

func TestFilterFromFlags(t *testing.T) {
	f, err := filterFromFlags(newFilterCmd(t, map[string]string{
		"script": "Kanji",
		"level":  "N5",
		"search": "sun",
	}))
	require.NoError(t, err)
	assert.Equal(t, catalog.Filter{Script: catalog.Kanji, Level: 1, Search: "sun"}, f)

	f, err = filterFromFlags(newFilterCmd(t, nil))
	require.NoError(t, err)
	assert.True(t, f.IsZero())

	_, err = filterFromFlags(newFilterCmd(t, map[string]string{"script": "cyrillic"}))
	assert.ErrorContains(t, err, "unknown script")
}

func TestWriteCatalog(t *testing.T) {
	chars := catalog.Default().Filter(catalog.Filter{Search: "sun"})
	require.NotEmpty(t, chars)

	var buf bytes.Buffer
	writeCatalog(&buf, chars)
	out := buf.String()

	assert.Contains(t, out, "kanji-001")
	assert.Contains(t, out, "日")
	assert.Contains(t, out, "N5")
	assert.Contains(t, out, "sun, day")
	assert.True(t, strings.HasSuffix(out, "characters\n"))
}

func TestWriteStats(t *testing.T) {
	st := progress.Stats{
		Total:    1200,
		Mastered: 300,
		Attempts: 4500,
		Correct:  3600,
		Accuracy: 80,
		NeedsPractice: []progress.Practice{{
			Character: catalog.Character{ID: "h-a", Glyph: "あ", Romaji: "a"},
			Entry:     progress.Entry{CharacterID: "h-a", CorrectCount: 1, IncorrectCount: 4},
		}},
		NeedsPracticeMore: 2,
		ByScript: []progress.ScriptStats{
			{Script: catalog.Hiragana, Mastered: 10, Total: 46},
		},
	}

	var buf bytes.Buffer
	writeStats(&buf, st)
	out := buf.String()

	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "4,500")
	assert.Contains(t, out, "(25.0%)")
	assert.Contains(t, out, "80.0%")
	assert.Contains(t, out, "Hiragana")
	assert.Contains(t, out, "Needs practice")
	assert.Contains(t, out, "1 correct / 4 incorrect")
	assert.Contains(t, out, "and 2 more")
}

func TestWriteStats_NoPractice(t *testing.T) {
	var buf bytes.Buffer
	writeStats(&buf, progress.Stats{})
	assert.NotContains(t, buf.String(), "Needs practice")
	assert.Contains(t, buf.String(), "(0.0%)")
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	writeHistory(&buf, nil)
	assert.Equal(t, "No sessions recorded.\n", buf.String())

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	buf.Reset()
	writeHistory(&buf, []store.SessionRecord{
		{ID: "a", Mode: "character-to-sound", StartedAt: start, EndedAt: start.Add(90 * time.Second), DeckSize: 10, Answered: 10, Correct: 7, Completed: true},
		{ID: "b", Mode: "sound-to-character", StartedAt: start, EndedAt: start.Add(time.Minute), DeckSize: 5, Answered: 2, Correct: 1},
	})
	out := buf.String()

	assert.Contains(t, out, "2026-03-01 09:00")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "Character → Sound")
	assert.Contains(t, out, "Sound → Character")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "ended early")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(tt.input), &out, "Sure?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Sure? [y/N] ", out.String())
	}
}

func TestStatsCommand_FreshDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KANAFLASH_LOG_FILE", "-")
	t.Setenv("KANAFLASH_DB", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"stats",
		"--db", filepath.Join(dir, "kanaflash.db"),
		"--config", filepath.Join(dir, "missing.toml"),
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Characters")
	assert.Contains(t, out.String(), "Accuracy     0.0%")
	assert.NotContains(t, out.String(), "Needs practice")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "kanaflash (devel)\n", out.String())
}
