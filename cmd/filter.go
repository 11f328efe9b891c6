package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/spf13/cobra"
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("script", "", "Filter by script (hiragana, katakana or kanji)")
	cmd.Flags().String("level", "", "Filter kanji by level (1-5) or JLPT name (N5-N1)")
	cmd.Flags().String("search", "", "Filter by glyph, romaji or meaning")
}

// filterFromFlags builds a catalog filter from the flags added by
// addFilterFlags.
func filterFromFlags(cmd *cobra.Command) (catalog.Filter, error) {
	script, _ := cmd.Flags().GetString("script")
	level, _ := cmd.Flags().GetString("level")
	search, _ := cmd.Flags().GetString("search")

	var f catalog.Filter
	if script != "" {
		s := catalog.Script(strings.ToLower(script))
		if !slices.Contains(catalog.Scripts, s) {
			return f, fmt.Errorf("unknown script %q", script)
		}
		f.Script = s
	}
	if level != "" {
		l, err := parseLevel(level)
		if err != nil {
			return f, err
		}
		f.Level = l
	}
	f.Search = search
	return f, nil
}

// parseLevel accepts a numeric level or a JLPT name, so "N5" and "1" are
// the same level.
func parseLevel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "N"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < catalog.MinLevel || n > catalog.MaxLevel {
			return 0, fmt.Errorf("unknown JLPT level %q", s)
		}
		return 6 - n, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < catalog.MinLevel || n > catalog.MaxLevel {
		return 0, fmt.Errorf("level must be between %d and %d, got %q", catalog.MinLevel, catalog.MaxLevel, s)
	}
	return n, nil
}
