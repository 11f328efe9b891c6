package catalog

import (
	"strings"

	"golang.org/x/text/width"
)

// Filter narrows the catalog. Zero fields match everything.
type Filter struct {
	Script Script
	// Level matches only characters with exactly this level, so any
	// non-zero value excludes kana.
	Level  int
	Search string
}

// IsZero reports whether the filter matches every character.
func (f Filter) IsZero() bool {
	return f.Script == "" && f.Level == 0 && strings.TrimSpace(f.Search) == ""
}

// Matches reports whether ch passes the filter. Search matches a substring
// of the glyph, romaji or meaning; romaji and meaning comparisons ignore
// case and full-width forms.
func (f Filter) Matches(ch Character) bool {
	if f.Script != "" && ch.Script != f.Script {
		return false
	}
	if f.Level != 0 && ch.Level != f.Level {
		return false
	}
	term := strings.TrimSpace(f.Search)
	if term == "" {
		return true
	}
	if strings.Contains(ch.Glyph, term) {
		return true
	}
	folded := fold(term)
	return strings.Contains(fold(ch.Romaji), folded) ||
		(ch.Meaning != "" && strings.Contains(fold(ch.Meaning), folded))
}

// Filter returns the characters matching f in catalog order.
func (c *Catalog) Filter(f Filter) []Character {
	if f.IsZero() {
		return c.All()
	}
	var out []Character
	for _, ch := range c.chars {
		if f.Matches(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// fold normalizes full-width latin to ASCII and lowercases.
func fold(s string) string {
	return strings.ToLower(width.Fold.String(s))
}
