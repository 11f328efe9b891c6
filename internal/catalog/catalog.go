// Package catalog holds the static character dataset studied by the app.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Script identifies a class of characters.
type Script string

const (
	Hiragana Script = "hiragana"
	Katakana Script = "katakana"
	Kanji    Script = "kanji"
)

// Scripts lists every script in display order.
var Scripts = []Script{Hiragana, Katakana, Kanji}

// Label returns the display name of the script.
func (s Script) Label() string {
	switch s {
	case Hiragana:
		return "Hiragana"
	case Katakana:
		return "Katakana"
	case Kanji:
		return "Kanji"
	default:
		return "All"
	}
}

func (s Script) rank() int {
	if i := slices.Index(Scripts, s); i >= 0 {
		return i
	}
	return len(Scripts)
}

// MinLevel and MaxLevel bound the kanji difficulty levels.
const (
	MinLevel = 1
	MaxLevel = 5
)

// LevelLabel returns the JLPT name for a kanji level: 1 is N5, 5 is N1.
func LevelLabel(level int) string {
	if level < MinLevel || level > MaxLevel {
		return ""
	}
	return fmt.Sprintf("N%d", 6-level)
}

// Character is one studyable record. Level is set only for kanji.
type Character struct {
	ID      string `yaml:"id" json:"id" validate:"required"`
	Glyph   string `yaml:"glyph" json:"glyph" validate:"required"`
	Romaji  string `yaml:"romaji" json:"romaji" validate:"required"`
	Meaning string `yaml:"meaning,omitempty" json:"meaning,omitempty"`
	Script  Script `yaml:"script" json:"script" validate:"required,oneof=hiragana katakana kanji"`
	Level   int    `yaml:"level,omitempty" json:"level,omitempty" validate:"omitempty,min=1,max=5"`
}

// LevelLabel returns the JLPT label of a kanji, or "" for kana.
func (c Character) LevelLabel() string {
	return LevelLabel(c.Level)
}

// ErrDuplicateID is returned when two records share an ID.
var ErrDuplicateID = errors.New("duplicate character id")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(characterLevelRule, Character{})
	return v
}

// characterLevelRule enforces that a level is present iff the record is kanji.
func characterLevelRule(sl validator.StructLevel) {
	c := sl.Current().Interface().(Character)
	switch {
	case c.Script == Kanji && c.Level == 0:
		sl.ReportError(c.Level, "Level", "level", "required_for_kanji", "")
	case c.Script != Kanji && c.Level != 0:
		sl.ReportError(c.Level, "Level", "level", "kanji_only", "")
	}
}

// Catalog is an immutable, ordered set of characters.
type Catalog struct {
	chars []Character
	byID  map[string]int
}

// New validates chars and builds a catalog preserving their order.
func New(chars []Character) (*Catalog, error) {
	c := &Catalog{
		chars: make([]Character, 0, len(chars)),
		byID:  make(map[string]int, len(chars)),
	}
	for _, ch := range chars {
		if err := validate.Struct(ch); err != nil {
			return nil, fmt.Errorf("character %q: %w", ch.ID, err)
		}
		if _, dup := c.byID[ch.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, ch.ID)
		}
		c.byID[ch.ID] = len(c.chars)
		c.chars = append(c.chars, ch)
	}
	return c, nil
}

type dataFile struct {
	Script     Script      `yaml:"script"`
	Characters []Character `yaml:"characters"`
}

//go:embed data/*.yaml
var embeddedData embed.FS

var defaultCatalog = MustLoad(embeddedData)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	return defaultCatalog
}

// Load reads every data/*.yaml file in fsys. Each file declares its script,
// which is applied to records that omit one. Records are ordered by script,
// then by their position in the file.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "data/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalog data: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog data files found")
	}

	var files []dataFile
	for _, path := range paths {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var f dataFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for i := range f.Characters {
			if f.Characters[i].Script == "" {
				f.Characters[i].Script = f.Script
			}
			if f.Characters[i].Script != f.Script {
				return nil, fmt.Errorf("%s: character %q has script %q, file declares %q",
					path, f.Characters[i].ID, f.Characters[i].Script, f.Script)
			}
		}
		files = append(files, f)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Script.rank() < files[j].Script.rank()
	})

	var all []Character
	for _, f := range files {
		all = append(all, f.Characters...)
	}
	return New(all)
}

// MustLoad is like Load but panics on error.
func MustLoad(fsys fs.FS) *Catalog {
	c, err := Load(fsys)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// All returns a copy of every character in catalog order.
func (c *Catalog) All() []Character {
	return slices.Clone(c.chars)
}

// Len returns the number of characters.
func (c *Catalog) Len() int {
	return len(c.chars)
}

// ByID looks up a character by its ID.
func (c *Catalog) ByID(id string) (Character, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Character{}, false
	}
	return c.chars[i], true
}

// Resolve maps ids to characters in catalog order. Unknown and repeated
// IDs are dropped.
func (c *Catalog) Resolve(ids []string) []Character {
	idx := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		i, ok := c.byID[id]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		idx = append(idx, i)
	}
	slices.Sort(idx)

	out := make([]Character, len(idx))
	for n, i := range idx {
		out[n] = c.chars[i]
	}
	return out
}

// CountByScript returns how many characters each script has.
func (c *Catalog) CountByScript() map[Script]int {
	counts := make(map[Script]int, len(Scripts))
	for _, ch := range c.chars {
		counts[ch.Script]++
	}
	return counts
}

// CountByLevel returns how many kanji each level has.
func (c *Catalog) CountByLevel() map[int]int {
	counts := make(map[int]int, MaxLevel)
	for _, ch := range c.chars {
		if ch.Script == Kanji {
			counts[ch.Level]++
		}
	}
	return counts
}
