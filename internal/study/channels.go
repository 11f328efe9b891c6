package study

import (
	"github.com/abhisek/kanaflash/internal/kv"
	"github.com/abhisek/kanaflash/internal/session"
	"github.com/abhisek/kanaflash/internal/snapshot"
)

// Snapshot keys.
const (
	SelectionKey = "kanaflash.session"
	ModeKey      = "kanaflash.mode"
	ThemeKey     = "kanaflash.theme"
)

// SelectionPayload is the saved character selection and the mode it was
// saved with.
type SelectionPayload struct {
	SelectedCharacterIDs []string     `json:"selectedCharacterIds"`
	Mode                 session.Mode `json:"mode"`
}

// ModePayload is the saved study mode.
type ModePayload struct {
	Mode session.Mode `json:"mode"`
}

// ThemePayload is the saved color theme.
type ThemePayload struct {
	DarkMode bool `json:"darkMode"`
}

const modeEnum = `{"type": "string", "enum": ["character-to-sound", "sound-to-character"]}`

const selectionSchema = `{
  "type": "object",
  "properties": {
    "selectedCharacterIds": {"type": "array", "items": {"type": "string"}},
    "mode": ` + modeEnum + `
  },
  "required": ["selectedCharacterIds", "mode"]
}`

const modeSchema = `{
  "type": "object",
  "properties": {"mode": ` + modeEnum + `},
  "required": ["mode"]
}`

const themeSchema = `{
  "type": "object",
  "properties": {"darkMode": {"type": "boolean"}},
  "required": ["darkMode"]
}`

// Channels are the three independently expiring view-state snapshots.
type Channels struct {
	Selection *snapshot.Cache[SelectionPayload]
	Mode      *snapshot.Cache[ModePayload]
	Theme     *snapshot.Cache[ThemePayload]
}

// NewChannels builds the snapshot channels on store. opts apply to all
// three caches.
func NewChannels(store kv.Store, opts ...snapshot.Option) Channels {
	with := func(name, schema string) []snapshot.Option {
		o := append([]snapshot.Option{}, opts...)
		return append(o, snapshot.WithPayloadSchema(name, schema))
	}
	return Channels{
		Selection: snapshot.New[SelectionPayload](store, SelectionKey, with("selection", selectionSchema)...),
		Mode:      snapshot.New[ModePayload](store, ModeKey, with("mode", modeSchema)...),
		Theme:     snapshot.New[ThemePayload](store, ThemeKey, with("theme", themeSchema)...),
	}
}
