package session

import "fmt"

// Mode selects which face of a card is the prompt.
type Mode string

const (
	// ModeGlyphToSound prompts with the glyph and reveals the reading.
	ModeGlyphToSound Mode = "character-to-sound"
	// ModeSoundToGlyph prompts with the reading and reveals the glyph.
	ModeSoundToGlyph Mode = "sound-to-character"
)

// DefaultMode is the mode used when nothing has been chosen.
const DefaultMode = ModeGlyphToSound

// ParseMode accepts the canonical mode names and their short aliases.
func ParseMode(s string) (Mode, error) {
	switch s {
	case string(ModeGlyphToSound), "glyph-to-sound", "g2s":
		return ModeGlyphToSound, nil
	case string(ModeSoundToGlyph), "sound-to-glyph", "s2g":
		return ModeSoundToGlyph, nil
	}
	return "", fmt.Errorf("unknown study mode %q", s)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeGlyphToSound || m == ModeSoundToGlyph
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeSoundToGlyph {
		return ModeGlyphToSound
	}
	return ModeSoundToGlyph
}

// Label returns a short display name.
func (m Mode) Label() string {
	switch m {
	case ModeSoundToGlyph:
		return "Sound → Character"
	default:
		return "Character → Sound"
	}
}
