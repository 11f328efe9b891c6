package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaflash/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that hold state which must be released
// when they leave the stack through a pop or a replace.
type Closer interface {
	Close()
}

// InputCapturer is implemented by screens that sometimes consume keys the
// app would otherwise handle globally, such as esc while a search box or
// confirmation prompt is open.
type InputCapturer interface {
	CapturingInput() bool
}
