// Package theme holds the color palettes and shared styles. Styles are
// package variables rebuilt by Apply, so callers always read the current
// palette.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is one complete set of UI colors.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

// Light is the default palette.
var Light = Palette{
	Primary:   lipgloss.Color("#4F46E5"), // Indigo
	Secondary: lipgloss.Color("#0D9488"), // Teal
	Accent:    lipgloss.Color("#DB2777"), // Pink
	Success:   lipgloss.Color("#16A34A"),
	Error:     lipgloss.Color("#DC2626"),
	Text:      lipgloss.Color("#1F2937"),
	TextDim:   lipgloss.Color("#6B7280"),
	Bg:        lipgloss.Color("#F9FAFB"),
	BgCard:    lipgloss.Color("#E5E7EB"),
	Border:    lipgloss.Color("#9CA3AF"),
}

// Dark is the dark-mode palette.
var Dark = Palette{
	Primary:   lipgloss.Color("#A78BFA"), // Violet
	Secondary: lipgloss.Color("#2DD4BF"), // Teal
	Accent:    lipgloss.Color("#F472B6"), // Pink
	Success:   lipgloss.Color("#4ADE80"),
	Error:     lipgloss.Color("#F87171"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	Bg:        lipgloss.Color("#0F172A"),
	BgCard:    lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
}

// Current palette colors.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
	Mastered   lipgloss.Style
	Notice     lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
)

var dark bool

func init() {
	Apply(false)
}

// IsDark reports whether the dark palette is active.
func IsDark() bool { return dark }

// Apply switches to the dark or light palette and rebuilds every style.
func Apply(isDark bool) {
	dark = isDark
	p := Light
	if isDark {
		p = Dark
	}

	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	Bg, BgCard, Border = p.Bg, p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Mastered = lipgloss.NewStyle().
		Foreground(Success)

	Notice = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)
}

// Indicator is the short header label for the active theme.
func Indicator() string {
	if dark {
		return "☾ dark"
	}
	return "☀ light"
}
