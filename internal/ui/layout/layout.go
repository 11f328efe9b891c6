package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaflash/internal/ui/theme"
)

// MinWidth and MinHeight fit a four-row character grid with its tabs.
const (
	MinWidth  = 80
	MinHeight = 24
)

// AppName is shown at the left of the header.
const AppName = "Kanaflash"

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// barInset is the border plus one cell of padding on each side.
const barInset = 4

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nKanaflash needs at least %d x %d\n(current %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader lays out the app name, the centered screen title and the
// study mode with the theme indicator.
func RenderHeader(title, mode string, width int) string {
	inner := max(0, width-barInset)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(AppName)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(mode) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+theme.Indicator())
	center := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title)

	// Center the title on the bar, keeping at least one space between the
	// parts when the terminal is narrow.
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max(1, (inner-cw)/2-lw)
	gapR := max(1, inner-lw-gapL-cw-rw)
	line := left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right

	return bar(line, width)
}

// RenderFooter renders key hints, dropping trailing hints that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(0, width-barInset)
	sep := theme.Hint.Render("  ·  ")

	var line string
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		next := part
		if line != "" {
			next = line + sep + part
		}
		if lipgloss.Width(next) > inner {
			break
		}
		line = next
	}
	return bar(line, width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))

	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
