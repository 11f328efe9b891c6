package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaflash/internal/ui/theme"
)

const titleFull = `╭────────────────────────────────╮
│   か  な  フ  ラ  ッ  シ  ュ   │
╰────────────────────────────────╯`

const titleCompact = "K · A · N · A · F · L · A · S · H"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	return max(20, min(60, frameWidth-6))
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar shows selection size and mastery in a bordered box.
func renderStatsBar(selected, mastered, total, cw int, compact bool) string {
	selStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	masteredStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			selStyle.Render(fmt.Sprintf("●%d", selected)),
			masteredStyle.Render(fmt.Sprintf("★%d/%d", mastered, total)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s",
			selStyle.Render(fmt.Sprintf("● %d SELECTED", selected)),
			masteredStyle.Render(fmt.Sprintf("★ %d / %d MASTERED", mastered, total)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 30

func renderMenu(items []string, selected, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Bg).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	buttons := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for short terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected, cw int) string {
	lines := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Bg).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderNotice(notice string, cw int) string {
	return theme.Notice.
		Width(cw).
		Align(lipgloss.Center).
		Render(notice)
}

// renderCabinetFrame wraps content in a double border centered in the area.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
