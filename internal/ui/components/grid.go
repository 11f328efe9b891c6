package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/kanaflash/internal/ui/theme"
)

// DefaultCellWidth fits a mark, a double-width glyph and a short romaji.
const DefaultCellWidth = 12

// GridCell is one character tile.
type GridCell struct {
	Glyph  string
	Sub    string
	Marked bool
	// Style overrides the default text style when non-nil.
	Style *lipgloss.Style
}

// Grid lays out cells in as many columns as fit the width. Cursor is the
// highlighted cell, or -1 for a read-only grid scrolled by Offset rows.
type Grid struct {
	Cells     []GridCell
	Cursor    int
	Offset    int
	CellWidth int
	Mark      string
}

func (g Grid) cellWidth() int {
	if g.CellWidth > 0 {
		return g.CellWidth
	}
	return DefaultCellWidth
}

// Columns returns how many cells fit on one row of the given width.
func (g Grid) Columns(width int) int {
	return max(1, width/g.cellWidth())
}

// Rows returns the number of rows needed for all cells.
func (g Grid) Rows(width int) int {
	cols := g.Columns(width)
	return (len(g.Cells) + cols - 1) / cols
}

// Move shifts the cursor by key ("up", "down", "left", "right") and
// clamps it to the cells.
func (g Grid) Move(key string, width int) Grid {
	if len(g.Cells) == 0 {
		g.Cursor = 0
		return g
	}
	cols := g.Columns(width)
	next := g.Cursor
	switch key {
	case "left", "h":
		next--
	case "right", "l":
		next++
	case "up", "k":
		next -= cols
	case "down", "j":
		next += cols
	case "home":
		next = 0
	case "end":
		next = len(g.Cells) - 1
	}
	if next >= 0 && next < len(g.Cells) {
		g.Cursor = next
	}
	return g
}

// View renders at most height rows. With a cursor the window follows it;
// without one it starts at Offset.
func (g Grid) View(width, height int) string {
	if len(g.Cells) == 0 {
		return ""
	}
	cols := g.Columns(width)
	rows := g.Rows(width)
	height = max(1, height)

	start := g.Offset
	if g.Cursor >= 0 {
		row := g.Cursor / cols
		start = 0
		if row >= height {
			start = row - height + 1
		}
	}
	start = max(0, min(start, rows-height))

	mark := g.Mark
	if mark == "" {
		mark = "●"
	}

	var b strings.Builder
	for r := start; r < min(rows, start+height); r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(g.Cells) {
				break
			}
			b.WriteString(g.renderCell(g.Cells[i], i == g.Cursor, mark))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (g Grid) renderCell(cell GridCell, focused bool, mark string) string {
	prefix := "  "
	if cell.Marked {
		prefix = mark + " "
	}
	text := prefix + cell.Glyph
	if cell.Sub != "" {
		text += " " + cell.Sub
	}
	w := g.cellWidth()
	text = runewidth.FillRight(runewidth.Truncate(text, w-1, "…"), w)

	style := theme.Unselected
	if cell.Marked {
		style = theme.Selected
	}
	if cell.Style != nil {
		style = *cell.Style
	}
	if focused {
		style = style.Reverse(true)
	}
	return style.Render(text)
}
