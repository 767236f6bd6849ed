package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/forestfire/internal/forest"
)

// Color is an index into the 16-colour ANSI palette.
type Color uint8

const (
	Black Color = iota
	DarkRed
	DarkGreen
	DarkYellow
	DarkBlue
	DarkPurple
	DarkCyan
	Gray
	DarkGray
	Red
	Green
	Yellow
	Blue
	Purple
	Cyan
	White
)

// HoverBg replaces the background of the cell under the pointer.
const HoverBg = DarkGreen

// Lipgloss converts c into a terminal colour.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(int(c)))
}

// Style is what one cell looks like on screen.
type Style struct {
	Glyph rune
	Fg    Color
	Bg    Color
}

// Table maps every cell state to its style.
type Table [forest.NumCells]Style

// DefaultTable is the classic console look: commas for saplings and rubble,
// T for trees, and a red ramp through the flame stages.
func DefaultTable() Table {
	var t Table
	set := func(c forest.Cell, glyph rune, fg, bg Color) {
		t[c] = Style{Glyph: glyph, Fg: fg, Bg: bg}
	}
	set(forest.Empty, ' ', Black, Black)
	set(forest.Sapling1, ',', DarkGreen, Black)
	set(forest.Sapling2, ',', DarkGreen, Black)
	set(forest.Sapling3, ',', DarkGreen, Black)
	set(forest.Sapling4, ',', Green, Black)
	set(forest.Sapling5, ',', Green, Black)
	set(forest.Tree, 'T', Green, Black)
	set(forest.Smoldering, 'T', DarkRed, Black)
	set(forest.Hot, 'T', Red, DarkRed)
	set(forest.Burning1, 'T', DarkRed, DarkRed)
	set(forest.Burning2, 'T', DarkRed, DarkRed)
	set(forest.Burning3, 'T', DarkRed, Red)
	set(forest.Burning4, 'T', Red, Red)
	set(forest.Burning5, 'T', Red, Red)
	set(forest.Burning6, 'T', Red, Red)
	set(forest.Burning7, 'T', DarkRed, Red)
	set(forest.Burning8, 'T', DarkRed, DarkRed)
	set(forest.Burning9, 'T', DarkRed, DarkRed)
	set(forest.HotEmber, 'T', DarkRed, Black)
	set(forest.Burnt, 'T', Gray, Black)
	set(forest.Collapsed, ',', Gray, Black)
	return t
}

// Lookup returns the style for c. Unknown states render as the terminal state.
func (t *Table) Lookup(c forest.Cell) Style {
	if !c.Valid() {
		return t[forest.Collapsed]
	}
	return t[c]
}
