// Package render projects the forest onto a grid of styled glyphs.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/forestfire/internal/forest"
)

// CellSource is the read side of a grid.
type CellSource interface {
	Width() int
	Height() int
	At(x, y int) forest.Cell
}

// Frame is one full W×H screen of styled glyphs.
type Frame struct {
	W, H  int
	Cells []Style
}

func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Cells: make([]Style, w*h)}
}

func (f *Frame) At(x, y int) Style {
	return f.Cells[y*f.W+x]
}

// Project fills dst from the grid. Only the background of the hovered cell
// differs from the table.
func Project(dst *Frame, table *Table, g CellSource, in forest.Interaction) {
	w, h := g.Width(), g.Height()
	if dst.W != w || dst.H != h {
		*dst = *NewFrame(w, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := table.Lookup(g.At(x, y))
			if in.Over(x, y) {
				s.Bg = HoverBg
			}
			dst.Cells[y*w+x] = s
		}
	}
}

// Render turns the frame into ANSI text. Runs of identically coloured cells in
// a row share one lipgloss style.
func (f *Frame) Render() string {
	var b strings.Builder
	b.Grow(f.W * f.H * 2)
	run := make([]rune, 0, f.W)
	for y := 0; y < f.H; y++ {
		row := f.Cells[y*f.W : (y+1)*f.W]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameColors(row[x], row[start]) {
				continue
			}
			run = run[:0]
			for _, s := range row[start:x] {
				run = append(run, s.Glyph)
			}
			b.WriteString(styleFor(row[start]).Render(string(run)))
			start = x
		}
		if y < f.H-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// String renders glyphs only, without colour.
func (f *Frame) String() string {
	var b strings.Builder
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			b.WriteRune(f.At(x, y).Glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func sameColors(a, b Style) bool { return a.Fg == b.Fg && a.Bg == b.Bg }

var styles [16][16]lipgloss.Style

func init() {
	for fg := range styles {
		for bg := range styles[fg] {
			styles[fg][bg] = lipgloss.NewStyle().
				Foreground(Color(fg).Lipgloss()).
				Background(Color(bg).Lipgloss())
		}
	}
}

func styleFor(s Style) lipgloss.Style {
	return styles[s.Fg&15][s.Bg&15]
}
