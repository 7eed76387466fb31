package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cellKind byte

const (
	cellBlank cellKind = iota
	cellReticle
	cellMarker
	cellRange
	cellHint
	cellTick
	cellCardinal
	cellRing
	cellAxis
	cellWindow
	cellArrow
	cellHeading
)

// canvas is a character grid where every cell remembers what drew it, so
// styling happens once at render time.
type canvas struct {
	width  int
	height int
	cells  [][]rune
	kinds  [][]cellKind
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.cells = make([][]rune, height)
	c.kinds = make([][]cellKind, height)
	for i := range c.cells {
		c.cells[i] = []rune(strings.Repeat(" ", width))
		c.kinds[i] = make([]cellKind, width)
	}
	return c
}

func (c *canvas) inside(col, row int) bool {
	return row >= 0 && row < c.height && col >= 0 && col < c.width
}

func (c *canvas) put(col, row int, ch rune, k cellKind) {
	if c.inside(col, row) {
		c.cells[row][col] = ch
		c.kinds[row][col] = k
	}
}

// putIfBlank draws only on empty cells.
func (c *canvas) putIfBlank(col, row int, ch rune, k cellKind) {
	if c.inside(col, row) && c.kinds[row][col] == cellBlank {
		c.put(col, row, ch, k)
	}
}

// text writes s centered on col.
func (c *canvas) text(col, row int, s string, k cellKind) {
	runes := []rune(s)
	start := col - len(runes)/2
	for i, ch := range runes {
		c.put(start+i, row, ch, k)
	}
}

// render joins the rows, styling each cell by its kind. Kinds missing from
// styles are written plain.
func (c *canvas) render(styles map[cellKind]lipgloss.Style) string {
	var sb strings.Builder
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			ch := string(c.cells[row][col])
			if sty, ok := styles[c.kinds[row][col]]; ok {
				sb.WriteString(sty.Render(ch))
			} else {
				sb.WriteString(ch)
			}
		}
		if row < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
