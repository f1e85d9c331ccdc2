package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderPopup draws popup in a rounded card centred over base. Without a known
// terminal size the card is appended below base instead.
func renderPopup(base, popup string, width, height int, border lipgloss.Color) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(popup)
	if width <= 0 || height <= 0 {
		return base + "\n\n" + card
	}
	c := newCanvas(base, width, height)
	c.stamp(strings.Split(card, "\n"))
	return c.String()
}

// canvas is a fixed-size grid of styled rows, each exactly width cells wide.
type canvas struct {
	rows  []string
	width int
}

func newCanvas(s string, width, height int) *canvas {
	rows := make([]string, height)
	for i, line := range strings.SplitN(s, "\n", height+1) {
		if i == height {
			break
		}
		rows[i] = line
	}
	for i := range rows {
		rows[i] = fitCells(rows[i], width)
	}
	return &canvas{rows: rows, width: width}
}

// stamp centres block on the canvas.
func (c *canvas) stamp(block []string) {
	w := 0
	for _, line := range block {
		w = max(w, ansi.StringWidth(line))
	}
	if w == 0 {
		return
	}
	w = min(w, c.width)
	c.place(block, w, max(0, (c.width-w)/2), max(0, (len(c.rows)-len(block))/2))
}

// place splices block, w cells wide, into the canvas with its top-left corner
// at column x of row y. The cells to the left and right of the block keep the
// canvas content, styles included.
func (c *canvas) place(block []string, w, x, y int) {
	for i, line := range block {
		row := y + i
		if row >= len(c.rows) {
			return
		}
		under := c.rows[row]
		left := ansi.Truncate(under, x, "")
		right := ansi.TruncateLeft(under, x+w, "")
		c.rows[row] = fitCells(left+fitCells(line, w)+right, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.rows, "\n")
}

// fitCells truncates or space-pads s to exactly n display cells.
func fitCells(s string, n int) string {
	if n <= 0 {
		return ""
	}
	s = ansi.Truncate(s, n, "")
	if gap := n - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
