package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// rawStyle marks a cell holding a pre-rendered ANSI segment.
const rawStyle = -1

type cell struct {
	text  string // "" for continuation cells
	style int
	span  int // columns owned by a head cell
	head  int // column of the owning head cell
}

// Canvas is a fixed grid of terminal cells. Every drawing primitive clips
// to the grid: rows outside it are ignored and text past the right edge is
// dropped, so callers never need to check bounds.
type Canvas struct {
	width  int
	height int
	rows   [][]cell
	styles []lipgloss.Style
}

// NewCanvas returns a blank canvas. Negative sizes are treated as zero.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	c := &Canvas{
		width:  width,
		height: height,
		rows:   make([][]cell, height),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for y := range c.rows {
		c.rows[y] = make([]cell, width)
		for x := range c.rows[y] {
			c.rows[y][x] = blank(x)
		}
	}
	return c
}

func blank(x int) cell {
	return cell{text: " ", span: 1, head: x}
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// PutText draws unstyled text.
func (c *Canvas) PutText(y, x int, text string) {
	c.put(y, x, text, 0)
}

// Put draws text with style starting at column x. Characters left of
// column 0 or right of the last column are skipped. Wide runes that do not
// fit entirely are skipped too.
func (c *Canvas) Put(y, x int, text string, style lipgloss.Style) {
	if y < 0 || y >= c.height {
		return
	}
	c.styles = append(c.styles, style)
	c.put(y, x, text, len(c.styles)-1)
}

func (c *Canvas) put(y, x int, text string, style int) {
	if y < 0 || y >= c.height {
		return
	}
	col := x
	for _, r := range text {
		if r < ' ' {
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= c.width {
			return
		}
		if col >= 0 && col+w <= c.width {
			c.set(y, col, string(r), style, w)
		}
		col += w
	}
}

// PutRaw draws a single line that is already rendered, such as the output
// of a bubbles component. The line is truncated at the right edge. It is
// dropped when x is left of the grid.
func (c *Canvas) PutRaw(y, x int, line string) {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return
	}
	w := ansi.PrintableRuneWidth(line)
	if x+w > c.width {
		line = truncate.String(line, uint(c.width-x))
		w = ansi.PrintableRuneWidth(line)
	}
	if w == 0 {
		return
	}
	c.set(y, x, line, rawStyle, w)
}

// PutBlock draws a multi-line rendered string with its top-left corner at
// (y, x).
func (c *Canvas) PutBlock(y, x int, block string) {
	for i, line := range strings.Split(block, "\n") {
		c.PutRaw(y+i, x, line)
	}
}

// Fill paints a rectangle with r in style.
func (c *Canvas) Fill(y, x, h, w int, r rune, style lipgloss.Style) {
	if h <= 0 || w <= 0 {
		return
	}
	row := strings.Repeat(string(r), w)
	for i := 0; i < h; i++ {
		c.Put(y+i, x, row, style)
	}
}

// Box draws a rounded border of h rows and w columns with an optional title
// set into the top edge.
func (c *Canvas) Box(y, x, h, w int, title string, style lipgloss.Style) {
	if h < 2 || w < 2 {
		return
	}
	b := lipgloss.RoundedBorder()
	inner := w - 2
	c.Put(y, x, b.TopLeft+strings.Repeat(b.Top, inner)+b.TopRight, style)
	for i := 1; i < h-1; i++ {
		c.Put(y+i, x, b.Left, style)
		c.Put(y+i, x+w-1, b.Right, style)
	}
	c.Put(y+h-1, x, b.BottomLeft+strings.Repeat(b.Bottom, inner)+b.BottomRight, style)
	if title != "" && inner > 2 {
		c.Put(y, x+2, runewidth.Truncate(" "+title+" ", inner-2, ""), style.Bold(true))
	}
}

// set stores a head cell at (y, x) covering span columns. Any cell it
// overlaps is cleared first, including the rest of a wide rune or raw
// segment that only partly overlaps.
func (c *Canvas) set(y, x int, text string, style, span int) {
	row := c.rows[y]
	for i := x; i < x+span; i++ {
		c.clear(row, i)
	}
	row[x] = cell{text: text, style: style, span: span, head: x}
	for i := 1; i < span; i++ {
		row[x+i] = cell{style: style, head: x}
	}
}

func (c *Canvas) clear(row []cell, x int) {
	h := row[x].head
	span := row[h].span
	for i := h; i < h+span && i < len(row); i++ {
		row[i] = blank(i)
	}
}

// Render returns the grid as newline separated lines. Adjacent cells drawn
// by the same call share one styled run.
func (c *Canvas) Render() string {
	var out strings.Builder
	var run strings.Builder
	for y, row := range c.rows {
		if y > 0 {
			out.WriteByte('\n')
		}
		runStyle := 0
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle == 0 {
				out.WriteString(run.String())
			} else {
				out.WriteString(c.styles[runStyle].Render(run.String()))
			}
			run.Reset()
		}
		for x, cl := range row {
			if cl.head != x {
				continue
			}
			if cl.style == rawStyle {
				flush()
				out.WriteString(cl.text)
				continue
			}
			if cl.style != runStyle {
				flush()
				runStyle = cl.style
			}
			run.WriteString(cl.text)
		}
		flush()
	}
	return out.String()
}

// Lines returns Render split into rows.
func (c *Canvas) Lines() []string {
	if c.height == 0 {
		return nil
	}
	return strings.Split(c.Render(), "\n")
}
