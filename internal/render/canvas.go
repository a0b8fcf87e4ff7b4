package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style tags a run of canvas glyphs; the caller maps it to colors at Render
type Style uint8

const (
	StyleNone Style = iota
	StyleGap
	StyleHeader
	StyleBody
	StyleSelected
	StyleCursor
	StyleIndicator
)

// Box is an integer rectangle in terminal columns and lines
type Box struct {
	X, Y, W, H int
}

// Intersect returns the overlap of two boxes, empty when they do not overlap
func (b Box) Intersect(o Box) Box {
	x0, y0 := max(b.X, o.X), max(b.Y, o.Y)
	x1, y1 := min(b.X+b.W, o.X+o.W), min(b.Y+b.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Box{}
	}
	return Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the box covers no columns or no lines
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

func (b Box) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

type glyph struct {
	r     rune
	style Style
	// second column of a wide rune
	cont bool
}

// Canvas is a fixed-size grid of terminal columns
type Canvas struct {
	width  int
	height int
	lines  [][]glyph
}

// NewCanvas returns a canvas filled with unstyled spaces
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{width: width, height: height, lines: make([][]glyph, height)}
	for y := range c.lines {
		line := make([]glyph, width)
		for x := range line {
			line[x] = glyph{r: ' '}
		}
		c.lines[y] = line
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Bounds is the box covering the whole canvas
func (c *Canvas) Bounds() Box {
	return Box{W: c.width, H: c.height}
}

// Fill paints every column of box with r
func (c *Canvas) Fill(box Box, r rune, style Style) {
	box = box.Intersect(c.Bounds())
	for y := box.Y; y < box.Y+box.H; y++ {
		for x := box.X; x < box.X+box.W; x++ {
			c.set(x, y, glyph{r: r, style: style})
		}
	}
}

// Text writes s starting at (x, y), dropping whatever falls outside clip or
// the canvas. It returns the number of columns s would occupy unclipped.
func (c *Canvas) Text(x, y int, s string, clip Box, style Style) int {
	clip = clip.Intersect(c.Bounds())
	col := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		switch {
		case rw == 1 && clip.contains(col, y):
			c.set(col, y, glyph{r: r, style: style})
		case rw == 2 && clip.contains(col, y) && clip.contains(col+1, y):
			c.set(col, y, glyph{r: r, style: style})
			c.set(col+1, y, glyph{style: style, cont: true})
		case rw == 2:
			// half visible: blank the visible column
			for _, cx := range []int{col, col + 1} {
				if clip.contains(cx, y) {
					c.set(cx, y, glyph{r: ' ', style: style})
				}
			}
		}
		col += rw
	}
	return col - x
}

// set writes one glyph, blanking the other half of any wide rune it splits
func (c *Canvas) set(x, y int, g glyph) {
	line := c.lines[y]
	old := line[x]
	if old.cont && x > 0 && !g.cont {
		line[x-1] = glyph{r: ' ', style: line[x-1].style}
	}
	if !old.cont && runewidth.RuneWidth(old.r) == 2 && x+1 < c.width {
		line[x+1] = glyph{r: ' ', style: line[x+1].style}
	}
	line[x] = g
}

// Style returns the style at (x, y)
func (c *Canvas) Style(x, y int) Style {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return StyleNone
	}
	return c.lines[y][x].style
}

// Lines returns the plain text of each line
func (c *Canvas) Lines() []string {
	out := make([]string, c.height)
	for y, line := range c.lines {
		var b strings.Builder
		for _, g := range line {
			if !g.cont {
				b.WriteRune(g.r)
			}
		}
		out[y] = b.String()
	}
	return out
}

// Render joins the lines, passing each run of equally styled text through
// paint
func (c *Canvas) Render(paint func(style Style, text string) string) string {
	lines := make([]string, c.height)
	for y, line := range c.lines {
		var b, run strings.Builder
		current := StyleNone
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(paint(current, run.String()))
				run.Reset()
			}
		}
		for _, g := range line {
			if g.cont {
				continue
			}
			if g.style != current {
				flush()
				current = g.style
			}
			run.WriteRune(g.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
