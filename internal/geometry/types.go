// Package geometry provides the grid geometry used to place spreadsheet cells
// Geometry Layer: prefix-summed row/column extents and range queries
package geometry

import "fmt"

// GridIndex identifies a cell in the logical grid
type GridIndex struct {
	Row    int
	Column int
}

// String returns "r<row>c<column>"
func (i GridIndex) String() string {
	return fmt.Sprintf("r%dc%d", i.Row, i.Column)
}

// Point is a location in a pane's content space
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width and height
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect builds a rect from its components
func NewRect(x, y, width, height float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

func (r Rect) MinX() float64 { return r.Origin.X }
func (r Rect) MinY() float64 { return r.Origin.Y }
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// IsEmpty reports whether the rect has no area
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Intersects reports whether r and o overlap with positive area.
// Rects that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Contains reports whether p lies inside r (max edges exclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Union returns the smallest rect containing both r and o.
// An empty rect contributes nothing.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	minX := min(r.MinX(), o.MinX())
	minY := min(r.MinY(), o.MinY())
	maxX := max(r.MaxX(), o.MaxX())
	maxY := max(r.MaxY(), o.MaxY())
	return NewRect(minX, minY, maxX-minX, maxY-minY)
}

// Insets are distances inset from each edge of a rect
type Insets struct {
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Right  float64 `yaml:"right"`
}

// Inset returns r shrunk by the insets, never below zero size
func (r Rect) Inset(in Insets) Rect {
	w := r.Size.Width - in.Left - in.Right
	h := r.Size.Height - in.Top - in.Bottom
	return NewRect(r.Origin.X+in.Left, r.Origin.Y+in.Top, max(w, 0), max(h, 0))
}

// Span is a contiguous range of logical indices
type Span struct {
	Start int
	Count int
}

// End returns one past the last index in the span
func (s Span) End() int {
	return s.Start + s.Count
}

// Contains reports whether i is inside the span
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End()
}

// CellFrame is the computed placement of one cell. Index is the logical grid
// index; Origin is in the owning pane's content space.
type CellFrame struct {
	Index  GridIndex
	Origin Point
	Size   Size
}

// Rect returns the frame as a rect
func (f CellFrame) Rect() Rect {
	return Rect{Origin: f.Origin, Size: f.Size}
}
