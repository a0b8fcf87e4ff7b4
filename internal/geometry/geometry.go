package geometry

import "sort"

// Params describes one pane's slice of the logical grid
type Params struct {
	Rows     Span
	Columns  Span
	ItemSize Size
	Spacing  float64

	// RowHeight and ColumnWidth override ItemSize per logical index.
	// Either may be nil.
	RowHeight   func(row int) float64
	ColumnWidth func(column int) float64
}

// Geometry answers frame and range queries for a grid of cells.
// It is immutable once built; rebuild it when any Params field changes.
type Geometry struct {
	rows     Span
	columns  Span
	itemSize Size
	spacing  float64

	// Local-index extents in content space. ends[i] = starts[i] + size[i].
	rowStarts []float64
	rowEnds   []float64
	colStarts []float64
	colEnds   []float64
}

// New builds a geometry, querying every row height and column width once
func New(p Params) *Geometry {
	if p.Rows.Count < 0 {
		p.Rows.Count = 0
	}
	if p.Columns.Count < 0 {
		p.Columns.Count = 0
	}
	if p.Spacing < 0 {
		p.Spacing = 0
	}

	g := &Geometry{
		rows:     p.Rows,
		columns:  p.Columns,
		itemSize: p.ItemSize,
		spacing:  p.Spacing,
	}

	g.rowStarts, g.rowEnds = prefix(p.Rows, p.Spacing, func(i int) float64 {
		if p.RowHeight != nil {
			return p.RowHeight(i)
		}
		return p.ItemSize.Height
	})
	g.colStarts, g.colEnds = prefix(p.Columns, p.Spacing, func(i int) float64 {
		if p.ColumnWidth != nil {
			return p.ColumnWidth(i)
		}
		return p.ItemSize.Width
	})

	return g
}

// prefix lays out extents along one axis
func prefix(span Span, spacing float64, extent func(int) float64) (starts, ends []float64) {
	starts = make([]float64, span.Count)
	ends = make([]float64, span.Count)

	pos := 0.0
	for i := 0; i < span.Count; i++ {
		size := extent(span.Start + i)
		if size < 0 {
			size = 0
		}
		if i > 0 {
			pos += spacing
		}
		starts[i] = pos
		pos += size
		ends[i] = pos
	}
	return starts, ends
}

// Rows returns the logical row range covered by this geometry
func (g *Geometry) Rows() Span { return g.rows }

// Columns returns the logical column range covered by this geometry
func (g *Geometry) Columns() Span { return g.columns }

// ItemSize returns the default cell size
func (g *Geometry) ItemSize() Size { return g.itemSize }

// Spacing returns the gap between adjacent cells
func (g *Geometry) Spacing() float64 { return g.spacing }

// Contains reports whether a logical index falls inside this geometry
func (g *Geometry) Contains(idx GridIndex) bool {
	return g.rows.Contains(idx.Row) && g.columns.Contains(idx.Column)
}

// ContentSize returns the extent of all cells plus the gaps between them
func (g *Geometry) ContentSize() Size {
	var s Size
	if n := len(g.colEnds); n > 0 {
		s.Width = g.colEnds[n-1]
	}
	if n := len(g.rowEnds); n > 0 {
		s.Height = g.rowEnds[n-1]
	}
	return s
}

// FrameFor returns the frame of the cell at the given local row and column
func (g *Geometry) FrameFor(row, column int) (CellFrame, error) {
	if row < 0 || row >= g.rows.Count || column < 0 || column >= g.columns.Count {
		return CellFrame{}, &IndexError{
			Row:     row,
			Column:  column,
			Rows:    g.rows.Count,
			Columns: g.columns.Count,
		}
	}
	return g.frame(row, column), nil
}

// FrameForIndex returns the frame of the cell at a logical index
func (g *Geometry) FrameForIndex(idx GridIndex) (CellFrame, error) {
	if !g.Contains(idx) {
		return CellFrame{}, &IndexError{
			Row:     idx.Row,
			Column:  idx.Column,
			Rows:    g.rows.Count,
			Columns: g.columns.Count,
		}
	}
	return g.frame(idx.Row-g.rows.Start, idx.Column-g.columns.Start), nil
}

func (g *Geometry) frame(row, column int) CellFrame {
	return CellFrame{
		Index: GridIndex{Row: g.rows.Start + row, Column: g.columns.Start + column},
		Origin: Point{
			X: g.colStarts[column],
			Y: g.rowStarts[row],
		},
		Size: Size{
			Width:  g.colEnds[column] - g.colStarts[column],
			Height: g.rowEnds[row] - g.rowStarts[row],
		},
	}
}

// CellsIntersecting returns the logical indices of every cell whose frame
// overlaps rect, in row-major order
func (g *Geometry) CellsIntersecting(rect Rect) []GridIndex {
	frames := g.FramesIntersecting(rect)
	if len(frames) == 0 {
		return nil
	}
	out := make([]GridIndex, len(frames))
	for i, f := range frames {
		out[i] = f.Index
	}
	return out
}

// FramesIntersecting is CellsIntersecting with the computed frames
func (g *Geometry) FramesIntersecting(rect Rect) []CellFrame {
	if rect.IsEmpty() {
		return nil
	}
	r0, r1 := searchAxis(g.rowStarts, g.rowEnds, rect.MinY(), rect.MaxY())
	c0, c1 := searchAxis(g.colStarts, g.colEnds, rect.MinX(), rect.MaxX())
	if r0 > r1 || c0 > c1 {
		return nil
	}

	out := make([]CellFrame, 0, (r1-r0+1)*(c1-c0+1))
	for r := r0; r <= r1; r++ {
		if g.rowEnds[r] == g.rowStarts[r] {
			continue
		}
		for c := c0; c <= c1; c++ {
			if g.colEnds[c] == g.colStarts[c] {
				continue
			}
			out = append(out, g.frame(r, c))
		}
	}
	return out
}

// searchAxis finds the first and last local index whose extent overlaps
// the open interval (lo, hi). first > last when nothing overlaps.
func searchAxis(starts, ends []float64, lo, hi float64) (first, last int) {
	n := len(starts)
	first = sort.Search(n, func(i int) bool { return ends[i] > lo })
	last = sort.Search(n, func(i int) bool { return starts[i] >= hi }) - 1
	return first, last
}

// IndexAt returns the logical index of the cell containing p.
// Points in a spacing gap or outside the content report false.
func (g *Geometry) IndexAt(p Point) (GridIndex, bool) {
	r, ok := locate(g.rowStarts, g.rowEnds, p.Y)
	if !ok {
		return GridIndex{}, false
	}
	c, ok := locate(g.colStarts, g.colEnds, p.X)
	if !ok {
		return GridIndex{}, false
	}
	return GridIndex{Row: g.rows.Start + r, Column: g.columns.Start + c}, true
}

func locate(starts, ends []float64, v float64) (int, bool) {
	i := sort.Search(len(ends), func(i int) bool { return ends[i] > v })
	if i >= len(ends) || starts[i] > v {
		return 0, false
	}
	return i, true
}
