package tui

import (
	"fmt"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/recycler"
	"github.com/young1lin/sheetview/internal/render"
	"github.com/young1lin/sheetview/internal/sheet"
)

// CellIdentifier is the reuse identifier of TextCell
const CellIdentifier = "text"

// TextCell is a one-line text cell
type TextCell struct {
	Text   string
	Align  render.Align
	Header bool

	selected bool
	reuses   int
}

// PrepareForReuse clears the cell before it shows another index
func (c *TextCell) PrepareForReuse() {
	c.Text = ""
	c.Header = false
	c.selected = false
	c.reuses++
}

// SetSelected toggles the selection overlay
func (c *TextCell) SetSelected(selected bool) { c.selected = selected }

// Selected reports whether the selection overlay is drawn
func (c *TextCell) Selected() bool { return c.selected }

// Reuses counts how often the cell has been recycled
func (c *TextCell) Reuses() int { return c.reuses }

// Table is the tabular data a Model shows
type Table interface {
	Dimensions() (rows, cols int)
	Value(row, col int) string
}

// Loader fetches a fresh Table, e.g. from the sheet database
type Loader interface {
	Load() (Table, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func() (Table, error)

func (f LoaderFunc) Load() (Table, error) { return f() }

// TableSource presents a Table as a spreadsheet data source
type TableSource struct {
	table      Table
	align      render.Align
	itemSize   geometry.Size
	headerRows int
	headerCols int

	// widest value per column, in terminal columns
	widths []int
}

// NewTableSource wraps table. Header cells are those inside the first
// headerRows rows or headerCols columns.
func NewTableSource(table Table, align render.Align, itemSize geometry.Size, headerRows, headerCols int) *TableSource {
	s := &TableSource{
		align:      align,
		itemSize:   itemSize,
		headerRows: headerRows,
		headerCols: headerCols,
	}
	s.Replace(table)
	return s
}

// Replace swaps in a newly loaded table; call ReloadData afterwards
func (s *TableSource) Replace(table Table) {
	s.table = table
	rows, cols := table.Dimensions()
	s.widths = make([]int, cols)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			s.widths[c] = max(s.widths[c], render.Measure(table.Value(r, c)))
		}
	}
}

// Table returns the current table
func (s *TableSource) Table() Table { return s.table }

func (s *TableSource) RowCount() int {
	rows, _ := s.table.Dimensions()
	return rows
}

func (s *TableSource) ColumnCount() int {
	_, cols := s.table.Dimensions()
	return cols
}

// CellFor dequeues a TextCell and fills it with the value at idx
func (s *TableSource) CellFor(sh *sheet.Spreadsheet, idx geometry.GridIndex) (recycler.Cell, error) {
	cell, err := sh.DequeueReusableCell(CellIdentifier, idx)
	if err != nil {
		return nil, err
	}
	tc, ok := cell.(*TextCell)
	if !ok {
		if p, found := sh.Coordinator().PaneFor(idx); found {
			p.Recycler().Retire(idx)
		}
		return nil, fmt.Errorf("cell for %v is %T, want *TextCell", idx, cell)
	}
	tc.Text = s.table.Value(idx.Row, idx.Column)
	tc.Align = s.align
	tc.Header = idx.Row < s.headerRows || idx.Column < s.headerCols
	if tc.Header {
		tc.Align = render.AlignCenter
	}
	return tc, nil
}

// SizeFor widens a column to fit its longest value plus one column of
// padding, between the item width and three times it
func (s *TableSource) SizeFor(idx geometry.GridIndex) geometry.Size {
	size := s.itemSize
	if idx.Column >= 0 && idx.Column < len(s.widths) {
		want := float64(s.widths[idx.Column] + 1)
		size.Width = min(max(want, s.itemSize.Width), 3*s.itemSize.Width)
	}
	return size
}
