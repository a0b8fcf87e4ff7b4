// Package sheet is the spreadsheet controller: it pulls dimensions and cells
// from a data source, drives the pane coordinator and routes interaction to
// the delegate.
package sheet

import (
	"time"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/layout"
	"github.com/young1lin/sheetview/internal/pane"
	"github.com/young1lin/sheetview/internal/recycler"
)

// DefaultItemSize is one terminal line tall and ten columns wide
var DefaultItemSize = geometry.Size{Width: 10, Height: 1}

// FlashDuration is how long FlashScrollIndicators keeps indicators visible
const FlashDuration = time.Second

// Spreadsheet presents a data source through up to four coordinated panes
type Spreadsheet struct {
	headerRows int
	headerCols int

	registry *recycler.Registry
	coord    *pane.Coordinator

	dataSource DataSource
	sizeFor    SizeFunc
	delegate   Delegate

	itemSize geometry.Size
	spacing  float64

	// dimensions from the last reload
	rows int
	cols int

	selected    geometry.GridIndex
	hasSelected bool

	flashUntil time.Time
	now        func() time.Time
	logf       func(format string, args ...any)
}

// Option configures a Spreadsheet
type Option func(*Spreadsheet)

// WithDataSource sets the data source
func WithDataSource(ds DataSource) Option {
	return func(s *Spreadsheet) { s.dataSource = ds }
}

// WithSizeFunc sets the per-cell size query
func WithSizeFunc(fn SizeFunc) Option {
	return func(s *Spreadsheet) { s.sizeFor = fn }
}

// WithDelegate sets the interaction delegate
func WithDelegate(d Delegate) Option {
	return func(s *Spreadsheet) { s.delegate = d.withDefaults() }
}

// WithItemSize sets the default cell size
func WithItemSize(size geometry.Size) Option {
	return func(s *Spreadsheet) { s.itemSize = size }
}

// WithSpacing sets the gap between cells
func WithSpacing(spacing float64) Option {
	return func(s *Spreadsheet) { s.spacing = spacing }
}

// WithScrollIndicators sets the scroll surface attributes of every pane
func WithScrollIndicators(si pane.ScrollIndicators) Option {
	return func(s *Spreadsheet) { s.coord.SetScrollIndicators(si) }
}

// WithLogger routes diagnostics to logf
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Spreadsheet) { s.logf = logf }
}

// WithClock overrides the time source used for indicator flashing
func WithClock(now func() time.Time) Option {
	return func(s *Spreadsheet) { s.now = now }
}

// New creates a spreadsheet with fixed header counts inside bounds. Header
// counts cannot change afterwards; build a new Spreadsheet instead.
func New(headerRows, headerCols int, bounds geometry.Rect, opts ...Option) (*Spreadsheet, error) {
	if headerRows < 0 || headerCols < 0 {
		return nil, &HeaderError{HeaderRows: headerRows, HeaderColumns: headerCols}
	}

	registry := recycler.NewRegistry()
	s := &Spreadsheet{
		headerRows: headerRows,
		headerCols: headerCols,
		registry:   registry,
		coord:      pane.NewCoordinator(headerRows, headerCols, bounds, registry),
		delegate:   Delegate{}.withDefaults(),
		itemSize:   DefaultItemSize,
		spacing:    layout.DefaultSpacing,
		now:        time.Now,
		logf:       func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.dataSource != nil {
		if err := s.checkHeaders(s.dataSource.RowCount(), s.dataSource.ColumnCount()); err != nil {
			return nil, err
		}
	}

	s.coord.SetCellProvider(s.provideCell)
	return s, nil
}

func (s *Spreadsheet) checkHeaders(rows, cols int) error {
	if s.headerRows > rows || s.headerCols > cols {
		return &HeaderError{
			HeaderRows:    s.headerRows,
			HeaderColumns: s.headerCols,
			Rows:          rows,
			Columns:       cols,
		}
	}
	return nil
}

// SetDataSource replaces the data source; call ReloadData afterwards
func (s *Spreadsheet) SetDataSource(ds DataSource) {
	s.dataSource = ds
}

// SetSizeFunc replaces the per-cell size query; call ReloadData afterwards
func (s *Spreadsheet) SetSizeFunc(fn SizeFunc) {
	s.sizeFor = fn
}

// SetDelegate replaces the interaction delegate
func (s *Spreadsheet) SetDelegate(d Delegate) {
	s.delegate = d.withDefaults()
}

// HeaderRows returns the number of pinned rows
func (s *Spreadsheet) HeaderRows() int { return s.headerRows }

// HeaderColumns returns the number of pinned columns
func (s *Spreadsheet) HeaderColumns() int { return s.headerCols }

// RowCount returns the row count seen by the last reload
func (s *Spreadsheet) RowCount() int { return s.rows }

// ColumnCount returns the column count seen by the last reload
func (s *Spreadsheet) ColumnCount() int { return s.cols }

// Coordinator exposes the panes to the host renderer
func (s *Spreadsheet) Coordinator() *pane.Coordinator { return s.coord }

// RegisterCellFactory registers a factory for identifier in every pane.
// A nil factory unregisters it.
func (s *Spreadsheet) RegisterCellFactory(identifier string, factory recycler.Factory) error {
	return s.registry.Register(identifier, factory)
}

// DequeueReusableCell returns a cell for idx from the pool of the pane that
// displays idx. An unregistered identifier fails before idx is checked.
func (s *Spreadsheet) DequeueReusableCell(identifier string, idx geometry.GridIndex) (recycler.Cell, error) {
	if _, ok := s.registry.Lookup(identifier); !ok {
		return nil, &recycler.IdentifierError{Identifier: identifier}
	}
	p, ok := s.coord.PaneFor(idx)
	if !ok {
		return nil, &geometry.IndexError{Row: idx.Row, Column: idx.Column, Rows: s.rows, Columns: s.cols}
	}
	return p.Recycler().Dequeue(identifier, idx)
}

func (s *Spreadsheet) provideCell(p *pane.Pane, f geometry.CellFrame) (recycler.Cell, error) {
	if s.dataSource == nil {
		return nil, ErrNoDataSource
	}
	cell, err := s.dataSource.CellFor(s, f.Index)
	if err != nil {
		return nil, err
	}
	if sel, ok := cell.(recycler.Selectable); ok {
		sel.SetSelected(s.hasSelected && s.selected == f.Index)
	}
	return cell, nil
}

// ReloadData pulls fresh dimensions, rebuilds every pane's geometry and
// redisplays the visible cells. Offsets shrink with the content. Failures
// in one pane are reported without stopping the others.
func (s *Spreadsheet) ReloadData() error {
	if s.dataSource == nil {
		return ErrNoDataSource
	}

	rows, cols := s.dataSource.RowCount(), s.dataSource.ColumnCount()
	if err := s.checkHeaders(rows, cols); err != nil {
		return err
	}
	s.rows, s.cols = rows, cols

	if s.hasSelected && (s.selected.Row >= rows || s.selected.Column >= cols) {
		s.hasSelected = false
	}

	err := s.coord.Reload(s.paramsFor)
	if err != nil {
		s.logf("reload %dx%d: %v", rows, cols, err)
	}
	return err
}

// paramsFor builds the geometry parameters of one pane
func (s *Spreadsheet) paramsFor(kind pane.Kind) geometry.Params {
	region := pane.Partition(s.rows, s.cols, s.headerRows, s.headerCols)[kind]
	p := geometry.Params{
		Rows:     region.Rows,
		Columns:  region.Columns,
		ItemSize: s.itemSize,
		Spacing:  s.spacing,
	}
	if s.sizeFor != nil {
		if s.cols > 0 {
			p.RowHeight = func(row int) float64 {
				return s.sizeFor(geometry.GridIndex{Row: row, Column: 0}).Height
			}
		}
		if s.rows > 0 {
			p.ColumnWidth = func(col int) float64 {
				return s.sizeFor(geometry.GridIndex{Row: 0, Column: col}).Width
			}
		}
	}
	return p
}

// ItemSize returns the default cell size
func (s *Spreadsheet) ItemSize() geometry.Size { return s.itemSize }

// Spacing returns the gap between cells
func (s *Spreadsheet) Spacing() float64 { return s.spacing }

// SetItemSize changes the default cell size of every pane
func (s *Spreadsheet) SetItemSize(size geometry.Size) error {
	s.itemSize = size
	return s.coord.SetItemSize(size)
}

// SetSpacing changes the cell spacing of every pane
func (s *Spreadsheet) SetSpacing(spacing float64) error {
	s.spacing = spacing
	return s.coord.SetSpacing(spacing)
}

// Resize lays the spreadsheet out in new bounds
func (s *Spreadsheet) Resize(bounds geometry.Rect) error {
	return s.coord.Resize(bounds)
}

// VisibleCell pairs a realized frame with its cell
type VisibleCell struct {
	Frame geometry.CellFrame
	Cell  recycler.Cell
}

// VisibleCells returns the cells currently shown in a pane, row-major
func (s *Spreadsheet) VisibleCells(kind pane.Kind) []VisibleCell {
	p, ok := s.coord.Pane(kind)
	if !ok {
		return nil
	}
	frames := p.Visible()
	out := make([]VisibleCell, 0, len(frames))
	for _, f := range frames {
		if cell, ok := p.CellAt(f.Index); ok {
			out = append(out, VisibleCell{Frame: f, Cell: cell})
		}
	}
	return out
}
