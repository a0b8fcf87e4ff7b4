// Package pane coordinates the scrollable regions of a spreadsheet view.
// Pane Layer: up to four panes partition the logical grid; the body pane
// owns the scroll offset and the header panes follow it.
package pane

import (
	"errors"
	"fmt"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/layout"
	"github.com/young1lin/sheetview/internal/recycler"
)

// Kind identifies one of the four panes
type Kind int

const (
	Corner Kind = iota
	ColumnHeader
	RowHeader
	Body
)

func (k Kind) String() string {
	switch k {
	case Corner:
		return "corner"
	case ColumnHeader:
		return "column-header"
	case RowHeader:
		return "row-header"
	case Body:
		return "body"
	}
	return "unknown"
}

// ErrCellNotDequeued is returned when a provider hands back a cell that the
// pane's recycler did not dequeue for that index
var ErrCellNotDequeued = errors.New("cell was not dequeued for its index")

// PaneError wraps a failure with the pane it happened in
type PaneError struct {
	Kind Kind
	Err  error
}

func (e *PaneError) Error() string {
	return fmt.Sprintf("%s pane: %v", e.Kind, e.Err)
}

func (e *PaneError) Unwrap() error {
	return e.Err
}

// ScrollIndicators mirrors the scroll surface attributes of a pane
type ScrollIndicators struct {
	Insets          geometry.Insets
	ShowsHorizontal bool
	ShowsVertical   bool
	Bounces         bool
}

// DefaultScrollIndicators returns zero insets, both indicators shown and bouncing on
func DefaultScrollIndicators() ScrollIndicators {
	return ScrollIndicators{
		ShowsHorizontal: true,
		ShowsVertical:   true,
		Bounces:         true,
	}
}

// CellProvider returns the cell to display for a newly visible frame.
// The cell must come from the pane's recycler.
type CellProvider func(p *Pane, frame geometry.CellFrame) (recycler.Cell, error)

// Pane is one scrollable region: a layout engine over its slice of the grid,
// a cell pool, a frame in view space and a scroll offset.
type Pane struct {
	kind       Kind
	engine     *layout.Engine
	cells      *recycler.Recycler
	frame      geometry.Rect
	offset     geometry.Point
	indicators ScrollIndicators

	// frames realized by the last pass
	visible []geometry.CellFrame
}

func newPane(kind Kind, registry *recycler.Registry) *Pane {
	return &Pane{
		kind:       kind,
		engine:     layout.NewEngine(geometry.Params{Spacing: layout.DefaultSpacing}),
		cells:      recycler.New(kind.String(), registry),
		indicators: DefaultScrollIndicators(),
	}
}

func (p *Pane) Kind() Kind                        { return p.kind }
func (p *Pane) Engine() *layout.Engine            { return p.engine }
func (p *Pane) Recycler() *recycler.Recycler      { return p.cells }
func (p *Pane) Frame() geometry.Rect              { return p.frame }
func (p *Pane) Offset() geometry.Point            { return p.offset }
func (p *Pane) ScrollIndicators() ScrollIndicators { return p.indicators }

// ContentSize returns the size of the pane's whole slice of the grid
func (p *Pane) ContentSize() geometry.Size {
	return p.engine.ContentSize()
}

// VisibleRect is the scrolled-into-view region in content space
func (p *Pane) VisibleRect() geometry.Rect {
	return geometry.Rect{Origin: p.offset, Size: p.frame.Size}
}

// MaxOffset is the largest offset that keeps the viewport inside the content
func (p *Pane) MaxOffset() geometry.Point {
	content := p.ContentSize()
	return geometry.Point{
		X: max(0, content.Width-p.frame.Size.Width),
		Y: max(0, content.Height-p.frame.Size.Height),
	}
}

// ClampOffset limits o to [0, MaxOffset] on both axes
func (p *Pane) ClampOffset(o geometry.Point) geometry.Point {
	m := p.MaxOffset()
	return geometry.Point{
		X: min(max(o.X, 0), m.X),
		Y: min(max(o.Y, 0), m.Y),
	}
}

// setOffset applies a clamped offset and returns it
func (p *Pane) setOffset(o geometry.Point) geometry.Point {
	o = p.ClampOffset(o)
	if o != p.offset {
		p.offset = o
		p.engine.InvalidateBounds(p.VisibleRect())
	}
	return o
}

func (p *Pane) setFrame(r geometry.Rect) {
	if r == p.frame {
		return
	}
	p.frame = r
	p.engine.InvalidateBounds(p.VisibleRect())
}

// Visible returns the frames realized by the last layout pass
func (p *Pane) Visible() []geometry.CellFrame {
	out := make([]geometry.CellFrame, len(p.visible))
	copy(out, p.visible)
	return out
}

// CellAt returns the cell currently displaying idx
func (p *Pane) CellAt(idx geometry.GridIndex) (recycler.Cell, bool) {
	return p.cells.CellAt(idx)
}

// Contains reports whether a logical index belongs to this pane
func (p *Pane) Contains(idx geometry.GridIndex) bool {
	return p.engine.Geometry().Contains(idx)
}

// IndexAt maps a view-space point inside the pane frame to a logical index
func (p *Pane) IndexAt(view geometry.Point) (geometry.GridIndex, bool) {
	if !p.frame.Contains(view) {
		return geometry.GridIndex{}, false
	}
	content := view.Sub(p.frame.Origin).Add(p.offset)
	return p.engine.Geometry().IndexAt(content)
}

// ToView converts a content-space point to view space
func (p *Pane) ToView(content geometry.Point) geometry.Point {
	return content.Sub(p.offset).Add(p.frame.Origin)
}

// Realize runs one layout pass: query the visible cells, retire those that
// left the viewport, then ask provider for the ones that entered it. With
// refresh set, every visible cell is requested again.
func (p *Pane) Realize(provider CellProvider, refresh bool) error {
	frames := p.engine.LayoutAttributes(p.VisibleRect())

	indices := make([]geometry.GridIndex, len(frames))
	for i, f := range frames {
		indices[i] = f.Index
	}
	p.cells.Reconcile(indices)
	p.visible = frames

	if provider == nil {
		return nil
	}

	var errs []error
	for _, f := range frames {
		if _, ok := p.cells.CellAt(f.Index); ok && !refresh {
			continue
		}
		cell, err := provider(p, f)
		if err != nil {
			errs = append(errs, fmt.Errorf("cell %v: %w", f.Index, err))
			continue
		}
		if got, ok := p.cells.CellAt(f.Index); !ok || got != cell {
			errs = append(errs, fmt.Errorf("cell %v: %w", f.Index, ErrCellNotDequeued))
		}
	}
	return errors.Join(errs...)
}
