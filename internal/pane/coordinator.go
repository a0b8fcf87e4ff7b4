package pane

import (
	"errors"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/layout"
	"github.com/young1lin/sheetview/internal/recycler"
)

// Region is the slice of the logical grid a pane covers
type Region struct {
	Rows    geometry.Span
	Columns geometry.Span
}

// Partition splits a rows x cols grid into pane regions. Panes whose header
// count is zero are omitted; the body is always present.
func Partition(rows, cols, headerRows, headerCols int) map[Kind]Region {
	headerRows = min(max(headerRows, 0), max(rows, 0))
	headerCols = min(max(headerCols, 0), max(cols, 0))
	bodyRows := geometry.Span{Start: headerRows, Count: max(rows-headerRows, 0)}
	bodyCols := geometry.Span{Start: headerCols, Count: max(cols-headerCols, 0)}
	topRows := geometry.Span{Start: 0, Count: headerRows}
	leftCols := geometry.Span{Start: 0, Count: headerCols}

	regions := map[Kind]Region{
		Body: {Rows: bodyRows, Columns: bodyCols},
	}
	if headerRows > 0 {
		regions[ColumnHeader] = Region{Rows: topRows, Columns: bodyCols}
	}
	if headerCols > 0 {
		regions[RowHeader] = Region{Rows: bodyRows, Columns: leftCols}
	}
	if headerRows > 0 && headerCols > 0 {
		regions[Corner] = Region{Rows: topRows, Columns: leftCols}
	}
	return regions
}

// Edge flags which sides a scroll request was clamped against
type Edge uint8

const (
	EdgeTop Edge = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// Coordinator owns the panes and keeps them in step. The body is the only
// source of scroll offset; the header panes follow it.
type Coordinator struct {
	headerRows int
	headerCols int
	bounds     geometry.Rect

	panes    map[Kind]*Pane
	provider CellProvider

	indicators ScrollIndicators
	followers  []func(offset geometry.Point)
	observers  []func(offset geometry.Point)
}

// NewCoordinator builds the panes required by the header configuration.
// Panes start empty until Reload supplies their geometry.
func NewCoordinator(headerRows, headerCols int, bounds geometry.Rect, registry *recycler.Registry) *Coordinator {
	c := &Coordinator{
		headerRows: headerRows,
		headerCols: headerCols,
		bounds:     bounds,
		panes:      make(map[Kind]*Pane),
		indicators: DefaultScrollIndicators(),
	}

	c.panes[Body] = newPane(Body, registry)
	if headerRows > 0 {
		c.panes[ColumnHeader] = newPane(ColumnHeader, registry)
	}
	if headerCols > 0 {
		c.panes[RowHeader] = newPane(RowHeader, registry)
	}
	if headerRows > 0 && headerCols > 0 {
		c.panes[Corner] = newPane(Corner, registry)
	}

	if p, ok := c.panes[ColumnHeader]; ok {
		c.followers = append(c.followers, func(o geometry.Point) {
			p.setOffset(geometry.Point{X: o.X})
		})
	}
	if p, ok := c.panes[RowHeader]; ok {
		c.followers = append(c.followers, func(o geometry.Point) {
			p.setOffset(geometry.Point{Y: o.Y})
		})
	}

	return c
}

// HeaderRows returns the number of pinned rows
func (c *Coordinator) HeaderRows() int { return c.headerRows }

// HeaderColumns returns the number of pinned columns
func (c *Coordinator) HeaderColumns() int { return c.headerCols }

// Bounds returns the view rectangle the panes are laid out in
func (c *Coordinator) Bounds() geometry.Rect { return c.bounds }

// SetCellProvider sets the callback used to realize newly visible cells
func (c *Coordinator) SetCellProvider(provider CellProvider) {
	c.provider = provider
}

// OnScroll registers fn to run after every body scroll, once the headers
// have followed
func (c *Coordinator) OnScroll(fn func(offset geometry.Point)) {
	c.observers = append(c.observers, fn)
}

// Pane returns the pane of the given kind
func (c *Coordinator) Pane(kind Kind) (*Pane, bool) {
	p, ok := c.panes[kind]
	return p, ok
}

// Body returns the body pane
func (c *Coordinator) Body() *Pane {
	return c.panes[Body]
}

// Panes returns the existing panes in draw order: body first, corner last
func (c *Coordinator) Panes() []*Pane {
	out := make([]*Pane, 0, len(c.panes))
	for _, k := range []Kind{Body, RowHeader, ColumnHeader, Corner} {
		if p, ok := c.panes[k]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PaneFor returns the pane displaying a logical index
func (c *Coordinator) PaneFor(idx geometry.GridIndex) (*Pane, bool) {
	var kind Kind
	switch {
	case idx.Row < c.headerRows && idx.Column < c.headerCols:
		kind = Corner
	case idx.Row < c.headerRows:
		kind = ColumnHeader
	case idx.Column < c.headerCols:
		kind = RowHeader
	default:
		kind = Body
	}
	p, ok := c.panes[kind]
	if !ok || !p.Contains(idx) {
		return nil, false
	}
	return p, true
}

// Reload replaces every pane's geometry, recomputes frames, clamps offsets
// and realizes each pane again. A failing pane does not stop the others;
// all failures are returned joined.
func (c *Coordinator) Reload(params func(kind Kind) geometry.Params) error {
	for _, p := range c.Panes() {
		p.engine.SetParams(params(p.kind))
	}
	c.layoutFrames()
	c.syncOffsets(c.Body().offset)
	return c.realizeAll(true)
}

// Invalidate marks every pane's layout dirty and realizes them again
func (c *Coordinator) Invalidate(reason layout.Reason) error {
	for _, p := range c.Panes() {
		p.engine.Invalidate(reason)
	}
	c.layoutFrames()
	c.syncOffsets(c.Body().offset)
	return c.realizeAll(false)
}

// SetItemSize changes the default item size of every pane
func (c *Coordinator) SetItemSize(s geometry.Size) error {
	for _, p := range c.Panes() {
		p.engine.SetItemSize(s)
	}
	return c.Invalidate(layout.ReasonItemSizeChanged)
}

// SetSpacing changes the cell spacing of every pane
func (c *Coordinator) SetSpacing(spacing float64) error {
	for _, p := range c.Panes() {
		p.engine.SetSpacing(spacing)
	}
	return c.Invalidate(layout.ReasonSpacingChanged)
}

// Resize lays the panes out in new view bounds
func (c *Coordinator) Resize(bounds geometry.Rect) error {
	c.bounds = bounds
	c.layoutFrames()
	c.syncOffsets(c.Body().offset)
	return c.realizeAll(false)
}

// Layout realizes any cells that became visible since the last pass
func (c *Coordinator) Layout() error {
	return c.realizeAll(false)
}

// ScrollBody moves the body to offset, clamped to its content, and moves the
// column header horizontally and the row header vertically in the same step.
// The returned edges report where the request was clamped.
func (c *Coordinator) ScrollBody(offset geometry.Point) (Edge, error) {
	body := c.Body()
	applied := c.syncOffsets(offset)

	var edges Edge
	if offset.X < applied.X {
		edges |= EdgeLeft
	}
	if offset.X > applied.X {
		edges |= EdgeRight
	}
	if offset.Y < applied.Y {
		edges |= EdgeTop
	}
	if offset.Y > applied.Y {
		edges |= EdgeBottom
	}

	var errs []error
	for _, p := range c.Panes() {
		if p.kind == Corner {
			continue
		}
		if err := p.Realize(c.provider, false); err != nil {
			errs = append(errs, &PaneError{Kind: p.kind, Err: err})
		}
	}

	for _, fn := range c.observers {
		fn(body.offset)
	}
	return edges, errors.Join(errs...)
}

// ScrollBodyBy scrolls the body relative to its current offset
func (c *Coordinator) ScrollBodyBy(dx, dy float64) (Edge, error) {
	o := c.Body().offset
	return c.ScrollBody(geometry.Point{X: o.X + dx, Y: o.Y + dy})
}

// syncOffsets applies a clamped body offset and pushes it to the followers
func (c *Coordinator) syncOffsets(offset geometry.Point) geometry.Point {
	applied := c.Body().setOffset(offset)
	for _, follow := range c.followers {
		follow(applied)
	}
	return applied
}

// layoutFrames sizes the panes inside the bounds. Header panes take their
// content extent; the body gets the rest, one spacing gap away.
func (c *Coordinator) layoutFrames() {
	b := c.bounds
	spacing := c.Body().engine.Params().Spacing

	var headerW, headerH, gapX, gapY float64
	if p, ok := c.panes[RowHeader]; ok {
		headerW = min(p.ContentSize().Width, b.Size.Width)
		gapX = spacing
	}
	if p, ok := c.panes[ColumnHeader]; ok {
		headerH = min(p.ContentSize().Height, b.Size.Height)
		gapY = spacing
	}

	x0 := min(headerW+gapX, b.Size.Width)
	y0 := min(headerH+gapY, b.Size.Height)
	body := geometry.NewRect(b.MinX()+x0, b.MinY()+y0, b.Size.Width-x0, b.Size.Height-y0)

	c.panes[Body].setFrame(body)
	if p, ok := c.panes[ColumnHeader]; ok {
		p.setFrame(geometry.NewRect(body.MinX(), b.MinY(), body.Size.Width, headerH))
	}
	if p, ok := c.panes[RowHeader]; ok {
		p.setFrame(geometry.NewRect(b.MinX(), body.MinY(), headerW, body.Size.Height))
	}
	if p, ok := c.panes[Corner]; ok {
		p.setFrame(geometry.NewRect(b.MinX(), b.MinY(), headerW, headerH))
	}
}

func (c *Coordinator) realizeAll(refresh bool) error {
	var errs []error
	for _, p := range c.Panes() {
		if err := p.Realize(c.provider, refresh); err != nil {
			errs = append(errs, &PaneError{Kind: p.kind, Err: err})
		}
	}
	return errors.Join(errs...)
}

// HitTest maps a view-space point to the pane and logical index under it
func (c *Coordinator) HitTest(view geometry.Point) (Kind, geometry.GridIndex, bool) {
	panes := c.Panes()
	for i := len(panes) - 1; i >= 0; i-- {
		p := panes[i]
		if !p.frame.Contains(view) {
			continue
		}
		idx, ok := p.IndexAt(view)
		return p.kind, idx, ok
	}
	return Body, geometry.GridIndex{}, false
}

// ScrollIndicators returns the attributes mirrored onto every pane
func (c *Coordinator) ScrollIndicators() ScrollIndicators {
	return c.indicators
}

// SetScrollIndicators mirrors si onto every pane
func (c *Coordinator) SetScrollIndicators(si ScrollIndicators) {
	c.indicators = si
	for _, p := range c.panes {
		p.indicators = si
	}
}
