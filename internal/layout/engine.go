// Package layout drives a pane's layout pass on top of its grid geometry.
package layout

import (
	"github.com/young1lin/sheetview/internal/geometry"
)

// DefaultSpacing is the gap between cells when none is configured
const DefaultSpacing = 1

// State is the layout state of one pane
type State int

const (
	StateClean State = iota
	StateNeedsFullLayout
	StateNeedsIncrementalLayout
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateNeedsFullLayout:
		return "needs-full-layout"
	case StateNeedsIncrementalLayout:
		return "needs-incremental-layout"
	}
	return "unknown"
}

// Reason says why a layout was invalidated
type Reason int

const (
	ReasonItemSizeChanged Reason = iota
	ReasonSpacingChanged
	ReasonDataReloaded
	ReasonBoundsChanged
)

func (r Reason) String() string {
	switch r {
	case ReasonItemSizeChanged:
		return "item-size-changed"
	case ReasonSpacingChanged:
		return "spacing-changed"
	case ReasonDataReloaded:
		return "data-reloaded"
	case ReasonBoundsChanged:
		return "bounds-changed"
	}
	return "unknown"
}

// Engine computes cell attributes for a pane's visible rect.
// Geometry is rebuilt lazily, on the first query after a full invalidation.
type Engine struct {
	params geometry.Params
	geom   *geometry.Geometry
	state  State

	// stale is set until geom reflects params
	stale bool

	// delta is the region touched since the last pass (incremental only)
	delta geometry.Rect

	// last pass, returned again for an unchanged rect while clean
	cachedRect  geometry.Rect
	cached      []geometry.CellFrame
	cacheValid  bool
	lastVisible geometry.Rect
}

// NewEngine creates an engine that will build its geometry on first use
func NewEngine(p geometry.Params) *Engine {
	return &Engine{
		params: p,
		state:  StateNeedsFullLayout,
		stale:  true,
	}
}

// State returns the current layout state
func (e *Engine) State() State {
	return e.state
}

// Delta returns the region pending an incremental layout
func (e *Engine) Delta() geometry.Rect {
	return e.delta
}

// Params returns the current geometry parameters
func (e *Engine) Params() geometry.Params {
	return e.params
}

// Invalidate marks the layout dirty for the given reason.
// A pending full layout is never downgraded to an incremental one.
func (e *Engine) Invalidate(reason Reason) {
	e.cacheValid = false
	if reason == ReasonBoundsChanged {
		if e.state != StateNeedsFullLayout {
			e.state = StateNeedsIncrementalLayout
		}
		return
	}
	e.state = StateNeedsFullLayout
	e.stale = true
	e.delta = geometry.Rect{}
}

// InvalidateBounds records that the visible rect moved to visible
func (e *Engine) InvalidateBounds(visible geometry.Rect) {
	if e.state != StateNeedsFullLayout {
		e.delta = e.delta.Union(e.lastVisible).Union(visible)
	}
	e.Invalidate(ReasonBoundsChanged)
}

// SetItemSize changes the default cell size
func (e *Engine) SetItemSize(s geometry.Size) {
	if e.params.ItemSize == s {
		return
	}
	e.params.ItemSize = s
	e.Invalidate(ReasonItemSizeChanged)
}

// SetSpacing changes the gap between cells
func (e *Engine) SetSpacing(spacing float64) {
	if e.params.Spacing == spacing {
		return
	}
	e.params.Spacing = spacing
	e.Invalidate(ReasonSpacingChanged)
}

// SetParams replaces every geometry parameter, as after a data reload
func (e *Engine) SetParams(p geometry.Params) {
	e.params = p
	e.Invalidate(ReasonDataReloaded)
}

// Prepare rebuilds the geometry if the parameters changed since the last
// build. The state is left for LayoutAttributes to clear.
func (e *Engine) Prepare() {
	if e.geom == nil || e.stale {
		e.geom = geometry.New(e.params)
		e.stale = false
	}
}

// Geometry returns the current geometry, rebuilding it first if needed
func (e *Engine) Geometry() *geometry.Geometry {
	e.Prepare()
	return e.geom
}

// ContentSize returns the pane's total content size
func (e *Engine) ContentSize() geometry.Size {
	return e.Geometry().ContentSize()
}

// FrameFor returns the frame of a cell by logical index
func (e *Engine) FrameFor(idx geometry.GridIndex) (geometry.CellFrame, error) {
	return e.Geometry().FrameForIndex(idx)
}

// LayoutAttributes returns the frames of every cell visible in the rect,
// row-major. The engine is clean afterwards.
func (e *Engine) LayoutAttributes(visible geometry.Rect) []geometry.CellFrame {
	if e.state == StateClean && e.cacheValid && e.cachedRect == visible {
		return cloneFrames(e.cached)
	}

	e.Prepare()
	frames := e.geom.FramesIntersecting(visible)

	e.cached = frames
	e.cachedRect = visible
	e.cacheValid = true
	e.lastVisible = visible
	e.delta = geometry.Rect{}
	e.state = StateClean

	return cloneFrames(frames)
}

func cloneFrames(frames []geometry.CellFrame) []geometry.CellFrame {
	if len(frames) == 0 {
		return nil
	}
	out := make([]geometry.CellFrame, len(frames))
	copy(out, frames)
	return out
}
