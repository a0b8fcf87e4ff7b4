package sheet

import (
	"time"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/pane"
)

// ContentOffset returns the body's scroll offset
func (s *Spreadsheet) ContentOffset() geometry.Point {
	return s.coord.Body().Offset()
}

// ScrollBody scrolls the body, and with it the headers, to offset
func (s *Spreadsheet) ScrollBody(offset geometry.Point) (pane.Edge, error) {
	edges, err := s.coord.ScrollBody(offset)
	s.flash()
	if err != nil {
		s.logf("scroll to %+v: %v", offset, err)
	}
	return edges, err
}

// ScrollBodyBy scrolls relative to the current offset
func (s *Spreadsheet) ScrollBodyBy(dx, dy float64) (pane.Edge, error) {
	o := s.ContentOffset()
	return s.ScrollBody(geometry.Point{X: o.X + dx, Y: o.Y + dy})
}

// ScrollToCell scrolls the least distance that brings idx fully into view.
// Header cells only move along the axis they share with the body.
func (s *Spreadsheet) ScrollToCell(idx geometry.GridIndex) error {
	p, ok := s.coord.PaneFor(idx)
	if !ok {
		return &geometry.IndexError{Row: idx.Row, Column: idx.Column, Rows: s.rows, Columns: s.cols}
	}
	if p.Kind() == pane.Corner {
		return nil
	}

	f, err := p.Engine().FrameFor(idx)
	if err != nil {
		return err
	}

	body := s.coord.Body()
	target := body.Offset()
	view := p.VisibleRect()
	if p.Kind() != pane.RowHeader {
		target.X = reveal(target.X, view.Size.Width, f.Origin.X, f.Size.Width)
	}
	if p.Kind() != pane.ColumnHeader {
		target.Y = reveal(target.Y, view.Size.Height, f.Origin.Y, f.Size.Height)
	}
	if target == body.Offset() {
		return nil
	}
	_, err = s.ScrollBody(target)
	return err
}

// reveal returns the offset closest to current that shows [start, start+size)
// in a viewport of the given length
func reveal(current, viewport, start, size float64) float64 {
	if start < current {
		return start
	}
	if end := start + size; end > current+viewport {
		return max(end-viewport, 0)
	}
	return current
}

// ScrollIndicators returns the attributes mirrored onto every pane
func (s *Spreadsheet) ScrollIndicators() pane.ScrollIndicators {
	return s.coord.ScrollIndicators()
}

// ScrollIndicatorInsets returns the indicator insets
func (s *Spreadsheet) ScrollIndicatorInsets() geometry.Insets {
	return s.coord.ScrollIndicators().Insets
}

// SetScrollIndicatorInsets sets the indicator insets on every pane
func (s *Spreadsheet) SetScrollIndicatorInsets(in geometry.Insets) {
	si := s.coord.ScrollIndicators()
	si.Insets = in
	s.coord.SetScrollIndicators(si)
}

// ShowsHorizontalScrollIndicator reports whether the horizontal indicator is enabled
func (s *Spreadsheet) ShowsHorizontalScrollIndicator() bool {
	return s.coord.ScrollIndicators().ShowsHorizontal
}

// SetShowsHorizontalScrollIndicator enables or disables the horizontal indicator
func (s *Spreadsheet) SetShowsHorizontalScrollIndicator(show bool) {
	si := s.coord.ScrollIndicators()
	si.ShowsHorizontal = show
	s.coord.SetScrollIndicators(si)
}

// ShowsVerticalScrollIndicator reports whether the vertical indicator is enabled
func (s *Spreadsheet) ShowsVerticalScrollIndicator() bool {
	return s.coord.ScrollIndicators().ShowsVertical
}

// SetShowsVerticalScrollIndicator enables or disables the vertical indicator
func (s *Spreadsheet) SetShowsVerticalScrollIndicator(show bool) {
	si := s.coord.ScrollIndicators()
	si.ShowsVertical = show
	s.coord.SetScrollIndicators(si)
}

// Bounces reports whether scrolling past an edge bounces
func (s *Spreadsheet) Bounces() bool {
	return s.coord.ScrollIndicators().Bounces
}

// SetBounces enables or disables bouncing
func (s *Spreadsheet) SetBounces(bounces bool) {
	si := s.coord.ScrollIndicators()
	si.Bounces = bounces
	s.coord.SetScrollIndicators(si)
}

// FlashScrollIndicators shows the indicators momentarily
func (s *Spreadsheet) FlashScrollIndicators() {
	s.flash()
}

func (s *Spreadsheet) flash() {
	s.flashUntil = s.now().Add(FlashDuration)
}

// IndicatorsVisible reports whether indicators are inside their flash window
func (s *Spreadsheet) IndicatorsVisible() bool {
	return s.now().Before(s.flashUntil)
}

// FlashDeadline returns when the current indicator flash ends
func (s *Spreadsheet) FlashDeadline() time.Time {
	return s.flashUntil
}
