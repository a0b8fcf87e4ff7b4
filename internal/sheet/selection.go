package sheet

import (
	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/recycler"
)

// Selected returns the selected index, if any
func (s *Spreadsheet) Selected() (geometry.GridIndex, bool) {
	return s.selected, s.hasSelected
}

// Select selects the cell at idx and tells the delegate
func (s *Spreadsheet) Select(idx geometry.GridIndex) error {
	if !s.inGrid(idx) {
		return &geometry.IndexError{Row: idx.Row, Column: idx.Column, Rows: s.rows, Columns: s.cols}
	}
	if s.hasSelected {
		s.setOverlay(s.selected, false)
	}
	s.selected, s.hasSelected = idx, true
	s.setOverlay(idx, true)

	s.delegate.OnSelect(idx)
	return nil
}

// Deselect clears the selection at idx, or any selection when idx is nil.
// The delegate is not told. animated is a hint for the host renderer; the
// overlay itself is cleared immediately.
func (s *Spreadsheet) Deselect(idx *geometry.GridIndex, animated bool) {
	if !s.hasSelected {
		return
	}
	if idx != nil && *idx != s.selected {
		return
	}
	s.setOverlay(s.selected, false)
	s.hasSelected = false
	s.logf("deselect %v animated=%t", s.selected, animated)
}

func (s *Spreadsheet) setOverlay(idx geometry.GridIndex, selected bool) {
	p, ok := s.coord.PaneFor(idx)
	if !ok {
		return
	}
	cell, ok := p.CellAt(idx)
	if !ok {
		return
	}
	if sel, ok := cell.(recycler.Selectable); ok {
		sel.SetSelected(selected)
	}
}

func (s *Spreadsheet) inGrid(idx geometry.GridIndex) bool {
	return idx.Row >= 0 && idx.Row < s.rows && idx.Column >= 0 && idx.Column < s.cols
}

// ShouldShowActionMenu asks the delegate whether idx offers an action menu
func (s *Spreadsheet) ShouldShowActionMenu(idx geometry.GridIndex) bool {
	return s.delegate.ShouldShowActionMenu(idx)
}

// CanPerformAction asks the delegate whether action applies to idx
func (s *Spreadsheet) CanPerformAction(action Action, idx geometry.GridIndex, sender any) bool {
	return s.delegate.CanPerformAction(action, idx, sender)
}

// PerformAction tells the delegate to perform action on idx
func (s *Spreadsheet) PerformAction(action Action, idx geometry.GridIndex, sender any) {
	s.delegate.PerformAction(action, idx, sender)
}

// MenuActions lists the standard actions the delegate permits for idx, or
// nil when no menu should be shown
func (s *Spreadsheet) MenuActions(idx geometry.GridIndex, sender any) []Action {
	if !s.ShouldShowActionMenu(idx) {
		return nil
	}
	var actions []Action
	for _, a := range StandardActions {
		if s.CanPerformAction(a, idx, sender) {
			actions = append(actions, a)
		}
	}
	return actions
}
