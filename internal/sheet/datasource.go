package sheet

import (
	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/recycler"
)

//go:generate mockgen -destination=mock_datasource_test.go -package=sheet . DataSource

// DataSource supplies the grid dimensions and the cells to display.
// CellFor must obtain its cell from Spreadsheet.DequeueReusableCell.
type DataSource interface {
	RowCount() int
	ColumnCount() int
	CellFor(s *Spreadsheet, idx geometry.GridIndex) (recycler.Cell, error)
}

// SizeFunc reports the size of the cell at a logical index.
// Column widths are read from row 0 and row heights from column 0.
type SizeFunc func(idx geometry.GridIndex) geometry.Size

// Action names an editing-menu command
type Action string

const (
	ActionCut   Action = "cut"
	ActionCopy  Action = "copy"
	ActionPaste Action = "paste"
)

// StandardActions are offered in the action menu, in order
var StandardActions = []Action{ActionCut, ActionCopy, ActionPaste}

// Delegate receives user interaction. Every handle is optional; a nil
// handle does nothing or answers false.
type Delegate struct {
	OnSelect             func(idx geometry.GridIndex)
	ShouldShowActionMenu func(idx geometry.GridIndex) bool
	CanPerformAction     func(action Action, idx geometry.GridIndex, sender any) bool
	PerformAction        func(action Action, idx geometry.GridIndex, sender any)
}

func (d Delegate) withDefaults() Delegate {
	if d.OnSelect == nil {
		d.OnSelect = func(geometry.GridIndex) {}
	}
	if d.ShouldShowActionMenu == nil {
		d.ShouldShowActionMenu = func(geometry.GridIndex) bool { return false }
	}
	if d.CanPerformAction == nil {
		d.CanPerformAction = func(Action, geometry.GridIndex, any) bool { return false }
	}
	if d.PerformAction == nil {
		d.PerformAction = func(Action, geometry.GridIndex, any) {}
	}
	return d
}
