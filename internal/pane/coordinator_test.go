package pane

import (
	"errors"
	"testing"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/recycler"
)

type stubCell struct{ resets int }

func (c *stubCell) PrepareForReuse() { c.resets++ }

func newRegistry() *recycler.Registry {
	reg := recycler.NewRegistry()
	_ = reg.Register("cell", func() recycler.Cell { return &stubCell{} })
	return reg
}

func dequeueProvider(p *Pane, f geometry.CellFrame) (recycler.Cell, error) {
	return p.Recycler().Dequeue("cell", f.Index)
}

func uniformParams(rows, cols, headerRows, headerCols int, size geometry.Size) func(Kind) geometry.Params {
	regions := Partition(rows, cols, headerRows, headerCols)
	return func(k Kind) geometry.Params {
		r := regions[k]
		return geometry.Params{Rows: r.Rows, Columns: r.Columns, ItemSize: size, Spacing: 1}
	}
}

func newTestCoordinator(t *testing.T, rows, cols, headerRows, headerCols int, bounds geometry.Rect) *Coordinator {
	t.Helper()
	c := NewCoordinator(headerRows, headerCols, bounds, newRegistry())
	c.SetCellProvider(dequeueProvider)
	if err := c.Reload(uniformParams(rows, cols, headerRows, headerCols, geometry.Size{Width: 50, Height: 50})); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return c
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name       string
		headerRows int
		headerCols int
		want       []Kind
	}{
		{"no headers", 0, 0, []Kind{Body}},
		{"header rows only", 1, 0, []Kind{Body, ColumnHeader}},
		{"header columns only", 0, 2, []Kind{Body, RowHeader}},
		{"both", 1, 1, []Kind{Body, ColumnHeader, RowHeader, Corner}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions := Partition(10, 8, tt.headerRows, tt.headerCols)
			if len(regions) != len(tt.want) {
				t.Fatalf("Partition() = %d regions, want %d", len(regions), len(tt.want))
			}
			for _, k := range tt.want {
				if _, ok := regions[k]; !ok {
					t.Errorf("Partition() missing %v", k)
				}
			}

			// every cell covered exactly once
			count := make(map[geometry.GridIndex]int)
			for _, r := range regions {
				for row := r.Rows.Start; row < r.Rows.End(); row++ {
					for col := r.Columns.Start; col < r.Columns.End(); col++ {
						count[geometry.GridIndex{Row: row, Column: col}]++
					}
				}
			}
			if len(count) != 80 {
				t.Errorf("Partition() covers %d cells, want 80", len(count))
			}
			for idx, n := range count {
				if n != 1 {
					t.Errorf("cell %v covered %d times", idx, n)
				}
			}
		})
	}
}

func TestPartitionSharedRanges(t *testing.T) {
	regions := Partition(20, 12, 2, 3)
	if regions[ColumnHeader].Columns != regions[Body].Columns {
		t.Error("column header and body must share columns")
	}
	if regions[RowHeader].Rows != regions[Body].Rows {
		t.Error("row header and body must share rows")
	}
	if regions[Corner].Rows != regions[ColumnHeader].Rows || regions[Corner].Columns != regions[RowHeader].Columns {
		t.Error("corner must match header ranges")
	}
}

func TestNewCoordinatorPanes(t *testing.T) {
	tests := []struct {
		headerRows, headerCols int
		want                   int
	}{
		{0, 0, 1},
		{1, 0, 2},
		{0, 1, 2},
		{1, 1, 4},
	}
	for _, tt := range tests {
		c := NewCoordinator(tt.headerRows, tt.headerCols, geometry.NewRect(0, 0, 100, 100), newRegistry())
		if got := len(c.Panes()); got != tt.want {
			t.Errorf("NewCoordinator(%d,%d) panes = %d, want %d", tt.headerRows, tt.headerCols, got, tt.want)
		}
	}
}

func TestPaneFrames(t *testing.T) {
	c := newTestCoordinator(t, 5, 5, 1, 1, geometry.NewRect(0, 0, 200, 150))

	corner, _ := c.Pane(Corner)
	colHeader, _ := c.Pane(ColumnHeader)
	rowHeader, _ := c.Pane(RowHeader)
	body := c.Body()

	if got := corner.Frame(); got != geometry.NewRect(0, 0, 50, 50) {
		t.Errorf("corner frame = %+v", got)
	}
	if got := body.Frame(); got != geometry.NewRect(51, 51, 149, 99) {
		t.Errorf("body frame = %+v", got)
	}
	if got := colHeader.Frame(); got != geometry.NewRect(51, 0, 149, 50) {
		t.Errorf("column header frame = %+v", got)
	}
	if got := rowHeader.Frame(); got != geometry.NewRect(0, 51, 50, 99) {
		t.Errorf("row header frame = %+v", got)
	}
}

func TestScrollBodySyncsHeaders(t *testing.T) {
	c := newTestCoordinator(t, 20, 20, 1, 1, geometry.NewRect(0, 0, 200, 200))
	corner, _ := c.Pane(Corner)
	colHeader, _ := c.Pane(ColumnHeader)
	rowHeader, _ := c.Pane(RowHeader)

	var observed []geometry.Point
	c.OnScroll(func(o geometry.Point) {
		// headers must already have followed when observers run
		if colHeader.Offset().X != o.X || rowHeader.Offset().Y != o.Y {
			t.Errorf("observer ran before headers followed")
		}
		observed = append(observed, o)
	})

	if _, err := c.ScrollBody(geometry.Point{X: 120, Y: 0}); err != nil {
		t.Fatalf("ScrollBody() error = %v", err)
	}
	if got := colHeader.Offset(); got != (geometry.Point{X: 120}) {
		t.Errorf("column header offset = %+v, want (120,0)", got)
	}
	if got := rowHeader.Offset(); got != (geometry.Point{}) {
		t.Errorf("row header offset = %+v, want unchanged", got)
	}
	if got := corner.Offset(); got != (geometry.Point{}) {
		t.Errorf("corner offset = %+v, want (0,0)", got)
	}

	if _, err := c.ScrollBody(geometry.Point{X: 30, Y: 75}); err != nil {
		t.Fatalf("ScrollBody() error = %v", err)
	}
	if got := rowHeader.Offset(); got != (geometry.Point{Y: 75}) {
		t.Errorf("row header offset = %+v, want (0,75)", got)
	}
	if got := colHeader.Offset(); got != (geometry.Point{X: 30}) {
		t.Errorf("column header offset = %+v, want (30,0)", got)
	}
	if len(observed) != 2 {
		t.Errorf("observers ran %d times, want 2", len(observed))
	}
}

func TestScrollBodyRealizesHeaderCells(t *testing.T) {
	c := newTestCoordinator(t, 20, 20, 1, 1, geometry.NewRect(0, 0, 200, 200))
	colHeader, _ := c.Pane(ColumnHeader)

	if _, err := c.ScrollBody(geometry.Point{X: 510}); err != nil {
		t.Fatalf("ScrollBody() error = %v", err)
	}

	// body columns start at logical 1; x=510 is local column 10
	want := geometry.GridIndex{Row: 0, Column: 11}
	if _, ok := colHeader.CellAt(want); !ok {
		t.Errorf("column header should show %v after scroll, in use: %v", want, colHeader.Recycler().InUse())
	}
	if _, ok := colHeader.CellAt(geometry.GridIndex{Row: 0, Column: 1}); ok {
		t.Error("column header should have retired scrolled-out cell")
	}
	for _, f := range c.Body().Visible() {
		if _, ok := c.Body().CellAt(f.Index); !ok {
			t.Errorf("body visible frame %v has no cell", f.Index)
		}
	}
}

func TestScrollBodyClamps(t *testing.T) {
	c := newTestCoordinator(t, 5, 5, 0, 0, geometry.NewRect(0, 0, 100, 100))

	edges, err := c.ScrollBody(geometry.Point{X: -10, Y: 1000})
	if err != nil {
		t.Fatalf("ScrollBody() error = %v", err)
	}
	// content 254x254, viewport 100x100
	if got := c.Body().Offset(); got != (geometry.Point{X: 0, Y: 154}) {
		t.Errorf("offset = %+v, want (0,154)", got)
	}
	if edges&EdgeLeft == 0 || edges&EdgeBottom == 0 {
		t.Errorf("edges = %b, want left and bottom", edges)
	}
	if edges&(EdgeTop|EdgeRight) != 0 {
		t.Errorf("edges = %b, unexpected top or right", edges)
	}

	edges, _ = c.ScrollBodyBy(10, -10)
	if edges != 0 {
		t.Errorf("in-range scroll edges = %b, want 0", edges)
	}
	if got := c.Body().Offset(); got != (geometry.Point{X: 10, Y: 144}) {
		t.Errorf("offset after ScrollBodyBy = %+v", got)
	}
}

func TestReloadClampsShrunkContent(t *testing.T) {
	c := newTestCoordinator(t, 100, 3, 0, 1, geometry.NewRect(0, 0, 300, 200))

	// row 50 of the body
	if _, err := c.ScrollBody(geometry.Point{Y: 50 * 51}); err != nil {
		t.Fatalf("ScrollBody() error = %v", err)
	}
	rowHeader, _ := c.Pane(RowHeader)

	if err := c.Reload(uniformParams(10, 3, 0, 1, geometry.Size{Width: 50, Height: 50})); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	// 10 rows: 509 tall, viewport 200
	want := 509.0 - 200.0
	if got := c.Body().Offset().Y; got != want {
		t.Errorf("body offset after shrink = %v, want %v", got, want)
	}
	if got := rowHeader.Offset().Y; got != want {
		t.Errorf("row header offset after shrink = %v, want %v", got, want)
	}
	for _, idx := range c.Body().Recycler().InUse() {
		if idx.Row >= 10 {
			t.Errorf("cell %v still in use after shrink", idx)
		}
	}
}

func TestReloadRefreshesVisibleCells(t *testing.T) {
	c := newTestCoordinator(t, 5, 5, 0, 0, geometry.NewRect(0, 0, 100, 100))
	calls := 0
	c.SetCellProvider(func(p *Pane, f geometry.CellFrame) (recycler.Cell, error) {
		calls++
		return dequeueProvider(p, f)
	})

	if err := c.Reload(uniformParams(5, 5, 0, 0, geometry.Size{Width: 50, Height: 50})); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	visible := len(c.Body().Visible())
	if calls != visible {
		t.Errorf("provider calls = %d, want one per visible cell (%d)", calls, visible)
	}
	if got := c.Body().Recycler().Created("cell"); got != visible {
		t.Errorf("Created() = %d, reload should reuse the %d existing cells", got, visible)
	}

	calls = 0
	if err := c.Layout(); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("Layout() with nothing new visible called provider %d times", calls)
	}
}

func TestReloadIsolatesPaneFailures(t *testing.T) {
	c := NewCoordinator(1, 1, geometry.NewRect(0, 0, 200, 200), newRegistry())
	boom := errors.New("boom")
	c.SetCellProvider(func(p *Pane, f geometry.CellFrame) (recycler.Cell, error) {
		if p.Kind() == ColumnHeader {
			return nil, boom
		}
		return dequeueProvider(p, f)
	})

	err := c.Reload(uniformParams(5, 5, 1, 1, geometry.Size{Width: 50, Height: 50}))
	if !errors.Is(err, boom) {
		t.Fatalf("Reload() error = %v, want boom", err)
	}
	var pe *PaneError
	if !errors.As(err, &pe) || pe.Kind != ColumnHeader {
		t.Errorf("Reload() error should name the column header pane, got %v", err)
	}

	if len(c.Body().Recycler().InUse()) == 0 {
		t.Error("body should still be reconciled when another pane fails")
	}
	corner, _ := c.Pane(Corner)
	if _, ok := corner.CellAt(geometry.GridIndex{}); !ok {
		t.Error("corner should still be reconciled when another pane fails")
	}
}

func TestRealizeRejectsForeignCell(t *testing.T) {
	c := NewCoordinator(0, 0, geometry.NewRect(0, 0, 50, 50), newRegistry())
	c.SetCellProvider(func(p *Pane, f geometry.CellFrame) (recycler.Cell, error) {
		return &stubCell{}, nil
	})
	err := c.Reload(uniformParams(1, 1, 0, 0, geometry.Size{Width: 50, Height: 50}))
	if !errors.Is(err, ErrCellNotDequeued) {
		t.Errorf("Reload() error = %v, want ErrCellNotDequeued", err)
	}
}

func TestEmptyGridHasNoCells(t *testing.T) {
	c := newTestCoordinator(t, 0, 4, 0, 0, geometry.NewRect(0, 0, 100, 100))
	if got := c.Body().ContentSize(); got != (geometry.Size{Width: 203, Height: 0}) {
		t.Errorf("ContentSize() = %+v, want (203,0)", got)
	}
	if len(c.Body().Visible()) != 0 {
		t.Error("zero-row grid should realize no cells")
	}
}

func TestHitTest(t *testing.T) {
	c := newTestCoordinator(t, 5, 5, 1, 1, geometry.NewRect(0, 0, 200, 200))
	_, _ = c.ScrollBody(geometry.Point{X: 51})

	tests := []struct {
		name     string
		p        geometry.Point
		wantKind Kind
		wantIdx  geometry.GridIndex
		wantOK   bool
	}{
		{"corner", geometry.Point{X: 10, Y: 10}, Corner, geometry.GridIndex{}, true},
		{"column header scrolled", geometry.Point{X: 60, Y: 10}, ColumnHeader, geometry.GridIndex{Row: 0, Column: 2}, true},
		{"row header", geometry.Point{X: 10, Y: 110}, RowHeader, geometry.GridIndex{Row: 2, Column: 0}, true},
		{"body", geometry.Point{X: 60, Y: 60}, Body, geometry.GridIndex{Row: 1, Column: 2}, true},
		{"gap between panes", geometry.Point{X: 50.5, Y: 10}, Body, geometry.GridIndex{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, idx, ok := c.HitTest(tt.p)
			if ok != tt.wantOK {
				t.Fatalf("HitTest(%+v) ok = %v, want %v", tt.p, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if kind != tt.wantKind || idx != tt.wantIdx {
				t.Errorf("HitTest(%+v) = %v %v, want %v %v", tt.p, kind, idx, tt.wantKind, tt.wantIdx)
			}
		})
	}
}

func TestPaneFor(t *testing.T) {
	c := newTestCoordinator(t, 5, 5, 1, 2, geometry.NewRect(0, 0, 200, 200))
	tests := []struct {
		idx  geometry.GridIndex
		want Kind
	}{
		{geometry.GridIndex{Row: 0, Column: 0}, Corner},
		{geometry.GridIndex{Row: 0, Column: 1}, Corner},
		{geometry.GridIndex{Row: 0, Column: 2}, ColumnHeader},
		{geometry.GridIndex{Row: 3, Column: 1}, RowHeader},
		{geometry.GridIndex{Row: 4, Column: 4}, Body},
	}
	for _, tt := range tests {
		p, ok := c.PaneFor(tt.idx)
		if !ok || p.Kind() != tt.want {
			t.Errorf("PaneFor(%v) = %v, want %v", tt.idx, p, tt.want)
		}
	}
	if _, ok := c.PaneFor(geometry.GridIndex{Row: 9, Column: 9}); ok {
		t.Error("PaneFor() outside grid should fail")
	}
}

func TestSetScrollIndicatorsMirrors(t *testing.T) {
	c := newTestCoordinator(t, 5, 5, 1, 1, geometry.NewRect(0, 0, 200, 200))
	si := ScrollIndicators{Insets: geometry.Insets{Top: 2}, ShowsVertical: true}
	c.SetScrollIndicators(si)
	for _, p := range c.Panes() {
		if p.ScrollIndicators() != si {
			t.Errorf("%v pane indicators = %+v, want %+v", p.Kind(), p.ScrollIndicators(), si)
		}
	}
}

func TestSetSpacingRelayouts(t *testing.T) {
	c := newTestCoordinator(t, 5, 5, 1, 1, geometry.NewRect(0, 0, 400, 400))
	if err := c.SetSpacing(0); err != nil {
		t.Fatalf("SetSpacing() error = %v", err)
	}
	if got := c.Body().Frame().Origin; got != (geometry.Point{X: 50, Y: 50}) {
		t.Errorf("body origin after SetSpacing(0) = %+v, want (50,50)", got)
	}
	if got := c.Body().ContentSize(); got != (geometry.Size{Width: 200, Height: 200}) {
		t.Errorf("body content = %+v, want 200x200", got)
	}
}
