package geometry

import (
	"errors"
	"testing"
)

func uniform(rows, cols int, w, h, spacing float64) *Geometry {
	return New(Params{
		Rows:     Span{Start: 0, Count: rows},
		Columns:  Span{Start: 0, Count: cols},
		ItemSize: Size{Width: w, Height: h},
		Spacing:  spacing,
	})
}

func TestContentSize(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		spacing float64
		want    Size
	}{
		{"5x5 with spacing 1", 5, 5, 1, Size{Width: 254, Height: 254}},
		{"single cell", 1, 1, 1, Size{Width: 50, Height: 50}},
		{"no spacing", 3, 2, 0, Size{Width: 100, Height: 150}},
		{"zero rows keeps width", 0, 4, 1, Size{Width: 203, Height: 0}},
		{"zero columns keeps height", 4, 0, 1, Size{Width: 0, Height: 203}},
		{"empty grid", 0, 0, 1, Size{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := uniform(tt.rows, tt.cols, 50, 50, tt.spacing)
			if got := g.ContentSize(); got != tt.want {
				t.Errorf("ContentSize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFrameForScenarioA(t *testing.T) {
	full := uniform(5, 5, 50, 50, 1)
	if got := full.ContentSize(); got != (Size{Width: 254, Height: 254}) {
		t.Fatalf("full grid ContentSize() = %+v, want 254x254", got)
	}

	// Body pane of a 5x5 grid with one header row and one header column
	body := New(Params{
		Rows:     Span{Start: 1, Count: 4},
		Columns:  Span{Start: 1, Count: 4},
		ItemSize: Size{Width: 50, Height: 50},
		Spacing:  1,
	})

	f, err := body.FrameFor(0, 0)
	if err != nil {
		t.Fatalf("FrameFor(0,0) error = %v", err)
	}
	if f.Origin != (Point{}) || f.Size != (Size{Width: 50, Height: 50}) {
		t.Errorf("FrameFor(0,0) = %+v, want origin (0,0) size 50x50", f)
	}
	if f.Index != (GridIndex{Row: 1, Column: 1}) {
		t.Errorf("FrameFor(0,0).Index = %v, want r1c1", f.Index)
	}

	f, err = body.FrameForIndex(GridIndex{Row: 2, Column: 2})
	if err != nil {
		t.Fatalf("FrameForIndex(2,2) error = %v", err)
	}
	if f.Origin != (Point{X: 51, Y: 51}) {
		t.Errorf("FrameForIndex(2,2).Origin = %+v, want (51,51)", f.Origin)
	}
}

func TestFrameForOutOfRange(t *testing.T) {
	g := uniform(3, 3, 10, 10, 1)

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, err := g.FrameFor(idx[0], idx[1])
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("FrameFor(%d,%d) error = %v, want ErrIndexOutOfRange", idx[0], idx[1], err)
		}
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Errorf("FrameFor(%d,%d) error should be *IndexError", idx[0], idx[1])
		}
	}

	body := New(Params{Rows: Span{Start: 2, Count: 2}, Columns: Span{Start: 2, Count: 2}, ItemSize: Size{Width: 1, Height: 1}})
	if _, err := body.FrameForIndex(GridIndex{Row: 1, Column: 2}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("FrameForIndex outside span error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestFramesMonotonicWithSpacing(t *testing.T) {
	heights := []float64{10, 25, 5, 40, 12}
	widths := []float64{7, 3, 30, 18}
	g := New(Params{
		Rows:        Span{Count: len(heights)},
		Columns:     Span{Count: len(widths)},
		Spacing:     2,
		RowHeight:   func(r int) float64 { return heights[r] },
		ColumnWidth: func(c int) float64 { return widths[c] },
	})

	for r := 0; r < len(heights); r++ {
		for c := 1; c < len(widths); c++ {
			prev, _ := g.FrameFor(r, c-1)
			cur, _ := g.FrameFor(r, c)
			if cur.Origin.X <= prev.Origin.X {
				t.Errorf("origin.x not increasing at (%d,%d)", r, c)
			}
			if gap := cur.Origin.X - (prev.Origin.X + prev.Size.Width); gap != 2 {
				t.Errorf("horizontal gap at (%d,%d) = %v, want 2", r, c, gap)
			}
		}
	}
	for c := 0; c < len(widths); c++ {
		for r := 1; r < len(heights); r++ {
			prev, _ := g.FrameFor(r-1, c)
			cur, _ := g.FrameFor(r, c)
			if gap := cur.Origin.Y - (prev.Origin.Y + prev.Size.Height); gap != 2 {
				t.Errorf("vertical gap at (%d,%d) = %v, want 2", r, c, gap)
			}
		}
	}

	last, _ := g.FrameFor(len(heights)-1, len(widths)-1)
	want := Size{Width: last.Origin.X + last.Size.Width, Height: last.Origin.Y + last.Size.Height}
	if got := g.ContentSize(); got != want {
		t.Errorf("ContentSize() = %+v, want extent of last cell %+v", got, want)
	}
}

func TestCellsIntersecting(t *testing.T) {
	g := uniform(5, 5, 50, 50, 1)

	tests := []struct {
		name string
		rect Rect
		want []GridIndex
	}{
		{
			name: "first cell only",
			rect: NewRect(0, 0, 50, 50),
			want: []GridIndex{{0, 0}},
		},
		{
			name: "straddles a gap",
			rect: NewRect(40, 40, 20, 20),
			want: []GridIndex{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
		{
			name: "inside a spacing gap",
			rect: NewRect(50, 0, 1, 50),
			want: nil,
		},
		{
			name: "touching edge does not intersect",
			rect: NewRect(254, 0, 10, 10),
			want: nil,
		},
		{
			name: "outside content",
			rect: NewRect(-100, -100, 50, 50),
			want: nil,
		},
		{
			name: "degenerate rect",
			rect: NewRect(10, 10, 0, 20),
			want: nil,
		},
		{
			name: "last row partial",
			rect: NewRect(0, 230, 60, 100),
			want: []GridIndex{{4, 0}, {4, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.CellsIntersecting(tt.rect)
			if len(got) != len(tt.want) {
				t.Fatalf("CellsIntersecting(%+v) = %v, want %v", tt.rect, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("CellsIntersecting()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCellsIntersectingMatchesBruteForce(t *testing.T) {
	heights := []float64{3, 0, 8, 1, 6, 2}
	g := New(Params{
		Rows:        Span{Start: 4, Count: len(heights)},
		Columns:     Span{Start: 2, Count: 7},
		ItemSize:    Size{Width: 5, Height: 5},
		Spacing:     1,
		RowHeight:   func(r int) float64 { return heights[r-4] },
		ColumnWidth: func(c int) float64 { return float64(c) },
	})

	rects := []Rect{
		NewRect(0, 0, 1, 1),
		NewRect(3, 2, 11, 9),
		NewRect(-5, -5, 200, 200),
		NewRect(12.5, 4.5, 0.25, 0.25),
		NewRect(20, 10, 40, 3),
	}

	for _, rect := range rects {
		want := map[GridIndex]bool{}
		for r := 0; r < g.Rows().Count; r++ {
			for c := 0; c < g.Columns().Count; c++ {
				f, _ := g.FrameFor(r, c)
				if f.Rect().Intersects(rect) {
					want[f.Index] = true
				}
			}
		}

		got := g.CellsIntersecting(rect)
		if len(got) != len(want) {
			t.Errorf("CellsIntersecting(%+v) returned %d cells, want %d", rect, len(got), len(want))
			continue
		}
		seen := map[GridIndex]bool{}
		for _, idx := range got {
			if !want[idx] {
				t.Errorf("CellsIntersecting(%+v) returned unexpected %v", rect, idx)
			}
			if seen[idx] {
				t.Errorf("CellsIntersecting(%+v) returned %v twice", rect, idx)
			}
			seen[idx] = true
		}
	}
}

func TestCellsIntersectingFullContent(t *testing.T) {
	g := uniform(40, 30, 7, 3, 1)
	size := g.ContentSize()
	got := g.CellsIntersecting(Rect{Size: size})
	if len(got) != 40*30 {
		t.Fatalf("full content rect returned %d cells, want %d", len(got), 40*30)
	}
	seen := map[GridIndex]bool{}
	for _, idx := range got {
		if seen[idx] {
			t.Fatalf("cell %v returned twice", idx)
		}
		seen[idx] = true
	}
}

func TestCellsIntersectingEmptyGrid(t *testing.T) {
	g := uniform(0, 5, 10, 10, 1)
	if got := g.CellsIntersecting(NewRect(0, 0, 1000, 1000)); len(got) != 0 {
		t.Errorf("CellsIntersecting() on zero rows = %v, want empty", got)
	}
}

func TestIndexAt(t *testing.T) {
	g := New(Params{
		Rows:     Span{Start: 1, Count: 3},
		Columns:  Span{Start: 1, Count: 3},
		ItemSize: Size{Width: 10, Height: 2},
		Spacing:  1,
	})

	tests := []struct {
		name   string
		p      Point
		want   GridIndex
		wantOK bool
	}{
		{"origin", Point{0, 0}, GridIndex{1, 1}, true},
		{"second column", Point{11, 1}, GridIndex{1, 2}, true},
		{"third row", Point{25, 6.5}, GridIndex{3, 3}, true},
		{"gap", Point{10.5, 0}, GridIndex{}, false},
		{"past content", Point{100, 0}, GridIndex{}, false},
		{"negative", Point{-1, 0}, GridIndex{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.IndexAt(tt.p)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("IndexAt(%+v) = %v, %v; want %v, %v", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRectOps(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	if u := a.Union(b); u != NewRect(0, 0, 15, 15) {
		t.Errorf("Union() = %+v", u)
	}
	if u := a.Union(Rect{}); u != a {
		t.Errorf("Union(empty) = %+v, want %+v", u, a)
	}
	in := a.Inset(Insets{Top: 1, Left: 2, Bottom: 3, Right: 4})
	if in != NewRect(2, 1, 4, 6) {
		t.Errorf("Inset() = %+v", in)
	}
	if !a.Contains(Point{0, 0}) || a.Contains(Point{10, 0}) {
		t.Error("Contains() should include min edge and exclude max edge")
	}
}

func BenchmarkCellsIntersectingLargeGrid(b *testing.B) {
	g := uniform(1000, 1000, 150, 150, 1)
	viewport := NewRect(75000, 75000, 1024, 768)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.CellsIntersecting(viewport)
	}
}
