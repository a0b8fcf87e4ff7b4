package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/render"
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return "Loading sheet...\n"
	}

	sections := []string{}
	if grid := m.renderSheet(); grid != "" {
		sections = append(sections, grid)
	}
	sections = append(sections, m.renderStatus(), m.renderFooter())
	return strings.Join(sections, "\n")
}

// renderSheet draws every pane onto one canvas, body first so the headers
// and corner cover it
func (m Model) renderSheet() string {
	b := toBox(m.sheetBounds())
	c := render.NewCanvas(b.W, b.H)
	c.Fill(c.Bounds(), ' ', render.StyleGap)

	coord := m.sheet.Coordinator()
	for _, p := range coord.Panes() {
		clip := toBox(p.Frame())
		for _, vc := range m.sheet.VisibleCells(p.Kind()) {
			tc, ok := vc.Cell.(*TextCell)
			if !ok {
				continue
			}
			box := toBox(geometry.Rect{Origin: p.ToView(vc.Frame.Origin), Size: vc.Frame.Size})
			area := box.Intersect(clip)
			if area.Empty() {
				continue
			}
			style := m.cellStyle(tc, vc.Frame.Index)
			c.Fill(area, ' ', style)
			c.Text(box.X, box.Y, render.Fit(tc.Text, box.W, tc.Align), area, style)
		}
	}

	if m.sheet.IndicatorsVisible() {
		m.drawIndicators(c)
	}
	return c.Render(m.styles.paint)
}

func (m Model) cellStyle(tc *TextCell, idx geometry.GridIndex) render.Style {
	switch {
	case idx == m.cursor:
		return render.StyleCursor
	case tc.Selected():
		return render.StyleSelected
	case tc.Header:
		return render.StyleHeader
	}
	return render.StyleBody
}

// drawIndicators draws the body's scroll thumbs inside its inset frame
func (m Model) drawIndicators(c *render.Canvas) {
	body := m.sheet.Coordinator().Body()
	si := body.ScrollIndicators()
	track := toBox(body.Frame().Inset(si.Insets))
	if track.Empty() {
		return
	}
	content := body.ContentSize()
	frame := body.Frame().Size
	offset := body.Offset()
	limit := body.MaxOffset()

	if si.ShowsVertical && content.Height > frame.Height {
		pos, length := thumb(track.H, frame.Height, content.Height, offset.Y, limit.Y)
		x := track.X + track.W - 1
		for y := track.Y + pos; y < track.Y+pos+length; y++ {
			c.Text(x, y, "┃", track, render.StyleIndicator)
		}
	}
	if si.ShowsHorizontal && content.Width > frame.Width {
		pos, length := thumb(track.W, frame.Width, content.Width, offset.X, limit.X)
		y := track.Y + track.H - 1
		c.Text(track.X+pos, y, strings.Repeat("━", length), track, render.StyleIndicator)
	}
}

// thumb places a scroll thumb of at least one cell along a track
func thumb(track int, viewport, content, offset, maxOffset float64) (pos, length int) {
	if track <= 0 || content <= 0 {
		return 0, 0
	}
	length = min(max(int(float64(track)*viewport/content), 1), track)
	if maxOffset > 0 {
		pos = int(math.Round(float64(track-length) * offset / maxOffset))
	}
	return min(max(pos, 0), track-length), length
}

// renderStatus shows the cursor cell, the sheet size and the latest message
func (m Model) renderStatus() string {
	value := m.source.Table().Value(m.cursor.Row, m.cursor.Column)
	left := fmt.Sprintf(" %s %s ", m.cursor, value)
	mid := fmt.Sprintf(" %dx%d ", m.sheet.RowCount(), m.sheet.ColumnCount())
	if m.edges != 0 {
		mid += fmt.Sprintf("edge:%s ", edgeNames(m.edges))
	}

	right := m.feed.message
	rightStyle := m.styles.Status
	if m.err != nil {
		right = m.err.Error()
		rightStyle = m.styles.Error
	}

	used := render.Measure(left) + render.Measure(mid)
	rest := max(m.width-used, 0)
	return m.styles.Status.Render(left) +
		m.styles.Status.Render(mid) +
		rightStyle.Render(render.Fit(right, rest, render.AlignRight))
}

// renderFooter shows the action menu when open, the key help otherwise
func (m Model) renderFooter() string {
	if !m.menuOpen {
		return m.help.ShortHelpView(m.keys.ShortHelp())
	}
	items := make([]string, 0, len(m.menu)+1)
	for _, a := range m.menu {
		items = append(items, fmt.Sprintf("[%s] %s", string(a)[:1], a))
	}
	items = append(items, "[esc] close")
	return m.styles.Menu.Render("Actions: " + strings.Join(items, "  "))
}

// toBox snaps a view rect to whole terminal cells
func toBox(r geometry.Rect) render.Box {
	x0, y0 := int(math.Floor(r.MinX())), int(math.Floor(r.MinY()))
	x1, y1 := int(math.Floor(r.MaxX())), int(math.Floor(r.MaxY()))
	return render.Box{X: x0, Y: y0, W: max(x1-x0, 0), H: max(y1-y0, 0)}
}
