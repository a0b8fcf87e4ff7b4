package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/pane"
	"github.com/young1lin/sheetview/internal/sheet"
)

// wheelLines is how far one wheel notch scrolls vertically
const wheelLines = 3

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ready = true
		if err := m.sheet.Resize(m.sheetBounds()); err != nil {
			m.err = err
		}
		return m.reveal()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case ReloadMsg:
		return m.reload(msg.Reason)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case WatcherFailedMsg:
		m.err = fmt.Errorf("watcher: %w", msg.Err)
		return m, nil

	case IndicatorTickMsg:
		// re-render so expired indicators disappear
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menuOpen {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.PageUp):
		return m.moveCursor(-m.rowsPerPage(), 0)
	case key.Matches(msg, m.keys.PageDown):
		return m.moveCursor(m.rowsPerPage(), 0)
	case key.Matches(msg, m.keys.Home):
		m.cursor = m.clampIndex(geometry.GridIndex{Row: m.sheet.HeaderRows(), Column: m.sheet.HeaderColumns()})
		return m.reveal()
	case key.Matches(msg, m.keys.End):
		m.cursor = m.clampIndex(geometry.GridIndex{Row: m.sheet.RowCount() - 1, Column: m.sheet.ColumnCount() - 1})
		return m.reveal()
	case key.Matches(msg, m.keys.Select):
		if err := m.sheet.Select(m.cursor); err != nil {
			m.err = err
		}
		return m, nil
	case key.Matches(msg, m.keys.Deselect):
		if _, ok := m.sheet.Selected(); ok {
			m.sheet.Deselect(nil, true)
			m.feed.message = "selection cleared"
		}
		return m, nil
	case key.Matches(msg, m.keys.Menu):
		m.menu = m.sheet.MenuActions(m.cursor, "keyboard")
		if len(m.menu) == 0 {
			m.feed.message = fmt.Sprintf("no actions for %s", m.cursor)
			return m, nil
		}
		m.menuOpen = true
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m.reload("manual")
	}

	return m, nil
}

// handleMenuKey runs an action or closes the open action menu
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy) && slices.Contains(m.menu, sheet.ActionCopy):
		m.sheet.PerformAction(sheet.ActionCopy, m.cursor, "menu")
		m.menuOpen = false
	case key.Matches(msg, m.keys.Deselect), key.Matches(msg, m.keys.Menu):
		m.menuOpen = false
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouseMsg scrolls on the wheel and selects on click
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	step := m.sheet.ItemSize()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.scrollBy(0, -wheelLines*step.Height)
	case tea.MouseButtonWheelDown:
		return m.scrollBy(0, wheelLines*step.Height)
	case tea.MouseButtonWheelLeft:
		return m.scrollBy(-step.Width, 0)
	case tea.MouseButtonWheelRight:
		return m.scrollBy(step.Width, 0)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		_, idx, ok := m.sheet.Coordinator().HitTest(geometry.Point{X: float64(msg.X), Y: float64(msg.Y)})
		if !ok {
			return m, nil
		}
		m.cursor = idx
		if err := m.sheet.Select(idx); err != nil {
			m.err = err
		}
	}
	return m, nil
}

func (m Model) moveCursor(dr, dc int) (tea.Model, tea.Cmd) {
	m.cursor = m.clampIndex(geometry.GridIndex{Row: m.cursor.Row + dr, Column: m.cursor.Column + dc})
	return m.reveal()
}

// reveal scrolls the cursor into view
func (m Model) reveal() (tea.Model, tea.Cmd) {
	if m.sheet.RowCount() == 0 || m.sheet.ColumnCount() == 0 {
		return m, nil
	}
	before := m.sheet.ContentOffset()
	if err := m.sheet.ScrollToCell(m.cursor); err != nil {
		m.err = err
		return m, nil
	}
	if m.sheet.ContentOffset() == before {
		return m, nil
	}
	return m, m.flashCmd()
}

func (m Model) scrollBy(dx, dy float64) (tea.Model, tea.Cmd) {
	edges, err := m.sheet.ScrollBodyBy(dx, dy)
	if err != nil {
		m.err = err
	}
	m.edges = 0
	if m.sheet.Bounces() {
		m.edges = edges
	}
	return m, m.flashCmd()
}

// rowsPerPage is the number of body rows that fit in the viewport
func (m Model) rowsPerPage() int {
	pitch := m.sheet.ItemSize().Height + m.sheet.Spacing()
	if pitch <= 0 {
		return 1
	}
	return max(int(m.sheet.Coordinator().Body().Frame().Size.Height/pitch), 1)
}

// reload fetches a fresh table. A table that no longer fits the header
// configuration is rejected and the previous one kept.
func (m Model) reload(reason string) (tea.Model, tea.Cmd) {
	table, err := m.loader.Load()
	if err != nil {
		m.err = fmt.Errorf("reload: %w", err)
		return m, nil
	}

	previous := m.source.Table()
	m.source.Replace(table)
	err = m.sheet.ReloadData()
	if errors.Is(err, sheet.ErrInvalidHeaderConfiguration) {
		m.source.Replace(previous)
		m.err = err
		return m, nil
	}
	m.err = err

	m.cursor = m.clampIndex(m.cursor)
	m.feed.message = fmt.Sprintf("reloaded %dx%d (%s)", m.sheet.RowCount(), m.sheet.ColumnCount(), reason)
	return m, nil
}

// flashCmd schedules a redraw for when the indicator flash ends
func (m Model) flashCmd() tea.Cmd {
	wait := m.sheet.FlashDeadline().Sub(m.clock())
	if wait <= 0 {
		return nil
	}
	return tea.Tick(wait+10*time.Millisecond, func(time.Time) tea.Msg {
		return IndicatorTickMsg{}
	})
}

// edgeNames describes bounce edges for the status line
func edgeNames(e pane.Edge) string {
	var names []string
	for _, n := range []struct {
		edge pane.Edge
		name string
	}{
		{pane.EdgeTop, "top"},
		{pane.EdgeBottom, "bottom"},
		{pane.EdgeLeft, "left"},
		{pane.EdgeRight, "right"},
	} {
		if e&n.edge != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}
