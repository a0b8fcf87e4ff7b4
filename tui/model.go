package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/young1lin/sheetview/internal/geometry"
	"github.com/young1lin/sheetview/internal/pane"
	"github.com/young1lin/sheetview/internal/recycler"
	"github.com/young1lin/sheetview/internal/render"
	"github.com/young1lin/sheetview/internal/sheet"
)

// footerLines is the status line plus the help or menu line
const footerLines = 2

// Options configures a Model
type Options struct {
	HeaderRows    int
	HeaderColumns int
	ItemSize      geometry.Size
	Spacing       float64
	Align         render.Align
	Indicators    pane.ScrollIndicators
	Logf          func(format string, args ...any)
	Clock         func() time.Time
}

// activity is shared between the model and the sheet delegate
type activity struct {
	message   string
	clipboard string
}

// Model represents the application state
type Model struct {
	sheet  *sheet.Spreadsheet
	source *TableSource
	loader Loader
	clock  func() time.Time

	// terminal size
	width  int
	height int

	cursor   geometry.GridIndex
	menu     []sheet.Action
	menuOpen bool
	edges    pane.Edge

	feed *activity

	// State
	ready    bool
	quitting bool
	err      error

	keys   KeyMap
	help   help.Model
	styles Styles
}

// Styles contains the Lipgloss styles for the UI
type Styles struct {
	Header    lipgloss.Style
	Body      lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Gap       lipgloss.Style
	Indicator lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Menu      lipgloss.Style
}

// DefaultStyles returns the default UI styles
func DefaultStyles() Styles {
	var styles Styles

	// Color palette
	primaryColor := lipgloss.Color("86")    // Green
	secondaryColor := lipgloss.Color("239") // Grey
	errorColor := lipgloss.Color("196")     // Red

	styles.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("236"))

	styles.Body = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	styles.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(primaryColor)

	styles.Cursor = lipgloss.NewStyle().
		Reverse(true)

	// separators show the view background
	styles.Gap = lipgloss.NewStyle()

	styles.Indicator = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243"))

	styles.Status = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(secondaryColor)

	styles.Error = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	styles.Menu = lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor)

	return styles
}

// paint maps canvas styles to colors
func (s Styles) paint(style render.Style, text string) string {
	switch style {
	case render.StyleHeader:
		return s.Header.Render(text)
	case render.StyleBody:
		return s.Body.Render(text)
	case render.StyleSelected:
		return s.Selected.Render(text)
	case render.StyleCursor:
		return s.Cursor.Render(text)
	case render.StyleIndicator:
		return s.Indicator.Render(text)
	case render.StyleGap:
		return s.Gap.Render(text)
	}
	return text
}

// NewModel loads the first table and builds the spreadsheet. The sheet has
// no area until the first window size message arrives.
func NewModel(loader Loader, opts Options) (Model, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}

	table, err := loader.Load()
	if err != nil {
		return Model{}, fmt.Errorf("failed to load table: %w", err)
	}

	feed := &activity{}
	source := NewTableSource(table, opts.Align, opts.ItemSize, opts.HeaderRows, opts.HeaderColumns)
	sh, err := sheet.New(opts.HeaderRows, opts.HeaderColumns, geometry.Rect{},
		sheet.WithDataSource(source),
		sheet.WithSizeFunc(source.SizeFor),
		sheet.WithItemSize(opts.ItemSize),
		sheet.WithSpacing(opts.Spacing),
		sheet.WithScrollIndicators(opts.Indicators),
		sheet.WithDelegate(newDelegate(feed, source)),
		sheet.WithLogger(opts.Logf),
		sheet.WithClock(opts.Clock),
	)
	if err != nil {
		return Model{}, err
	}
	if err := sh.RegisterCellFactory(CellIdentifier, func() recycler.Cell { return &TextCell{} }); err != nil {
		return Model{}, err
	}
	if err := sh.ReloadData(); err != nil {
		return Model{}, err
	}

	m := Model{
		sheet:  sh,
		source: source,
		loader: loader,
		clock:  opts.Clock,
		feed:   feed,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
	}
	m.cursor = m.clampIndex(geometry.GridIndex{Row: opts.HeaderRows, Column: opts.HeaderColumns})
	return m, nil
}

// newDelegate reports selection and copy through the shared activity
func newDelegate(feed *activity, source *TableSource) sheet.Delegate {
	value := func(idx geometry.GridIndex) string {
		return source.Table().Value(idx.Row, idx.Column)
	}
	return sheet.Delegate{
		OnSelect: func(idx geometry.GridIndex) {
			feed.message = fmt.Sprintf("selected %s = %q", idx, value(idx))
		},
		ShouldShowActionMenu: func(idx geometry.GridIndex) bool {
			return true
		},
		CanPerformAction: func(action sheet.Action, idx geometry.GridIndex, sender any) bool {
			return action == sheet.ActionCopy && value(idx) != ""
		},
		PerformAction: func(action sheet.Action, idx geometry.GridIndex, sender any) {
			if action != sheet.ActionCopy {
				return
			}
			feed.clipboard = value(idx)
			feed.message = fmt.Sprintf("copied %q from %s", feed.clipboard, idx)
		},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Sheet exposes the spreadsheet controller
func (m Model) Sheet() *sheet.Spreadsheet { return m.sheet }

// Cursor returns the cell the keyboard acts on
func (m Model) Cursor() geometry.GridIndex { return m.cursor }

// Clipboard returns the last copied value
func (m Model) Clipboard() string { return m.feed.clipboard }

// Message returns the latest status message
func (m Model) Message() string { return m.feed.message }

// Err returns the last error shown in the status line
func (m Model) Err() error { return m.err }

// sheetBounds is the area left for the panes above the footer
func (m Model) sheetBounds() geometry.Rect {
	return geometry.NewRect(0, 0, float64(m.width), float64(max(m.height-footerLines, 0)))
}

func (m Model) clampIndex(idx geometry.GridIndex) geometry.GridIndex {
	rows, cols := m.sheet.RowCount(), m.sheet.ColumnCount()
	idx.Row = min(max(idx.Row, 0), max(rows-1, 0))
	idx.Column = min(max(idx.Column, 0), max(cols-1, 0))
	return idx
}
