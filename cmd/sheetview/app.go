package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/young1lin/sheetview/internal/config"
	"github.com/young1lin/sheetview/internal/debug"
	"github.com/young1lin/sheetview/internal/store"
	"github.com/young1lin/sheetview/internal/watch"
	"github.com/young1lin/sheetview/tui"
)

// Demo sheet size used when the database is empty and no -seed is given
const (
	demoRows = 200
	demoCols = 30
)

// errBadSeed is returned for a -seed value that is not ROWSxCOLS
var errBadSeed = errors.New("seed must look like 200x30")

// ProgramSender is an interface for sending messages to a Bubbletea program
type ProgramSender interface {
	Send(msg tea.Msg)
}

// Flags holds the command line options. Negative header counts mean
// "use the config value".
type Flags struct {
	DB            string
	Config        string
	SeedRows      int
	SeedCols      int
	HeaderRows    int
	HeaderColumns int
	ShowVersion   bool
}

// Seeded reports whether -seed was given
func (f Flags) Seeded() bool {
	return f.SeedRows > 0 || f.SeedCols > 0
}

// parseFlags reads the command line
func parseFlags(args []string, output io.Writer) (Flags, error) {
	f := Flags{HeaderRows: -1, HeaderColumns: -1}
	var seed string

	fs := flag.NewFlagSet("sheetview", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.DB, "db", "", "sheet database `path` (default from config)")
	fs.StringVar(&f.Config, "config", "", "config file `path` (default .sheetview/config.yaml, then ~/.sheetview/config.yaml)")
	fs.StringVar(&seed, "seed", "", "replace the sheet with a ROWSxCOLS demo, e.g. 200x30")
	fs.IntVar(&f.HeaderRows, "header-rows", -1, "frozen header rows (overrides config)")
	fs.IntVar(&f.HeaderColumns, "header-cols", -1, "frozen header columns (overrides config)")
	fs.BoolVar(&f.ShowVersion, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	if seed != "" {
		rows, cols, err := parseSeed(seed)
		if err != nil {
			return Flags{}, err
		}
		f.SeedRows, f.SeedCols = rows, cols
	}
	return f, nil
}

// parseSeed parses "ROWSxCOLS"
func parseSeed(s string) (rows, cols int, err error) {
	r, c, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errBadSeed, s)
	}
	rows, err = strconv.Atoi(strings.TrimSpace(r))
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", errBadSeed, s)
	}
	cols, err = strconv.Atoi(strings.TrimSpace(c))
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", errBadSeed, s)
	}
	return rows, cols, nil
}

// AppDependencies contains the dependencies for the main application
type AppDependencies struct {
	Flags          Flags
	ConfigLoader   func(path string) (*config.Config, error)
	DBOpener       func(string) (*store.DB, error)
	WatcherCreator func(string) (watch.WatcherInterface, error)
	ProgramRunner  func(*tea.Program) error
	Stderr         io.Writer
}

// loadConfig reads -config when given, otherwise the usual locations
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load("")
}

func run(deps *AppDependencies) error {
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	loader := deps.ConfigLoader
	if loader == nil {
		loader = loadConfig
	}

	cfg, err := loader(deps.Flags.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := debug.InitFromEnv(cfg.Debug.LogFile); err != nil {
		fmt.Fprintf(stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debug.Close()
	debug.Logf("config from %q", cfg.Source)

	dbPath := deps.Flags.DB
	if dbPath == "" {
		dbPath = cfg.DBPath()
	}
	db, err := deps.DBOpener(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := prepareSheet(db, deps.Flags, stderr); err != nil {
		return err
	}

	rows, cols, err := db.Dimensions()
	if err != nil {
		return fmt.Errorf("failed to read sheet size: %w", err)
	}
	headerRows, headerCols := headerCounts(cfg, deps.Flags, rows, cols, stderr)

	model, err := tui.NewModel(snapshotLoader(db), tui.Options{
		HeaderRows:    headerRows,
		HeaderColumns: headerCols,
		ItemSize:      cfg.ItemSize(),
		Spacing:       cfg.Grid.Spacing,
		Align:         cfg.Align(),
		Indicators:    cfg.ScrollIndicators(),
		Logf:          debug.Scoped("sheet"),
	})
	if err != nil {
		return fmt.Errorf("failed to build sheet: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.Data.Watch {
		watcher, err := deps.WatcherCreator(db.Path())
		if err != nil {
			// Warning, not fatal
			fmt.Fprintf(stderr, "Warning: not watching %s: %v\n", db.Path(), err)
		} else {
			defer watcher.Close()
			go runWatchLoop(p, watcher)
		}
	}

	return deps.ProgramRunner(p)
}

// prepareSheet applies -seed, or fills an empty database with a demo sheet
func prepareSheet(db *store.DB, flags Flags, stderr io.Writer) error {
	if flags.Seeded() {
		if err := db.Seed(flags.SeedRows, flags.SeedCols); err != nil {
			return fmt.Errorf("failed to seed sheet: %w", err)
		}
		return nil
	}

	rows, cols, err := db.Dimensions()
	if err != nil {
		return fmt.Errorf("failed to read sheet size: %w", err)
	}
	if rows > 0 && cols > 0 {
		return nil
	}
	fmt.Fprintf(stderr, "Warning: %s is empty, seeding a %dx%d demo sheet\n", db.Path(), demoRows, demoCols)
	if err := db.Seed(demoRows, demoCols); err != nil {
		return fmt.Errorf("failed to seed sheet: %w", err)
	}
	return nil
}

// headerCounts picks the header split from flags over config, shrunk to
// fit the sheet so the first load cannot fail
func headerCounts(cfg *config.Config, flags Flags, rows, cols int, stderr io.Writer) (int, int) {
	hr, hc := cfg.Grid.HeaderRows, cfg.Grid.HeaderColumns
	if flags.HeaderRows >= 0 {
		hr = flags.HeaderRows
	}
	if flags.HeaderColumns >= 0 {
		hc = flags.HeaderColumns
	}
	if hr > rows {
		fmt.Fprintf(stderr, "Warning: %d header rows but the sheet has %d rows, using %d\n", hr, rows, rows)
		hr = rows
	}
	if hc > cols {
		fmt.Fprintf(stderr, "Warning: %d header columns but the sheet has %d columns, using %d\n", hc, cols, cols)
		hc = cols
	}
	return hr, hc
}

// snapshotLoader reads the whole sheet on every load
func snapshotLoader(db *store.DB) tui.Loader {
	return tui.LoaderFunc(func() (tui.Table, error) {
		snap, err := db.Snapshot()
		if err != nil {
			return nil, err
		}
		return snap, nil
	})
}

// runWatchLoop turns database changes into reloads until the watcher stops
func runWatchLoop(sender ProgramSender, watcher watch.WatcherInterface) {
	for {
		select {
		case change, ok := <-watcher.Changes():
			if !ok {
				return
			}
			debug.Logf("change in %s", change.Path)
			sender.Send(tui.ReloadMsg{Reason: "database changed"})

		case err, ok := <-watcher.Errors():
			if !ok {
				return
			}
			sender.Send(tui.WatcherFailedMsg{Err: err})
			return
		}
	}
}
