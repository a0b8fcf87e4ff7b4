// Command sheetview shows a SQLite-backed sheet in the terminal with frozen
// header rows and columns.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/young1lin/sheetview/internal/store"
	"github.com/young1lin/sheetview/internal/version"
	"github.com/young1lin/sheetview/internal/watch"
)

// exitFunc is the function to call for exiting (can be mocked for testing)
var exitFunc = os.Exit

func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logAndExit(err)
		return
	}
	if flags.ShowVersion {
		fmt.Println(version.String())
		return
	}

	if err := run(&AppDependencies{
		Flags:    flags,
		DBOpener: store.Open,
		WatcherCreator: func(path string) (watch.WatcherInterface, error) {
			return watch.NewWatcher(path)
		},
		ProgramRunner: func(p *tea.Program) error {
			_, err := p.Run()
			return err
		},
	}); err != nil {
		logAndExit(err)
	}
}

func logAndExit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}
