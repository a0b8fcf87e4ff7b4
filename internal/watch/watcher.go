// Package watch reports changes to a sheet database so the viewer can reload
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of writes (a transaction touches the
// database, its WAL and its shared-memory file) into one change
const DefaultDebounce = 150 * time.Millisecond

// DefaultPollInterval is the stat polling backup for missed events
const DefaultPollInterval = 500 * time.Millisecond

// Change is one coalesced modification of the watched database
type Change struct {
	Path string
	At   time.Time
}

// WatcherInterface defines the interface for database watchers
type WatcherInterface interface {
	Changes() <-chan Change
	Errors() <-chan error
	Close() error
}

// Watcher monitors a database file and its SQLite side files
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	names    map[string]bool
	debounce time.Duration
	poll     time.Duration

	// last observed stat per watched name, for polling
	seen map[string]fileStamp

	changeChan chan Change
	errorChan  chan error
	done       chan struct{}
	closeOnce  sync.Once
}

type fileStamp struct {
	size    int64
	modTime time.Time
	exists  bool
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the stat polling interval
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.poll = d }
}

// NewWatcher watches path and its -wal, -shm and -journal companions
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// SQLite replaces side files, so watch the directory rather than the files
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:    fsWatcher,
		path:       abs,
		names:      make(map[string]bool),
		debounce:   DefaultDebounce,
		poll:       DefaultPollInterval,
		seen:       make(map[string]fileStamp),
		changeChan: make(chan Change, 1),
		errorChan:  make(chan error, 10),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, suffix := range []string{"", "-wal", "-shm", "-journal"} {
		name := abs + suffix
		w.names[name] = true
		w.seen[name] = stat(name)
	}

	go w.watch()
	return w, nil
}

func stat(name string) fileStamp {
	info, err := os.Stat(name)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{size: info.Size(), modTime: info.ModTime(), exists: true}
}

// watch runs the event loop
func (w *Watcher) watch() {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	defer close(w.changeChan)
	defer close(w.errorChan)

	var settle *time.Timer
	var settled <-chan time.Time
	pending := func() {
		if settle == nil {
			settle = time.NewTimer(w.debounce)
		} else {
			settle.Stop()
			settle.Reset(w.debounce)
		}
		settled = settle.C
	}
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case <-ticker.C:
			// Periodically check for modifications (polling as backup)
			if w.pollChanged() {
				pending()
			}

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.names[filepath.Clean(event.Name)] &&
				event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.seen[filepath.Clean(event.Name)] = stat(event.Name)
				pending()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errorChan <- err:
			default:
			}

		case <-settled:
			settled = nil
			w.emit(Change{Path: w.path, At: time.Now()})
		}
	}
}

// pollChanged restats every watched name and reports whether any differ
func (w *Watcher) pollChanged() bool {
	changed := false
	for name := range w.names {
		s := stat(name)
		if s != w.seen[name] {
			w.seen[name] = s
			changed = true
		}
	}
	return changed
}

// emit delivers c unless a change is already queued; one queued change
// already means "reload"
func (w *Watcher) emit(c Change) {
	select {
	case w.changeChan <- c:
	default:
	}
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Changes returns a channel of coalesced modifications
func (w *Watcher) Changes() <-chan Change {
	return w.changeChan
}

// Errors returns a channel of errors that occur during watching
func (w *Watcher) Errors() <-chan error {
	return w.errorChan
}

// Close stops watching
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// TestWatcher is a helper for testing that provides direct control over channels
type TestWatcher struct {
	changeChan chan Change
	errorChan  chan error
	closed     bool
	mu         sync.Mutex
}

// NewTestWatcher creates a test watcher with controllable channels
func NewTestWatcher() *TestWatcher {
	return &TestWatcher{
		changeChan: make(chan Change, 10),
		errorChan:  make(chan error, 10),
	}
}

func (tw *TestWatcher) Changes() <-chan Change {
	return tw.changeChan
}

func (tw *TestWatcher) Errors() <-chan error {
	return tw.errorChan
}

func (tw *TestWatcher) Close() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.closed {
		return nil
	}
	tw.closed = true
	close(tw.changeChan)
	close(tw.errorChan)
	return nil
}

// SendChange sends a test change to the watcher
func (tw *TestWatcher) SendChange(path string) {
	tw.changeChan <- Change{Path: path, At: time.Now()}
}

// SendError sends a test error to the watcher
func (tw *TestWatcher) SendError(err error) {
	tw.errorChan <- err
}
