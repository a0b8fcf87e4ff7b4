package tui

// ReloadMsg asks the model to reload its table, e.g. after the database changed
type ReloadMsg struct {
	Reason string
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// WatcherFailedMsg is sent when the database watcher fails
type WatcherFailedMsg struct {
	Err error
}

// IndicatorTickMsg fires when a scroll indicator flash may have ended
type IndicatorTickMsg struct{}
