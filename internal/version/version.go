// Package version holds build information injected by ldflags:
//
//	go build -ldflags "-X github.com/young1lin/sheetview/internal/version.Version=1.2.0"
package version

import "fmt"

var (
	// Version is the release version (e.g., "1.0.0")
	Version = "dev"
	// Commit is the git commit hash
	Commit = "unknown"
	// BuildDate is the build timestamp
	BuildDate = "unknown"
)

// String formats the build information for -version
func String() string {
	return fmt.Sprintf("sheetview %s (commit %s, built %s)", Version, Commit, BuildDate)
}
