package config

import (
	"os"
	"path/filepath"
)

// AppName names the per-user directories
const AppName = "sheetview"

// ConfigDirName is the directory holding config.yaml, both in a project and in the home directory
const ConfigDirName = ".sheetview"

// ConfigFileName is the config file inside ConfigDirName
const ConfigFileName = "config.yaml"

// DataDir returns the directory holding sheet databases for the current platform
func DataDir() string {
	return DataDirWithPlatform(DefaultPlatform)
}

// DataDirWithPlatform allows injecting a custom platform provider for testing
func DataDirWithPlatform(platform PlatformProvider) string {
	switch platform.GetOS() {
	case "windows":
		// %LOCALAPPDATA%\sheetview\
		if localAppData := platform.GetEnv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, AppName)
		}
		home, err := platform.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ConfigDirName)
	case "darwin":
		// ~/Library/Application Support/sheetview/
		home, err := platform.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support", AppName)
	default:
		// $XDG_DATA_HOME/sheetview or ~/.local/share/sheetview
		if xdg := platform.GetEnv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName)
		}
		home, err := platform.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".local", "share", AppName)
	}
}

// DefaultDBPath returns the path of the default sheet database, creating its
// directory if needed
func DefaultDBPath() string {
	return DefaultDBPathWithPlatform(DefaultPlatform)
}

// DefaultDBPathWithPlatform allows injecting a custom platform provider for testing
func DefaultDBPathWithPlatform(platform PlatformProvider) string {
	dir := DataDirWithPlatform(platform)
	if dir == "" {
		return "sheet.db"
	}
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sheet.db")
}

// ProjectConfigPath returns the project-level config path under projectDir
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ConfigDirName, ConfigFileName)
}

// GlobalConfigPath returns ~/.sheetview/config.yaml, or "" without a home directory
func GlobalConfigPath(platform PlatformProvider) string {
	home, err := platform.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ConfigDirName, ConfigFileName)
}
