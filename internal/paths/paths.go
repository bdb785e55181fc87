// Package paths resolves where super-opencode installs framework files and
// where it reads and writes the OpenCode configuration file.
//
// Every function here is a pure function of an Env snapshot, so the same
// environment always yields the same paths.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// ConfigFileName is the primary OpenCode configuration file.
	ConfigFileName = "opencode.json"

	// FallbackFileName is written instead of ConfigFileName when the
	// existing configuration cannot be parsed.
	FallbackFileName = "mcp_settings.json"

	appDirName = "opencode"
)

// Environment variables consulted by GlobalConfigDir.
const (
	EnvConfigDir     = "OPENCODE_CONFIG_DIR"
	EnvXDGConfigHome = "XDG_CONFIG_HOME"
	EnvAppData       = "APPDATA"
)

// Scope selects between the user-global and the project-local install.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
)

// ParseScope converts a user-supplied value into a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeProject:
		return ScopeProject, nil
	default:
		return "", fmt.Errorf("unknown scope %q; expected %q or %q", s, ScopeGlobal, ScopeProject)
	}
}

// Env is a snapshot of everything path resolution depends on.
type Env struct {
	GOOS    string
	HomeDir string
	WorkDir string
	Getenv  func(string) string
}

// FromOS captures the live process environment.
func FromOS() (Env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Env{}, fmt.Errorf("getting home directory: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return Env{}, fmt.Errorf("getting current directory: %w", err)
	}
	return Env{
		GOOS:    runtime.GOOS,
		HomeDir: home,
		WorkDir: wd,
		Getenv:  os.Getenv,
	}, nil
}

func (e Env) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

// Abs resolves p against the snapshot's working directory.
func (e Env) Abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(e.WorkDir, p)
}

// GlobalConfigDir returns the per-user OpenCode configuration directory.
//
// Precedence: $OPENCODE_CONFIG_DIR, then %APPDATA%\opencode on Windows,
// then $XDG_CONFIG_HOME/opencode, then ~/.config/opencode.
func (e Env) GlobalConfigDir() string {
	if dir := e.getenv(EnvConfigDir); dir != "" {
		return e.Abs(dir)
	}

	if e.GOOS == "windows" {
		appData := e.getenv(EnvAppData)
		if appData == "" {
			appData = filepath.Join(e.HomeDir, "AppData", "Roaming")
		}
		return filepath.Join(appData, appDirName)
	}

	if xdg := e.getenv(EnvXDGConfigHome); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	return filepath.Join(e.HomeDir, ".config", appDirName)
}

// FrameworkDir returns the root that framework files are installed under.
// Global installs live next to opencode.json in the global config dir.
func (e Env) FrameworkDir(scope Scope, projectDir string) string {
	if scope == ScopeGlobal {
		return e.GlobalConfigDir()
	}
	return e.Abs(projectDir)
}

// ConfigFilePath returns the path of opencode.json for the given scope.
func (e Env) ConfigFilePath(scope Scope, targetDir string) string {
	if scope == ScopeGlobal {
		return filepath.Join(e.GlobalConfigDir(), ConfigFileName)
	}
	return filepath.Join(targetDir, ConfigFileName)
}

// FallbackFilePath returns where the fallback MCP settings are written.
func FallbackFilePath(targetDir string) string {
	return filepath.Join(targetDir, FallbackFileName)
}

// DefaultFilesystemPaths returns the directories offered as the default
// allow-list for the filesystem MCP server.
func (e Env) DefaultFilesystemPaths(targetDir string) []string {
	paths := []string{targetDir}
	if e.GOOS == "windows" {
		return append(paths, filepath.Join(e.HomeDir, "Documents"))
	}
	return append(paths, e.HomeDir)
}
