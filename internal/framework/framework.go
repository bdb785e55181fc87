// Package framework holds the files the installer copies: the README,
// LICENSE, workflow guide and the .opencode agents, commands and skills.
package framework

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:assets
var assets embed.FS

// FS returns the embedded framework tree rooted at its top directory.
func FS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(fmt.Sprintf("framework: embedded assets missing: %v", err))
	}
	return sub
}

// Open returns the framework tree to install from. An empty dir selects the
// embedded tree; otherwise dir must be an existing directory on disk.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return FS(), nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving source directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", abs)
	}
	return os.DirFS(abs), nil
}
