// Package config manages shiftgrid configuration and filesystem paths.
//
// The default root is ~/.shiftgrid/ containing the saved grid, the work
// rules, the exports directory and an optional config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by shiftgrid.
type Paths struct {
	// Root is the base directory for all shiftgrid data (default: ~/.shiftgrid)
	Root string

	// Grid is the saved schedule record
	Grid string

	// Rules is the saved work rules record
	Rules string

	// Exports is the directory export files are written to
	Exports string

	// Config is the path to the config file
	Config string
}

// DefaultPaths returns the default paths for shiftgrid.
// Paths can be overridden with environment variables:
// - SHIFTGRID_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("SHIFTGRID_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".shiftgrid")
	}

	return PathsAt(root), nil
}

// PathsAt lays out the paths under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:    root,
		Grid:    filepath.Join(root, "grid.json"),
		Rules:   filepath.Join(root, "rules.json"),
		Exports: filepath.Join(root, "exports"),
		Config:  filepath.Join(root, "config.yaml"),
	}
}

// WithExportsDir points Exports at dir. Relative dirs are taken from Root.
func (p *Paths) WithExportsDir(dir string) *Paths {
	if dir == "" {
		return p
	}
	out := *p
	if filepath.IsAbs(dir) {
		out.Exports = dir
	} else {
		out.Exports = filepath.Join(p.Root, dir)
	}
	return &out
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Exports,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
