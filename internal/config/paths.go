// Package config manages filescope configuration and filesystem paths.
//
// The default root is ~/.filescope/ and holds the configuration file, the
// per-workspace JSON state files, and the bbolt database. The root can be
// moved with the FILESCOPE_ROOT environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnvVar overrides the default root directory.
const RootEnvVar = "FILESCOPE_ROOT"

// Paths contains all the filesystem paths used by filescope.
type Paths struct {
	// Root is the base directory for all filescope data (default: ~/.filescope)
	Root string

	// Workspaces is the directory containing per-workspace JSON state files
	Workspaces string

	// Database is the bbolt database file used by the bbolt store backend
	Database string

	// Config is the path to the YAML config file
	Config string

	// ConfigTOML is the alternative TOML config file, used when Config is absent
	ConfigTOML string
}

// DefaultPaths returns the default paths for filescope.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(RootEnvVar)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".filescope")
	}

	return PathsAt(root), nil
}

// PathsAt returns the layout rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:       root,
		Workspaces: filepath.Join(root, "workspaces"),
		Database:   filepath.Join(root, "filescope.db"),
		Config:     filepath.Join(root, "config.yaml"),
		ConfigTOML: filepath.Join(root, "config.toml"),
	}
}

// ConfigFile returns the config file that should be read: the YAML file if it
// exists, otherwise the TOML file if it exists, otherwise the YAML path.
func (p *Paths) ConfigFile() string {
	if _, err := os.Stat(p.Config); err == nil {
		return p.Config
	}
	if _, err := os.Stat(p.ConfigTOML); err == nil {
		return p.ConfigTOML
	}
	return p.Config
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Workspaces,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
