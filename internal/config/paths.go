// Package config manages pdfsplit configuration and filesystem paths.
//
// Settings are layered: built-in defaults, an optional YAML config file,
// PDFSPLIT_* environment variables and finally command-line flags. The default
// root is ~/.pdfsplit/ containing config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalConfigName is the config file looked up in the working directory.
const LocalConfigName = "pdfsplit.yaml"

// Paths contains the filesystem paths used by pdfsplit.
type Paths struct {
	// Root is the base directory for pdfsplit data (default: ~/.pdfsplit)
	Root string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths for pdfsplit.
// Paths can be overridden with environment variables:
// - PDFSPLIT_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("PDFSPLIT_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".pdfsplit")
	}

	return &Paths{
		Root:   root,
		Config: filepath.Join(root, "config.yaml"),
	}, nil
}

// ConfigCandidates lists the config files to try, in priority order.
func (p *Paths) ConfigCandidates() []string {
	return []string{
		LocalConfigName,
		p.Config,
	}
}

// findConfigFile returns the first candidate that exists, or "".
func (p *Paths) findConfigFile() string {
	for _, candidate := range p.ConfigCandidates() {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
