package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.config/px/px.yaml.
type Config struct {
	// ScanDirs are the roots searched for repositories during px sync.
	ScanDirs []string `yaml:"scan_dirs"`

	// Editor is the command spawned by px open. Empty means $EDITOR.
	Editor string `yaml:"editor,omitempty"`

	// MaxDepth bounds how deep px sync looks below each scan root.
	// Zero means the built-in default.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// RespectGitignore prunes gitignored directories during scans.
	RespectGitignore bool `yaml:"respect_gitignore"`
}

// Dir returns the absolute path to ~/.config/px/.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "px"), nil
}

// Path returns the absolute path to ~/.config/px/px.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "px.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the config written on first px init.
func DefaultConfig() *Config {
	return &Config{
		ScanDirs: []string{
			"~/code",
			"~/projects",
		},
		RespectGitignore: true,
	}
}

// Load reads and parses ~/.config/px/px.yaml. A missing file yields the
// defaults so px works before init; invalid YAML is an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	// Unmarshal on top of the defaults so keys the user omits keep their
	// default value instead of collapsing to the zero value.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return cfg, nil
}

// Save marshals cfg and writes it to ~/.config/px/px.yaml, creating the
// config directory if needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// ExpandedScanDirs returns ScanDirs with ~ expanded. Entries that fail to
// expand are returned as-is; the sync path reports them as missing roots.
func (c *Config) ExpandedScanDirs() []string {
	out := make([]string, 0, len(c.ScanDirs))
	for _, d := range c.ScanDirs {
		expanded, err := ExpandPath(d)
		if err != nil {
			expanded = d
		}
		out = append(out, expanded)
	}
	return out
}
