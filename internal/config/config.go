package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultFuzzyThreshold is the minimum similarity score for a fuzzy
// replacement match to be usable.
const DefaultFuzzyThreshold = 0.95

type Config struct {
	Workspace struct {
		Root             string   `yaml:"root"`
		DeniedPaths      []string `yaml:"denied_paths"`
		AllowedReadPaths []string `yaml:"allowed_read_paths"`
	} `yaml:"workspace"`

	Permissions struct {
		YoloMode bool `yaml:"yolo_mode"` // skip all interactive confirmations
	} `yaml:"permissions"`

	Edit struct {
		FuzzyThreshold float64 `yaml:"fuzzy_threshold"` // minimum score for fuzzy replacement
	} `yaml:"edit"`

	Log struct {
		File        string `yaml:"file"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`

	// guards runtime toggles (yolo mode can be flipped from the REPL)
	mu sync.RWMutex
}

// Load reads a yaml config file and applies defaults. A missing file is not
// an error: defaults are returned so the binary runs without any setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Workspace.Root == "" {
		if cwd, err := os.Getwd(); err == nil {
			c.Workspace.Root = cwd
		} else {
			c.Workspace.Root = "."
		}
	}
	if c.Edit.FuzzyThreshold == 0 {
		c.Edit.FuzzyThreshold = DefaultFuzzyThreshold
	}
}

// YoloMode reports whether interactive confirmations should be skipped.
// Read on every permission check, never cached by callers.
func (c *Config) YoloMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Permissions.YoloMode
}

// SetYoloMode toggles the skip-confirmations flag at runtime.
func (c *Config) SetYoloMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Permissions.YoloMode = on
}

// FuzzyThreshold returns the configured minimum fuzzy-match score.
func (c *Config) FuzzyThreshold() float64 {
	if c.Edit.FuzzyThreshold <= 0 {
		return DefaultFuzzyThreshold
	}
	return c.Edit.FuzzyThreshold
}

// ResolvePath normalizes a path to absolute canonical form. Relative paths
// resolve against the workspace root, and ~ expands to the home directory.
func (c *Config) ResolvePath(inputPath string) (string, error) {
	path := inputPath
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(c.Workspace.Root, path)
	}

	return filepath.Clean(path), nil
}
