package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AccessType defines the type of file access being requested
type AccessType int

const (
	AccessRead AccessType = iota
	AccessWrite
)

// PermissionResult indicates the result of a path permission check
type PermissionResult int

const (
	PermissionGranted PermissionResult = iota
	PermissionReadOnly
	PermissionDenied
)

// CheckPathPermission validates if a path can be accessed based on workspace config.
// Denied paths are checked first, then read-only paths for write access.
func (c *Config) CheckPathPermission(path string, accessType AccessType) (PermissionResult, error) {
	absPath, err := c.ResolvePath(path)
	if err != nil {
		return PermissionDenied, err
	}

	// Check denied paths first (highest priority)
	for _, denied := range c.Workspace.DeniedPaths {
		deniedAbs, _ := filepath.Abs(expandPath(denied))
		if strings.HasPrefix(absPath, deniedAbs) {
			return PermissionDenied, fmt.Errorf("path is in denied_paths")
		}
	}

	// Check allowed_read_paths (read-only)
	for _, allowedRead := range c.Workspace.AllowedReadPaths {
		allowedReadAbs, _ := filepath.Abs(expandPath(allowedRead))
		if strings.HasPrefix(absPath, allowedReadAbs) {
			if accessType == AccessWrite {
				return PermissionReadOnly, fmt.Errorf("path is read-only")
			}
			return PermissionGranted, nil
		}
	}

	return PermissionGranted, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
