package edit

import (
	"fmt"
	"os"
	"path/filepath"
)

// readFile reads the target for editing. Returns the content and whether the
// file does not exist yet.
func readFile(fullPath string) (content string, isNew bool, err error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", true, nil
		}
		return "", false, fmt.Errorf("read file: %w", err)
	}
	return string(data), false, nil
}

// writeFileAtomic writes content via temp file + rename so a crash during
// the write cannot leave a half-written target. Parent directories are
// created for new files.
func writeFileAtomic(fullPath, content string, isNew bool) error {
	if isNew {
		parentDir := filepath.Dir(fullPath)
		if err := os.MkdirAll(parentDir, 0755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
	}

	tempFile, err := os.CreateTemp(filepath.Dir(fullPath), ".edit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op after a successful rename

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Carry over the original file mode, or default for new files.
	if info, err := os.Stat(fullPath); err == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0644)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		return fmt.Errorf("atomic rename failed: %w", err)
	}

	return nil
}
