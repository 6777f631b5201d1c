package ui

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// NewGroupID generates an opaque correlation token that threads together all
// diagnostic output belonging to one logical operation. Display only, never
// used for logic.
func NewGroupID(tool, path string) string {
	return fmt.Sprintf("%s-%s-%s", tool, filepath.Base(path), uuid.NewString()[:8])
}
