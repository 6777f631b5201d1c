// Package plugins holds the built-in extension registrations. They use the
// same registration surface as third-party plugins: the core never depends
// on them directly.
package plugins

import (
	"github.com/souvikmajumdar/code-puppy/internal/config"
	"github.com/souvikmajumdar/code-puppy/internal/hooks"
	"github.com/souvikmajumdar/code-puppy/internal/permission"
	"github.com/souvikmajumdar/code-puppy/internal/ui"
)

// RegisterBuiltins installs the built-in plugin set on the bus at process
// startup: the interactive file-permission handler and the edit-result
// enrichment callbacks.
func RegisterBuiltins(bus *hooks.Bus, cfg *config.Config, w *ui.Writer) error {
	policy := permission.NewConfirmPolicy(cfg, w)
	if _, err := bus.Register(hooks.PhaseFilePermission, policy.Handle); err != nil {
		return err
	}

	if _, err := bus.Register(hooks.PhaseEditFile, EnhanceRejectedOutcome); err != nil {
		return err
	}
	if _, err := bus.Register(hooks.PhaseDeleteFile, EnhanceRejectedOutcome); err != nil {
		return err
	}
	return nil
}
