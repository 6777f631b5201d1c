package permission

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"github.com/souvikmajumdar/code-puppy/internal/config"
	"github.com/souvikmajumdar/code-puppy/internal/ui"
)

// awaitingInput is a process-wide flag set while a confirmation prompt is
// blocked on the user. External supervisors (e.g. a command-timeout
// watchdog) read it to distinguish an interactive stall from a hang.
var awaitingInput atomic.Bool

// SetAwaitingInput records whether a prompt is currently blocked on stdin.
func SetAwaitingInput(v bool) {
	awaitingInput.Store(v)
}

// AwaitingInput reports whether a confirmation prompt is blocked on stdin.
func AwaitingInput() bool {
	return awaitingInput.Load()
}

// ConfirmPolicy is the built-in interactive confirmation handler. It renders
// the operation and its preview diff, then reads a single line: empty input
// or an affirmative token approves, everything else denies.
//
// Only one confirmation may be outstanding process-wide. A second caller is
// told "busy" and denied immediately rather than queued, so two agents
// prompting the same terminal cannot deadlock each other.
type ConfirmPolicy struct {
	cfg *config.Config
	w   *ui.Writer

	in    io.Reader
	isTTY func() bool

	// strict mutual exclusion with non-blocking acquire; never a waiting lock
	promptMu sync.Mutex
}

// NewConfirmPolicy creates the interactive policy reading from stdin.
func NewConfirmPolicy(cfg *config.Config, w *ui.Writer) *ConfirmPolicy {
	return &ConfirmPolicy{
		cfg: cfg,
		w:   w,
		in:  os.Stdin,
		isTTY: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
}

// Handle is the event-bus entry point for the file_permission phase.
// Expected args: path, operation, preview, group (all strings).
func (p *ConfirmPolicy) Handle(ctx context.Context, args ...any) (any, error) {
	var path, operation, preview string
	if len(args) > 0 {
		path, _ = args[0].(string)
	}
	if len(args) > 1 {
		operation, _ = args[1].(string)
	}
	if len(args) > 2 {
		preview, _ = args[2].(string)
	}
	return p.prompt(path, operation, preview), nil
}

func (p *ConfirmPolicy) prompt(path, operation, preview string) any {
	// Re-read the flag on every call: it can be toggled at runtime.
	yolo := p.cfg.YoloMode()

	if yolo || !p.isTTY() {
		if !yolo {
			p.w.Warn("Non-interactive terminal detected - auto-approving file operation")
		}
		return true
	}

	if !p.promptMu.TryLock() {
		p.w.Warn("Another file operation is currently awaiting confirmation")
		return Busy()
	}
	defer p.promptMu.Unlock()

	p.w.Info("")
	p.w.Warn("🔒 File Operation Confirmation Required")
	p.w.Info("Request to %s file: %s", operation, path)

	if preview != "" {
		p.w.Info("\nPreview of changes:")
		p.w.PrintDiff(preview)
		p.w.Dim("Hint: press Enter or 'y' to accept, 'n' to reject")
	}

	p.w.Info("\nAre you sure you want to %s %s? (y(es) or enter as accept/n(o))", operation, path)

	SetAwaitingInput(true)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	SetAwaitingInput(false)

	// Interrupts and EOF during the read count as denial.
	if err != nil && line == "" {
		p.w.Warn("\nCancelled by user")
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		p.w.Success("✓ Permission granted. Proceeding with operation.")
		return true
	default:
		p.w.Error("✗ Permission denied. Operation cancelled.")
		return false
	}
}
