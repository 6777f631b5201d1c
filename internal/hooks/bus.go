// Package hooks provides the extension-point event bus. Plugins register
// handlers against a fixed set of phases; the core dispatches to them
// without knowing who is listening.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/souvikmajumdar/code-puppy/internal/logging"
)

// Phase identifies a fixed extension point. The set of phases is closed:
// adding one is a schema change, not a runtime operation.
type Phase string

const (
	PhaseStartup           Phase = "startup"
	PhaseShutdown          Phase = "shutdown"
	PhaseInvokeAgent       Phase = "invoke_agent"
	PhaseAgentException    Phase = "agent_exception"
	PhaseVersionCheck      Phase = "version_check"
	PhaseEditFile          Phase = "edit_file"
	PhaseDeleteFile        Phase = "delete_file"
	PhaseRunShellCommand   Phase = "run_shell_command"
	PhaseLoadModelConfig   Phase = "load_model_config"
	PhaseLoadPrompt        Phase = "load_prompt"
	PhaseAgentReload       Phase = "agent_reload"
	PhaseCustomCommand     Phase = "custom_command"
	PhaseCustomCommandHelp Phase = "custom_command_help"
	PhaseFilePermission    Phase = "file_permission"
)

// allPhases is the authoritative ordering used by Phases().
var allPhases = []Phase{
	PhaseStartup,
	PhaseShutdown,
	PhaseInvokeAgent,
	PhaseAgentException,
	PhaseVersionCheck,
	PhaseEditFile,
	PhaseDeleteFile,
	PhaseRunShellCommand,
	PhaseLoadModelConfig,
	PhaseLoadPrompt,
	PhaseAgentReload,
	PhaseCustomCommand,
	PhaseCustomCommandHelp,
	PhaseFilePermission,
}

var (
	// ErrUnknownPhase is returned when registering against a phase outside
	// the closed set.
	ErrUnknownPhase = errors.New("unknown phase")

	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("handler must not be nil")
)

// Handler is an extension callback. In context-aware dispatch the handler may
// block on ctx; in synchronous dispatch it receives context.Background().
type Handler func(ctx context.Context, args ...any) (any, error)

// Result is the per-handler outcome of a dispatch. A failed handler yields
// Err set and Value nil; the dispatch itself never fails.
type Result struct {
	Value any
	Err   error
}

// entry pairs a handler with a registration token so Unregister can remove
// the first matching registration (func values are not comparable).
type entry struct {
	id int
	fn Handler
}

// Bus is the process-wide phase registry. Construct one with NewBus and pass
// it by reference; registrations live for the process lifetime unless
// explicitly removed.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Phase][]entry
	nextID   int
	log      *logging.Logger
}

// Registration identifies a single registered handler for later removal.
type Registration struct {
	phase Phase
	id    int
}

// NewBus creates an empty Bus. The logger records handler faults; pass a
// Nop logger to silence them.
func NewBus(log *logging.Logger) *Bus {
	if log == nil {
		log = logging.Nop()
	}
	handlers := make(map[Phase][]entry, len(allPhases))
	for _, p := range allPhases {
		handlers[p] = nil
	}
	return &Bus{handlers: handlers, log: log}
}

// KnownPhase reports whether p is in the closed phase set.
func KnownPhase(p Phase) bool {
	for _, known := range allPhases {
		if known == p {
			return true
		}
	}
	return false
}

// Phases returns the closed set of recognized phases in schema order.
func (b *Bus) Phases() []Phase {
	out := make([]Phase, len(allPhases))
	copy(out, allPhases)
	return out
}

// Register appends fn to the phase's ordered handler list and returns a
// Registration usable with Unregister.
func (b *Bus) Register(phase Phase, fn Handler) (Registration, error) {
	if !KnownPhase(phase) {
		return Registration{}, fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
	if fn == nil {
		return Registration{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[phase] = append(b.handlers[phase], entry{id: b.nextID, fn: fn})
	return Registration{phase: phase, id: b.nextID}, nil
}

// Unregister removes the registration. Returns false if it was already gone.
func (b *Bus) Unregister(reg Registration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.handlers[reg.phase]
	for i, e := range list {
		if e.id == reg.id {
			b.handlers[reg.phase] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties a single phase's handler list.
func (b *Bus) Clear(phase Phase) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.handlers[phase]; ok {
		b.handlers[phase] = nil
	}
}

// ClearAll empties every phase.
func (b *Bus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for p := range b.handlers {
		b.handlers[p] = nil
	}
}

// Count returns the number of handlers registered for phase.
func (b *Bus) Count(phase Phase) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[phase])
}

// snapshot copies the phase's handler list so an in-flight dispatch is not
// affected by concurrent register/unregister calls.
func (b *Bus) snapshot(phase Phase) []entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	list := b.handlers[phase]
	out := make([]entry, len(list))
	copy(out, list)
	return out
}

// Dispatch invokes every handler registered for phase, in registration
// order, with the same arguments. Handlers are isolated: an error or panic
// is logged and recorded in the matching Result slot, and dispatch always
// returns exactly one Result per registered handler.
func (b *Bus) Dispatch(phase Phase, args ...any) []Result {
	return b.DispatchContext(context.Background(), phase, args...)
}

// DispatchContext is the context-aware dispatch mode. Handlers run strictly
// one after another on the calling goroutine; a handler may block on ctx but
// never runs concurrently with its neighbors.
func (b *Bus) DispatchContext(ctx context.Context, phase Phase, args ...any) []Result {
	entries := b.snapshot(phase)
	if len(entries) == 0 {
		return []Result{}
	}

	results := make([]Result, len(entries))
	for i, e := range entries {
		results[i] = b.call(ctx, phase, i, e.fn, args)
	}
	return results
}

// call runs one handler with panic isolation.
func (b *Bus) call(ctx context.Context, phase Phase, index int, fn Handler, args []any) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("handler panic: %v", r)
			b.log.HandlerFault(string(phase), index, err, debug.Stack())
			res = Result{Err: err}
		}
	}()

	value, err := fn(ctx, args...)
	if err != nil {
		b.log.HandlerFault(string(phase), index, err, nil)
		return Result{Err: err}
	}
	return Result{Value: value}
}

// Values extracts the non-nil handler values from a dispatch result set,
// preserving order.
func Values(results []Result) []any {
	var out []any
	for _, r := range results {
		if r.Err == nil && r.Value != nil {
			out = append(out, r.Value)
		}
	}
	return out
}
