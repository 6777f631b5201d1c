// Package permission coordinates interactive confirmation of file mutations.
// Policy handlers are ordinary event-bus handlers on the file_permission
// phase; the gate reduces their answers to a single allow/deny decision.
package permission

import (
	"context"

	"github.com/souvikmajumdar/code-puppy/internal/hooks"
)

// AuthRequest describes one pending operation for the policy handlers.
type AuthRequest struct {
	Path      string // absolute, canonical path
	Operation string // human description: "write", "delete snippet from", ...
	Preview   string // unified diff of the proposed change
	Group     string // correlation token for display
}

// Gate asks all registered policy handlers whether an operation may proceed.
type Gate struct {
	bus *hooks.Bus
}

// NewGate creates a Gate dispatching through bus.
func NewGate(bus *hooks.Bus) *Gate {
	return &Gate{bus: bus}
}

// busyDenial is the sentinel a policy returns when it denied only because
// another confirmation was already in flight.
type busyDenial struct{}

// Busy returns the deny-because-busy vote for policy handlers.
func Busy() any {
	return busyDenial{}
}

// Authorize dispatches the file_permission phase and reduces the responses.
// With zero registered handlers the default is allow. Otherwise the
// operation is allowed iff every non-nil response is truthy: any single
// policy can veto. busy reports whether the (first) denial was a fail-fast
// "another confirmation in progress" rather than an explicit rejection.
func (g *Gate) Authorize(ctx context.Context, req AuthRequest) (allowed, busy bool) {
	results := g.bus.DispatchContext(ctx, hooks.PhaseFilePermission,
		req.Path, req.Operation, req.Preview, req.Group)

	if len(results) == 0 {
		return true, false
	}

	for _, r := range results {
		if r.Err != nil || r.Value == nil {
			// Faulted or abstaining handlers do not vote.
			continue
		}
		if !truthy(r.Value) {
			_, isBusy := r.Value.(busyDenial)
			return false, isBusy
		}
	}
	return true, false
}

// truthy interprets a handler response as a vote. Booleans vote directly,
// a busy denial votes no, and any other non-nil value counts as approval.
func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case busyDenial:
		return false
	default:
		return true
	}
}
