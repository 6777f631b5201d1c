package plugins

import (
	"context"

	"github.com/souvikmajumdar/code-puppy/internal/edit"
)

// EnhanceRejectedOutcome is an edit_file/delete_file enrichment handler. It
// replaces a user-rejection outcome with one carrying actionable guidance,
// so the agent sees more than a generic "operation cancelled". Outcomes that
// are not rejections pass through untouched (nil return, no vote).
func EnhanceRejectedOutcome(_ context.Context, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	outcome, ok := args[0].(edit.Outcome)
	if !ok {
		return nil, nil
	}

	if outcome.Success || outcome.Changed || outcome.Rejection == nil {
		return nil, nil
	}

	enhanced := outcome
	rej := *outcome.Rejection
	rej.Reason = "user_denied_permission"
	enhanced.Rejection = &rej
	enhanced.Message = outcome.Message +
		" | The user was shown a preview diff and explicitly rejected the changes." +
		" Consider smaller, more targeted modifications or a different approach."
	return enhanced, nil
}
