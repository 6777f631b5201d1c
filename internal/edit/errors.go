package edit

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies mutation failures. Nothing in this package is fatal
// to the process: every failure resolves to a structured Outcome.
type ErrorKind string

const (
	// ErrRefusal - hard safety refusal (overwrite without flag). Never
	// retried, surfaced verbatim, no permission prompt involved.
	ErrRefusal ErrorKind = "refusal"

	// ErrPreviewUnavailable - could not build a preview (missing file,
	// nothing to delete). The operation is never attempted.
	ErrPreviewUnavailable ErrorKind = "preview_unavailable"

	// ErrNoSuitableMatch - fuzzy score below threshold. Expected and
	// recoverable: the caller retries with a corrected snippet.
	ErrNoSuitableMatch ErrorKind = "no_suitable_match"

	// ErrSnippetNotFound - snippet deletion found no verbatim occurrence.
	// Deletion is deliberately conservative: no fuzzy fallback.
	ErrSnippetNotFound ErrorKind = "snippet_not_found"

	// ErrPermissionDenied - explicit user or policy rejection. Not a bug.
	ErrPermissionDenied ErrorKind = "permission_denied"

	// ErrBusy - another confirmation in flight; the caller may retry later.
	ErrBusy ErrorKind = "busy"

	// ErrIOFault - filesystem failure during the actual write. Logged with
	// full diagnostics and surfaced as a generic error.
	ErrIOFault ErrorKind = "io_fault"
)

// OpError is a structured mutation error.
type OpError struct {
	Kind     ErrorKind      `json:"kind"`
	Message  string         `json:"message"`
	Score    float64        `json:"score,omitempty"`    // best fuzzy score, for no_suitable_match
	Received string         `json:"received,omitempty"` // the snippet we failed to locate
	Details  map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return e.Message
}

// ToJSON returns the structured representation merged with details.
func (e *OpError) ToJSON() map[string]any {
	result := map[string]any{
		"success": false,
		"error":   e.Message,
		"kind":    string(e.Kind),
	}
	if e.Kind == ErrNoSuitableMatch {
		result["score"] = e.Score
		result["received"] = e.Received
	}
	for k, v := range e.Details {
		result[k] = v
	}
	return result
}

// Errorf creates an OpError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *OpError {
	return &OpError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NoMatchError creates the diagnostic error for a failed fuzzy lookup,
// carrying the best score seen and the snippet the caller sent.
func NoMatchError(score float64, received string) *OpError {
	return &OpError{
		Kind:     ErrNoSuitableMatch,
		Message:  fmt.Sprintf("no suitable match in file (score %.2f < %.2f)", score, matchThresholdForMessage),
		Score:    score,
		Received: received,
	}
}

// matchThresholdForMessage is only used for the diagnostic text; the actual
// threshold comes from config.
const matchThresholdForMessage = 0.95

// FormatError renders an OpError as indented JSON when it carries structure,
// otherwise as a plain message.
func FormatError(e *OpError) string {
	if e == nil {
		return ""
	}
	if e.Kind == ErrNoSuitableMatch || len(e.Details) > 0 {
		if b, err := json.MarshalIndent(e.ToJSON(), "", "  "); err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("Error: %s", e.Message)
}
