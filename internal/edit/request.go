// Package edit implements the file-mutation core: it previews a proposed
// change as a unified diff, gates it behind the permission system, applies
// it atomically, and reports a structured outcome.
package edit

import (
	"encoding/json"
	"fmt"
)

// Request is the tagged union of edit request variants. Exactly one variant
// is active per call; the router matches exhaustively over the concrete
// types.
type Request interface {
	// TargetPath returns the caller-supplied path before resolution.
	TargetPath() string

	isRequest()
}

// FullWrite replaces or creates the entire file content.
type FullWrite struct {
	Path      string `json:"file_path"`
	Content   string `json:"content"`
	Overwrite bool   `json:"overwrite"`
}

// Replacement is an ordered pair of exact-match text and its substitution.
// Replacements apply sequentially against the progressively-modified
// document, not against independent copies of the original.
type Replacement struct {
	OldStr string `json:"old_str"`
	NewStr string `json:"new_str"`
}

// TargetedReplace applies an ordered sequence of replacements in place.
type TargetedReplace struct {
	Path         string        `json:"file_path"`
	Replacements []Replacement `json:"replacements"`
}

// SnippetDelete removes every verbatim occurrence of a snippet.
type SnippetDelete struct {
	Path    string `json:"file_path"`
	Snippet string `json:"delete_snippet"`
}

func (r FullWrite) TargetPath() string       { return r.Path }
func (r TargetedReplace) TargetPath() string { return r.Path }
func (r SnippetDelete) TargetPath() string   { return r.Path }

func (FullWrite) isRequest()       {}
func (TargetedReplace) isRequest() {}
func (SnippetDelete) isRequest()   {}

// ParseRequest decodes a JSON payload into the matching request variant by
// probing for its distinguishing key, mirroring the agent-facing wire shape:
//
//	{"file_path": ..., "content": ..., "overwrite": true}
//	{"file_path": ..., "replacements": [{"old_str": ..., "new_str": ...}]}
//	{"file_path": ..., "delete_snippet": ...}
func ParseRequest(data []byte) (Request, error) {
	var probe struct {
		Path          string           `json:"file_path"`
		Content       *string          `json:"content"`
		Replacements  *json.RawMessage `json:"replacements"`
		DeleteSnippet *string          `json:"delete_snippet"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse edit request: %w", err)
	}

	switch {
	case probe.Replacements != nil:
		var req TargetedReplace
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parse replacements payload: %w", err)
		}
		return req, nil
	case probe.DeleteSnippet != nil:
		var req SnippetDelete
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parse delete_snippet payload: %w", err)
		}
		return req, nil
	case probe.Content != nil:
		var req FullWrite
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parse content payload: %w", err)
		}
		return req, nil
	default:
		return nil, fmt.Errorf("one of 'content', 'replacements', or 'delete_snippet' must be provided")
	}
}
