package edit

import (
	"strings"
	"testing"
)

func TestNoMatchError(t *testing.T) {
	e := NoMatchError(0.82, "def foo():")

	if e.Kind != ErrNoSuitableMatch {
		t.Errorf("kind = %q", e.Kind)
	}
	if e.Score != 0.82 || e.Received != "def foo():" {
		t.Errorf("diagnostics = %+v", e)
	}
	if !strings.Contains(e.Message, "0.82") || !strings.Contains(e.Message, "0.95") {
		t.Errorf("message = %q", e.Message)
	}
}

func TestOpErrorToJSON(t *testing.T) {
	e := NoMatchError(0.5, "snippet")
	m := e.ToJSON()

	if m["success"] != false {
		t.Errorf("success = %v", m["success"])
	}
	if m["kind"] != string(ErrNoSuitableMatch) {
		t.Errorf("kind = %v", m["kind"])
	}
	if m["score"] != 0.5 || m["received"] != "snippet" {
		t.Errorf("diagnostics missing: %v", m)
	}

	plain := Errorf(ErrIOFault, "disk on fire")
	m = plain.ToJSON()
	if _, ok := m["score"]; ok {
		t.Error("score must only appear on no_suitable_match errors")
	}
	if m["error"] != "disk on fire" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestOpErrorDetailsMerge(t *testing.T) {
	e := Errorf(ErrRefusal, "nope")
	e.Details = map[string]any{"path": "/x"}

	m := e.ToJSON()
	if m["path"] != "/x" {
		t.Errorf("details not merged: %v", m)
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(nil); got != "" {
		t.Errorf("nil error formats to %q", got)
	}

	plain := FormatError(Errorf(ErrPermissionDenied, "denied"))
	if plain != "Error: denied" {
		t.Errorf("plain format = %q", plain)
	}

	structured := FormatError(NoMatchError(0.7, "x"))
	if !strings.Contains(structured, `"score"`) || !strings.Contains(structured, `"received"`) {
		t.Errorf("structured format = %q", structured)
	}
}

func TestOutcomeStripDiff(t *testing.T) {
	out := Outcome{Success: true, Diff: "@@ -1 +1 @@", Message: "ok"}
	stripped := out.stripDiff()

	if stripped.Diff != "" {
		t.Error("diff not stripped")
	}
	if stripped.Message != "ok" || !stripped.Success {
		t.Errorf("other fields must survive: %+v", stripped)
	}
	if out.Diff == "" {
		t.Error("stripDiff must not mutate the receiver")
	}
}
