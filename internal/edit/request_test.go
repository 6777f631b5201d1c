package edit

import (
	"strings"
	"testing"
)

func TestParseRequestFullWrite(t *testing.T) {
	req, err := ParseRequest([]byte(`{"file_path": "a.txt", "content": "hello", "overwrite": true}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	fw, ok := req.(FullWrite)
	if !ok {
		t.Fatalf("got %T, want FullWrite", req)
	}
	if fw.Path != "a.txt" || fw.Content != "hello" || !fw.Overwrite {
		t.Errorf("parsed %+v", fw)
	}
}

func TestParseRequestEmptyContent(t *testing.T) {
	// An explicitly empty content field is still a full write.
	req, err := ParseRequest([]byte(`{"file_path": "a.txt", "content": ""}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if _, ok := req.(FullWrite); !ok {
		t.Errorf("got %T, want FullWrite", req)
	}
}

func TestParseRequestTargetedReplace(t *testing.T) {
	payload := `{"file_path": "b.go", "replacements": [{"old_str": "x", "new_str": "y"}, {"old_str": "p", "new_str": "q"}]}`
	req, err := ParseRequest([]byte(payload))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	tr, ok := req.(TargetedReplace)
	if !ok {
		t.Fatalf("got %T, want TargetedReplace", req)
	}
	if tr.Path != "b.go" || len(tr.Replacements) != 2 {
		t.Fatalf("parsed %+v", tr)
	}
	if tr.Replacements[1].OldStr != "p" || tr.Replacements[1].NewStr != "q" {
		t.Errorf("replacement order lost: %+v", tr.Replacements)
	}
}

func TestParseRequestSnippetDelete(t *testing.T) {
	req, err := ParseRequest([]byte(`{"file_path": "c.txt", "delete_snippet": "gone"}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	sd, ok := req.(SnippetDelete)
	if !ok {
		t.Fatalf("got %T, want SnippetDelete", req)
	}
	if sd.Path != "c.txt" || sd.Snippet != "gone" {
		t.Errorf("parsed %+v", sd)
	}
}

func TestParseRequestVariantPriority(t *testing.T) {
	// A payload carrying several variant keys resolves deterministically:
	// replacements beats delete_snippet beats content.
	payload := `{"file_path": "d.txt", "content": "c", "delete_snippet": "s", "replacements": []}`
	req, err := ParseRequest([]byte(payload))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if _, ok := req.(TargetedReplace); !ok {
		t.Errorf("got %T, want TargetedReplace", req)
	}
}

func TestParseRequestNoVariant(t *testing.T) {
	_, err := ParseRequest([]byte(`{"file_path": "e.txt"}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "must be provided") {
		t.Errorf("error = %v", err)
	}
}

func TestParseRequestInvalidJSON(t *testing.T) {
	if _, err := ParseRequest([]byte(`{not json`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestRequestTargetPath(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{FullWrite{Path: "w"}, "w"},
		{TargetedReplace{Path: "r"}, "r"},
		{SnippetDelete{Path: "d"}, "d"},
	}
	for _, tt := range tests {
		if got := tt.req.TargetPath(); got != tt.want {
			t.Errorf("%T.TargetPath() = %q, want %q", tt.req, got, tt.want)
		}
	}
}
