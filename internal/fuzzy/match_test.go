package fuzzy

import (
	"strings"
	"testing"
)

func TestJaro(t *testing.T) {
	tests := []struct {
		name   string
		s1, s2 string
		want   float64
		exact  bool
	}{
		{"identical", "hello world", "hello world", 1.0, true},
		{"both empty", "", "", 1.0, true},
		{"one empty", "hello", "", 0.0, true},
		{"no common characters", "abc", "xyz", 0.0, true},
		{"close strings", "martha", "marhta", 0.944, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaro(tt.s1, tt.s2)
			if tt.exact {
				if got != tt.want {
					t.Errorf("Jaro(%q, %q) = %v, want %v", tt.s1, tt.s2, got, tt.want)
				}
				return
			}
			if got < tt.want-0.01 || got > tt.want+0.01 {
				t.Errorf("Jaro(%q, %q) = %v, want ~%v", tt.s1, tt.s2, got, tt.want)
			}
		})
	}
}

func TestJaroWinklerPrefixBoost(t *testing.T) {
	base := Jaro("prefixed_one", "prefixed_two")
	boosted := JaroWinkler("prefixed_one", "prefixed_two")
	if boosted <= base {
		t.Errorf("common prefix should boost the score: jaro=%v winkler=%v", base, boosted)
	}
	if boosted > 1.0 {
		t.Errorf("score must stay in [0,1], got %v", boosted)
	}

	// No shared prefix: no boost.
	if j, jw := Jaro("abcd", "xbcd"), JaroWinkler("abcd", "xbcd"); jw != j {
		t.Errorf("no-prefix pair should not be boosted: jaro=%v winkler=%v", j, jw)
	}
}

func TestJaroWinklerIdentical(t *testing.T) {
	if got := JaroWinkler("same text", "same text"); got != 1.0 {
		t.Errorf("identical strings should score 1.0, got %v", got)
	}
}

func TestFindBestWindowExact(t *testing.T) {
	lines := []string{
		"func main() {",
		"\tx := 1",
		"\ty := 2",
		"\tfmt.Println(x + y)",
		"}",
	}
	snippet := "\tx := 1\n\ty := 2"

	start, end, score, ok := FindBestWindow(lines, snippet)
	if !ok {
		t.Fatal("expected ok")
	}
	if start != 1 || end != 3 {
		t.Errorf("window = [%d, %d), want [1, 3)", start, end)
	}
	if score != 1.0 {
		t.Errorf("verbatim window should score 1.0, got %v", score)
	}
}

func TestFindBestWindowEarliestTieWins(t *testing.T) {
	lines := []string{"dup", "other", "dup", "other"}

	start, end, score, ok := FindBestWindow(lines, "dup")
	if !ok || score != 1.0 {
		t.Fatalf("ok=%v score=%v", ok, score)
	}
	if start != 0 || end != 1 {
		t.Errorf("tie must keep the earliest window, got [%d, %d)", start, end)
	}
}

func TestFindBestWindowApproximate(t *testing.T) {
	lines := []string{
		"def helper():",
		"    total = compute_total(items)",
		"    return total",
		"",
		"def other():",
		"    pass",
	}
	// Whitespace drift, same shape.
	snippet := "    total = compute_total( items )\n    return total"

	start, end, score, ok := FindBestWindow(lines, snippet)
	if !ok {
		t.Fatal("expected ok")
	}
	if start != 1 || end != 3 {
		t.Errorf("window = [%d, %d), want [1, 3)", start, end)
	}
	if score < 0.9 {
		t.Errorf("near-identical window scored too low: %v", score)
	}
}

func TestFindBestWindowDocumentTooShort(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		snippet string
	}{
		{"empty document", nil, "anything"},
		{"snippet longer than document", []string{"one", "two"}, "a\nb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, score, ok := FindBestWindow(tt.lines, tt.snippet)
			if ok {
				t.Error("expected ok=false")
			}
			if start != 0 || end != 0 || score != 0.0 {
				t.Errorf("got (%d, %d, %v), want zeros", start, end, score)
			}
		})
	}
}

func TestFindBestWindowNeverRejects(t *testing.T) {
	// Even a terrible match reports its best window; thresholds are the
	// caller's concern.
	lines := strings.Split("alpha\nbeta\ngamma", "\n")
	_, _, score, ok := FindBestWindow(lines, "zzzzzz")
	if !ok {
		t.Error("matcher must not reject when the document is long enough")
	}
	if score >= 0.95 {
		t.Errorf("unrelated snippet scored suspiciously high: %v", score)
	}
}

func TestFindBestWindowFullDocument(t *testing.T) {
	lines := []string{"only", "three", "lines"}
	start, end, score, ok := FindBestWindow(lines, "only\nthree\nlines")
	if !ok || score != 1.0 {
		t.Fatalf("ok=%v score=%v", ok, score)
	}
	if start != 0 || end != 3 {
		t.Errorf("window = [%d, %d), want [0, 3)", start, end)
	}
}
