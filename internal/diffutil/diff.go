// Package diffutil computes unified diffs between two text states and
// renders them for terminal display.
package diffutil

import (
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// diffContextLines is the fixed unified-diff context size.
const diffContextLines = 3

// Unified generates a unified diff between before and after with 3 lines of
// context. It is computed from the exact byte content of both states, so the
// result always describes precisely what was (or will be) written.
// Identical inputs, including two empty strings, produce an empty diff.
func Unified(before, after, fromFile, toFile string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  diffContextLines,
	}

	return difflib.GetUnifiedDiffString(diff)
}

// Labels returns the conventional a/<base> and b/<base> diff headers for
// path. New files diff from /dev/null.
func Labels(path string, isNew bool) (fromFile, toFile string) {
	base := filepath.Base(path)
	if isNew {
		return "/dev/null", "b/" + base
	}
	return "a/" + base, "b/" + base
}

var (
	addColor     = color.New(color.FgGreen, color.Bold)
	removeColor  = color.New(color.FgRed, color.Bold)
	hunkColor    = color.New(color.FgCyan, color.Bold)
	headerColor  = color.New(color.FgWhite, color.Faint)
	missingColor = color.New(color.Faint)
)

// colorizeLine applies role-based decoration to a single diff line.
func colorizeLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return headerColor.Sprint(line)
	case strings.HasPrefix(line, "+"):
		return addColor.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return removeColor.Sprint(line)
	case strings.HasPrefix(line, "@@"):
		return hunkColor.Sprint(line)
	default:
		return line
	}
}

// Colorize decorates diff lines by role for display. The transform is a pure
// string operation and idempotent: lines that already carry ANSI decoration
// pass through untouched, so it is safe to apply to pre-formatted previews.
// An empty or blank diff renders a placeholder instead.
func Colorize(diffText string) string {
	if strings.TrimSpace(diffText) == "" {
		return missingColor.Sprint("-- no diff available --")
	}

	lines := strings.Split(diffText, "\n")
	for i, line := range lines {
		if strings.Contains(line, "\x1b[") {
			continue
		}
		lines[i] = colorizeLine(line)
	}
	return strings.Join(lines, "\n")
}
