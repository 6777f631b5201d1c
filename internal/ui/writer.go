// Package ui provides formatted terminal output for mutation previews,
// confirmations, and diagnostics.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/souvikmajumdar/code-puppy/internal/diffutil"
)

// Color definitions for consistent UI
var (
	// Gray for secondary information
	grayColor = color.New(color.FgWhite, color.Faint)

	// Red for errors
	errorColor = color.New(color.FgRed)

	// Yellow for warnings
	warnColor = color.New(color.FgYellow)

	// Green for confirmations
	successColor = color.New(color.FgGreen, color.Bold)

	// Cyan for section banners
	bannerColor = color.New(color.FgCyan, color.Bold)
)

// Writer provides formatted output with consistent prefixes and colors.
type Writer struct {
	quiet  bool
	stdout io.Writer
	stderr io.Writer
}

// NewWriter creates a Writer targeting the process stdout/stderr.
func NewWriter() *Writer {
	return &Writer{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewWriterTo creates a Writer with explicit output streams, used in tests.
func NewWriterTo(stdout, stderr io.Writer) *Writer {
	return &Writer{stdout: stdout, stderr: stderr}
}

// SetQuiet suppresses all informational output.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Info prints an informational message.
func (w *Writer) Info(format string, args ...any) {
	if w.quiet {
		return
	}
	fmt.Fprintf(w.stdout, format+"\n", args...)
}

// Dim prints secondary information in faint gray.
func (w *Writer) Dim(format string, args ...any) {
	if w.quiet {
		return
	}
	fmt.Fprintln(w.stdout, grayColor.Sprintf(format, args...))
}

// Warn prints a warning to stderr.
func (w *Writer) Warn(format string, args ...any) {
	fmt.Fprintln(w.stderr, warnColor.Sprintf(format, args...))
}

// Error prints an error to stderr.
func (w *Writer) Error(format string, args ...any) {
	fmt.Fprintln(w.stderr, errorColor.Sprintf(format, args...))
}

// Success prints a green confirmation message.
func (w *Writer) Success(format string, args ...any) {
	if w.quiet {
		return
	}
	fmt.Fprintln(w.stdout, successColor.Sprintf(format, args...))
}

const diffBanner = "── DIFF ────────────────────────────────────────────────"
const diffFooter = "───────────────────────────────────────────────────────"

// PrintDiff pretty-prints a unified diff inside a framed block with
// role-based coloring. Always runs, even for empty diffs.
func (w *Writer) PrintDiff(diffText string) {
	if w.quiet {
		return
	}
	fmt.Fprintln(w.stdout, bannerColor.Sprint(diffBanner))
	fmt.Fprintln(w.stdout, diffutil.Colorize(diffText))
	fmt.Fprintln(w.stdout, bannerColor.Sprint(diffFooter))
}

// Stdout returns the writer's stdout stream for raw prompt output.
func (w *Writer) Stdout() io.Writer {
	return w.stdout
}
