package edit

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/souvikmajumdar/code-puppy/internal/config"
	"github.com/souvikmajumdar/code-puppy/internal/diffutil"
	"github.com/souvikmajumdar/code-puppy/internal/fuzzy"
	"github.com/souvikmajumdar/code-puppy/internal/hooks"
	"github.com/souvikmajumdar/code-puppy/internal/logging"
	"github.com/souvikmajumdar/code-puppy/internal/permission"
	"github.com/souvikmajumdar/code-puppy/internal/ui"
)

// Router is the public entry point for file mutations. Each call flows one
// way: request, preview diff, permission decision, mutation, outcome,
// outcome enrichment. No state survives a call.
type Router struct {
	cfg  *config.Config
	bus  *hooks.Bus
	gate *permission.Gate
	log  *logging.Logger
	out  *ui.Writer
}

// NewRouter wires a Router against an explicit bus and gate.
func NewRouter(cfg *config.Config, bus *hooks.Bus, gate *permission.Gate, log *logging.Logger, out *ui.Writer) *Router {
	if log == nil {
		log = logging.Nop()
	}
	return &Router{cfg: cfg, bus: bus, gate: gate, log: log, out: out}
}

// EditFile routes a tagged edit request. The group token is an opaque
// correlation ID used purely for display association. The returned outcome
// has its diff stripped; enrichment handlers on the edit_file phase see the
// full outcome and may replace it (first non-nil replacement wins).
func (r *Router) EditFile(ctx context.Context, req Request, group string) Outcome {
	outcome := r.apply(ctx, req, group)
	if outcome.Diff != "" {
		r.out.PrintDiff(outcome.Diff)
	}
	r.log.MutationApplied(outcome.Path, operationName(req), outcome.Changed)
	outcome = r.enrich(ctx, hooks.PhaseEditFile, outcome, req)
	return outcome.stripDiff()
}

// DeleteFile removes a whole file after preview and permission, with the
// same outcome and enrichment contract as EditFile on the delete_file phase.
func (r *Router) DeleteFile(ctx context.Context, path, group string) Outcome {
	outcome := r.applyDeleteFile(ctx, path, group)
	if outcome.Diff != "" {
		r.out.PrintDiff(outcome.Diff)
	}
	r.log.MutationApplied(outcome.Path, "delete_file", outcome.Changed)
	outcome = r.enrich(ctx, hooks.PhaseDeleteFile, outcome, path)
	return outcome.stripDiff()
}

// apply dispatches on the request variant. The match is exhaustive over the
// closed union; there is no unknown-type branch to fall through.
func (r *Router) apply(ctx context.Context, req Request, group string) Outcome {
	switch v := req.(type) {
	case FullWrite:
		return r.applyFullWrite(ctx, v, group)
	case TargetedReplace:
		return r.applyTargetedReplace(ctx, v, group)
	case SnippetDelete:
		return r.applySnippetDelete(ctx, v, group)
	default:
		// Unreachable: Request is sealed by isRequest.
		panic(fmt.Sprintf("edit: unknown request variant %T", req))
	}
}

func operationName(req Request) string {
	switch req.(type) {
	case FullWrite:
		return "write_file"
	case TargetedReplace:
		return "replace_text"
	case SnippetDelete:
		return "delete_snippet"
	default:
		return "edit_file"
	}
}

// resolve normalizes the path to absolute canonical form and checks the
// configured path permissions before any I/O happens.
func (r *Router) resolve(path string) (string, *OpError) {
	fullPath, err := r.cfg.ResolvePath(path)
	if err != nil {
		return "", Errorf(ErrRefusal, "invalid path: %v", err)
	}
	if result, permErr := r.cfg.CheckPathPermission(fullPath, config.AccessWrite); result != config.PermissionGranted {
		return "", Errorf(ErrRefusal, "access denied: %v", permErr)
	}
	return fullPath, nil
}

func (r *Router) applyFullWrite(ctx context.Context, req FullWrite, group string) Outcome {
	r.out.Info("✏️ Writing file %s", req.Path)

	fullPath, opErr := r.resolve(req.Path)
	if opErr != nil {
		return errOutcome(req.Path, opErr)
	}

	existing, isNew, err := readFile(fullPath)
	if err != nil {
		r.log.IOFault(fullPath, "write_file", err)
		return errOutcome(fullPath, Errorf(ErrIOFault, "%v", err))
	}

	// Hard safety refusal, not a policy decision: no preview, no prompt.
	if !isNew && !req.Overwrite {
		return Outcome{
			Success: false,
			Path:    fullPath,
			Message: fmt.Sprintf("Cowardly refusing to overwrite existing file: %s", fullPath),
			Changed: false,
			Error:   Errorf(ErrRefusal, "file exists and overwrite is false"),
		}
	}

	fromFile, toFile := diffutil.Labels(fullPath, isNew)
	diff, err := diffutil.Unified(existing, req.Content, fromFile, toFile)
	if err != nil {
		return errOutcome(fullPath, Errorf(ErrPreviewUnavailable, "failed to generate preview for writing to '%s': %v", fullPath, err))
	}

	if out, denied := r.authorize(ctx, fullPath, "write", diff, group, "write_file"); denied {
		return out
	}

	if err := writeFileAtomic(fullPath, req.Content, isNew); err != nil {
		r.log.IOFault(fullPath, "write_file", err)
		return errOutcome(fullPath, Errorf(ErrIOFault, "%v", err))
	}

	action := "created"
	if !isNew {
		action = "overwritten"
	}
	return Outcome{
		Success: true,
		Path:    fullPath,
		Message: fmt.Sprintf("File '%s' %s successfully.", fullPath, action),
		Changed: true,
		Diff:    diff,
	}
}

func (r *Router) applyTargetedReplace(ctx context.Context, req TargetedReplace, group string) Outcome {
	r.out.Info("♻️ Replacing text in %s", req.Path)

	fullPath, opErr := r.resolve(req.Path)
	if opErr != nil {
		return errOutcome(req.Path, opErr)
	}

	original, isNew, err := readFile(fullPath)
	if err != nil {
		r.log.IOFault(fullPath, "replace_text", err)
		return errOutcome(fullPath, Errorf(ErrIOFault, "%v", err))
	}
	if isNew {
		return errOutcome(fullPath, Errorf(ErrPreviewUnavailable, "File '%s' does not exist.", fullPath))
	}

	// All replacements run against an in-memory working copy; the file is
	// only committed after every one of them succeeds, so a failed match
	// leaves the disk byte-identical to the pre-call state.
	modified := original
	threshold := r.cfg.FuzzyThreshold()
	for _, rep := range req.Replacements {
		if rep.OldStr != "" && strings.Contains(modified, rep.OldStr) {
			// Whole-document literal substitution of every occurrence.
			modified = strings.ReplaceAll(modified, rep.OldStr, rep.NewStr)
			continue
		}

		lines := strings.Split(modified, "\n")
		start, end, score, ok := fuzzy.FindBestWindow(lines, rep.OldStr)
		if !ok || score < threshold {
			return errOutcome(fullPath, NoMatchError(score, rep.OldStr))
		}

		repl := strings.Split(strings.TrimRight(rep.NewStr, "\n"), "\n")
		merged := make([]string, 0, len(lines)-(end-start)+len(repl))
		merged = append(merged, lines[:start]...)
		merged = append(merged, repl...)
		merged = append(merged, lines[end:]...)
		modified = strings.Join(merged, "\n")
	}

	if modified == original {
		r.out.Warn("No changes to apply - proposed content is identical.")
		return Outcome{
			Success: false,
			Path:    fullPath,
			Message: "No changes to apply.",
			Changed: false,
		}
	}

	fromFile, toFile := diffutil.Labels(fullPath, false)
	diff, err := diffutil.Unified(original, modified, fromFile, toFile)
	if err != nil {
		return errOutcome(fullPath, Errorf(ErrPreviewUnavailable, "failed to generate preview for replacing text in '%s': %v", fullPath, err))
	}

	if out, denied := r.authorize(ctx, fullPath, "replace text in", diff, group, "replace_text"); denied {
		return out
	}

	if err := writeFileAtomic(fullPath, modified, false); err != nil {
		r.log.IOFault(fullPath, "replace_text", err)
		return errOutcome(fullPath, Errorf(ErrIOFault, "%v", err))
	}

	return Outcome{
		Success: true,
		Path:    fullPath,
		Message: "Replacements applied.",
		Changed: true,
		Diff:    diff,
	}
}

func (r *Router) applySnippetDelete(ctx context.Context, req SnippetDelete, group string) Outcome {
	r.out.Info("🗑️ Deleting snippet from file %s", req.Path)

	fullPath, opErr := r.resolve(req.Path)
	if opErr != nil {
		return errOutcome(req.Path, opErr)
	}

	original, isNew, err := readFile(fullPath)
	if err != nil {
		r.log.IOFault(fullPath, "delete_snippet", err)
		return errOutcome(fullPath, Errorf(ErrIOFault, "%v", err))
	}
	if isNew {
		return errOutcome(fullPath, Errorf(ErrPreviewUnavailable, "File '%s' does not exist.", fullPath))
	}

	// Deletion is deliberately conservative: verbatim occurrence only, no
	// fuzzy fallback, and no permission prompt when nothing matches.
	if !strings.Contains(original, req.Snippet) {
		return errOutcome(fullPath, Errorf(ErrSnippetNotFound, "Snippet not found in file '%s'.", fullPath))
	}

	modified := strings.ReplaceAll(original, req.Snippet, "")
	fromFile, toFile := diffutil.Labels(fullPath, false)
	diff, err := diffutil.Unified(original, modified, fromFile, toFile)
	if err != nil {
		return errOutcome(fullPath, Errorf(ErrPreviewUnavailable, "failed to generate preview for deleting snippet from '%s': %v", fullPath, err))
	}

	if out, denied := r.authorize(ctx, fullPath, "delete snippet from", diff, group, "delete_snippet"); denied {
		return out
	}

	if err := writeFileAtomic(fullPath, modified, false); err != nil {
		r.log.IOFault(fullPath, "delete_snippet", err)
		return errOutcome(fullPath, Errorf(ErrIOFault, "%v", err))
	}

	return Outcome{
		Success: true,
		Path:    fullPath,
		Message: "Snippet deleted from file.",
		Changed: true,
		Diff:    diff,
	}
}

func (r *Router) applyDeleteFile(ctx context.Context, path, group string) Outcome {
	r.out.Info("🗑️ Deleting file %s", path)

	fullPath, opErr := r.resolve(path)
	if opErr != nil {
		return errOutcome(path, opErr)
	}

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return errOutcome(fullPath, Errorf(ErrPreviewUnavailable, "File '%s' does not exist.", fullPath))
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		r.log.IOFault(fullPath, "delete_file", err)
		return errOutcome(fullPath, Errorf(ErrIOFault, "%v", err))
	}

	fromFile, toFile := diffutil.Labels(fullPath, false)
	diff, err := diffutil.Unified(string(data), "", fromFile, toFile)
	if err != nil {
		return errOutcome(fullPath, Errorf(ErrPreviewUnavailable, "failed to generate preview for deleting '%s': %v", fullPath, err))
	}

	if out, denied := r.authorize(ctx, fullPath, "delete", diff, group, "delete_file"); denied {
		return out
	}

	if err := os.Remove(fullPath); err != nil {
		r.log.IOFault(fullPath, "delete_file", err)
		return errOutcome(fullPath, Errorf(ErrIOFault, "%v", err))
	}

	return Outcome{
		Success: true,
		Path:    fullPath,
		Message: fmt.Sprintf("File '%s' deleted successfully.", fullPath),
		Changed: true,
		Diff:    diff,
	}
}

// authorize runs the permission gate over the preview. On denial it returns
// the rejection outcome and true.
func (r *Router) authorize(ctx context.Context, fullPath, operation, preview, group, opTag string) (Outcome, bool) {
	allowed, busy := r.gate.Authorize(ctx, permission.AuthRequest{
		Path:      fullPath,
		Operation: operation,
		Preview:   preview,
		Group:     group,
	})
	if allowed {
		return Outcome{}, false
	}

	r.log.MutationRejected(fullPath, opTag)

	if busy {
		return Outcome{
			Success: false,
			Path:    fullPath,
			Message: "Another file operation is currently awaiting confirmation.",
			Changed: false,
			Error:   Errorf(ErrBusy, "confirmation already in progress"),
		}, true
	}

	return Outcome{
		Success: false,
		Path:    fullPath,
		Message: fmt.Sprintf("Operation cancelled by user - rejected %s after reviewing diff preview", opTag),
		Changed: false,
		Error:   Errorf(ErrPermissionDenied, "permission denied by policy"),
		Rejection: &Rejection{
			Operation:    opTag,
			Reason:       "user_denied_permission",
			UserAction:   "rejected_permission",
			PreviewShown: true,
		},
	}, true
}

// enrich dispatches the post-mutation phase with (outcome, request). The
// first handler returning a non-nil Outcome replaces the router's own
// outcome; later enrichments are discarded.
func (r *Router) enrich(ctx context.Context, phase hooks.Phase, outcome Outcome, req any) Outcome {
	results := r.bus.DispatchContext(ctx, phase, outcome, req)
	for _, res := range results {
		if res.Err != nil || res.Value == nil {
			continue
		}
		if replaced, ok := res.Value.(Outcome); ok {
			return replaced
		}
	}
	return outcome
}

func errOutcome(path string, e *OpError) Outcome {
	return Outcome{
		Success: false,
		Path:    path,
		Message: e.Message,
		Changed: false,
		Error:   e,
	}
}
