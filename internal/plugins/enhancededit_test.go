package plugins

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/souvikmajumdar/code-puppy/internal/config"
	"github.com/souvikmajumdar/code-puppy/internal/edit"
	"github.com/souvikmajumdar/code-puppy/internal/hooks"
	"github.com/souvikmajumdar/code-puppy/internal/ui"
)

func TestEnhanceRejectedOutcome(t *testing.T) {
	in := edit.Outcome{
		Success: false,
		Path:    "/w/f.txt",
		Message: "Operation cancelled by user - rejected write_file after reviewing diff preview",
		Rejection: &edit.Rejection{
			Operation:    "write_file",
			Reason:       "user_denied_permission",
			UserAction:   "rejected_permission",
			PreviewShown: true,
		},
	}

	got, err := EnhanceRejectedOutcome(context.Background(), in, nil)
	if err != nil {
		t.Fatalf("EnhanceRejectedOutcome: %v", err)
	}
	enhanced, ok := got.(edit.Outcome)
	if !ok {
		t.Fatalf("got %T, want edit.Outcome", got)
	}
	if !strings.Contains(enhanced.Message, "explicitly rejected") {
		t.Errorf("message = %q", enhanced.Message)
	}
	if !strings.HasPrefix(enhanced.Message, in.Message) {
		t.Error("original message must be preserved as prefix")
	}
	if enhanced.Rejection == in.Rejection {
		t.Error("enhancement must copy the rejection, not alias it")
	}
}

func TestEnhancePassThrough(t *testing.T) {
	tests := []struct {
		name string
		in   edit.Outcome
	}{
		{"successful edit", edit.Outcome{Success: true, Changed: true}},
		{"plain failure without rejection", edit.Outcome{Success: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnhanceRejectedOutcome(context.Background(), tt.in, nil)
			if err != nil {
				t.Fatalf("EnhanceRejectedOutcome: %v", err)
			}
			if got != nil {
				t.Errorf("non-rejection must pass through with nil, got %+v", got)
			}
		})
	}
}

func TestEnhanceIgnoresForeignArgs(t *testing.T) {
	got, err := EnhanceRejectedOutcome(context.Background(), "not an outcome")
	if err != nil || got != nil {
		t.Errorf("got (%v, %v)", got, err)
	}

	got, err = EnhanceRejectedOutcome(context.Background())
	if err != nil || got != nil {
		t.Errorf("no args: got (%v, %v)", got, err)
	}
}

func TestRegisterBuiltins(t *testing.T) {
	cfg := &config.Config{}
	var stdout, stderr bytes.Buffer
	bus := hooks.NewBus(nil)

	if err := RegisterBuiltins(bus, cfg, ui.NewWriterTo(&stdout, &stderr)); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}

	if bus.Count(hooks.PhaseFilePermission) != 1 {
		t.Errorf("file_permission handlers = %d", bus.Count(hooks.PhaseFilePermission))
	}
	if bus.Count(hooks.PhaseEditFile) != 1 || bus.Count(hooks.PhaseDeleteFile) != 1 {
		t.Error("enrichment handlers not registered on both mutation phases")
	}
}
