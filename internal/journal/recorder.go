package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Logger is the logging interface used by the Recorder.
type Logger interface {
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// writeTimeout bounds each journal insert so a locked database cannot
// stall the command loop.
const writeTimeout = 2 * time.Second

// Recorder writes controller activity to the journal. It satisfies the
// dispatcher's event sink interface; journal failures are logged, never
// propagated, so history recording cannot break command handling.
type Recorder struct {
	repo Repository
	log  Logger
}

// NewRecorder creates a Recorder writing through the given repository.
func NewRecorder(repo Repository, log Logger) *Recorder {
	if log == nil {
		log = noopLogger{}
	}
	return &Recorder{repo: repo, log: log}
}

// CodeLearned records a successful capture.
func (r *Recorder) CodeLearned(code ir.Code) {
	details := map[string]any{"type": code.TypeName()}
	if code.Kind == ir.KindDecoded {
		details["bits"] = code.Bits
		details["value"] = fmt.Sprintf("0x%X", code.Value)
	} else {
		details["samples"] = len(code.Pulses)
	}
	r.record(&Event{
		Action:   ActionLearned,
		CodeName: code.Name,
		CodeType: code.TypeName(),
		Details:  details,
	})
}

// CodeDefined records a manually defined code.
func (r *Recorder) CodeDefined(code ir.Code) {
	details := map[string]any{"type": code.TypeName()}
	if code.Kind == ir.KindDecoded {
		details["bits"] = code.Bits
		details["value"] = fmt.Sprintf("0x%X", code.Value)
	} else {
		details["samples"] = len(code.Pulses)
		details["freq"] = code.Freq
	}
	r.record(&Event{
		Action:   ActionDefined,
		CodeName: code.Name,
		CodeType: code.TypeName(),
		Details:  details,
	})
}

// CodeSent records a completed transmission.
func (r *Recorder) CodeSent(name string, repeats int, elapsed time.Duration) {
	r.record(&Event{
		Action:   ActionSent,
		CodeName: name,
		Details: map[string]any{
			"repeats":     repeats,
			"duration_ms": elapsed.Milliseconds(),
		},
	})
}

// CodeErased records a code removal.
func (r *Recorder) CodeErased(name string) {
	r.record(&Event{
		Action:   ActionErased,
		CodeName: name,
	})
}

func (r *Recorder) record(event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := r.repo.Create(ctx, event); err != nil {
		r.log.Warn("journal write failed",
			"action", event.Action,
			"code", event.CodeName,
			"error", err,
		)
	}
}
