package protocol

import (
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// EventSink receives notifications after successful mutating commands.
// Implementations fan the controller's activity out to the journal, the
// MQTT event bus, and telemetry; failures there are their own problem
// and never reach the host.
//
// Sinks are invoked synchronously from the command loop and should
// return quickly; slow backends must buffer internally.
type EventSink interface {
	// CodeLearned fires when a capture was accepted and stored.
	CodeLearned(code ir.Code)

	// CodeDefined fires when a define or define_raw request was stored.
	CodeDefined(code ir.Code)

	// CodeSent fires after a completed transmit loop.
	CodeSent(name string, repeats int, elapsed time.Duration)

	// CodeErased fires when a code was removed.
	CodeErased(name string)
}
