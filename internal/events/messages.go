// Package events publishes code activity to the MQTT broker so other
// systems can react to what the controller does.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Event kinds published under tvwiz/event/{kind}.
const (
	KindCodeLearned = "code_learned"
	KindCodeDefined = "code_defined"
	KindCodeSent    = "code_sent"
	KindCodeErased  = "code_erased"
)

// Envelope is the common wrapper for all published events.
type Envelope struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Timestamp string `json:"timestamp"`
}

// CodeEvent announces a code entering the store (learned or defined).
type CodeEvent struct {
	Envelope
	Name  string `json:"name"`
	Type  string `json:"type"`
	Bits  uint16 `json:"bits,omitempty"`
	Value string `json:"value,omitempty"`
	// Samples and Freq are set for raw codes only.
	Samples int    `json:"samples,omitempty"`
	Freq    uint32 `json:"freq,omitempty"`
}

// SendEvent announces a completed transmission.
type SendEvent struct {
	Envelope
	Name       string `json:"name"`
	Repeats    int    `json:"repeats"`
	DurationMs int64  `json:"duration_ms"`
}

// EraseEvent announces a code removal.
type EraseEvent struct {
	Envelope
	Name string `json:"name"`
}

// CodeState is the retained per-code state published to
// tvwiz/code/{name}: the current definition of the code, replaced on
// every learn or define and cleared on erase.
type CodeState struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Bits  uint16 `json:"bits,omitempty"`
	Value string `json:"value,omitempty"`
	// Samples and Freq are set for raw codes only.
	Samples   int    `json:"samples,omitempty"`
	Freq      uint32 `json:"freq,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// newEnvelope stamps a fresh envelope for the given kind.
func newEnvelope(kind string) Envelope {
	return Envelope{
		ID:        "evt-" + uuid.NewString()[:8],
		Kind:      kind,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// newCodeEvent builds a CodeEvent from a stored code.
func newCodeEvent(kind string, code ir.Code) CodeEvent {
	event := CodeEvent{
		Envelope: newEnvelope(kind),
		Name:     code.Name,
		Type:     code.TypeName(),
	}
	if code.Kind == ir.KindDecoded {
		event.Bits = code.Bits
		event.Value = fmt.Sprintf("0x%X", code.Value)
	} else {
		event.Samples = len(code.Pulses)
		event.Freq = code.Freq
	}
	return event
}

// newCodeState builds the retained state payload for a stored code.
func newCodeState(code ir.Code) CodeState {
	state := CodeState{
		Name:      code.Name,
		Type:      code.TypeName(),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if code.Kind == ir.KindDecoded {
		state.Bits = code.Bits
		state.Value = fmt.Sprintf("0x%X", code.Value)
	} else {
		state.Samples = len(code.Pulses)
		state.Freq = code.Freq
	}
	return state
}
