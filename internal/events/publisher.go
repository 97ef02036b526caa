package events

import (
	"encoding/json"
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Broker is the slice of the MQTT client the publisher needs.
type Broker interface {
	PublishEvent(kind string, payload []byte) error
	PublishCodeState(name string, payload []byte) error
}

// Logger is the logging interface used by the Publisher.
type Logger interface {
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// Publisher broadcasts code activity over MQTT. It satisfies the
// dispatcher's event sink interface; publish failures are logged, never
// propagated, so a flaky broker cannot break command handling.
type Publisher struct {
	broker Broker
	log    Logger
}

// NewPublisher creates a Publisher using the given broker client.
func NewPublisher(broker Broker, log Logger) *Publisher {
	if log == nil {
		log = noopLogger{}
	}
	return &Publisher{broker: broker, log: log}
}

// CodeLearned publishes a code_learned event and the retained state for
// the new code.
func (p *Publisher) CodeLearned(code ir.Code) {
	p.publish(KindCodeLearned, newCodeEvent(KindCodeLearned, code))
	p.publishState(code)
}

// CodeDefined publishes a code_defined event and the retained state for
// the new code.
func (p *Publisher) CodeDefined(code ir.Code) {
	p.publish(KindCodeDefined, newCodeEvent(KindCodeDefined, code))
	p.publishState(code)
}

// CodeSent publishes a code_sent event.
func (p *Publisher) CodeSent(name string, repeats int, elapsed time.Duration) {
	p.publish(KindCodeSent, SendEvent{
		Envelope:   newEnvelope(KindCodeSent),
		Name:       name,
		Repeats:    repeats,
		DurationMs: elapsed.Milliseconds(),
	})
}

// CodeErased publishes a code_erased event and clears the code's
// retained state.
func (p *Publisher) CodeErased(name string) {
	p.publish(KindCodeErased, EraseEvent{
		Envelope: newEnvelope(KindCodeErased),
		Name:     name,
	})
	if err := p.broker.PublishCodeState(name, nil); err != nil {
		p.log.Warn("code state clear failed", "name", name, "error", err)
	}
}

func (p *Publisher) publish(kind string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("event marshal failed", "kind", kind, "error", err)
		return
	}
	if err := p.broker.PublishEvent(kind, payload); err != nil {
		p.log.Warn("event publish failed", "kind", kind, "error", err)
	}
}

func (p *Publisher) publishState(code ir.Code) {
	payload, err := json.Marshal(newCodeState(code))
	if err != nil {
		p.log.Warn("code state marshal failed", "name", code.Name, "error", err)
		return
	}
	if err := p.broker.PublishCodeState(code.Name, payload); err != nil {
		p.log.Warn("code state publish failed", "name", code.Name, "error", err)
	}
}
