// Package telemetry feeds controller activity into the time-series
// store so usage can be charted and alerted on.
package telemetry

import (
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Metrics is the slice of the InfluxDB client the recorder needs.
type Metrics interface {
	WriteSendMetric(codeName, codeType string, repeats int, elapsed time.Duration)
	WriteActivityMetric(action, codeName string, storeLen int)
}

// Recorder writes activity metrics. It satisfies the dispatcher's event
// sink interface. Writes go through the InfluxDB client's non-blocking
// API, so the recorder never delays command handling.
type Recorder struct {
	metrics Metrics
	store   *ir.Store
}

// NewRecorder creates a Recorder. The store is consulted for occupancy
// after each mutation; the dispatcher serialises mutations, so the read
// is always consistent with the event.
func NewRecorder(metrics Metrics, store *ir.Store) *Recorder {
	return &Recorder{metrics: metrics, store: store}
}

// CodeLearned records a capture in the activity measurement.
func (r *Recorder) CodeLearned(code ir.Code) {
	r.metrics.WriteActivityMetric("learned", code.Name, r.store.Len())
}

// CodeDefined records a manual definition in the activity measurement.
func (r *Recorder) CodeDefined(code ir.Code) {
	r.metrics.WriteActivityMetric("defined", code.Name, r.store.Len())
}

// CodeSent records a completed transmission in the ir_send
// measurement, tagged with the code's current type.
func (r *Recorder) CodeSent(name string, repeats int, elapsed time.Duration) {
	r.metrics.WriteSendMetric(name, r.codeType(name), repeats, elapsed)
}

// CodeErased records a removal in the activity measurement.
func (r *Recorder) CodeErased(name string) {
	r.metrics.WriteActivityMetric("erased", name, r.store.Len())
}

// codeType resolves a code's type tag, empty if it is gone.
func (r *Recorder) codeType(name string) string {
	code, ok := r.store.Get(name)
	if !ok {
		return ""
	}
	return code.TypeName()
}
