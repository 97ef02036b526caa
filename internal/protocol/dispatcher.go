package protocol

import (
	"io"
	"strconv"
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/engine"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Logger defines the logging interface used by the Dispatcher.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Dispatcher routes one request line to the store and engine and writes
// the response. It is stateless between commands; all durable state
// lives in the store.
type Dispatcher struct {
	store        *ir.Store
	engine       *engine.Engine
	log          Logger
	sinks        []EventSink
	learnTimeout time.Duration
}

// NewDispatcher creates a dispatcher over the given store and engine.
func NewDispatcher(store *ir.Store, eng *engine.Engine) *Dispatcher {
	return &Dispatcher{
		store:        store,
		engine:       eng,
		log:          noopLogger{},
		learnTimeout: defaultLearnTimeoutMs * time.Millisecond,
	}
}

// SetLogger sets the logger for the dispatcher.
func (d *Dispatcher) SetLogger(log Logger) {
	d.log = log
}

// SetDefaultLearnTimeout overrides the timeout used when a learn
// request omits timeout_ms.
func (d *Dispatcher) SetDefaultLearnTimeout(timeout time.Duration) {
	if timeout > 0 {
		d.learnTimeout = timeout
	}
}

// AddSink registers an event sink. Sinks are notified in registration
// order after the response for a successful mutating command is known.
func (d *Dispatcher) AddSink(sink EventSink) {
	d.sinks = append(d.sinks, sink)
}

// Dispatch executes one request line and writes the response(s) to w.
// Every line yields at least one response; a malformed line is answered
// with json_parse and is never fatal.
func (d *Dispatcher) Dispatch(line []byte, w io.Writer) error {
	req, err := parseRequest(line)
	if err != nil {
		d.log.Warn("unparseable request line", "error", err)
		return writeError(w, errJSONParse)
	}

	d.log.Debug("dispatching command", "cmd", req.Cmd, "name", req.Name)

	switch req.Cmd {
	case "ping":
		return writeStatus(w, "pong")
	case "list":
		return writeList(w, d.store.Summaries())
	case "erase":
		return d.handleErase(req, w)
	case "learn":
		return d.handleLearn(req, w)
	case "send":
		return d.handleSend(req, w)
	case "define":
		return d.handleDefine(req, w)
	case "define_raw":
		return d.handleDefineRaw(req, w)
	default:
		return writeError(w, errUnknownCmd)
	}
}

func (d *Dispatcher) handleErase(req Request, w io.Writer) error {
	if req.Name == "" {
		return writeError(w, errMissingName)
	}
	if err := d.store.Remove(req.Name); err != nil {
		return writeError(w, errNotFound)
	}

	d.log.Info("code erased", "name", req.Name)
	for _, sink := range d.sinks {
		sink.CodeErased(req.Name)
	}
	return writeStatus(w, "erased")
}

// handleLearn acknowledges readiness, then blocks in the capture loop.
// The ready line goes out before polling starts so the host knows when
// to press the remote button.
func (d *Dispatcher) handleLearn(req Request, w io.Writer) error {
	if req.Name == "" {
		return writeError(w, errMissingName)
	}

	timeout := d.learnTimeout
	if req.TimeoutMs != nil {
		timeout = time.Duration(*req.TimeoutMs) * time.Millisecond
	}

	if err := writeStatus(w, "learn_ready"); err != nil {
		return err
	}

	code, err := d.engine.Learn(req.Name, timeout)
	if err != nil {
		d.log.Info("learn timed out", "name", req.Name, "timeout_ms", timeout.Milliseconds())
		return writeError(w, errLearnFailed)
	}

	// Name was validated above, so the only way Upsert fails here is a
	// full store with no slot to reuse.
	if err := d.store.Upsert(code); err != nil {
		d.log.Warn("learned code dropped, store full", "name", req.Name)
		return writeError(w, errStorageFull)
	}

	d.log.Info("code learned",
		"name", code.Name,
		"type", code.TypeName(),
		"raw_samples", len(code.Pulses),
	)
	for _, sink := range d.sinks {
		sink.CodeLearned(code)
	}
	return writeCode(w, code)
}

func (d *Dispatcher) handleSend(req Request, w io.Writer) error {
	if req.Name == "" {
		return writeError(w, errMissingName)
	}

	code, ok := d.store.Get(req.Name)
	if !ok {
		return writeError(w, errNotFound)
	}

	repeats := defaultSendRepeats
	if req.Repeats != nil {
		repeats = *req.Repeats
	}

	start := time.Now()
	if err := d.engine.Send(code, repeats); err != nil {
		d.log.Warn("send failed", "name", req.Name, "error", err)
		return writeError(w, errSendFailed)
	}
	elapsed := time.Since(start)

	d.log.Info("code sent", "name", req.Name, "repeats", repeats)
	for _, sink := range d.sinks {
		sink.CodeSent(req.Name, repeats, elapsed)
	}
	return writeStatus(w, "sent")
}

// handleDefine validates in a fixed order so hosts get deterministic
// errors: presence checks first, then the protocol lookup, then the
// value parse.
func (d *Dispatcher) handleDefine(req Request, w io.Writer) error {
	if req.Name == "" {
		return writeError(w, errMissingName)
	}
	if req.Type == "" {
		return writeError(w, errMissingType)
	}
	if req.Value == "" {
		return writeError(w, errMissingVal)
	}

	proto, ok := ir.LookupProtocol(req.Type)
	if !ok {
		return writeError(w, errUnknownType)
	}

	// Base 0 accepts both "0x20DF10EF" and plain decimal, matching what
	// host tooling sends.
	value, err := strconv.ParseUint(req.Value, 0, 64)
	if err != nil {
		return writeError(w, errBadValue)
	}

	bits := defaultDefineBits
	if req.Bits != nil {
		bits = *req.Bits
	}

	code := ir.Code{
		Name:     req.Name,
		Kind:     ir.KindDecoded,
		Protocol: proto,
		Value:    value,
		Bits:     uint16(bits),
	}
	if err := d.store.Upsert(code); err != nil {
		return writeError(w, errStorageFull)
	}

	d.log.Info("code defined", "name", code.Name, "type", code.TypeName())
	for _, sink := range d.sinks {
		sink.CodeDefined(code)
	}
	return writeStatus(w, "defined")
}

func (d *Dispatcher) handleDefineRaw(req Request, w io.Writer) error {
	if req.Name == "" {
		return writeError(w, errMissingName)
	}
	if req.Data == nil {
		return writeError(w, errMissingData)
	}
	if len(req.Data) == 0 {
		return writeError(w, errEmptyData)
	}
	if len(req.Data) > ir.MaxRawSamples {
		return writeError(w, errRawTooLong)
	}

	freq := uint32(ir.DefaultCarrierHz)
	if req.Freq != nil {
		freq = *req.Freq
	}

	pulses := make([]uint16, len(req.Data))
	for i, sample := range req.Data {
		if sample > 0xFFFF {
			sample = 0xFFFF
		}
		pulses[i] = uint16(sample)
	}

	code := ir.Code{
		Name:   req.Name,
		Kind:   ir.KindRaw,
		Freq:   freq,
		Pulses: pulses,
	}
	if err := d.store.Upsert(code); err != nil {
		return writeError(w, errStorageFull)
	}

	d.log.Info("raw code defined", "name", code.Name, "samples", len(pulses))
	for _, sink := range d.sinks {
		sink.CodeDefined(code)
	}
	return writeStatus(w, "defined")
}
