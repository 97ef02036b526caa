package hardware

import (
	"sync"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Transmission records one call to the Simulator's transmit side.
type Transmission struct {
	Protocol ir.Protocol
	Value    uint64
	Bits     uint16

	Pulses []uint16
	FreqHz uint32
}

// Simulator is an in-memory transceiver. It implements both Receiver and
// Transmitter: captures are injected with Inject and drained by Poll,
// transmissions are recorded for inspection.
//
// Unlike the store and engine, the simulator is mutex-guarded: tests and
// development tooling inject captures from goroutines other than the
// command loop.
type Simulator struct {
	mu sync.Mutex

	pending []Capture
	armed   bool
	enabled bool

	transmissions []Transmission

	// FailDecoded makes TransmitDecoded report failure, for exercising
	// the send_failed path.
	FailDecoded bool
}

// NewSimulator returns a simulator with the receiver enabled and armed.
func NewSimulator() *Simulator {
	return &Simulator{armed: true, enabled: true}
}

// Inject queues a capture for a later Poll.
func (s *Simulator) Inject(c Capture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, c)
}

// Poll implements Receiver. A capture is only handed out while the
// receiver is enabled and armed; consuming one disarms the buffer until
// Resume, mirroring real capture hardware.
func (s *Simulator) Poll() (Capture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || !s.armed || len(s.pending) == 0 {
		return Capture{}, false
	}

	c := s.pending[0]
	s.pending = s.pending[1:]
	s.armed = false
	return c, true
}

// Resume implements Receiver.
func (s *Simulator) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
}

// Disable implements Receiver.
func (s *Simulator) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
}

// Enable implements Receiver.
func (s *Simulator) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = true
}

// Enabled reports whether the receiver is currently enabled.
func (s *Simulator) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// TransmitDecoded implements Transmitter.
func (s *Simulator) TransmitDecoded(p ir.Protocol, value uint64, bits uint16) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailDecoded {
		return false
	}
	s.transmissions = append(s.transmissions, Transmission{
		Protocol: p,
		Value:    value,
		Bits:     bits,
	})
	return true
}

// TransmitRaw implements Transmitter. The pulse slice is copied so the
// record stays stable if the caller reuses its buffer.
func (s *Simulator) TransmitRaw(pulses []uint16, freqHz uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cpy := make([]uint16, len(pulses))
	copy(cpy, pulses)
	s.transmissions = append(s.transmissions, Transmission{
		Pulses: cpy,
		FreqHz: freqHz,
	})
}

// Transmissions returns a snapshot of everything transmitted so far.
func (s *Simulator) Transmissions() []Transmission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transmission, len(s.transmissions))
	copy(out, s.transmissions)
	return out
}
