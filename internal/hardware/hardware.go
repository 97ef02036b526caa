package hardware

import "github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"

// Decoder timing constants. These describe the capture hardware and are
// fixed properties of the transceiver, not configuration.
const (
	// TickMicroseconds converts decoder tick counts to microseconds.
	TickMicroseconds = 2

	// CaptureBufferSize is the deepest raw capture the decoder can hold.
	// Longer signals arrive truncated with Overflow set.
	CaptureBufferSize = 256
)

// Capture is one decode result pulled from the receiver.
//
// When the decoder matched a known protocol, Protocol/Value/Bits carry
// the decoded triple. Otherwise Protocol is ir.ProtocolUnknown and
// RawTicks holds the captured timings in decoder ticks; the first entry
// is the lead-in edge, not a usable duration.
type Capture struct {
	Protocol ir.Protocol
	Value    uint64
	Bits     uint16

	RawTicks []uint16
	Overflow bool
}

// Receiver is the polled side of the transceiver.
type Receiver interface {
	// Poll returns the next buffered capture, if any. Non-blocking.
	Poll() (Capture, bool)

	// Resume re-arms the capture buffer after a capture was consumed.
	Resume()

	// Disable stops the demodulator. Used while transmitting so the
	// controller's own output is not captured as input.
	Disable()

	// Enable restarts the demodulator after Disable.
	Enable()
}

// Transmitter is the encoding side of the transceiver.
type Transmitter interface {
	// TransmitDecoded re-encodes and sends a protocol/value/bits triple.
	// Returns false if the encoder cannot reproduce the protocol.
	TransmitDecoded(p ir.Protocol, value uint64, bits uint16) bool

	// TransmitRaw modulates the pulse sequence at the carrier frequency.
	// Fire-and-forget: the raw path has no per-call failure signal.
	TransmitRaw(pulses []uint16, freqHz uint32)
}
