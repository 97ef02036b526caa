package ir

// Kind discriminates the two storage forms of a Code.
type Kind uint8

const (
	// KindDecoded is a protocol+value+bits triple, replayed by re-encoding.
	KindDecoded Kind = iota

	// KindRaw is a pulse-duration sequence plus carrier frequency.
	KindRaw
)

// Limits on raw pulse sequences.
const (
	// MaxRawSamples is the longest pulse sequence a code may carry.
	// Bounds define_raw payloads from the host.
	MaxRawSamples = 512

	// DefaultCarrierHz is the carrier frequency assumed when a raw code
	// does not specify one. 38 kHz covers the vast majority of remotes.
	DefaultCarrierHz = 38000
)

// Code is a named, stored infrared signal.
//
// Exactly one payload is meaningful depending on Kind: Protocol/Value/Bits
// for KindDecoded, Freq/Pulses for KindRaw. A decoded code never owns a
// pulse buffer.
type Code struct {
	Name string
	Kind Kind

	// Decoded payload.
	Protocol Protocol
	Value    uint64
	Bits     uint16

	// Raw payload. Pulses holds alternating mark/space durations in
	// microseconds; Freq is the carrier frequency in Hz.
	Freq   uint32
	Pulses []uint16
}

// TypeName returns the wire name for the code's type: the protocol name
// for decoded codes, or the raw marker for raw ones.
func (c Code) TypeName() string {
	if c.Kind == KindRaw {
		return RawTypeName
	}
	return c.Protocol.String()
}

// Clone returns an independent copy of the code. The pulse buffer, if
// any, is duplicated and sized exactly to its length, so the clone never
// aliases the original and carries no spare capacity.
func (c Code) Clone() Code {
	cpy := c
	if c.Pulses != nil {
		cpy.Pulses = make([]uint16, len(c.Pulses))
		copy(cpy.Pulses, c.Pulses)
	}
	return cpy
}

// Summary is the (name, type) projection of a stored code used by list
// enumeration. It carries no pulse buffer.
type Summary struct {
	Name string
	Type string
}
