package ir

// Protocol identifies an infrared encoding scheme the hardware encoder
// knows how to reproduce. The zero value means "unrecognised"; captures
// carrying it are stored as Raw codes instead.
type Protocol uint8

// Supported protocol identifiers.
const (
	ProtocolUnknown Protocol = iota
	ProtocolNEC
	ProtocolSony
	ProtocolRC5
	ProtocolRC6
	ProtocolJVC
	ProtocolSamsung
	ProtocolLG
	ProtocolPanasonic
	ProtocolSharp
	ProtocolSanyo
	ProtocolMitsubishi
	ProtocolDenon
	ProtocolCoolix
	ProtocolWhynter
	ProtocolDISH
)

// RawTypeName is the wire marker for raw codes in list output and
// define_raw payloads. It is reserved: no protocol may use it.
const RawTypeName = "RAW"

// protocolNames maps protocol identifiers to their canonical wire names.
// The names match what hosts send in define requests and what list
// reports back, so they are part of the line protocol contract.
var protocolNames = map[Protocol]string{
	ProtocolNEC:        "NEC",
	ProtocolSony:       "SONY",
	ProtocolRC5:        "RC5",
	ProtocolRC6:        "RC6",
	ProtocolJVC:        "JVC",
	ProtocolSamsung:    "SAMSUNG",
	ProtocolLG:         "LG",
	ProtocolPanasonic:  "PANASONIC",
	ProtocolSharp:      "SHARP",
	ProtocolSanyo:      "SANYO",
	ProtocolMitsubishi: "MITSUBISHI",
	ProtocolDenon:      "DENON",
	ProtocolCoolix:     "COOLIX",
	ProtocolWhynter:    "WHYNTER",
	ProtocolDISH:       "DISH",
}

// protocolIDs is the reverse of protocolNames, built at init.
var protocolIDs = func() map[string]Protocol {
	ids := make(map[string]Protocol, len(protocolNames))
	for id, name := range protocolNames {
		ids[name] = id
	}
	return ids
}()

// String returns the canonical wire name for the protocol.
// Unknown or out-of-range values render as "UNKNOWN".
func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// LookupProtocol resolves a wire name ("NEC", "SONY", ...) to its
// protocol identifier. Matching is exact and case-sensitive; hosts are
// expected to send canonical upper-case names.
func LookupProtocol(name string) (Protocol, bool) {
	p, ok := protocolIDs[name]
	return p, ok
}
