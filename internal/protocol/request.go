package protocol

import "encoding/json"

// Request is one decoded command line from the host. Optional numeric
// fields are pointers so absence is distinguishable from an explicit
// zero (send with repeats:0 is meaningful).
type Request struct {
	Cmd  string `json:"cmd"`
	Name string `json:"name,omitempty"`

	// learn
	TimeoutMs *int `json:"timeout_ms,omitempty"`

	// send
	Repeats *int `json:"repeats,omitempty"`

	// define
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
	Bits  *int   `json:"bits,omitempty"`

	// define_raw. Data stays nil when the field is absent, which is how
	// missing_data and empty_data are told apart. Samples are parsed
	// wider than their stored width so oversized values clamp instead
	// of failing the whole line.
	Freq *uint32  `json:"freq,omitempty"`
	Data []uint32 `json:"data,omitempty"`
}

// Defaults applied when optional fields are absent.
const (
	defaultLearnTimeoutMs = 15000
	defaultSendRepeats    = 1
	defaultDefineBits     = 32
)

// parseRequest decodes one request line.
func parseRequest(line []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}
