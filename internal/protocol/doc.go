// Package protocol implements the host-facing command protocol.
//
// The wire format is newline-delimited JSON: each request is one object
// with at least a "cmd" field, and each request yields exactly one
// response line (learn additionally emits an intermediate "learn_ready"
// acknowledgement before its blocking capture phase). Carriage returns
// are stripped. At startup, before any request is read, the session
// emits one unsolicited {"ok":true,"msg":"boot"} line.
//
// Commands: ping, list, erase, learn, send, define, define_raw.
// Errors surface as {"ok":false,"err":"<code>"}; the codes are fixed
// wire contract (see errors.go) and the host owns retries.
//
// Dispatch is synchronous and single-threaded: the session reads one
// line, executes the command to completion, then reads the next. A
// blocking learn therefore stalls the loop for up to its timeout; this
// is an accepted property of the design, not a defect.
package protocol
