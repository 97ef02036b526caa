// Package engine drives the learn and send state machines against the
// hardware transceiver.
//
// Learn polls the decoder at a fixed short interval until a qualifying
// capture arrives or the deadline passes, filtering noise and truncated
// captures along the way. Send replays a stored code with the receiver
// disabled for the duration of the transmit loop, so the controller
// never re-captures its own output.
//
// Both operations block the caller; the controller's single command
// loop executes one at a time.
package engine
