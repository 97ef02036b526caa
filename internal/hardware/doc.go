// Package hardware defines the boundary to the infrared transceiver.
//
// The waveform decoder and encoder are external collaborators: real
// deployments back these interfaces with a driver for the attached
// demodulator/LED hardware, while development and tests use the
// in-package Simulator.
//
// The Receiver is polled, never blocking: Poll returns the next capture
// if one is buffered. Disable/Enable gate the demodulator around
// transmissions so the controller does not re-capture its own output,
// and Resume arms the capture buffer for the next signal after a
// capture has been consumed.
package hardware
