// Package ir defines the code model for the TVWIZ IR controller.
//
// A Code is a named, stored infrared signal in one of two forms:
//
//   - Decoded: a recognised protocol plus a value and bit length. The
//     signal is reproduced by re-encoding rather than replaying timings.
//   - Raw: an ordered sequence of pulse durations (microseconds) plus a
//     carrier frequency, used when no known protocol matched the capture.
//
// Codes live in a Store, a bounded insertion-ordered collection keyed by
// name. The store deep-copies pulse buffers on the way in and out, so a
// stored Raw code never aliases a caller's slice. The 16-entry capacity
// mirrors the controller's RAM budget and is a hard constraint, not a
// tuning knob.
//
// # Thread Safety
//
// Store is NOT safe for concurrent use. The controller runs a single
// cooperative command loop (see internal/protocol), so the store relies
// on structural discipline instead of locking: every mutation completes
// atomically with respect to observable state before the next command
// is read.
package ir
