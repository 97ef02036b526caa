package engine

import (
	"math"
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/hardware"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Learn waits for the next qualifying infrared signal and returns it as
// a code named name. It polls the decoder until the timeout elapses,
// discarding captures that are noise (unrecognised and shorter than the
// minimum raw length) or truncated (unrecognised with the overflow flag
// set); discards do not shorten the remaining deadline.
//
// A recognised protocol is accepted immediately regardless of length.
// An unrecognised capture that survives both filters becomes a raw code:
// tick counts are converted to microseconds, clamped to the 16-bit
// range, and the lead-in sample is dropped.
//
// The signal check runs before the deadline check on every iteration, so
// a capture arriving in the final poll interval still succeeds. On
// timeout no code is produced and ErrLearnTimeout is returned.
func (e *Engine) Learn(name string, timeout time.Duration) (ir.Code, error) {
	deadline := time.Now().Add(timeout)

	for {
		if cap, ok := e.rx.Poll(); ok {
			code, accepted := e.qualify(name, cap)
			e.rx.Resume()
			if accepted {
				e.log.Debug("capture accepted",
					"name", name,
					"type", code.TypeName(),
					"raw_samples", len(code.Pulses),
				)
				return code, nil
			}
		}

		if !time.Now().Before(deadline) {
			return ir.Code{}, ErrLearnTimeout
		}
		time.Sleep(e.pollInterval)
	}
}

// qualify filters one capture and, when it qualifies, normalises it into
// a code. Returns false for noise and truncated captures.
func (e *Engine) qualify(name string, cap hardware.Capture) (ir.Code, bool) {
	if cap.Protocol != ir.ProtocolUnknown {
		return ir.Code{
			Name:     name,
			Kind:     ir.KindDecoded,
			Protocol: cap.Protocol,
			Value:    cap.Value,
			Bits:     cap.Bits,
		}, true
	}

	if len(cap.RawTicks) < e.minRawSamples {
		e.log.Debug("discarding noise capture", "raw_samples", len(cap.RawTicks))
		return ir.Code{}, false
	}
	if cap.Overflow {
		e.log.Debug("discarding truncated capture", "raw_samples", len(cap.RawTicks))
		return ir.Code{}, false
	}

	return ir.Code{
		Name:   name,
		Kind:   ir.KindRaw,
		Freq:   ir.DefaultCarrierHz,
		Pulses: ticksToMicros(cap.RawTicks),
	}, true
}

// ticksToMicros converts decoder ticks to clamped microsecond durations.
// The first sample is the edge that started the capture, not a usable
// duration, so it is skipped; the total is capped at the decoder's
// capture depth.
func ticksToMicros(ticks []uint16) []uint16 {
	n := len(ticks)
	if n > hardware.CaptureBufferSize {
		n = hardware.CaptureBufferSize
	}
	if n <= 1 {
		return nil
	}

	out := make([]uint16, 0, n-1)
	for _, t := range ticks[1:n] {
		us := uint32(t) * hardware.TickMicroseconds
		if us > math.MaxUint16 {
			us = math.MaxUint16
		}
		out = append(out, uint16(us))
	}
	return out
}
