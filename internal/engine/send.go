package engine

import (
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
)

// Send transmits the code once, then repeats additional times, with a
// fixed silence gap between transmissions (none after the last).
//
// The receiver is disabled for the whole call and re-enabled on every
// exit path, including encoder failure, so a transmission can never be
// re-captured as spurious input.
//
// For decoded codes each iteration re-encodes the protocol triple; an
// encoder refusal aborts the loop with ErrSendFailed. Raw replays have
// no failure signal.
func (e *Engine) Send(code ir.Code, repeats int) error {
	if repeats < 0 {
		repeats = 0
	}

	e.rx.Disable()
	defer e.rx.Enable()

	for r := 0; r <= repeats; r++ {
		switch code.Kind {
		case ir.KindDecoded:
			if !e.tx.TransmitDecoded(code.Protocol, code.Value, code.Bits) {
				e.log.Warn("encoder refused transmission",
					"name", code.Name,
					"type", code.TypeName(),
				)
				return ErrSendFailed
			}
		case ir.KindRaw:
			e.tx.TransmitRaw(code.Pulses, code.Freq)
		}

		if r < repeats {
			time.Sleep(e.repeatGap)
		}
	}

	return nil
}
