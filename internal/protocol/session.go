package protocol

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// maxLineBytes bounds a single request line. A full define_raw with 512
// samples fits comfortably; anything larger is a runaway host.
const maxLineBytes = 16 * 1024

// Session runs the command loop over one host connection: it emits the
// boot banner, then assembles transport bytes into lines and executes
// exactly one command per line until EOF or cancellation.
type Session struct {
	rw  io.ReadWriter
	d   *Dispatcher
	log Logger
}

// NewSession creates a session over the given transport. The transport
// is typically a serial port; tests use in-memory pipes.
func NewSession(rw io.ReadWriter, d *Dispatcher) *Session {
	return &Session{rw: rw, d: d, log: noopLogger{}}
}

// SetLogger sets the logger for the session.
func (s *Session) SetLogger(log Logger) {
	s.log = log
}

// Run drives the loop until the transport reports EOF, a write fails,
// or ctx is cancelled. Cancellation is only observed between commands;
// the caller unblocks a pending read by closing the transport.
func (s *Session) Run(ctx context.Context) error {
	if err := writeStatus(s.rw, "boot"); err != nil {
		return fmt.Errorf("emitting boot banner: %w", err)
	}

	reader := bufio.NewReaderSize(s.rw, maxLineBytes)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, tooLong, err := readLine(reader)

		if tooLong {
			// An oversized line is the host's problem, not the
			// session's: answer like any other unparseable request and
			// keep going.
			s.log.Warn("oversized request line dropped", "limit_bytes", maxLineBytes)
			if werr := writeError(s.rw, errJSONParse); werr != nil {
				return fmt.Errorf("writing response: %w", werr)
			}
		} else {
			line = bytes.ReplaceAll(line, []byte{'\r'}, nil)
			if len(bytes.TrimSpace(line)) > 0 {
				if derr := s.d.Dispatch(line, s.rw); derr != nil {
					// Dispatch errors are transport write failures;
					// command level problems were already answered on
					// the wire.
					return fmt.Errorf("dispatching command: %w", derr)
				}
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading command stream: %w", err)
		}
	}
}

// readLine returns the next line without its terminator. A line longer
// than the reader's buffer is consumed through its newline and reported
// via tooLong rather than as an error. A final unterminated line is
// returned alongside io.EOF.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	line, err = r.ReadSlice('\n')
	if err == nil || errors.Is(err, io.EOF) {
		return bytes.TrimSuffix(line, []byte{'\n'}), false, err
	}
	if err != bufio.ErrBufferFull {
		return nil, false, err
	}

	// Discard the remainder of the oversized line.
	for err == bufio.ErrBufferFull {
		_, err = r.ReadSlice('\n')
	}
	return nil, true, err
}
