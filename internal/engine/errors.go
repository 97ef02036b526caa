package engine

import "errors"

// Domain-specific errors for engine operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrLearnTimeout is returned when no qualifying signal arrived
	// within the learn deadline. No code is produced.
	ErrLearnTimeout = errors.New("engine: learn timed out")

	// ErrSendFailed is returned when the encoder reports it cannot
	// reproduce a decoded code. The transmit loop stops at the failed
	// repeat; the receiver is still re-enabled.
	ErrSendFailed = errors.New("engine: encoder refused transmission")
)
