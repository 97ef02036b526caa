package engine

import (
	"time"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/hardware"
)

// Logger defines the logging interface used by the Engine.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Default timing parameters, matching the transceiver hardware's
// characteristics.
const (
	// DefaultPollInterval is the pause between decoder polls during learn.
	DefaultPollInterval = 5 * time.Millisecond

	// DefaultRepeatGap is the silence between repeated transmissions.
	DefaultRepeatGap = 80 * time.Millisecond

	// DefaultMinRawSamples is the shortest unrecognised capture accepted
	// during learn. Anything shorter is ambient noise.
	DefaultMinRawSamples = 12
)

// Options tunes engine timing. Zero values select the defaults above;
// tests shrink the intervals to keep runs fast.
type Options struct {
	PollInterval  time.Duration
	RepeatGap     time.Duration
	MinRawSamples int
	Logger        Logger
}

// Engine owns the learn and send state machines. It holds no code state
// itself; learned codes are returned to the caller for storage.
type Engine struct {
	rx hardware.Receiver
	tx hardware.Transmitter

	pollInterval  time.Duration
	repeatGap     time.Duration
	minRawSamples int
	log           Logger
}

// New creates an engine bound to the given transceiver halves.
func New(rx hardware.Receiver, tx hardware.Transmitter, opts Options) *Engine {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.RepeatGap <= 0 {
		opts.RepeatGap = DefaultRepeatGap
	}
	if opts.MinRawSamples <= 0 {
		opts.MinRawSamples = DefaultMinRawSamples
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}

	return &Engine{
		rx:            rx,
		tx:            tx,
		pollInterval:  opts.PollInterval,
		repeatGap:     opts.RepeatGap,
		minRawSamples: opts.MinRawSamples,
		log:           opts.Logger,
	}
}
