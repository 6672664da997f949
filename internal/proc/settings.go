package proc

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Recommended buffer sizes: a small chunk for streaming relays, a large
// cap for full captures.
const (
	DefaultStreamBufferSize = 4096
	DefaultCaptureMaxBytes  = 1 << 20 // 1 MiB
)

// Settings carries the resources every core operation needs: the output
// sinks, the diagnostic logger, and the buffer bound. There is no hidden
// package-level default; callers construct one and pass it explicitly.
// Settings is never mutated by the core and may be shared across
// concurrent invocations.
type Settings struct {
	// MaxBufferSize is the chunk size for streaming execution and the
	// total output cap for captured execution. Must be positive.
	MaxBufferSize int
	// Stdout and Stderr receive the child's relayed output in streaming
	// mode.
	Stdout io.Writer
	Stderr io.Writer
	// Logger is the diagnostic sink: failing commands and captured
	// stderr content are reported here, never swallowed.
	Logger *log.Logger
}

// StreamSettings returns Settings suited to streaming execution,
// relaying to the process's own standard streams.
func StreamSettings(logger *log.Logger) Settings {
	return Settings{
		MaxBufferSize: DefaultStreamBufferSize,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Logger:        logger,
	}
}

// CaptureSettings returns Settings suited to captured execution.
func CaptureSettings(logger *log.Logger) Settings {
	return Settings{
		MaxBufferSize: DefaultCaptureMaxBytes,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Logger:        logger,
	}
}

// Validate checks that the settings are usable by the core.
func (s Settings) Validate() error {
	if s.MaxBufferSize <= 0 {
		return &Error{Kind: InvalidArg, Err: errInvalidBufferSize}
	}
	if s.Stdout == nil || s.Stderr == nil {
		return &Error{Kind: InvalidArg, Err: errNilSink}
	}
	if s.Logger == nil {
		return &Error{Kind: InvalidArg, Err: errNilLogger}
	}
	return nil
}
