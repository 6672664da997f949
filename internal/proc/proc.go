// Package proc is the process execution core: it spawns external OS
// processes, relays or captures their output, and translates exit status
// into typed failures. Everything above it only builds argument lists
// and interprets the error kinds defined here.
package proc

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

var (
	errInvalidBufferSize = errors.New("max buffer size must be positive")
	errNilSink           = errors.New("stdout and stderr sinks are required")
	errNilLogger         = errors.New("logger is required")
)

// Executor runs one external command per call. Run relays output to the
// Settings sinks; Call buffers stdout and returns it trimmed. Both modes
// accept an ordered argument list whose first element is the program
// name; neither interprets shell syntax.
type Executor interface {
	Run(ctx context.Context, set Settings, argv []string) error
	Call(ctx context.Context, set Settings, argv []string) (string, error)
}

// ShellCommand wraps a shell script string as an argument list. Callers
// wanting pipes, globbing, or && must opt in through this; the core
// itself never touches shell syntax.
func ShellCommand(script string) []string {
	return []string{"sh", "-c", script}
}

// handle is one spawned OS process with both output streams piped.
// It is owned exclusively by the invocation that spawned it: both pipes
// are drained and the process waited on before the handle is discarded,
// on every exit path.
type handle struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// spawn starts one process for argv with stdout and stderr piped.
// Stdin is left nil so the child reads from the null device rather than
// blocking on a pipe nobody writes to.
func spawn(ctx context.Context, argv []string) (*handle, error) {
	if len(argv) == 0 {
		return nil, &Error{Kind: CommandNotFound}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &Error{Kind: NoStdout, Argv: argv, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &Error{Kind: SpawnFailed, Argv: argv, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &Error{Kind: SpawnFailed, Argv: argv, Err: err}
	}

	return &handle{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

// wait reaps the process. cmd.Wait also closes both pipe descriptors,
// so it must only be called after draining finishes.
func (h *handle) wait(argv []string, stderr string) error {
	err := h.cmd.Wait()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Error{Kind: ProcessFailed, Argv: argv, ExitCode: exitErr.ExitCode(), Stderr: stderr}
	}
	return &Error{Kind: ProcessFailed, Argv: argv, Stderr: stderr, Err: err}
}
