package proc

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure from the execution core. The set is closed:
// collaborators may depend on these values and nothing else.
type Kind int

const (
	// CommandNotFound means the argument list was empty.
	CommandNotFound Kind = iota
	// InvalidPath means a path argument was empty or failed an existence
	// check before any process was spawned.
	InvalidPath
	// InvalidArg means a required string argument was empty.
	InvalidArg
	// NoStdout means the child's stdout pipe was unavailable.
	NoStdout
	// SpawnFailed means the process could not be started at all
	// (executable missing, permission denied, resource exhaustion).
	SpawnFailed
	// ProcessFailed means the process exited non-zero, or a read failed
	// mid-drain.
	ProcessFailed
	// UserNotFound means captured output was empty after trimming at a
	// call site that requires non-empty output (see CallNonEmpty).
	UserNotFound
	// OutputTooLarge means captured output exceeded the Settings buffer
	// cap. Output is never silently truncated.
	OutputTooLarge
)

func (k Kind) String() string {
	switch k {
	case CommandNotFound:
		return "command not found"
	case InvalidPath:
		return "invalid path"
	case InvalidArg:
		return "invalid argument"
	case NoStdout:
		return "no stdout"
	case SpawnFailed:
		return "spawn failed"
	case ProcessFailed:
		return "process failed"
	case UserNotFound:
		return "empty output"
	case OutputTooLarge:
		return "output too large"
	}
	return fmt.Sprintf("unknown kind %d", int(k))
}

// Error is the typed failure returned by every core operation.
type Error struct {
	Kind     Kind
	Argv     []string // command that failed, if one was involved
	ExitCode int      // exit code for ProcessFailed, else 0
	Stderr   string   // trimmed stderr captured before the failure, if any
	Err      error    // underlying OS error, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if len(e.Argv) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Argv, " "))
	}
	if e.Kind == ProcessFailed && e.Err == nil {
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, ": %s", e.Stderr)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a core *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == k
}

// KindOf returns the kind of a core error and true, or false for any
// other error (including nil).
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
