package proc

import (
	"context"
	"io"
	"strings"
	"sync"
)

const trimCutset = " \t\n\r"

// Local executes commands as real OS child processes.
type Local struct {
	// spawn is swapped out in tests to count spawn attempts.
	spawn func(ctx context.Context, argv []string) (*handle, error)
}

// NewLocal returns an Executor backed by os/exec.
func NewLocal() *Local {
	return &Local{spawn: spawn}
}

// Run spawns argv and relays its stdout and stderr to the Settings sinks
// in MaxBufferSize chunks until the child exits. Both streams are
// drained concurrently so a stderr-heavy child cannot stall against a
// full pipe while stdout is still being read. Returns nil on exit 0;
// the output itself has already been relayed as a side effect.
func (l *Local) Run(ctx context.Context, set Settings, argv []string) error {
	if err := set.Validate(); err != nil {
		return err
	}
	if len(argv) == 0 {
		return &Error{Kind: CommandNotFound}
	}

	h, err := l.spawn(ctx, argv)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	var outErr, errErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		outErr = relay(set.Stdout, h.stdout, set.MaxBufferSize)
	}()
	go func() {
		defer wg.Done()
		errErr = relay(set.Stderr, h.stderr, set.MaxBufferSize)
	}()
	wg.Wait()

	// Wait only after both pipes hit EOF; Wait closes them.
	if err := h.wait(argv, ""); err != nil {
		set.Logger.Error("command failed",
			"argv", strings.Join(argv, " "),
			"err", err)
		return err
	}
	if outErr != nil {
		return &Error{Kind: ProcessFailed, Argv: argv, Err: outErr}
	}
	if errErr != nil {
		return &Error{Kind: ProcessFailed, Argv: argv, Err: errErr}
	}
	return nil
}

// Call spawns argv, buffers its entire stdout bounded by MaxBufferSize,
// and returns it with surrounding whitespace trimmed. The result may
// legitimately be empty; call sites that require output wrap this with
// CallNonEmpty. Stderr is diagnostic-only: non-empty content goes to
// the Settings logger and is then dropped. Producing more stdout than
// the cap is a hard OutputTooLarge error, never silent truncation.
func (l *Local) Call(ctx context.Context, set Settings, argv []string) (string, error) {
	if err := set.Validate(); err != nil {
		return "", err
	}
	if len(argv) == 0 {
		return "", &Error{Kind: CommandNotFound}
	}

	h, err := l.spawn(ctx, argv)
	if err != nil {
		return "", err
	}

	var wg sync.WaitGroup
	var out, errOut capture
	wg.Add(2)
	go func() {
		defer wg.Done()
		out = drainCapped(h.stdout, set.MaxBufferSize)
	}()
	go func() {
		defer wg.Done()
		errOut = drainCapped(h.stderr, set.MaxBufferSize)
	}()
	wg.Wait()

	stderr := strings.Trim(string(errOut.data), trimCutset)
	if stderr != "" {
		set.Logger.Debug("command wrote to stderr",
			"argv", strings.Join(argv, " "),
			"stderr", stderr)
	}

	if err := h.wait(argv, stderr); err != nil {
		set.Logger.Error("command failed",
			"argv", strings.Join(argv, " "),
			"err", err)
		return "", err
	}
	if out.err != nil {
		return "", &Error{Kind: ProcessFailed, Argv: argv, Err: out.err}
	}
	if errOut.err != nil {
		return "", &Error{Kind: ProcessFailed, Argv: argv, Err: errOut.err}
	}
	if out.overflow || errOut.overflow {
		return "", &Error{Kind: OutputTooLarge, Argv: argv}
	}

	return strings.Trim(string(out.data), trimCutset), nil
}

// CallNonEmpty is Call for call sites that genuinely require output,
// such as username or branch lookups: an empty trimmed result becomes a
// UserNotFound failure instead of an empty string.
func CallNonEmpty(ctx context.Context, ex Executor, set Settings, argv []string) (string, error) {
	out, err := ex.Call(ctx, set, argv)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", &Error{Kind: UserNotFound, Argv: argv}
	}
	return out, nil
}

// relay copies src to dst in fixed-size chunks until EOF.
func relay(dst io.Writer, src io.Reader, size int) error {
	buf := make([]byte, size)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

type capture struct {
	data     []byte
	overflow bool
	err      error
}

// drainCapped reads src to EOF, keeping at most max bytes. Once the cap
// is exceeded it keeps reading and discards, so the child can always
// finish writing and be reaped.
func drainCapped(src io.Reader, max int) capture {
	var c capture
	buf := make([]byte, DefaultStreamBufferSize)
	for {
		n, err := src.Read(buf)
		if n > 0 && !c.overflow {
			if len(c.data)+n > max {
				c.overflow = true
				c.data = nil
			} else {
				c.data = append(c.data, buf[:n]...)
			}
		}
		if err == io.EOF {
			return c
		}
		if err != nil {
			c.err = err
			return c
		}
	}
}
