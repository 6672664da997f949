package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ecairns22/ShellCaptain/internal/proc"
)

// Recorder decorates an executor so every invocation lands in the
// store. Recording failures are reported to the Settings logger but
// never mask the command's own outcome.
type Recorder struct {
	inner proc.Executor
	store *Store
}

// NewRecorder wraps inner so its invocations are recorded in store.
func NewRecorder(inner proc.Executor, store *Store) *Recorder {
	return &Recorder{inner: inner, store: store}
}

// Run executes through the inner executor and records the outcome.
func (r *Recorder) Run(ctx context.Context, set proc.Settings, argv []string) error {
	start := time.Now()
	err := r.inner.Run(ctx, set, argv)
	r.record(ctx, set, argv, "run", start, err)
	return err
}

// Call executes through the inner executor and records the outcome.
func (r *Recorder) Call(ctx context.Context, set proc.Settings, argv []string) (string, error) {
	start := time.Now()
	out, err := r.inner.Call(ctx, set, argv)
	r.record(ctx, set, argv, "call", start, err)
	return out, err
}

func (r *Recorder) record(ctx context.Context, set proc.Settings, argv []string, mode string, start time.Time, err error) {
	inv := &Invocation{
		RunID:     uuid.New().String(),
		Argv:      argv,
		Mode:      mode,
		Duration:  time.Since(start),
		StartedAt: start,
	}
	var pe *proc.Error
	if errors.As(err, &pe) {
		inv.ErrorKind = pe.Kind.String()
		inv.ExitCode = pe.ExitCode
	} else if err != nil {
		inv.ErrorKind = err.Error()
	}

	if ierr := r.store.Insert(ctx, inv); ierr != nil && set.Logger != nil {
		set.Logger.Warn("recording invocation failed", "err", ierr)
	}
}

var _ proc.Executor = (*Recorder)(nil)
