// Package fileops wraps the standard file utilities. Each operation is
// pure argv assembly over the execution core plus path validation; the
// core's typed failures are the whole error contract.
package fileops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecairns22/ShellCaptain/internal/pathutil"
	"github.com/ecairns22/ShellCaptain/internal/proc"
)

// Ops executes file operations through the given executor.
type Ops struct {
	exec proc.Executor
	set  proc.Settings
}

// New creates file operations bound to an executor and settings.
func New(ex proc.Executor, set proc.Settings) *Ops {
	return &Ops{exec: ex, set: set}
}

// CopyOptions control cp flag translation.
type CopyOptions struct {
	Recursive bool
	Force     bool
}

// Copy copies src to dst via cp.
func (o *Ops) Copy(ctx context.Context, src, dst string, opts CopyOptions) error {
	if err := existingPath(src); err != nil {
		return err
	}
	if err := nonEmptyPath(dst); err != nil {
		return err
	}

	argv := []string{"cp"}
	if opts.Recursive {
		argv = append(argv, "-r")
	}
	if opts.Force {
		argv = append(argv, "-f")
	}
	argv = append(argv, src, dst)

	if _, err := o.exec.Call(ctx, o.set, argv); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// Move moves src to dst via mv.
func (o *Ops) Move(ctx context.Context, src, dst string, force bool) error {
	if err := existingPath(src); err != nil {
		return err
	}
	if err := nonEmptyPath(dst); err != nil {
		return err
	}

	argv := []string{"mv"}
	if force {
		argv = append(argv, "-f")
	}
	argv = append(argv, src, dst)

	if _, err := o.exec.Call(ctx, o.set, argv); err != nil {
		return fmt.Errorf("moving %s to %s: %w", src, dst, err)
	}
	return nil
}

// Mkdir creates a directory, with -p when parents is set.
func (o *Ops) Mkdir(ctx context.Context, path string, parents bool) error {
	if err := nonEmptyPath(path); err != nil {
		return err
	}

	argv := []string{"mkdir"}
	if parents {
		argv = append(argv, "-p")
	}
	argv = append(argv, path)

	if _, err := o.exec.Call(ctx, o.set, argv); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// RemoveOptions control rm flag translation.
type RemoveOptions struct {
	Recursive bool
	Force     bool
}

// Remove deletes path via rm.
func (o *Ops) Remove(ctx context.Context, path string, opts RemoveOptions) error {
	if err := nonEmptyPath(path); err != nil {
		return err
	}

	argv := []string{"rm"}
	if opts.Recursive {
		argv = append(argv, "-r")
	}
	if opts.Force {
		argv = append(argv, "-f")
	}
	argv = append(argv, path)

	if _, err := o.exec.Call(ctx, o.set, argv); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Find runs find root -name pattern and returns matching paths. Zero
// matches is a legitimate empty result, not a failure.
func (o *Ops) Find(ctx context.Context, root, pattern string) ([]string, error) {
	if err := existingPath(root); err != nil {
		return nil, err
	}
	if pattern == "" {
		return nil, &proc.Error{Kind: proc.InvalidArg, Err: errors.New("find pattern is empty")}
	}

	out, err := o.exec.Call(ctx, o.set, []string{"find", root, "-name", pattern})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}
	return splitLines(out), nil
}

// GrepOptions control grep flag translation.
type GrepOptions struct {
	Recursive  bool
	IgnoreCase bool
}

// Grep returns the lines matching pattern in path. grep exits 1 when
// nothing matches; that is downgraded to an empty result. Exit codes
// above 1 (bad pattern, unreadable file) remain failures.
func (o *Ops) Grep(ctx context.Context, pattern, path string, opts GrepOptions) ([]string, error) {
	if pattern == "" {
		return nil, &proc.Error{Kind: proc.InvalidArg, Err: errors.New("grep pattern is empty")}
	}
	if err := existingPath(path); err != nil {
		return nil, err
	}

	argv := []string{"grep"}
	if opts.Recursive {
		argv = append(argv, "-r")
	}
	if opts.IgnoreCase {
		argv = append(argv, "-i")
	}
	argv = append(argv, pattern, path)

	out, err := o.exec.Call(ctx, o.set, argv)
	if err != nil {
		var pe *proc.Error
		if errors.As(err, &pe) && pe.Kind == proc.ProcessFailed && pe.ExitCode == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("searching %s for %q: %w", path, pattern, err)
	}
	return splitLines(out), nil
}

func nonEmptyPath(path string) error {
	if path == "" {
		return &proc.Error{Kind: proc.InvalidPath, Err: errors.New("path is empty")}
	}
	return nil
}

func existingPath(path string) error {
	if err := nonEmptyPath(path); err != nil {
		return err
	}
	if !pathutil.Exists(path) {
		return &proc.Error{Kind: proc.InvalidPath, Err: fmt.Errorf("%s does not exist", path)}
	}
	return nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
