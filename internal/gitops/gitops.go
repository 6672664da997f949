// Package gitops wraps the git binary for the handful of repository
// operations the CLI exposes.
package gitops

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecairns22/ShellCaptain/internal/pathutil"
	"github.com/ecairns22/ShellCaptain/internal/proc"
)

// Manager runs git commands through the execution core.
type Manager struct {
	exec proc.Executor
	set  proc.Settings
}

// New creates a git manager.
func New(ex proc.Executor, set proc.Settings) *Manager {
	return &Manager{exec: ex, set: set}
}

// Clone clones url into dest, streaming git's progress output.
func (m *Manager) Clone(ctx context.Context, url, dest string) error {
	if url == "" {
		return &proc.Error{Kind: proc.InvalidArg, Err: errors.New("repository url is empty")}
	}
	if dest == "" {
		return &proc.Error{Kind: proc.InvalidPath, Err: errors.New("destination is empty")}
	}

	if err := m.exec.Run(ctx, m.set, []string{"git", "clone", url, dest}); err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// Pull updates the checkout in dir.
func (m *Manager) Pull(ctx context.Context, dir string) error {
	if err := repoDir(dir); err != nil {
		return err
	}
	if err := m.exec.Run(ctx, m.set, []string{"git", "-C", dir, "pull"}); err != nil {
		return fmt.Errorf("pulling in %s: %w", dir, err)
	}
	return nil
}

// Checkout switches dir to ref.
func (m *Manager) Checkout(ctx context.Context, dir, ref string) error {
	if err := repoDir(dir); err != nil {
		return err
	}
	if ref == "" {
		return &proc.Error{Kind: proc.InvalidArg, Err: errors.New("ref is empty")}
	}
	if err := m.exec.Run(ctx, m.set, []string{"git", "-C", dir, "checkout", ref}); err != nil {
		return fmt.Errorf("checking out %s in %s: %w", ref, dir, err)
	}
	return nil
}

// CurrentBranch returns the branch name checked out in dir. A repository
// always has one, so empty output is a failure here.
func (m *Manager) CurrentBranch(ctx context.Context, dir string) (string, error) {
	if err := repoDir(dir); err != nil {
		return "", err
	}
	out, err := proc.CallNonEmpty(ctx, m.exec, m.set, []string{"git", "-C", dir, "rev-parse", "--abbrev-ref", "HEAD"})
	if err != nil {
		return "", fmt.Errorf("resolving branch in %s: %w", dir, err)
	}
	return out, nil
}

// HeadCommit returns the full hash of HEAD in dir.
func (m *Manager) HeadCommit(ctx context.Context, dir string) (string, error) {
	if err := repoDir(dir); err != nil {
		return "", err
	}
	out, err := proc.CallNonEmpty(ctx, m.exec, m.set, []string{"git", "-C", dir, "rev-parse", "HEAD"})
	if err != nil {
		return "", fmt.Errorf("resolving HEAD in %s: %w", dir, err)
	}
	return out, nil
}

// IsRepo reports whether dir is inside a git work tree. Any failure is
// downgraded to false.
func (m *Manager) IsRepo(ctx context.Context, dir string) bool {
	if repoDir(dir) != nil {
		return false
	}
	out, err := m.exec.Call(ctx, m.set, []string{"git", "-C", dir, "rev-parse", "--is-inside-work-tree"})
	return err == nil && out == "true"
}

func repoDir(dir string) error {
	if dir == "" {
		return &proc.Error{Kind: proc.InvalidPath, Err: errors.New("repository directory is empty")}
	}
	if !pathutil.IsDir(dir) {
		return &proc.Error{Kind: proc.InvalidPath, Err: fmt.Errorf("%s is not a directory", dir)}
	}
	return nil
}
