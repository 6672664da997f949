// Package userops wraps the account utilities (whoami, id, useradd,
// userdel) over the execution core.
package userops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecairns22/ShellCaptain/internal/proc"
)

// Manager runs user account operations through the execution core.
type Manager struct {
	exec     proc.Executor
	set      proc.Settings
	escalate string
}

// New creates a user manager. escalate, when non-empty, prefixes the
// mutating operations (useradd/userdel) as an ordinary argv element.
func New(ex proc.Executor, set proc.Settings, escalate string) *Manager {
	return &Manager{exec: ex, set: set, escalate: escalate}
}

// Current returns the invoking user's name via whoami. This call site
// requires output: an empty result is a UserNotFound failure.
func (m *Manager) Current(ctx context.Context) (string, error) {
	out, err := proc.CallNonEmpty(ctx, m.exec, m.set, []string{"whoami"})
	if err != nil {
		return "", fmt.Errorf("resolving current user: %w", err)
	}
	return out, nil
}

// Exists reports whether the named account exists. This is a boolean
// probe: every failure kind from the captured call downgrades to false.
func (m *Manager) Exists(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	_, err := m.exec.Call(ctx, m.set, []string{"id", "-u", name})
	return err == nil
}

// AddOptions control useradd flag translation.
type AddOptions struct {
	System     bool
	CreateHome bool
	Shell      string
}

// Add creates the named account. An account that already exists is not
// an error.
func (m *Manager) Add(ctx context.Context, name string, opts AddOptions) error {
	if name == "" {
		return &proc.Error{Kind: proc.InvalidArg, Err: errors.New("user name is empty")}
	}

	argv := m.prefix("useradd")
	if opts.System {
		argv = append(argv, "--system")
	}
	if opts.CreateHome {
		argv = append(argv, "--create-home")
	} else {
		argv = append(argv, "--no-create-home")
	}
	if opts.Shell != "" {
		argv = append(argv, "--shell", opts.Shell)
	}
	argv = append(argv, name)

	if _, err := m.exec.Call(ctx, m.set, argv); err != nil {
		var pe *proc.Error
		if errors.As(err, &pe) && strings.Contains(pe.Stderr, "already exists") {
			return nil
		}
		return fmt.Errorf("creating user %s: %w", name, err)
	}
	return nil
}

// Remove deletes the named account, with -r to take its home directory
// along. An account that is already gone is not an error.
func (m *Manager) Remove(ctx context.Context, name string, removeHome bool) error {
	if name == "" {
		return &proc.Error{Kind: proc.InvalidArg, Err: errors.New("user name is empty")}
	}

	argv := m.prefix("userdel")
	if removeHome {
		argv = append(argv, "-r")
	}
	argv = append(argv, name)

	if _, err := m.exec.Call(ctx, m.set, argv); err != nil {
		var pe *proc.Error
		if errors.As(err, &pe) && strings.Contains(pe.Stderr, "does not exist") {
			return nil
		}
		return fmt.Errorf("removing user %s: %w", name, err)
	}
	return nil
}

// Groups returns the group names the named account belongs to.
func (m *Manager) Groups(ctx context.Context, name string) ([]string, error) {
	if name == "" {
		return nil, &proc.Error{Kind: proc.InvalidArg, Err: errors.New("user name is empty")}
	}

	out, err := m.exec.Call(ctx, m.set, []string{"id", "-Gn", name})
	if err != nil {
		return nil, fmt.Errorf("listing groups for %s: %w", name, err)
	}
	return strings.Fields(out), nil
}

func (m *Manager) prefix(tool string) []string {
	if m.escalate != "" {
		return []string{m.escalate, tool}
	}
	return []string{tool}
}
